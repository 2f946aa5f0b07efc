package dupfinder

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterpretation(t *testing.T) {
	tests := []struct {
		name      string
		in        Interpretation
		wantForm  string
		wantLemma string
		wantErr   bool
	}{
		{"tagged lemma", Interpretation{"kota", "kot:Sm1"}, "kota", "kot", false},
		{"several tags", Interpretation{"psem", "pies:subst:sg:inst:m2"}, "psem", "pies", false},
		{"no separator", Interpretation{"kota", "kot"}, "", "", true},
		{"empty base", Interpretation{"kota", ":Sm1"}, "", "", true},
		{"empty form", Interpretation{"", "kot:Sm1"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, lemma, err := ParseInterpretation(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantForm, form)
			assert.Equal(t, tt.wantLemma, lemma)
		})
	}
}

func TestLimitSerializesCalls(t *testing.T) {
	var (
		active  atomic.Int32
		maxSeen atomic.Int32
	)
	slow := AnalyzerFunc(func(ctx context.Context, text string) ([]Interpretation, error) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			m := maxSeen.Load()
			if n <= m || maxSeen.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return nil, nil
	})

	a := Limit(slow, 1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Analyze(context.Background(), "kot")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestLimitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	held := AnalyzerFunc(func(ctx context.Context, text string) ([]Interpretation, error) {
		<-block
		return nil, nil
	})
	a := Limit(held, 1)

	go func() { _, _ = a.Analyze(context.Background(), "first") }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := a.Analyze(ctx, "second")
	close(block)
	require.ErrorIs(t, err, ErrAnalyzerUnavailable)
}
