package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cours-de-latin/dupfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryOptions {
	return RetryOptions{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	}
}

func analyzeHandler(t *testing.T, entries []Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)

		var req AnalyzeRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.NotEmpty(t, req.Text)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AnalyzeResponse{Interpretations: entries})
	}
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(analyzeHandler(t, []Entry{
		{Form: "Kot", Lemma: "kot:Sm1"},
		{Form: "kot", Lemma: "kot:Sm1"},
	}))
	defer srv.Close()

	got, err := New(srv.URL+"/", WithRetry(fastRetry())).Analyze(context.Background(), "Kot kot")
	require.NoError(t, err)
	assert.Equal(t, []dupfinder.Interpretation{
		{Form: "Kot", Lemma: "kot:Sm1"},
		{Form: "kot", Lemma: "kot:Sm1"},
	}, got)
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ok := analyzeHandler(t, []Entry{{Form: "kot", Lemma: "kot:Sm1"}})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		ok(w, r)
	}))
	defer srv.Close()

	got, err := New(srv.URL, WithRetry(fastRetry())).Analyze(context.Background(), "kot")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAnalyzeDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad text", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithRetry(fastRetry())).Analyze(context.Background(), "kot")
	require.ErrorIs(t, err, dupfinder.ErrAnalyzerUnavailable)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyzeGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithRetry(fastRetry())).Analyze(context.Background(), "kot")
	require.ErrorIs(t, err, dupfinder.ErrAnalyzerUnavailable)
	assert.Equal(t, int32(4), calls.Load())
}

func TestAnalyzeUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithRetry(fastRetry())).Analyze(context.Background(), "kot")
	require.ErrorIs(t, err, dupfinder.ErrAnalyzerUnavailable)
}

func TestAnalyzeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithRetry(fastRetry())).Analyze(context.Background(), "kot")
	require.ErrorIs(t, err, dupfinder.ErrAnalyzerUnavailable)
}

func TestFindThroughRemote(t *testing.T) {
	srv := httptest.NewServer(analyzeHandler(t, []Entry{
		{Form: "kota", Lemma: "kot:Sm1"},
		{Form: "kotem", Lemma: "kot:Sm1"},
		{Form: "kotem", Lemma: "kot"},
	}))
	defer srv.Close()

	r, err := dupfinder.New(New(srv.URL, WithRetry(fastRetry()))).Find(context.Background(), "kota kotem")
	require.NoError(t, err)
	assert.Equal(t, []string{"kota", "kotem"}, r.LemmaWords())
	assert.Zero(t, r.StrictCount)
}
