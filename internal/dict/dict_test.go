package dict

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cours-de-latin/dupfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lexiconPath = "testdata/polimorf.tsv"

func TestLoad(t *testing.T) {
	d, err := Load(lexiconPath)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Len())
	assert.Equal(t, 1, d.Rejected())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, d.Len())
}

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader("kota\tkot:Sm1\r\nkota\tkot:Sm1\nkotem\tkot\tsubst\n# comment\nlonely\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"kot:Sm1"}, d.Lookup("kota"))
	assert.Equal(t, []string{"kot:subst"}, d.Lookup("kotem"))
	assert.Equal(t, 1, d.Rejected())
}

func TestLookup(t *testing.T) {
	d, err := Load(lexiconPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"kot:subst:sg:gen:m2", "kot:subst:sg:acc:m2"}, d.Lookup("kota"))
	assert.Equal(t, d.Lookup("kota"), d.Lookup("Kota"), "capitalized form falls back to lower case")
	assert.Equal(t, []string{"Ala:subst:sg:nom:f"}, d.Lookup("Ala"))
	assert.Nil(t, d.Lookup("żaba"))
}

func TestAnalyze(t *testing.T) {
	d, err := Load(lexiconPath)
	require.NoError(t, err)

	got, err := d.Analyze(context.Background(), "Mam kota, żaba!")
	require.NoError(t, err)
	assert.Equal(t, []dupfinder.Interpretation{
		{Form: "Mam", Lemma: "mieć:fin:sg:pri:imperf"},
		{Form: "Mam", Lemma: "mama:subst:pl:gen:f"},
		{Form: "kota", Lemma: "kot:subst:sg:gen:m2"},
		{Form: "kota", Lemma: "kot:subst:sg:acc:m2"},
		{Form: "żaba", Lemma: "żaba:ign"},
	}, got)
}

func TestAnalyzeCancelled(t *testing.T) {
	d, err := Load(lexiconPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Analyze(ctx, "kot")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindWithDictionary(t *testing.T) {
	d, err := Load(lexiconPath)
	require.NoError(t, err)

	r, err := dupfinder.New(d).Find(context.Background(), "Kot kota goni, pies psa goni.")
	require.NoError(t, err)

	assert.Equal(t, []string{"goni"}, r.StrictWords())
	assert.Equal(t, []string{"Kot", "kota", "pies", "psa"}, r.LemmaWords())
	assert.Equal(t, []string{"goni", "Kot", "kota", "pies", "psa"}, r.Duplicates())
	assert.Equal(t, 1, r.StrictCount)
	assert.Equal(t, 4, r.LemmaCount)
}
