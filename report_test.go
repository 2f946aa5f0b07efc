package dupfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	tokens := []string{"pies", "pies", "kot", "Kot", "psa"}
	strict := []string{"pies"}
	lemma := map[string]struct{}{"pies": {}, "psa": {}, "kot": {}, "Kot": {}}

	r := Assemble(strict, lemma, tokens)

	assert.Equal(t, []Item{
		{Word: "kot", Lemma: true},
		{Word: "Kot", Lemma: true},
		{Word: "pies", Strict: true, Lemma: true},
		{Word: "psa", Lemma: true},
	}, r.Items)
	assert.Equal(t, 1, r.StrictCount)
	assert.Equal(t, 4, r.LemmaCount)
	assert.Equal(t, []string{"kot", "Kot", "pies", "psa"}, r.Words)
	assert.Equal(t, []string{"kot", "Kot", "pies", "psa"}, r.Duplicates())
	assert.Equal(t, []string{"pies"}, r.StrictWords())
	assert.Equal(t, []string{"kot", "Kot", "pies", "psa"}, r.LemmaWords())
}

func TestAssembleEmpty(t *testing.T) {
	r := Assemble([]string{}, map[string]struct{}{}, []string{"ala", "ma", "kota"})
	assert.Empty(t, r.Items)
	assert.Zero(t, r.StrictCount)
	assert.Zero(t, r.LemmaCount)
	assert.Equal(t, []string{"ala", "kota", "ma"}, r.Words)
}
