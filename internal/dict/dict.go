// Package dict implements a morphological analyzer backed by a
// tab-separated lexicon of inflected forms, such as a PoliMorf or
// Morfeusz dump.
//
// Lexicon format, one entry per line:
//
//	form<TAB>lemma[<TAB>tag]
//
// Blank lines and lines starting with '#' are ignored. A form listed on
// several lines is ambiguous and every lemma is reported for it.
package dict

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/cours-de-latin/dupfinder"
	"github.com/edsrzf/mmap-go"
)

// UnknownTag is the tag reported for forms missing from the lexicon. Their
// lemma is the form itself.
const UnknownTag = "ign"

// Dictionary maps surface forms to tagged lemmas. It is read-only after
// loading and safe for concurrent use.
type Dictionary struct {
	// entries maps form → lemmas with tags, e.g. "kota" → ["kot:subst:sg:gen:m2"].
	entries map[string][]string
	// rejected counts lines with fewer than two fields.
	rejected int
}

// Load maps the lexicon at path read-only and parses it. Strings are copied
// out of the mapping, which is released before Load returns.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat lexicon: %w", err)
	}
	if info.Size() == 0 {
		return Parse(strings.NewReader(""))
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap lexicon: %w", err)
	}
	d, err := Parse(bytes.NewReader(m))
	if uerr := m.Unmap(); uerr != nil && err == nil {
		err = fmt.Errorf("unmap lexicon: %w", uerr)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads a lexicon from r.
func Parse(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string][]string)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			d.rejected++
			continue
		}
		lemma := fields[1]
		if len(fields) > 2 && fields[2] != "" {
			lemma += dupfinder.TagSeparator + fields[2]
		}
		d.add(fields[0], lemma)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return d, nil
}

// add records lemma for form once.
func (d *Dictionary) add(form, lemma string) {
	for _, l := range d.entries[form] {
		if l == lemma {
			return
		}
	}
	d.entries[form] = append(d.entries[form], lemma)
}

// Len returns the number of distinct forms.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Rejected returns the number of lexicon lines that were ignored because
// they had fewer than two fields.
func (d *Dictionary) Rejected() int {
	return d.rejected
}

// Lookup returns the tagged lemmas of form. A form not found as written is
// looked up lower-cased, so sentence-initial capitals still resolve.
func (d *Dictionary) Lookup(form string) []string {
	if lemmas, ok := d.entries[form]; ok {
		return lemmas
	}
	if lower := strings.ToLower(form); lower != form {
		return d.entries[lower]
	}
	return nil
}

// Analyze implements dupfinder.Analyzer. Text is segmented into runs of
// letters and numbers; every segment yields one entry per lemma, or a
// single "form:ign" entry when the form is unknown.
func (d *Dictionary) Analyze(ctx context.Context, text string) ([]dupfinder.Interpretation, error) {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := make([]dupfinder.Interpretation, 0, len(segments))
	for _, form := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lemmas := d.Lookup(form)
		if len(lemmas) == 0 {
			out = append(out, dupfinder.Interpretation{
				Form:  form,
				Lemma: form + dupfinder.TagSeparator + UnknownTag,
			})
			continue
		}
		for _, lemma := range lemmas {
			out = append(out, dupfinder.Interpretation{Form: form, Lemma: lemma})
		}
	}
	return out, nil
}
