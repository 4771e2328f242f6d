// Package conjugation maps Spanish verb forms to their infinitives and back,
// so a query for one form can match every other form of the same verb.
package conjugation

import (
	"sort"
	"sync"

	"github.com/javijec/new-biblia/internal/textnorm"
)

// Verb is an infinitive and its inflected forms.
type Verb struct {
	Infinitive string   `json:"infinitive"`
	Forms      []string `json:"forms"`
}

// Table is a read-only, accent-folded index of verb forms. A form shared by
// two verbs ("fue" for ser and ir) maps to both.
type Table struct {
	infinitives map[string][]string
	forms       map[string][]string
}

// New indexes verbs. Every spelling is folded with textnorm.Fold.
func New(verbs ...Verb) *Table {
	t := &Table{
		infinitives: make(map[string][]string),
		forms:       make(map[string][]string),
	}
	for _, v := range verbs {
		inf := textnorm.Fold(v.Infinitive)
		if inf == "" {
			continue
		}
		if _, ok := t.forms[inf]; !ok {
			t.forms[inf] = nil
		}
		for _, f := range v.Forms {
			form := textnorm.Fold(f)
			if form == "" || form == inf {
				continue
			}
			t.forms[inf] = appendUnique(t.forms[inf], form)
			t.infinitives[form] = appendUnique(t.infinitives[form], inf)
		}
	}
	for k := range t.forms {
		sort.Strings(t.forms[k])
	}
	for k := range t.infinitives {
		sort.Strings(t.infinitives[k])
	}
	return t
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table: the irregular verbs plus the generated
// regular ones.
func Default() *Table {
	defaultOnce.Do(func() {
		verbs := make([]Verb, 0, len(irregular)+len(regular))
		verbs = append(verbs, irregular...)
		for _, inf := range regular {
			v, err := Conjugate(inf)
			if err != nil {
				panic(err)
			}
			verbs = append(verbs, v)
		}
		defaultTable = New(verbs...)
	})
	return defaultTable
}

// Infinitives returns the infinitives form belongs to, sorted.
func (t *Table) Infinitives(form string) []string {
	return t.infinitives[textnorm.Fold(form)]
}

// Forms returns the inflected forms of infinitive, sorted, without the infinitive itself.
func (t *Table) Forms(infinitive string) []string {
	return t.forms[textnorm.Fold(infinitive)]
}

func (t *Table) IsInfinitive(word string) bool {
	_, ok := t.forms[textnorm.Fold(word)]
	return ok
}

// Len is the number of distinct inflected forms.
func (t *Table) Len() int {
	return len(t.infinitives)
}

// Expand returns term together with its infinitives and every form of those
// infinitives, sorted. A term the table does not know expands to itself.
func (t *Table) Expand(term string) []string {
	folded := textnorm.Fold(term)
	if folded == "" {
		return nil
	}

	set := map[string]bool{folded: true}
	infs := t.Infinitives(folded)
	if t.IsInfinitive(folded) {
		infs = append([]string{folded}, infs...)
	}
	for _, inf := range infs {
		set[inf] = true
		for _, f := range t.forms[inf] {
			set[f] = true
		}
	}

	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}
