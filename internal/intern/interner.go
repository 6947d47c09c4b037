// Package intern maps identifier strings to compact IDs so AST nodes and
// evaluation environments compare names as integers.
package intern

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// StringID identifies an interned string. IDs are dense and start at 1.
type StringID uint32

// NoStringID is the ID of the empty string.
const NoStringID StringID = 0

// Interner is not safe for concurrent use; each parse owns one.
type Interner struct {
	strs []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{strs: []string{""}, ids: map[string]StringID{"": NoStringID}}
}

// Intern возвращает ID строки, добавляя её при первом вызове.
// The stored copy does not alias s.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.strs))
	if err != nil {
		panic(fmt.Errorf("intern: too many strings: %w", err))
	}
	s = strings.Clone(s)
	in.strs = append(in.strs, s)
	in.ids[s] = StringID(n)
	return StringID(n)
}

func (in *Interner) Has(id StringID) bool { return int(id) < len(in.strs) }

func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.strs[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	if !in.Has(id) {
		panic(fmt.Sprintf("intern: unknown StringID %d", id))
	}
	return in.strs[id]
}

// Len counts NoStringID too, so it is never below 1.
func (in *Interner) Len() int { return len(in.strs) }

// Snapshot returns a copy of the table indexed by ID.
func (in *Interner) Snapshot() []string { return slices.Clone(in.strs) }
