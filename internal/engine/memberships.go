package engine

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Memberships maps a playlist name to its ordered filename references.
type Memberships map[string][]string

// Contains reports whether filename is a member of playlist name.
func (m Memberships) Contains(name, filename string) bool {
	return slices.Contains(m[name], filename)
}

// Exists reports whether the playlist has been created.
func (m Memberships) Exists(name string) bool {
	_, ok := m[name]
	return ok
}

// Add appends filename to name, creating the playlist. Returns false when already present.
func (m Memberships) Add(name, filename string) bool {
	if m.Contains(name, filename) {
		return false
	}
	m[name] = append(m[name], filename)
	return true
}

// Remove drops filename from name. Returns false when it was not a member.
func (m Memberships) Remove(name, filename string) bool {
	list, ok := m[name]
	if !ok || !slices.Contains(list, filename) {
		return false
	}
	m[name] = lo.Without(list, filename)
	return true
}

// Names returns every playlist name in sorted order.
func (m Memberships) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Union returns the duplicate-free concatenation of the named lists in order.
func (m Memberships) Union(names ...string) []string {
	var all []string
	for _, name := range names {
		all = append(all, m[name]...)
	}
	return lo.Uniq(all)
}

// Clone deep-copies the memberships.
func (m Memberships) Clone() Memberships {
	out := make(Memberships, len(m))
	for name, list := range m {
		out[name] = slices.Clone(list)
	}
	return out
}
