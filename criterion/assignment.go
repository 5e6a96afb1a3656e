package criterion

import (
	"sort"

	"github.com/katalvlaran/psse/core"
)

// Assignment maps measurement IDs to their resolved criterion. The zero
// value is an empty assignment. It is never mutated after Resolve returns,
// so it may be shared between goroutines.
type Assignment struct {
	byID map[string]core.Criterion
}

// Get returns the criterion of id and whether id was resolved.
func (a Assignment) Get(id string) (core.Criterion, bool) {
	c, ok := a.byID[id]

	return c, ok
}

// Len returns the number of resolved measurements.
func (a Assignment) Len() int { return len(a.byID) }

// IDs returns the resolved measurement IDs in ascending order.
func (a Assignment) IDs() []string {
	ids := make([]string, 0, len(a.byID))
	for id := range a.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Count returns how many measurements resolved to c.
func (a Assignment) Count(c core.Criterion) int {
	n := 0
	for _, v := range a.byID {
		if v == c {
			n++
		}
	}

	return n
}

// Map returns a copy of the assignment as a plain map.
func (a Assignment) Map() map[string]core.Criterion {
	out := make(map[string]core.Criterion, len(a.byID))
	for id, c := range a.byID {
		out[id] = c
	}

	return out
}
