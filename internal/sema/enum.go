package sema

import (
	"sort"

	"github.com/td12dk/td12dk/internal/ast"
)

// normalizeEnum assigns values to members left implicit in source and
// returns a new EnumBlock whose members are sorted by identifier, then by
// value. The original block is left untouched; the syntax tree is never
// mutated.
func normalizeEnum(e *ast.EnumBlock) *ast.EnumBlock {
	used := make(map[int64]bool, len(e.Members))

	for _, m := range e.Members {
		if m.Value != nil {
			used[*m.Value] = true
		}
	}

	next := int64(1)
	out := make([]ast.EnumMember, len(e.Members))

	for i, m := range e.Members {
		if m.Value != nil {
			out[i] = m

			next = *m.Value + 1

			continue
		}

		for used[next] {
			next++
		}

		v := next
		used[v] = true
		out[i] = ast.EnumMember{Name: m.Name, Value: &v, Sp: m.Sp}
		next++
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return *out[i].Value < *out[j].Value
	})

	return &ast.EnumBlock{Name: e.Name, Members: out, Sp: e.Sp}
}
