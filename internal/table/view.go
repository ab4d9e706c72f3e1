// v0
// internal/table/view.go

// Package table turns an arbitrary record set into an ordered, filtered view
// described by column definitions, a multi-key sort and a free-text search.
package table

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pewpewworld/statsboard/internal/colorcode"
)

// Column describes how the view reads one field of a row.
type Column[T any] struct {
	// ID is referenced by sort keys.
	ID string
	// Accessor extracts the cell value. A nil result marks the cell missing.
	Accessor func(T) any
	// Sortable must be set for the column to take part in ordering.
	Sortable bool
	// NoFilter excludes the column from free-text search.
	NoFilter bool
	// Compare overrides the default ordering for non-missing values.
	Compare func(a, b any) int
}

// SortKey selects a column and a direction. Earlier keys take priority.
type SortKey struct {
	ColumnID   string
	Descending bool
}

// View returns the rows that match filter, ordered by keys. The input slice
// is left untouched and rows that compare equal on every key keep their
// input order, so identical inputs always produce identical output.
//
// Missing values sort after present ones whatever the direction. Keys naming
// an unknown or non-sortable column are ignored.
func View[T any](rows []T, columns []Column[T], keys []SortKey, filter string) []T {
	if len(rows) == 0 {
		return []T{}
	}

	matched := filterRows(rows, columns, filter)
	active := resolveKeys(columns, keys)
	if len(active) == 0 || len(matched) < 2 {
		return matched
	}

	entries := make([]rowEntry[T], len(matched))
	for i, row := range matched {
		vals := make([]value, len(active))
		for k, key := range active {
			vals[k] = normalize(key.column.Accessor(row))
		}
		entries[i] = rowEntry[T]{row: row, vals: vals}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		for k, key := range active {
			if c := key.compare(entries[i].vals[k], entries[j].vals[k]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.row
	}
	return out
}

// rowEntry caches the normalized sort values of a row.
type rowEntry[T any] struct {
	row  T
	vals []value
}

type activeKey[T any] struct {
	column     Column[T]
	descending bool
}

func resolveKeys[T any](columns []Column[T], keys []SortKey) []activeKey[T] {
	byID := make(map[string]Column[T], len(columns))
	for _, col := range columns {
		if _, exists := byID[col.ID]; exists {
			continue
		}
		byID[col.ID] = col
	}
	active := make([]activeKey[T], 0, len(keys))
	for _, key := range keys {
		col, ok := byID[key.ColumnID]
		if !ok || !col.Sortable || col.Accessor == nil {
			continue
		}
		active = append(active, activeKey[T]{column: col, descending: key.Descending})
	}
	return active
}

func (k activeKey[T]) compare(a, b value) int {
	aMissing, bMissing := a.kind == kindMissing, b.kind == kindMissing
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	var c int
	if k.column.Compare != nil {
		c = k.column.Compare(a.raw, b.raw)
	} else {
		c = compareValues(a, b)
	}
	if k.descending {
		return -c
	}
	return c
}

func filterRows[T any](rows []T, columns []Column[T], filter string) []T {
	if filter == "" {
		out := make([]T, len(rows))
		copy(out, rows)
		return out
	}

	needle := foldText(filter)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, columns, needle) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches[T any](row T, columns []Column[T], needle string) bool {
	for _, col := range columns {
		if col.NoFilter || col.Accessor == nil {
			continue
		}
		v := normalize(col.Accessor(row))
		if v.kind == kindMissing {
			continue
		}
		if strings.Contains(foldText(v.text()), needle) {
			return true
		}
	}
	return false
}

// foldText is the search projection: colour codes removed, then lowercased
// without locale-specific rules.
func foldText(s string) string {
	return cases.Lower(language.Und).String(colorcode.StripCodes(s))
}
