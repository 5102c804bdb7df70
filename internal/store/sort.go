// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package store

// SortQuery builds a variadic SORT command with a runtime-varying
// number of GET projections. The denormalization trick: sorting a list
// with BY nosort keeps source order while each GET pattern projects one
// attribute array in lockstep with the element array, so one round trip
// yields the whole joined table.
type SortQuery struct {
	key      string
	byNoSort bool
	gets     []string
}

// NewSortQuery starts a query over the given list key.
func NewSortQuery(key string) *SortQuery {
	return &SortQuery{key: key}
}

// ByNothing disables reordering; the store returns elements in source
// list order.
func (q *SortQuery) ByNothing() *SortQuery {
	q.byNoSort = true
	return q
}

// Get appends a projection pattern. "#" projects the element itself;
// patterns with "*" substitute the element into an attribute key.
func (q *SortQuery) Get(pattern string) *SortQuery {
	q.gets = append(q.gets, pattern)
	return q
}

// GetAttrs appends one projection per attribute, each resolving
// <prefix>*.<attr> against the list element.
func (q *SortQuery) GetAttrs(prefix string, attrs ...string) *SortQuery {
	for _, attr := range attrs {
		q.gets = append(q.gets, prefix+"*."+attr)
	}
	return q
}

// Projections returns the number of GET patterns accumulated.
func (q *SortQuery) Projections() int {
	return len(q.gets)
}

// Args renders the accumulated command arguments.
func (q *SortQuery) Args() []any {
	args := make([]any, 0, 4+2*len(q.gets))
	args = append(args, "sort", q.key)
	if q.byNoSort {
		args = append(args, "by", "nosort")
	}
	for _, g := range q.gets {
		args = append(args, "get", g)
	}
	return args
}
