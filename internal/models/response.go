// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package models defines the wire shapes shared by the catalog engine
// and the HTTP layer.
package models

// Table is the uniform tabular response envelope. Column names are
// emitted once in Meta; Data holds one row per entity, each row in the
// same column order as Meta. Cells may be nil when the underlying
// attribute key is absent.
type Table struct {
	Meta []string `json:"meta"`
	Data [][]any  `json:"data"`
}

// NewTable creates a table with the given columns and no rows.
func NewTable(meta ...string) *Table {
	return &Table{Meta: meta, Data: [][]any{}}
}

// Append adds one row to the table.
func (t *Table) Append(row []any) {
	t.Data = append(t.Data, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Data)
}

// APIError is the JSON body sent with non-2xx responses.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
