// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package catalog implements the query-translation and execution
// engine: it parses hierarchical resource paths into typed queries,
// translates them into store-native operations that denormalize related
// attributes in single round trips, and shapes the heterogeneous
// results (scalar, list, table) uniformly.
package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Wildcard is the path segment that selects every entity at its level.
const Wildcard = "*"

// Query is a parsed resource request: a command, its ordered path
// parameters, the additional projection attributes from the attr query
// parameter, and the remaining raw query values.
type Query struct {
	Command string
	Params  []string
	Attrs   []string
	Values  url.Values
}

// ParseQuery normalizes a slash-delimited path into a typed query.
// One trailing separator is stripped, consecutive separators collapse,
// segment order is preserved. The first segment is the command; an
// empty path yields an empty command, resolved as unknown at dispatch.
func ParseQuery(path string, values url.Values) Query {
	path = strings.TrimSuffix(path, "/")

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	q := Query{Values: values}
	if len(segments) > 0 {
		q.Command = segments[0]
		q.Params = segments[1:]
	}

	if attr := values.Get("attr"); attr != "" {
		q.Attrs = strings.Split(attr, ",")
	}
	return q
}

// intValue parses an integer query value, falling back to the default
// when absent or unparsable.
func intValue(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// int64Value parses an optional integer query value; nil when absent or
// unparsable.
func int64Value(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
