// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package store wraps the Redis key-value store behind the small set of
// operations the catalog engine needs: list enumeration, multi-get,
// sort-with-projection, key-prefix enumeration, single-key get/set, and
// the atomic server-side schedule scan.
//
// All catalog data lives in one flat key space with dot-joined keys,
// e.g. epg.<provider>.<channel>.<start>.<attr>. See the keys helpers.
package store

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key does not exist.
var ErrNoKey = errors.New("store: no such key")

// Store is the key-value store surface consumed by the catalog engine.
// Implementations must treat every method as a single store round trip.
type Store interface {
	// SortProject executes a sort-with-projection query and returns the
	// flat projected values in lockstep order: for a list of N elements
	// and G GET patterns, the result has N*G entries, nil where a
	// projected key is absent.
	SortProject(ctx context.Context, q *SortQuery) ([]any, error)

	// Keys enumerates keys matching a glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// MGet fetches many keys in one round trip; absent keys yield nil.
	MGet(ctx context.Context, keys ...string) ([]any, error)

	// LRange returns list elements in [start, stop], inclusive,
	// following the store's list-range conventions.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Get fetches a single scalar; ErrNoKey when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a single scalar.
	Set(ctx context.Context, key, value string) error

	// TypeOf reports the store-native type of a key ("string", "list",
	// "none" when absent).
	TypeOf(ctx context.Context, key string) (string, error)

	// WindowScan executes the atomic server-side schedule scan.
	WindowScan(ctx context.Context, q *WindowQuery) ([]WindowRow, error)
}

// WindowQuery describes one time-window scan over per-channel program
// schedules. Channel may be empty to scan every channel of the
// provider. When is optional; without it the scan anchors at the first
// interval of each channel and Offset indexes relatively from there.
type WindowQuery struct {
	Provider string
	Channel  string
	When     *int64
	Offset   int
	Count    int
	Attrs    []string
}

// WindowRow is one schedule entry emitted by the scan. Attrs holds the
// projected attribute values in query order, nil where absent.
type WindowRow struct {
	Channel string
	Start   int64
	Stop    int64
	Attrs   []any
}
