// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"fmt"

	"github.com/alekmarinov/avtv/internal/store"
)

// fakeStore is a scripted store.Store used to exercise the engine
// without a live backend. Every call is recorded so tests can assert
// which store operations a request issued (or that none were).
type fakeStore struct {
	sortResults map[string][]any    // list key → flat projection
	keyResults  map[string][]string // glob pattern → matching keys
	values      map[string]string   // key → scalar
	lists       map[string][]string // key → list elements
	types       map[string]string   // key → store-native type
	windowRows  []store.WindowRow
	windowQs    []*store.WindowQuery

	calls []string
	err   error // when set, every store call fails with it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sortResults: map[string][]any{},
		keyResults:  map[string][]string{},
		values:      map[string]string{},
		lists:       map[string][]string{},
		types:       map[string]string{},
	}
}

func (f *fakeStore) record(op string) { f.calls = append(f.calls, op) }

func (f *fakeStore) SortProject(_ context.Context, q *store.SortQuery) ([]any, error) {
	f.record(fmt.Sprintf("sort %v", q.Args()))
	if f.err != nil {
		return nil, f.err
	}
	key, _ := q.Args()[1].(string)
	return f.sortResults[key], nil
}

func (f *fakeStore) Keys(_ context.Context, pattern string) ([]string, error) {
	f.record("keys " + pattern)
	if f.err != nil {
		return nil, f.err
	}
	return f.keyResults[pattern], nil
}

func (f *fakeStore) MGet(_ context.Context, keys ...string) ([]any, error) {
	f.record(fmt.Sprintf("mget %v", keys))
	if f.err != nil {
		return nil, f.err
	}
	vals := make([]any, len(keys))
	for i, key := range keys {
		if v, ok := f.values[key]; ok {
			vals[i] = v
		}
	}
	return vals, nil
}

func (f *fakeStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	f.record(fmt.Sprintf("lrange %s %d %d", key, start, stop))
	if f.err != nil {
		return nil, f.err
	}
	elems := f.lists[key]
	if stop >= 0 && int(stop) < len(elems)-1 {
		elems = elems[:stop+1]
	}
	return elems, nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	f.record("get " + key)
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[key]
	if !ok {
		return "", store.ErrNoKey
	}
	return v, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.record(fmt.Sprintf("set %s=%s", key, value))
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeStore) TypeOf(_ context.Context, key string) (string, error) {
	f.record("type " + key)
	if f.err != nil {
		return "", f.err
	}
	if typ, ok := f.types[key]; ok {
		return typ, nil
	}
	if _, ok := f.values[key]; ok {
		return "string", nil
	}
	if _, ok := f.lists[key]; ok {
		return "list", nil
	}
	return "none", nil
}

func (f *fakeStore) WindowScan(_ context.Context, q *store.WindowQuery) ([]store.WindowRow, error) {
	f.record("window_scan " + q.Provider + "/" + q.Channel)
	f.windowQs = append(f.windowQs, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.windowRows, nil
}
