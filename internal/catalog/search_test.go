// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/search"
)

// fakeIndex is a scripted search.Index.
type fakeIndex struct {
	hits    []search.Hit
	queries []string
	limits  []int
	err     error
}

func (f *fakeIndex) Search(_ context.Context, provider, text string, limit int) ([]search.Hit, error) {
	f.queries = append(f.queries, provider+":"+text)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func TestSearchEnrichesCandidates(t *testing.T) {
	f := newFakeStore()
	f.values["vod.bulsat.movies.m1.title"] = "The Great Escape"
	f.values["vod.bulsat.series.s1.title"] = "Escape Harbor"
	idx := &fakeIndex{hits: []search.Hit{
		{Group: "movies", Item: "m1"},
		{Group: "series", Item: "s1"},
	}}
	e := New(Options{Store: f, Index: idx})

	res, err := exec(t, e, "search/bulsat", "text=escape")
	require.NoError(t, err)

	table := res.(*models.Table)
	assert.Equal(t, []string{"group", "id", "title"}, table.Meta)
	assert.Equal(t, [][]any{
		{"movies", "m1", "The Great Escape"},
		{"series", "s1", "Escape Harbor"},
	}, table.Data)

	assert.Equal(t, []string{"bulsat:escape"}, idx.queries)
	assert.Equal(t, []int{defaultSearchMax}, idx.limits)
	// Enrichment is one multi-get round trip.
	require.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0], "mget")
}

func TestSearchMaxParameter(t *testing.T) {
	f := newFakeStore()
	idx := &fakeIndex{}
	e := New(Options{Store: f, Index: idx})

	_, err := exec(t, e, "search/bulsat", "text=escape&max=3")
	assert.ErrorIs(t, err, ErrNotFound) // no hits
	assert.Equal(t, []int{3}, idx.limits)
}

func TestSearchMissingTextForbidden(t *testing.T) {
	f := newFakeStore()
	idx := &fakeIndex{}
	e := New(Options{Store: f, Index: idx})

	_, err := exec(t, e, "search/bulsat", "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, idx.queries)
	assert.Empty(t, f.calls)
}

func TestSearchDisabledNotFound(t *testing.T) {
	f := newFakeStore()
	e := New(Options{Store: f})

	_, err := exec(t, e, "search/bulsat", "text=escape")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.calls)
}
