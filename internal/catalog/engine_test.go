// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekmarinov/avtv/internal/models"
)

func newTestEngine(f *fakeStore) *Engine {
	return New(Options{Store: f})
}

func exec(t *testing.T, e *Engine, path string, rawQuery string) (any, error) {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return e.Execute(context.Background(), ParseQuery(path, values))
}

func TestUnknownCommandNoBackendCall(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "foobar/x/y", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.calls)
}

func TestEmptyPathIsUnknownCommand(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "/", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.calls)
}

func TestChannelsDenormalized(t *testing.T) {
	f := newFakeStore()
	// Two channels; c2 has no title attributes beyond title itself.
	f.sortResults["epg.providerX.channels"] = []any{
		"c1", "A", nil,
		"c2", "B", nil,
	}
	e := newTestEngine(f)

	res, err := exec(t, e, "channels/providerX", "")
	require.NoError(t, err)

	table, ok := res.(*models.Table)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "title", "thumbnail"}, table.Meta)
	require.Len(t, table.Data, 2)
	assert.Equal(t, []any{"c1", "A", nil}, table.Data[0])
	assert.Equal(t, []any{"c2", "B", nil}, table.Data[1])

	// One store round trip, identity order, projected attributes.
	require.Len(t, f.calls, 1)
	assert.Equal(t,
		"sort [sort epg.providerX.channels by nosort get # get epg.providerX.*.title get epg.providerX.*.thumbnail]",
		f.calls[0])
}

func TestChannelsExtraAttrsAppended(t *testing.T) {
	f := newFakeStore()
	f.sortResults["epg.providerX.channels"] = []any{
		"c1", "A", nil, "bg",
	}
	e := newTestEngine(f)

	res, err := exec(t, e, "channels/providerX", "attr=language")
	require.NoError(t, err)

	table := res.(*models.Table)
	assert.Equal(t, []string{"id", "title", "thumbnail", "language"}, table.Meta)
	require.Len(t, table.Data, 1)
	assert.Len(t, table.Data[0], 4)
}

func TestChannelsEmptyListNotFound(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "channels/nobody", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChannelsMissingProviderForbidden(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "channels", "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.calls)
}

func TestRatingRoundTrip(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	ctx := context.Background()

	params := []string{"vod", "bulsat", "7", "42"}
	require.NoError(t, e.SetRating(ctx, params, "5"))
	assert.Equal(t, "5", f.values["rating.vod.bulsat.7,42"])

	val, err := e.Rating(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "5", val)
}

func TestRatingMissingNotFound(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := e.Rating(context.Background(), []string{"vod", "bulsat", "7", "43"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingTooFewParamsForbidden(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	ctx := context.Background()

	_, err := e.Rating(ctx, []string{"vod", "bulsat", "7"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.calls)

	err = e.SetRating(ctx, []string{"vod", "bulsat", "7", "42"}, "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.calls)
}

func TestRecommendList(t *testing.T) {
	f := newFakeStore()
	f.lists["recommend.vod.bulsat.7"] = []string{"42", "17", "99"}
	e := newTestEngine(f)

	res, err := exec(t, e, "recommend/bulsat/7", "")
	require.NoError(t, err)

	table := res.(*models.Table)
	assert.Equal(t, []string{"id"}, table.Meta)
	assert.Equal(t, [][]any{{"42"}, {"17"}, {"99"}}, table.Data)
}

func TestRecommendEmptyNotFound(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "recommend/bulsat/8", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendTooFewParamsForbidden(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)

	_, err := exec(t, e, "recommend/bulsat", "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.calls)
}

func TestBackendErrorPropagates(t *testing.T) {
	f := newFakeStore()
	f.err = assert.AnError
	e := newTestEngine(f)

	_, err := exec(t, e, "channels/providerX", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, assert.AnError)
}
