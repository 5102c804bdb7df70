// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"fmt"

	"github.com/alekmarinov/avtv/internal/metrics"
	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/store"
)

// defaultSearchMax caps search results when the request carries no max.
const defaultSearchMax = 20

// search queries the external free-text index for candidate
// (item, group) pairs, then enriches every candidate's attributes in
// one multi-get round trip, the same amortization as the denormalizing
// list query but keyed off the index hits instead of a stored list.
func (e *Engine) search(ctx context.Context, q Query) (any, error) {
	if e.index == nil {
		return nil, fmt.Errorf("%w: search is not available", ErrNotFound)
	}
	if len(q.Params) < 1 {
		return nil, fmt.Errorf("%w: search requires a provider", ErrForbidden)
	}
	text := q.Values.Get("text")
	if text == "" {
		return nil, fmt.Errorf("%w: search requires a text parameter", ErrForbidden)
	}

	provider := q.Params[0]
	limit := intValue(q.Values.Get("max"), defaultSearchMax)

	metrics.SearchQueries.Inc()
	hits, err := e.index.Search(ctx, provider, text, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	if len(hits) == 0 {
		return nil, ErrNotFound
	}

	attrs := append([]string{"title"}, q.Attrs...)
	keys := make([]string, 0, len(hits)*len(attrs))
	for _, hit := range hits {
		for _, attr := range attrs {
			keys = append(keys, store.Key(store.DomainVOD, provider, hit.Group, hit.Item, attr))
		}
	}

	vals, err := e.store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	table := models.NewTable(append([]string{"group", "id"}, attrs...)...)
	for i, hit := range hits {
		row := append([]any{hit.Group, hit.Item}, vals[i*len(attrs):(i+1)*len(attrs)]...)
		table.Append(row)
	}
	return table, nil
}
