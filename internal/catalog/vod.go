// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/store"
)

// vod traverses the two-level VOD catalog: groups under a provider,
// items under a group. A wildcard group fans out over every group and
// merges the per-group item tables in group-enumeration order. A
// wildcard item segment is rewritten to an empty segment so the probed
// key prefix ends with a separator.
func (e *Engine) vod(ctx context.Context, q Query) (any, error) {
	if len(q.Params) < 1 {
		return nil, fmt.Errorf("%w: vod requires a provider", ErrForbidden)
	}
	provider := q.Params[0]

	switch {
	case len(q.Params) == 1:
		attrs := append([]string{"title", "parent"}, q.Attrs...)
		rows, err := e.denormList(ctx, store.VODGroupsKey(provider), store.VODPrefix(provider), attrs)
		if err != nil {
			return nil, err
		}
		table := models.NewTable(append([]string{"id"}, attrs...)...)
		table.Data = rows
		return table, nil

	case len(q.Params) == 2 && q.Params[1] == Wildcard:
		return e.vodAllGroups(ctx, provider, q.Attrs)

	case len(q.Params) == 2:
		group := q.Params[1]
		attrs := append([]string{"title"}, q.Attrs...)
		rows, err := e.denormList(ctx, store.VODItemsKey(provider, group), store.VODPrefix(provider, group), attrs)
		if err != nil {
			return nil, err
		}
		table := models.NewTable(append([]string{"id"}, attrs...)...)
		table.Data = rows
		return table, nil

	default:
		params := slices.Clone(q.Params)
		if params[2] == Wildcard {
			params[2] = ""
		}
		return e.rawProbe(ctx, store.DomainVOD, params)
	}
}

// vodAllGroups aggregates the items of every group of a provider. The
// per-group denormalizing queries run concurrently as independent store
// operations; the collector reassembles them in group-enumeration
// order once all complete, surfacing the first error encountered. Each
// row is tagged with its owning group.
func (e *Engine) vodAllGroups(ctx context.Context, provider string, extraAttrs []string) (any, error) {
	groups, err := e.store.LRange(ctx, store.VODGroupsKey(provider), 0, -1)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrNotFound
	}

	attrs := append([]string{"title"}, extraAttrs...)
	perGroup := make([][][]any, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			rows, err := e.denormList(gctx, store.VODItemsKey(provider, group), store.VODPrefix(provider, group), attrs)
			if errors.Is(err, ErrNotFound) {
				return nil // group with no items contributes no rows
			}
			if err != nil {
				return err
			}
			tagged := make([][]any, len(rows))
			for j, row := range rows {
				tagged[j] = append([]any{group}, row...)
			}
			perGroup[i] = tagged
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := models.NewTable(append([]string{"group", "id"}, attrs...)...)
	for _, rows := range perGroup {
		table.Data = append(table.Data, rows...)
	}
	if table.Len() == 0 {
		return nil, ErrNotFound
	}
	return table, nil
}
