// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"fmt"

	"github.com/alekmarinov/avtv/internal/store"
)

// denormList emulates a one-to-many join in one round trip: the store
// sorts the list by nothing (source order preserved) while projecting,
// per element, the element itself and each <prefix><element>.<attr>
// value. The flat projection comes back as parallel arrays in lockstep
// and is regrouped row-wise here, so each row is [id, attr_1 ... attr_k]
// with nil cells for absent attributes. An empty underlying list is
// reported as not found.
func (e *Engine) denormList(ctx context.Context, listKey, prefix string, attrs []string) ([][]any, error) {
	q := store.NewSortQuery(listKey).
		ByNothing().
		Get("#").
		GetAttrs(prefix, attrs...)

	vals, err := e.store.SortProject(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNotFound
	}

	width := q.Projections()
	if len(vals)%width != 0 {
		return nil, fmt.Errorf("catalog: projection of %q returned %d values, not a multiple of %d", listKey, len(vals), width)
	}

	rows := make([][]any, 0, len(vals)/width)
	for i := 0; i < len(vals); i += width {
		row := make([]any, width)
		copy(row, vals[i:i+width])
		rows = append(rows, row)
	}
	return rows, nil
}
