// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"fmt"

	"github.com/alekmarinov/avtv/internal/logging"
	"github.com/alekmarinov/avtv/internal/metrics"
	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/store"
)

// programs serves schedule entries around a point in time, for one
// channel or every channel of a provider, in a single atomic store
// round trip. Channel aliases are resolved before the lookup. Paths
// deeper than provider/channel fall through to the raw prober.
func (e *Engine) programs(ctx context.Context, q Query) (any, error) {
	if len(q.Params) < 1 {
		return nil, fmt.Errorf("%w: programs requires a provider", ErrForbidden)
	}
	if len(q.Params) > 2 {
		return e.rawProbe(ctx, store.DomainEPG, q.Params)
	}

	provider := q.Params[0]
	channel := ""
	if len(q.Params) == 2 {
		provider, channel = e.links.Resolve(provider, q.Params[1])
	}

	attrs := append([]string{"title"}, q.Attrs...)
	rows, err := e.store.WindowScan(ctx, &store.WindowQuery{
		Provider: provider,
		Channel:  channel,
		When:     int64Value(q.Values.Get("when")),
		Offset:   intValue(q.Values.Get("offset"), 0),
		Count:    intValue(q.Values.Get("count"), 1),
		Attrs:    attrs,
	})
	if err != nil {
		return nil, err
	}

	rows = dropDuplicateStarts(rows)

	// No interval match is an empty table, not an error.
	table := models.NewTable(append([]string{"channelid", "start", "stop"}, attrs...)...)
	for _, row := range rows {
		table.Append(append([]any{row.Channel, row.Start, row.Stop}, row.Attrs...))
	}
	return table, nil
}

// dropDuplicateStarts enforces the schedule integrity invariant on the
// windowed output: within one channel, start timestamps are unique.
// Consecutive rows repeating the prior row's start for the same channel
// are counted, logged as a data anomaly, and excluded; the request
// still succeeds.
func dropDuplicateStarts(rows []store.WindowRow) []store.WindowRow {
	out := make([]store.WindowRow, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if n := len(out); n > 0 && row.Channel == out[n-1].Channel && row.Start == out[n-1].Start {
			dropped++
			continue
		}
		out = append(out, row)
	}
	if dropped > 0 {
		logging.Warn().
			Int("count", dropped).
			Msg("Dropped duplicate program starts from scan output")
		metrics.DuplicateStarts.Add(float64(dropped))
	}
	return out
}
