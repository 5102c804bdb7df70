// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/store"
)

// allowedKeyPatterns gates which key prefixes the raw prober may
// enumerate. A prefix must carry a separator after its first segment
// and at least one character beyond it, so bare top-level keys cannot
// be probed.
var allowedKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[^.]+\..`),
}

// rawProbe is the generic fallback for paths deeper than the structured
// handlers expect. It enumerates every key under the dotted prefix and
// shapes the result by cardinality: one exact match is a bare scalar
// (or a capped list when the value is list-typed), anything else is a
// suffix → value mapping.
func (e *Engine) rawProbe(ctx context.Context, domain string, params []string) (any, error) {
	prefix := domain
	if len(params) > 0 {
		prefix = domain + "." + strings.Join(params, ".")
	}

	allowed := false
	for _, pattern := range allowedKeyPatterns {
		if pattern.MatchString(prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: key prefix %q not allowed", ErrForbidden, prefix)
	}

	keys, err := e.store.Keys(ctx, prefix+"*")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNotFound
	}

	if len(keys) == 1 && len(keys[0]) == len(prefix) {
		return e.probeExact(ctx, keys[0])
	}

	vals, err := e.store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for i, key := range keys {
		suffix := strings.TrimPrefix(key[len(prefix):], ".")
		out[suffix] = vals[i]
	}
	return out, nil
}

// probeExact disambiguates a single exact-match key: list-typed values
// come back as a capped one-column table, everything else as a bare
// scalar. A key that vanished between enumeration and the type probe
// degrades to not found; a genuine store error is surfaced.
func (e *Engine) probeExact(ctx context.Context, key string) (any, error) {
	typ, err := e.store.TypeOf(ctx, key)
	if err != nil {
		return nil, err
	}
	if typ == "list" {
		elems, err := e.store.LRange(ctx, key, 0, int64(e.maxListLen)-1)
		if err != nil {
			return nil, err
		}
		table := models.NewTable(key)
		for _, elem := range elems {
			table.Append([]any{elem})
		}
		return table, nil
	}

	val, err := e.store.Get(ctx, key)
	if errors.Is(err, store.ErrNoKey) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}
