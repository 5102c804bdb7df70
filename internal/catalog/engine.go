// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/alekmarinov/avtv/internal/models"
	"github.com/alekmarinov/avtv/internal/search"
	"github.com/alekmarinov/avtv/internal/store"
)

// defaultMaxListLen caps the number of list elements the raw prober
// returns for a list-typed exact match.
const defaultMaxListLen = 100

// Engine executes typed catalog queries against the key-value store.
// It holds no cache and performs no catalog writes; rating writes are
// pass-through single-key operations.
type Engine struct {
	store      store.Store
	links      Links
	index      search.Index
	maxListLen int
}

// Options configures an Engine.
type Options struct {
	// Store is the key-value store backend. Required.
	Store store.Store

	// Links is the static channel alias table. May be empty.
	Links Links

	// Index is the free-text index; nil disables the search command.
	Index search.Index

	// MaxListLen caps raw-prober list output; defaults to 100.
	MaxListLen int
}

// New creates an Engine.
func New(opts Options) *Engine {
	maxListLen := opts.MaxListLen
	if maxListLen <= 0 {
		maxListLen = defaultMaxListLen
	}
	links := opts.Links
	if links == nil {
		links = Links{}
	}
	return &Engine{
		store:      opts.Store,
		links:      links,
		index:      opts.Index,
		maxListLen: maxListLen,
	}
}

// Execute dispatches a read query to its command handler. The result is
// a *models.Table, a map[string]any, or a bare scalar string; the
// unknown command maps to ErrNotFound before any store call.
func (e *Engine) Execute(ctx context.Context, q Query) (any, error) {
	switch q.Command {
	case "channels":
		return e.channels(ctx, q)
	case "programs":
		return e.programs(ctx, q)
	case "vod":
		return e.vod(ctx, q)
	case "search":
		return e.search(ctx, q)
	case "recommend":
		return e.recommend(ctx, q)
	case "rate":
		return e.Rating(ctx, q.Params)
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrNotFound, q.Command)
	}
}

// channels serves the denormalized channel list of a provider; deeper
// paths fall through to the raw prober.
func (e *Engine) channels(ctx context.Context, q Query) (any, error) {
	if len(q.Params) < 1 {
		return nil, fmt.Errorf("%w: channels requires a provider", ErrForbidden)
	}
	if len(q.Params) > 1 {
		return e.rawProbe(ctx, store.DomainEPG, q.Params)
	}

	provider := q.Params[0]
	attrs := append([]string{"title", "thumbnail"}, q.Attrs...)
	rows, err := e.denormList(ctx, store.ChannelsKey(provider), store.EPGPrefix(provider), attrs)
	if err != nil {
		return nil, err
	}

	table := models.NewTable(append([]string{"id"}, attrs...)...)
	table.Data = rows
	return table, nil
}

// recommend returns the per-user recommendation list written by the
// offline recommender. The stored rows are bare item ids.
func (e *Engine) recommend(ctx context.Context, q Query) (any, error) {
	if len(q.Params) < 2 {
		return nil, fmt.Errorf("%w: recommend requires provider and user", ErrForbidden)
	}

	items, err := e.store.LRange(ctx, store.RecommendKey(q.Params[0], q.Params[1]), 0, -1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	table := models.NewTable("id")
	for _, item := range items {
		table.Append([]any{item})
	}
	return table, nil
}

// Rating reads one rating scalar keyed by the four-segment composite
// rating key.
func (e *Engine) Rating(ctx context.Context, params []string) (any, error) {
	key, err := ratingKey(params)
	if err != nil {
		return nil, err
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

// SetRating writes one rating scalar. The write is an independent
// single-key operation with no cross-key invariant.
func (e *Engine) SetRating(ctx context.Context, params []string, value string) error {
	key, err := ratingKey(params)
	if err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("%w: missing rating value", ErrForbidden)
	}
	return e.store.Set(ctx, key, value)
}

func ratingKey(params []string) (string, error) {
	if len(params) < 4 {
		return "", fmt.Errorf("%w: rate requires domain, provider, user and item", ErrForbidden)
	}
	return store.RatingKey(params[0], params[1], params[2], params[3]), nil
}
