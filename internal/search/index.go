// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package search provides the free-text index the catalog engine treats
// as an opaque external collaborator: a query plus a row cap in,
// candidate (item, group) identifier pairs out. Attribute enrichment of
// the candidates stays in the engine.
package search

import "context"

// Hit is one candidate VOD item returned by the index.
type Hit struct {
	Group string
	Item  string
}

// Index answers free-text queries over a provider's VOD items.
type Index interface {
	// Search returns up to limit candidates for the query text,
	// best match first.
	Search(ctx context.Context, provider, text string, limit int) ([]Hit, error)
}
