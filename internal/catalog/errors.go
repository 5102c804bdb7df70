// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import "errors"

// Sentinel errors mapped to HTTP statuses by the API layer. Anything
// else bubbling out of the engine is a backend failure (500); backend
// errors short-circuit the request pipeline and are never retried.
var (
	// ErrNotFound covers empty lists, absent scalars, and unknown commands.
	ErrNotFound = errors.New("catalog: not found")

	// ErrForbidden covers malformed requests (too few path parameters)
	// and disallowed raw key patterns. No store call precedes it.
	ErrForbidden = errors.New("catalog: forbidden")
)
