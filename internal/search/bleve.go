// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package search

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/alekmarinov/avtv/internal/logging"
)

// Document is one indexed VOD item. Provider, group and item are exact
// keywords; only the title is analyzed for full-text matching.
type Document struct {
	Provider string `json:"provider"`
	Group    string `json:"group"`
	Item     string `json:"item"`
	Title    string `json:"title"`
}

// BleveIndex implements Index over an on-disk bleve index. The index is
// populated by the external ingestion process through Add; the query
// path is read-only.
type BleveIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it if absent.
func Open(path string) (*BleveIndex, error) {
	index, err := bleve.Open(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("search: open index %q: %w", path, err)
		}
		index, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("search: create index %q: %w", path, err)
		}
		logging.Info().Str("path", path).Msg("Created search index")
	}
	return &BleveIndex{index: index}, nil
}

// OpenMem creates an in-memory index; used by tests.
func OpenMem() (*BleveIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("search: create memory index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// buildIndexMapping maps provider/group/item as exact keywords and the
// title as analyzed text.
func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	keywordField.Store = true
	docMapping.AddFieldMappingsAt("provider", keywordField)
	docMapping.AddFieldMappingsAt("group", keywordField)
	docMapping.AddFieldMappingsAt("item", keywordField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Add indexes one item title.
func (b *BleveIndex) Add(provider, group, item, title string) error {
	id := provider + "/" + group + "/" + item
	doc := Document{Provider: provider, Group: group, Item: item, Title: title}
	if err := b.index.Index(id, doc); err != nil {
		return fmt.Errorf("search: index %q: %w", id, err)
	}
	return nil
}

// Search returns up to limit candidates matching text within one
// provider, best match first.
func (b *BleveIndex) Search(ctx context.Context, provider, text string, limit int) ([]Hit, error) {
	providerQuery := bleve.NewTermQuery(provider)
	providerQuery.SetField("provider")

	textQuery := bleve.NewMatchQuery(text)
	textQuery.SetField("title")

	request := bleve.NewSearchRequestOptions(
		bleve.NewConjunctionQuery(providerQuery, textQuery), limit, 0, false)
	request.Fields = []string{"group", "item"}

	result, err := b.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", text, err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		group, _ := hit.Fields["group"].(string)
		item, _ := hit.Fields["item"].(string)
		if group == "" || item == "" {
			continue
		}
		hits = append(hits, Hit{Group: group, Item: item})
	}
	return hits, nil
}

// Close releases the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
