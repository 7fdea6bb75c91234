package fulltext

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/quickmenu/mcp-server/internal/indexing"
)

// batchSize is how many documents go into one bleve batch
const batchSize = 100

// Index is the subset of bleve.Index the Searcher needs. A bleve.Index
// satisfies it directly; tests substitute a mock.
type Index interface {
	Search(req *bleve.SearchRequest) (*bleve.SearchResult, error)
	DocCount() (uint64, error)
	Close() error
}

// documentMapping indexes label, path and description as analyzed text and
// keeps the id stored but out of the composite field.
func documentMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Store = true
	text.IncludeInAll = true

	id := bleve.NewKeywordFieldMapping()
	id.Store = true
	id.IncludeInAll = false

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt("id", id)
	doc.AddFieldMappingsAt("label", text)
	doc.AddFieldMappingsAt("path", text)
	doc.AddFieldMappingsAt("description", text)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = doc
	return indexMapping
}

// newDocument converts a leaf to its indexed form
func newDocument(leaf indexing.Leaf) Document {
	return Document{
		ID:          leaf.ID,
		Label:       leaf.Label,
		Path:        leaf.Path,
		Description: leaf.Description,
	}
}

// newMemIndex builds an in-memory bleve index over leaves
func newMemIndex(leaves []indexing.Leaf) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(documentMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create description index: %w", err)
	}

	batch := index.NewBatch()
	for i, leaf := range leaves {
		if err := batch.Index(leaf.ID, newDocument(leaf)); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to add leaf %s to batch: %w", leaf.ID, err)
		}

		if (i+1)%batchSize == 0 {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return nil, fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index final batch: %w", err)
		}
	}
	return index, nil
}
