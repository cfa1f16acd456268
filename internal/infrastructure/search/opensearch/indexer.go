// Package opensearch indexes each compiled run's species catalog so a
// user can search across runs for where a given biological name or
// export id appears (SPEC_FULL.md E.2 domain stack, "species catalog
// search index").
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v3"
	"github.com/opensearch-project/opensearch-go/v3/opensearchapi"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// SpeciesDocument is one indexed row: a species as it appeared in a
// given compile run.
type SpeciesDocument struct {
	RunID      string `json:"run_id"`
	SpeciesID  string `json:"species_id"`
	PublicName string `json:"public_name"`
	ExportID   string `json:"export_id"`
	Type       string `json:"type"`
	Formula    string `json:"formula"`
}

// Indexer wraps an opensearchapi.Client scoped to a single index.
type Indexer struct {
	client *opensearchapi.Client
	index  string
}

// NewIndexer connects to cfg.Addresses and targets an index named
// "<cfg.IndexPrefix>-species".
func NewIndexer(cfg config.OpenSearchConfig) (*Indexer, error) {
	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.User,
			Password:  cfg.Password,
		},
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeIndexError, "opensearch: creating client", err)
	}
	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "sbgnqual"
	}
	return &Indexer{client: client, index: prefix + "-species"}, nil
}

// IndexRun bulk-indexes every surviving species of a compile run.
func (ix *Indexer) IndexRun(ctx context.Context, runID string, m *model.Model) error {
	var buf bytes.Buffer
	for _, s := range m.AllSpecies() {
		doc := SpeciesDocument{
			RunID: runID, SpeciesID: s.ID, PublicName: s.PublicName,
			ExportID: s.ExportID, Type: string(s.Type),
		}
		if s.Function != nil {
			doc.Formula = s.Function.String()
		}

		meta, err := json.Marshal(map[string]any{
			"index": map[string]any{"_index": ix.index, "_id": runID + ":" + s.ID},
		})
		if err != nil {
			return cerrors.Wrap(cerrors.CodeIndexError, "opensearch: marshal bulk meta", err)
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return cerrors.Wrap(cerrors.CodeIndexError, "opensearch: marshal document", err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(body)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil
	}

	resp, err := ix.client.Bulk(ctx, opensearchapi.BulkReq{Body: bytes.NewReader(buf.Bytes())})
	if err != nil {
		return cerrors.Wrap(cerrors.CodeIndexError, "opensearch: bulk index", err)
	}
	if resp.Errors {
		return cerrors.New(cerrors.CodeIndexError, fmt.Sprintf("opensearch: bulk request reported item failures (%d items in response)", len(resp.Items)))
	}
	return nil
}

// SearchByName returns every SpeciesDocument whose public name or
// export id matches query, across all indexed runs.
func (ix *Indexer) SearchByName(ctx context.Context, query string) ([]SpeciesDocument, error) {
	searchBody, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"public_name", "export_id"},
			},
		},
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeIndexError, "opensearch: marshal query", err)
	}

	resp, err := ix.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{ix.index},
		Body:    bytes.NewReader(searchBody),
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeIndexError, "opensearch: search", err)
	}

	docs := make([]SpeciesDocument, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc SpeciesDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
