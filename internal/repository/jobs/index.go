package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirelens/jobsearch/internal/db"
	"github.com/hirelens/jobsearch/internal/domain"
)

// IndexName is the FT index covering all job documents.
const IndexName = domain.KeyPrefix + "jobs:idx"

// keyPrefix namespaces job document keys.
const keyPrefix = domain.KeyPrefix + "jobs:"

// HNSWConfig carries the vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// IndexDefinition builds the FT.CREATE schema for the jobs corpus: BM25 over
// search_text, HNSW cosine over the embedding, TAG flags for the status
// prefilter, and a sortable created_at for the unranked listing.
func IndexDefinition(vectorDim int, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        IndexName,
		StorageType: db.StorageJSON,
		Prefixes:    []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: "$.search_text", Alias: "search_text", Type: db.IndexFieldText},
			{Name: "$.is_active", Alias: "is_active", Type: db.IndexFieldTag},
			{Name: "$.is_deleted", Alias: "is_deleted", Type: db.IndexFieldTag},
			{Name: "$.created_at", Alias: "created_at", Type: db.IndexFieldNumeric, Sortable: true},
			{
				Name:              "$.vector",
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}
}

// EnsureIndex creates the jobs index if it does not exist yet. Safe to call
// on every startup.
func EnsureIndex(ctx context.Context, mgr db.IndexManager, vectorDim int, hnsw HNSWConfig) error {
	exists, err := mgr.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("probe jobs index: %w", err)
	}
	if exists {
		return nil
	}

	if err := mgr.CreateIndex(ctx, IndexDefinition(vectorDim, hnsw)); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create jobs index: %w", err)
	}
	return nil
}

func jobKey(id string) string {
	return keyPrefix + id
}

// ActiveFilter is the FT.SEARCH prefilter excluding inactive and deleted
// jobs; applied by every search and listing query.
const ActiveFilter = "@is_active:{true} -@is_deleted:{true}"

// VisibleFilter excludes only deleted jobs (listings may show inactive ones).
const VisibleFilter = "-@is_deleted:{true}"
