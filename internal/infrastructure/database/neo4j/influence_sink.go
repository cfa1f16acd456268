package neo4j

import (
	"context"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

const mergeSpeciesQuery = `
UNWIND $species AS row
MERGE (s:Species {run_id: $runID, id: row.id})
ON CREATE SET s.name = row.name, s.type = row.type, s.created_at = datetime()
ON MATCH SET s.name = row.name, s.type = row.type
`

const mergeInfluenceQuery = `
UNWIND $influences AS row
MATCH (src:Species {run_id: $runID, id: row.source})
MATCH (dst:Species {run_id: $runID, id: row.target})
MERGE (src)-[r:INFLUENCES {sign: row.sign}]->(dst)
`

// WriteInfluenceGraph merges every surviving species as a node and every
// influence whose endpoints are both among those species as a directed,
// signed relationship (other influences are skipped), scoped to runID so
// repeated compiles of the same map do not collide.
func (d *Driver) WriteInfluenceGraph(ctx context.Context, runID string, m *model.Model, influences []model.Influence) error {
	session := d.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4jdriver.ManagedTransaction) (any, error) {
		var speciesRows []map[string]any
		for _, s := range m.AllSpecies() {
			speciesRows = append(speciesRows, map[string]any{
				"id": s.ID, "name": s.PublicName, "type": string(s.Type),
			})
		}
		if _, err := tx.Run(ctx, mergeSpeciesQuery, map[string]any{"runID": runID, "species": speciesRows}); err != nil {
			return nil, err
		}

		var influenceRows []map[string]any
		for _, inf := range influences {
			influenceRows = append(influenceRows, map[string]any{
				"source": inf.Source, "target": inf.Target, "sign": inf.Sign.String(),
			})
		}
		if _, err := tx.Run(ctx, mergeInfluenceQuery, map[string]any{"runID": runID, "influences": influenceRows}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return cerrors.Wrap(cerrors.CodeGraphStoreError, "neo4j: writing influence graph", err)
	}
	return nil
}
