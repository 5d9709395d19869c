// database/stage_store.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/gewnthar/rsfsync/models"
)

// FindStageByName looks up a D_Map row by its stage name, the natural key
// used to match scraped rows. Returns nil without error when no such stage
// exists - "not found" is expected control flow for the resolver.
func FindStageByName(tx *sql.Tx, name string) (*models.Stage, error) {
	var s models.Stage
	err := tx.QueryRow(
		"SELECT MapKey, StageID, StageName, Surface, Length FROM D_Map WHERE StageName = ?",
		name,
	).Scan(&s.MapKey, &s.StageID, &s.Name, &s.Surface, &s.Length)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query D_Map for stage '%s': %w", name, err)
	}
	return &s, nil
}

// InsertStage creates a new D_Map row and returns its surrogate key.
func InsertStage(tx *sql.Tx, s models.Stage) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO D_Map (StageID, StageName, Surface, Length, Format, PluginType)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.StageID, s.Name, s.Surface, s.Length, s.Format, s.Plugin,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert stage '%s' into D_Map: %w", s.Name, err)
	}
	key, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new MapKey for stage '%s': %w", s.Name, err)
	}
	return key, nil
}

// BackfillStage fills in the remote stage id, surface and length on an
// existing D_Map row. Callers must only do this while the row's StageID is
// still 0; attributes populated from another source are never overwritten.
func BackfillStage(tx *sql.Tx, mapKey int64, stageID int, surface string, length int) error {
	_, err := tx.Exec(
		"UPDATE D_Map SET StageID = ?, Surface = ?, Length = ? WHERE MapKey = ?",
		stageID, surface, length, mapKey,
	)
	if err != nil {
		return fmt.Errorf("failed to backfill D_Map row %d: %w", mapKey, err)
	}
	return nil
}
