// database/result_store.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/gewnthar/rsfsync/models"
)

// DedupEpsilon is the finish-time tolerance below which two results for
// the same stage and car count as the same run. It absorbs formatting
// noise from the RSF pages without collapsing genuinely improved times.
const DedupEpsilon = 0.01

// ResultExists reports whether F_RallyResult already holds a result for
// this stage/car whose finish time lies within DedupEpsilon of the
// candidate.
func ResultExists(tx *sql.Tx, mapKey, carKey int64, finishTime float64) (bool, error) {
	var one int
	err := tx.QueryRow(
		"SELECT 1 FROM F_RallyResult WHERE MapKey = ? AND CarKey = ? AND ABS(FinishTime - ?) < ?",
		mapKey, carKey, finishTime, DedupEpsilon,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check F_RallyResult for duplicates: %w", err)
	}
	return true, nil
}

// InsertResult appends one fact row to F_RallyResult.
func InsertResult(tx *sql.Tx, r models.RallyResult) error {
	_, err := tx.Exec(`
		INSERT INTO F_RallyResult (
			RaceDate, RaceDateTime, CarKey, MapKey, FinishTime,
			Split1Time, Split2Time, FalseStart, TyreType, Weather, Damage,
			ProfileName, PluginType, PluginSubType
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RaceDate, r.RaceDateTime, r.CarKey, r.MapKey, r.FinishTime,
		r.Split1Time, r.Split2Time, r.FalseStart, r.TyreType, r.Weather, r.Damage,
		r.ProfileName, r.PluginType, r.PluginSubType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result into F_RallyResult: %w", err)
	}
	return nil
}

// TryInsertResult is the check-then-insert used by the sync run: it writes
// the fact only when no epsilon-duplicate exists and reports whether an
// insert happened. The run holds the only writer connection, so the check
// and the insert cannot race.
func TryInsertResult(tx *sql.Tx, r models.RallyResult) (bool, error) {
	exists, err := ResultExists(tx, r.MapKey, r.CarKey, r.FinishTime)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := InsertResult(tx, r); err != nil {
		return false, err
	}
	return true, nil
}
