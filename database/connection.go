// database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // RaceStat is a sqlite3 file; cgo-free driver
)

// RaceStatDBPath returns the location of the NGPCarMenu RaceStat database
// inside an RBR installation. The plugin owns this file; the sync tool
// never creates it.
func RaceStatDBPath(rbrPath string) string {
	return filepath.Join(rbrPath, "Plugins", "NGPCarMenu", "RaceStat", "raceStatDB.sqlite3")
}

// Open opens the RaceStat database at the given path. The file must
// already exist with the D_Map, D_Car and F_RallyResult tables in place.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("RaceStat database not found at %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}
	return db, nil
}
