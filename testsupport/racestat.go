// Package testsupport creates throwaway RaceStat databases for tests.
// The real file is owned by the NGPCarMenu plugin; this mirrors the three
// tables the sync touches.
package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const raceStatSchema = `
CREATE TABLE D_Map (
	MapKey     INTEGER PRIMARY KEY AUTOINCREMENT,
	StageID    INTEGER NOT NULL DEFAULT 0,
	StageName  TEXT NOT NULL,
	Surface    TEXT,
	Length     INTEGER,
	Format     TEXT,
	PluginType TEXT
);

CREATE TABLE D_Car (
	CarKey     INTEGER PRIMARY KEY AUTOINCREMENT,
	CarID      INTEGER,
	ModelName  TEXT NOT NULL,
	CarClass   TEXT,
	Physics    TEXT,
	Folder     TEXT,
	Revision   TEXT,
	NGPVersion TEXT
);

CREATE TABLE F_RallyResult (
	ResultKey     INTEGER PRIMARY KEY AUTOINCREMENT,
	RaceDate      INTEGER,
	RaceDateTime  TEXT,
	CarKey        INTEGER NOT NULL,
	MapKey        INTEGER NOT NULL,
	FinishTime    REAL,
	Split1Time    REAL,
	Split2Time    REAL,
	FalseStart    INTEGER,
	TyreType      TEXT,
	Weather       TEXT,
	Damage        TEXT,
	ProfileName   TEXT,
	PluginType    TEXT,
	PluginSubType TEXT
);
`

// OpenRaceStatDB returns an in-memory database carrying the RaceStat
// schema, closed automatically when the test finishes.
func OpenRaceStatDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	// Each pool connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(raceStatSchema); err != nil {
		t.Fatalf("create RaceStat schema: %v", err)
	}
	return db
}

// CreateRaceStatFile creates a RaceStat database file at the given path,
// for tests that exercise the full open-by-path flow.
func CreateRaceStatFile(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("create database file %s: %v", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(raceStatSchema); err != nil {
		t.Fatalf("create RaceStat schema in %s: %v", path, err)
	}
}
