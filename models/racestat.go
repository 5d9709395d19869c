// models/racestat.go
package models

// Stage represents one row of the RaceStat D_Map dimension table.
// StageName is the natural key used for matching against scraped rows;
// StageID, Surface and Length may be backfilled later (only while StageID
// is still 0), everything else is written once on creation.
type Stage struct {
	MapKey  int64  `db:"MapKey"` // Surrogate key, assigned by SQLite
	StageID int    `db:"StageID"`
	Name    string `db:"StageName"`
	Surface string `db:"Surface"` // Single-letter code: G, T, S...
	Length  int    `db:"Length"`  // Meters, 0 when unparseable
	Format  string `db:"Format"`
	Plugin  string `db:"PluginType"`
}

// Car represents one row of the RaceStat D_Car dimension table.
// ModelName is the natural key; once a car exists its fields are never
// revised by later syncs.
type Car struct {
	CarKey     int64  `db:"CarKey"`
	CarID      int    `db:"CarID"`
	ModelName  string `db:"ModelName"`
	CarClass   string `db:"CarClass"` // RSF group name the result was fetched under
	Physics    string `db:"Physics"`
	Folder     string `db:"Folder"`
	Revision   string `db:"Revision"`
	NGPVersion string `db:"NGPVersion"`
}

// RallyResult represents one row of the RaceStat F_RallyResult fact table.
// RaceDate/RaceDateTime hold the moment of the sync run, not the race
// itself - the RSF ranking pages carry no timestamp.
type RallyResult struct {
	RaceDate      int     `db:"RaceDate"`     // YYYYMMDD
	RaceDateTime  string  `db:"RaceDateTime"` // HHMMSS
	CarKey        int64   `db:"CarKey"`
	MapKey        int64   `db:"MapKey"`
	FinishTime    float64 `db:"FinishTime"` // Seconds
	Split1Time    float64 `db:"Split1Time"`
	Split2Time    float64 `db:"Split2Time"`
	FalseStart    int     `db:"FalseStart"`
	TyreType      string  `db:"TyreType"`
	Weather       string  `db:"Weather"`
	Damage        string  `db:"Damage"`
	ProfileName   string  `db:"ProfileName"`
	PluginType    string  `db:"PluginType"`
	PluginSubType string  `db:"PluginSubType"`
}

// Provenance and default values for rows produced by this tool. The RSF
// ranking page carries none of the telemetry context NGPCarMenu normally
// records, so sync-produced facts get fixed sentinels.
const (
	ProfileName   = "RSF_SYNC"
	PluginType    = "RSF"
	PluginSubType = "SD"

	StageFormat    = "SD"
	DefaultSurface = "G" // Gravel

	DefaultTyreType = "UNKNOWN"
	DefaultWeather  = "UNKNOWN"
	DefaultDamage   = "UNKNOWN"

	// Sentinels for cars created without a reference-data hit.
	UnknownCarID   = 999
	UnknownPhysics = "UNK"

	NGPVersionTag = "NGP6"
)
