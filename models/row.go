// models/row.go
package models

// ResultRow is one normalized data row extracted from an RSF user-stats
// ranking page, before any database reconciliation.
type ResultRow struct {
	StageID    int     // Remote stage id, 0 when the page carries none
	StageName  string
	Surface    string  // Single-letter code
	Length     int     // Meters
	CarName    string
	FinishTime float64 // Seconds
}

// CarGroup is one competition class to sync: the RSF numeric group id used
// as the cg= query parameter, and the human-readable name stored on new
// Car rows as their class.
type CarGroup struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}
