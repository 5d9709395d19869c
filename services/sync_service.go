// services/sync_service.go
package services

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gewnthar/rsfsync/config"
	"github.com/gewnthar/rsfsync/database"
	"github.com/gewnthar/rsfsync/models"
	"github.com/gewnthar/rsfsync/scraper"
)

// groupDelay is the pause between group fetches. The RSF site has no
// documented rate limit, but hammering it gets sessions dropped.
const groupDelay = 500 * time.Millisecond

// SyncService runs one synchronization pass: fetch every configured car
// group's ranking page, resolve stages and cars against the RaceStat
// dimensions, and append the results that are not recorded yet. All
// writes of a run share a single transaction, committed at the end.
type SyncService struct {
	cfg      config.Config
	fetcher  scraper.Fetcher
	ref      *ReferenceData
	logf     func(string)
	progress func(float64)
	delay    time.Duration
}

// New builds a SyncService. The config is copied and treated as immutable
// for the service's lifetime. logf receives the human-readable transcript;
// progress receives a monotonic fraction in [0,1] after each group.
func New(cfg config.Config, fetcher scraper.Fetcher, ref *ReferenceData,
	logf func(string), progress func(float64),
) *SyncService {
	if ref == nil {
		ref = EmptyReferenceData()
	}
	return &SyncService{
		cfg:      cfg,
		fetcher:  fetcher,
		ref:      ref,
		logf:     logf,
		progress: progress,
		delay:    groupDelay,
	}
}

// Run executes the sync and returns the number of newly inserted results.
// Errors are reported through the log sink only: precondition and database
// failures yield 0 with nothing committed, while per-group network errors
// and a mid-run auth failure still commit whatever was inserted before.
func (s *SyncService) Run() int {
	if !s.validatePaths() {
		return 0
	}

	db, err := database.Open(database.RaceStatDBPath(s.cfg.RBRPath))
	if err != nil {
		s.logf(fmt.Sprintf("!!! DB Error: %v", err))
		return 0
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		s.logf(fmt.Sprintf("!!! DB Error: %v", err))
		return 0
	}

	now := time.Now()
	raceDate, _ := strconv.Atoi(now.Format("20060102"))
	raceTime := now.Format("150405")

	headers := map[string]string{
		"User-Agent": "Mozilla/5.0",
		"Cookie":     "PHPSESSID=" + s.cfg.SessionID,
		"Referer":    s.cfg.StatsURL,
	}

	total := 0
	for i, group := range s.cfg.Groups {
		s.logf(fmt.Sprintf("Fetching %s...", group.Name))

		page, err := s.fetcher.Get(scraper.StatsURL(s.cfg.StatsURL, s.cfg.UserID, group.ID), headers)
		if err != nil {
			// One group failing to download is not fatal; move on.
			s.logf(fmt.Sprintf("   -> Network Error: %v", err))
		} else {
			rows, err := scraper.ParseResultsPage(page)
			if errors.Is(err, scraper.ErrAuthRequired) {
				// The session is dead for every group once it is dead for
				// one. Stop fetching; earlier groups' inserts still commit.
				s.logf("!!! ERROR: Session invalid (check PHPSESSID).")
				break
			}
			if err != nil {
				s.logf(fmt.Sprintf("   -> Parse Error: %v", err))
			} else {
				added, err := s.processRows(tx, rows, group.Name, raceDate, raceTime)
				if err != nil {
					s.logf(fmt.Sprintf("!!! DB Error: %v", err))
					tx.Rollback()
					return 0
				}
				s.logf(fmt.Sprintf("   -> Added %d records.", added))
				total += added
			}
		}

		s.progress(float64(i+1) / float64(len(s.cfg.Groups)))
		time.Sleep(s.delay)
	}

	if err := tx.Commit(); err != nil {
		s.logf(fmt.Sprintf("!!! DB Error: %v", err))
		return 0
	}
	return total
}

// validatePaths checks the RBR installation and its RaceStat database
// before anything is opened.
func (s *SyncService) validatePaths() bool {
	if _, err := os.Stat(s.cfg.RBRPath); err != nil {
		s.logf("!!! ERROR: RBR folder not found.")
		return false
	}
	if _, err := os.Stat(database.RaceStatDBPath(s.cfg.RBRPath)); err != nil {
		s.logf("!!! ERROR: Database not found in Plugins.")
		return false
	}
	return true
}

// processRows resolves and writes every parsed row of one group page.
// Any error bubbling up from here is a database failure and aborts the
// whole run; parse-level anomalies were already dropped by the scraper.
func (s *SyncService) processRows(tx *sql.Tx, rows []models.ResultRow,
	groupName string, raceDate int, raceTime string,
) (int, error) {
	added := 0
	for _, row := range rows {
		mapKey, err := ResolveStage(tx, row)
		if err != nil {
			return added, err
		}
		carKey, err := ResolveCar(tx, row, groupName, s.ref)
		if err != nil {
			return added, err
		}

		inserted, err := database.TryInsertResult(tx, models.RallyResult{
			RaceDate:      raceDate,
			RaceDateTime:  raceTime,
			CarKey:        carKey,
			MapKey:        mapKey,
			FinishTime:    row.FinishTime,
			TyreType:      models.DefaultTyreType,
			Weather:       models.DefaultWeather,
			Damage:        models.DefaultDamage,
			ProfileName:   models.ProfileName,
			PluginType:    models.PluginType,
			PluginSubType: models.PluginSubType,
		})
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}
	return added, nil
}
