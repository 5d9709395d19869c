// scraper/page_parser.go
package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gewnthar/rsfsync/models"
)

// ErrAuthRequired signals that the fetched page is the RSF login screen
// instead of a stats page - the PHPSESSID cookie is stale or wrong. This
// is distinct from a page that simply contains no results.
var ErrAuthRequired = errors.New("session invalid: page is missing login markers")

// Markers that must appear on any authenticated usersstats response. A page
// carrying neither is the login redirect.
const (
	markerEndpoint = "usersstats.php"
	markerLoggedIn = "Logged in as"
)

// Fixed column layout of the RSF ranking table. Extraction is positional;
// extra trailing columns (ads, replay links) are tolerated.
const (
	colStageID   = 0
	colStageName = 1
	colSurface   = 2
	colLength    = 3
	colCarName   = 5
	colTime      = 6

	minColumns = 8
)

// ParseResultsPage extracts the normalized result rows from one fetched
// usersstats ranking page. Malformed rows (too few cells, empty or
// unparseable time, download-link filler rows) are skipped silently; a
// page with no data rows yields an empty slice.
func ParseResultsPage(html string) ([]models.ResultRow, error) {
	if !strings.Contains(html, markerEndpoint) && !strings.Contains(html, markerLoggedIn) {
		return nil, ErrAuthRequired
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page HTML: %w", err)
	}

	trs := doc.Find("tr")
	if trs.Length() < 2 {
		// Header only, or no table at all: a valid page with no results.
		return nil, nil
	}

	var rows []models.ResultRow
	trs.Each(func(_ int, tr *goquery.Selection) {
		cols := tr.Find("td")
		if cols.Length() < minColumns {
			return
		}

		stageName := strings.TrimSpace(cols.Eq(colStageName).Text())
		timeText := strings.TrimSpace(cols.Eq(colTime).Text())
		if timeText == "" || strings.Contains(stageName, "Download") {
			return
		}

		finishTime, err := ParseTime(timeText)
		if err != nil || finishTime == 0 {
			return
		}

		length, err := ParseLength(strings.TrimSpace(cols.Eq(colLength).Text()))
		if err != nil {
			length = 0
		}

		rows = append(rows, models.ResultRow{
			StageID:    digitsOnly(cols.Eq(colStageID).Text()),
			StageName:  stageName,
			Surface:    ParseSurface(cols.Eq(colSurface).Text()),
			Length:     length,
			CarName:    strings.TrimSpace(cols.Eq(colCarName).Text()),
			FinishTime: finishTime,
		})
	})
	return rows, nil
}

// digitsOnly extracts the integer formed by the digit characters of s,
// or 0 when s carries none.
func digitsOnly(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
