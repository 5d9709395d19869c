// services/sync_service_test.go
package services

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/rsfsync/config"
	"github.com/gewnthar/rsfsync/database"
	"github.com/gewnthar/rsfsync/models"
	"github.com/gewnthar/rsfsync/testsupport"
)

// newTestInstall lays out a throwaway RBR folder with an empty RaceStat
// database where the plugin would keep it.
func newTestInstall(t *testing.T) (rbrPath, dbPath string) {
	t.Helper()
	rbrPath = t.TempDir()
	dbPath = database.RaceStatDBPath(rbrPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0o755))
	testsupport.CreateRaceStatFile(t, dbPath)
	return rbrPath, dbPath
}

// fakeFetcher serves canned pages keyed by the cg query parameter and
// records the order groups were fetched in.
type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Get(pageURL string, _ map[string]string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	cg := u.Query().Get("cg")
	f.calls = append(f.calls, cg)
	if err := f.errs[cg]; err != nil {
		return "", err
	}
	return f.pages[cg], nil
}

func resultRow(id, stage, surface, length, car, timeText string) string {
	cells := []string{id, stage, surface, length, "1.", car, timeText, ""}
	return "<tr><td>" + strings.Join(cells, "</td><td>") + "</td></tr>"
}

func statsPage(rows ...string) string {
	return `<html><body>Logged in as testdriver<a href="usersstats.php"></a><table>` +
		"<tr><th>#</th><th>Stage</th><th>Surface</th><th>Length</th><th>Pos</th><th>Car</th><th>Time</th><th></th></tr>" +
		strings.Join(rows, "") +
		"</table></body></html>"
}

const loginPage = `<html><body><form>Please log in</form></body></html>`

func testConfig(rbrPath string, groups ...models.CarGroup) config.Config {
	return config.Config{
		RBRPath:   rbrPath,
		UserID:    "4242",
		SessionID: "deadbeef",
		StatsURL:  config.DefaultStatsURL,
		Groups:    groups,
	}
}

// newTestService wires a service with silenced sinks and no inter-group
// delay.
func newTestService(cfg config.Config, fetcher *fakeFetcher, ref *ReferenceData) (*SyncService, *[]string, *[]float64) {
	var transcript []string
	var fractions []float64
	svc := New(cfg, fetcher, ref,
		func(line string) { transcript = append(transcript, line) },
		func(f float64) { fractions = append(fractions, f) },
	)
	svc.delay = 0
	return svc, &transcript, &fractions
}

func openCommitted(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunInsertsAndIsIdempotent(t *testing.T) {
	rbrPath, dbPath := newTestInstall(t)
	cfg := testConfig(rbrPath,
		models.CarGroup{ID: "31", Name: "Group B"},
		models.CarGroup{ID: "78", Name: "Group A6"},
	)

	fetcher := &fakeFetcher{pages: map[string]string{
		"31": statsPage(
			resultRow("1842", "Col de Turini", "Tarmac", "12,5", "Peugeot 205 T16", "3:45.67"),
			resultRow("77", "Kormoran", "Gravel", "9,98", "Audi Quattro S1", "5:12.30"),
		),
		"78": statsPage(
			resultRow("301", "Sardian Night", "Gravel", "7,08", "VW Golf GTI", "4:02.11"),
		),
	}}

	svc, _, _ := newTestService(cfg, fetcher, nil)
	assert.Equal(t, 3, svc.Run())

	db := openCommitted(t, dbPath)
	var stages, cars, results int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM D_Map").Scan(&stages))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM D_Car").Scan(&cars))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM F_RallyResult").Scan(&results))
	assert.Equal(t, 3, stages)
	assert.Equal(t, 3, cars)
	assert.Equal(t, 3, results)

	var finish float64
	require.NoError(t, db.QueryRow(`
		SELECT r.FinishTime FROM F_RallyResult r
		JOIN D_Map m ON m.MapKey = r.MapKey
		WHERE m.StageName = 'Col de Turini'`).Scan(&finish))
	assert.InDelta(t, 225.67, finish, 1e-9)

	// An unchanged remote and an unchanged database: the second run must
	// not add anything.
	again, _, _ := newTestService(cfg, &fakeFetcher{pages: fetcher.pages}, nil)
	assert.Equal(t, 0, again.Run())

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM F_RallyResult").Scan(&results))
	assert.Equal(t, 3, results)
}

func TestRunAuthShortCircuit(t *testing.T) {
	rbrPath, dbPath := newTestInstall(t)
	cfg := testConfig(rbrPath,
		models.CarGroup{ID: "31", Name: "Group B"},
		models.CarGroup{ID: "78", Name: "Group A6"},
		models.CarGroup{ID: "30", Name: "Group A8"},
	)

	fetcher := &fakeFetcher{pages: map[string]string{
		"31": statsPage(resultRow("1842", "Col de Turini", "Tarmac", "12,5", "Peugeot 205 T16", "3:45.67")),
		"78": loginPage,
		"30": statsPage(resultRow("301", "Sardian Night", "Gravel", "7,08", "VW Golf GTI", "4:02.11")),
	}}

	svc, transcript, _ := newTestService(cfg, fetcher, nil)
	assert.Equal(t, 1, svc.Run())

	// The third group is never fetched once the session proves invalid.
	assert.Equal(t, []string{"31", "78"}, fetcher.calls)
	assert.Contains(t, strings.Join(*transcript, "\n"), "Session invalid")

	// Work done before the auth failure is still committed.
	db := openCommitted(t, dbPath)
	var results int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM F_RallyResult").Scan(&results))
	assert.Equal(t, 1, results)
}

func TestRunNetworkErrorSkipsGroup(t *testing.T) {
	rbrPath, dbPath := newTestInstall(t)
	cfg := testConfig(rbrPath,
		models.CarGroup{ID: "31", Name: "Group B"},
		models.CarGroup{ID: "78", Name: "Group A6"},
	)

	fetcher := &fakeFetcher{
		pages: map[string]string{
			"78": statsPage(resultRow("301", "Sardian Night", "Gravel", "7,08", "VW Golf GTI", "4:02.11")),
		},
		errs: map[string]error{"31": fmt.Errorf("connection timed out")},
	}

	svc, transcript, _ := newTestService(cfg, fetcher, nil)
	assert.Equal(t, 1, svc.Run())

	assert.Equal(t, []string{"31", "78"}, fetcher.calls)
	assert.Contains(t, strings.Join(*transcript, "\n"), "Network Error")

	db := openCommitted(t, dbPath)
	var results int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM F_RallyResult").Scan(&results))
	assert.Equal(t, 1, results)
}

func TestRunEpsilonWithinOnePage(t *testing.T) {
	rbrPath, _ := newTestInstall(t)
	cfg := testConfig(rbrPath, models.CarGroup{ID: "31", Name: "Group B"})

	fetcher := &fakeFetcher{pages: map[string]string{
		"31": statsPage(
			resultRow("1", "Mineshaft", "Gravel", "5", "Audi Quattro", "90.00"),
			resultRow("1", "Mineshaft", "Gravel", "5", "Audi Quattro", "90,005"),
			resultRow("1", "Mineshaft", "Gravel", "5", "Audi Quattro", "90.02"),
		),
	}}

	svc, _, _ := newTestService(cfg, fetcher, nil)

	// 90.005 duplicates 90.00; 90.02 is at least the epsilon away from
	// both stored times and counts as its own result.
	assert.Equal(t, 2, svc.Run())
}

func TestRunValidatesPaths(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"), models.CarGroup{ID: "31", Name: "Group B"})
	fetcher := &fakeFetcher{}

	svc, transcript, _ := newTestService(cfg, fetcher, nil)
	assert.Equal(t, 0, svc.Run())
	assert.Empty(t, fetcher.calls)
	assert.Contains(t, strings.Join(*transcript, "\n"), "RBR folder not found")

	// RBR folder exists, database missing.
	cfg = testConfig(t.TempDir(), models.CarGroup{ID: "31", Name: "Group B"})
	svc, transcript, _ = newTestService(cfg, fetcher, nil)
	assert.Equal(t, 0, svc.Run())
	assert.Contains(t, strings.Join(*transcript, "\n"), "Database not found")
}

func TestRunProgressIsMonotonic(t *testing.T) {
	rbrPath, _ := newTestInstall(t)
	cfg := testConfig(rbrPath,
		models.CarGroup{ID: "31", Name: "Group B"},
		models.CarGroup{ID: "78", Name: "Group A6"},
		models.CarGroup{ID: "30", Name: "Group A8"},
	)

	fetcher := &fakeFetcher{
		pages: map[string]string{"31": statsPage(), "30": statsPage()},
		errs:  map[string]error{"78": fmt.Errorf("connection refused")},
	}

	svc, _, fractions := newTestService(cfg, fetcher, nil)
	svc.Run()

	require.Len(t, *fractions, 3)
	prev := 0.0
	for _, f := range *fractions {
		assert.GreaterOrEqual(t, f, prev)
		prev = f
	}
	assert.InDelta(t, 1.0, (*fractions)[2], 1e-9)
}
