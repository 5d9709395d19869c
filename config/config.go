// config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gewnthar/rsfsync/models"
	"github.com/gewnthar/rsfsync/utils"
)

// DefaultStatsURL is the RSF user-stats endpoint the ranking pages are
// fetched from.
const DefaultStatsURL = "https://www.rallysimfans.hu/rbr/usersstats.php"

// Config holds everything one sync run needs. It is loaded once, handed
// to the sync service by value and never mutated afterwards.
type Config struct {
	RBRPath   string `yaml:"rbr_path"`   // RBR installation folder
	UserID    string `yaml:"user_id"`    // RSF user id (user_stats parameter)
	SessionID string `yaml:"session_id"` // PHPSESSID cookie value

	StatsURL string            `yaml:"stats_url"`
	Groups   []models.CarGroup `yaml:"groups"`

	// Optional reference CSVs enriching newly created D_Car rows.
	ReferenceCarsCSV   string `yaml:"reference_cars_csv"`
	ReferenceModelsCSV string `yaml:"reference_models_csv"`
}

// LoadConfig reads the YAML configuration file and fills in defaults for
// the stats URL and the group list. The session id may also arrive via
// the RSF_SESSION_ID environment variable (see main), so it is not
// validated here.
func LoadConfig(configPath string) (Config, error) {
	var cfg Config

	file, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.StatsURL == "" {
		cfg.StatsURL = DefaultStatsURL
	}
	if len(cfg.Groups) == 0 {
		cfg.Groups = utils.DefaultGroups
	}

	if cfg.RBRPath == "" {
		return cfg, fmt.Errorf("rbr_path is not set in %s", configPath)
	}
	if cfg.UserID == "" {
		return cfg, fmt.Errorf("user_id is not set in %s", configPath)
	}
	return cfg, nil
}
