// config.go: settings for the katutubo registry service. Defines the
// Settings struct and the functions to load and validate it.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for a rotating file log.
type LogConfig struct {
	Enabled bool   // true to write a log file
	Path    string // path to the log file
	MaxSize int    // maximum size in megabytes before rotation
	MaxAge  int    // maximum days to retain old log files
}

// MainSettings contains top level service settings.
type MainSettings struct {
	Name string    // service display name
	Log  LogConfig // service log file
}

// WebServerSettings contains settings for the HTTP API server.
type WebServerSettings struct {
	Enabled bool   // true to start the API server
	Host    string // listen address
	Port    string // listen port
}

// SQLiteSettings contains SQLite database settings.
type SQLiteSettings struct {
	Enabled bool   // true to use SQLite
	Path    string // path to the database file
}

// MySQLSettings contains MySQL database settings.
type MySQLSettings struct {
	Enabled  bool   // true to use MySQL
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings contains settings for the backing store.
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// MediaSettings contains settings for stored resident photos.
type MediaSettings struct {
	Path       string // directory for uploaded photos
	MaxSizeMB  int    // maximum accepted upload size in megabytes
	PublicPath string // URL prefix photos are served under
}

// SecuritySettings contains settings for accounts and sessions.
type SecuritySettings struct {
	SessionTTLMinutes int    // bearer token lifetime
	SeedAdminEmail    string // optional bootstrap super_admin account
	SeedAdminPassword string // bootstrap password, only used when the account is created
}

// SearchSettings contains tunables for the suggestion planner.
type SearchSettings struct {
	SuggestionLimit   int // maximum suggestions presented
	FallbackScanLimit int // records pulled by the bounded fallback scan
	DebounceMillis    int // quiet period before a query is issued
}

// VocabularySettings carries the classification word lists. The lists have
// drifted between versions of the system, so they are configuration data
// rather than compiled-in control flow.
type VocabularySettings struct {
	StudentKeywords        []string // occupation substrings that imply student
	EmptyOccupationMarkers []string // occupation values that mean "none"
	HealthySynonyms        []string // legacy health values that mean "no condition"
}

// RegistrySettings contains settings for the registry domain itself.
type RegistrySettings struct {
	Municipality      string // fixed municipality applied to new records
	Province          string // fixed province applied to new records
	StatsCacheSeconds int    // community stats cache TTL
	Search            SearchSettings
	Vocabulary        VocabularySettings
}

// Settings is the top level configuration struct.
type Settings struct {
	Debug bool // true to enable debug logging

	Main      MainSettings
	WebServer WebServerSettings
	Output    OutputSettings
	Media     MediaSettings
	Security  SecuritySettings
	Registry  RegistrySettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into a validated Settings instance and makes
// it available through GetSettings.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()

	return settings, nil
}

// GetSettings returns the shared settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with defaults and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("KATUTUBO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		// No config file found, create one from the embedded default.
		configPath, createErr := createDefaultConfig(configPaths)
		if createErr != nil {
			return createErr
		}
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading created config file: %w", err)
		}
	}
	return nil
}

// createDefaultConfig writes the embedded default config into the first
// usable config path and returns the created file path.
func createDefaultConfig(configPaths []string) (string, error) {
	if len(configPaths) == 0 {
		return "", fmt.Errorf("no config paths available")
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	defaultConfig, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		return "", fmt.Errorf("error reading embedded config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return "", fmt.Errorf("error writing default config file: %w", err)
	}
	return configPath, nil
}

// GetDefaultConfigPaths returns the list of paths searched for config.yaml.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory when home is unknown.
		return []string{"."}, nil
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", "katutubo"),
	}, nil
}
