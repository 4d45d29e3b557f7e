// config.go: settings struct and functions to load and access application settings.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/spf13/viper"
)

// ModelSettings configures the external sentiment inference endpoint.
type ModelSettings struct {
	Endpoint string // URL of the hosted text-classification endpoint
	APIKey   string // bearer token, empty for unauthenticated endpoints
	Timeout  int    // request timeout in seconds
	Name     string // model identifier, informational only
}

// IngestSettings configures the bulk ingestion source.
type IngestSettings struct {
	CSVPath string // path to the preprocessed review CSV
}

// ExportSettings configures the spreadsheet export.
type ExportSettings struct {
	Filename string // download/attachment name for the workbook
	Sheet    string // sheet name inside the workbook
}

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled    bool   // true to enable this log
	Path       string // path to the log file
	MaxSize    int    // max size in megabytes before rotation
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days before rotated files are pruned
}

// Settings contains all application settings
type Settings struct {
	Debug bool // true to enable debug logging

	Main struct {
		Name string    // node name, used to identify this instance
		Log  LogConfig // main log file settings
	}

	Model ModelSettings // sentiment model endpoint settings

	WebServer struct {
		Debug   bool      // true to enable API debug logging
		Enabled bool      // true to enable the web server
		Port    string    // port for the web server
		Log     LogConfig // web server log settings
	}

	Output struct {
		SQLite struct {
			Enabled bool   // true to use the sqlite backend
			Path    string // path to sqlite database file
		}

		MySQL struct {
			Enabled  bool   // true to use the mysql backend
			Username string // username for mysql database
			Password string // password for mysql database
			Database string // database name for mysql database
			Host     string // host for mysql database
			Port     string // port for mysql database
		}
	}

	Ingest IngestSettings // bulk ingestion settings
	Export ExportSettings // spreadsheet export settings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment into a Settings instance
// and installs it as the process wide settings singleton.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

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

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("COMMENTNET")
	viper.AutomaticEnv()

	// defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config file is fine, defaults plus env vars apply.
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the config file search paths in priority order:
// the working directory first, then the OS specific user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, filepath.Join(configDir, "commentnet-go"))
	}

	return paths, nil
}

// ValidateSettings checks settings for obvious misconfiguration.
func ValidateSettings(settings *Settings) error {
	if settings.Model.Endpoint == "" {
		return errors.Newf("model endpoint must not be empty").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Model.Timeout <= 0 {
		return errors.Newf("model timeout must be positive, got %d", settings.Model.Timeout).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return errors.Newf("no output database is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return errors.Newf("only one output database may be enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// Setting returns the settings singleton, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("failed to load settings: %v", err))
			}
		}
	})
	return settingsInstance
}

// GetTestSettings returns settings suitable for tests: sqlite in a temp
// location, a placeholder model endpoint, no web server.
func GetTestSettings() *Settings {
	settings := &Settings{}
	settings.Main.Name = "commentnet-test"
	settings.Model.Endpoint = "http://127.0.0.1:0/classify"
	settings.Model.Timeout = 5
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "comments.db"
	settings.Ingest.CSVPath = "preprocessed_ecom_data.csv"
	settings.Export.Filename = "E-Consultation_Feedback.xlsx"
	settings.Export.Sheet = "Comments"
	return settings
}
