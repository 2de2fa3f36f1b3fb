package params

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/horizon/internal/application"
)

const (
	// ConfigFileName is the INI file read at startup when present
	ConfigFileName = "config.ini"

	boltFileName   = "horizon.bolt"
	sqliteFileName = "horizon.db"
	logFileName    = "horizon.log"
)

// AppdataDir returns the application directory, creating it if needed.
func AppdataDir() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create app data dir: %w", err)
	}

	return dir, nil
}

// ConfigFile returns the default config file path. The file may not exist.
func ConfigFile() string {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return ConfigFileName
	}

	return filepath.Join(dir, ConfigFileName)
}

// DatabaseFile returns the default database path for a storage backend.
func DatabaseFile(backend string) (string, error) {
	dir, err := AppdataDir()
	if err != nil {
		return "", err
	}

	name := boltFileName
	if backend == "sqlite" {
		name = sqliteFileName
	}

	return filepath.Join(dir, name), nil
}

// LogFile returns the log file used while the interactive shell owns the
// terminal.
func LogFile() (string, error) {
	dir, err := AppdataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, logFileName), nil
}
