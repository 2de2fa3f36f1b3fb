package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "horizon"

	// EnvPrefix is the prefix of every environment override, e.g. HORIZON_LOG_LEVEL
	EnvPrefix = "HORIZON"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// Version is set at build time with -ldflags "-X ...application.Version=v1.2.3".
var Version = "dev"

// GetApplicationDirectory returns the horizon data directory path.
// Linux: ~/.config/horizon (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\horizon (via os.UserCacheDir)
//
// HORIZON_HOME overrides the location.
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	return appDir, errDir
}

func lazyLoad() {
	if home := os.Getenv(EnvPrefix + "_HOME"); home != "" {
		appDir = home

		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)

		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
