package constants

import (
	"os"
	"path/filepath"
)

const DefaultHomeEnv string = "XCM_HOME"
const ConfigEnv string = "XCM_CONFIG"

// Name of the config file, without extension.
const ConfigName = "xcm"

var DefaultHome string

func init() {
	if home := os.Getenv(DefaultHomeEnv); home != "" {
		DefaultHome = home
		return
	} else {
		// ~/.xcm default
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			DefaultHome = "/data"
		} else {
			DefaultHome = filepath.Join(userHomeDir, ".xcm")
		}
	}
}
