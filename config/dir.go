package config

import (
	"os"
	"path"
)

const (
	DefaultConfigBase   = "loftfs.conf"
	defaultWorkDir      = ".loft"
	defaultSysLocalPath = "/var/lib/loftfs"
)

func LocalUserPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultSysLocalPath
	}
	return path.Join(homeDir, defaultWorkDir)
}
