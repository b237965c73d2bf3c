package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/loftfs/loftfs/config"
)

const (
	defaultLocalDataDir = "data"
	defaultSqliteFile   = "meta.db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "generate local configuration",
	Run: func(cmd *cobra.Command, args []string) {
		initDefaultConfig()
	},
}

func initDefaultConfig() {
	fmt.Printf("Workspace: %s\n", WorkSpace)
	if err := mkdir(WorkSpace); err != nil {
		fmt.Printf("init workspace failed: %s\n", err.Error())
		return
	}

	dataDir := localDataDirPath(WorkSpace)
	fmt.Printf("Workspace Data Dir: %s\n", dataDir)
	if err := mkdir(dataDir); err != nil {
		fmt.Printf("init workspace data dir failed: %s\n", err.Error())
		return
	}

	dbFile := localDbFilePath(WorkSpace)
	fmt.Printf("Workspace Database File: %s\n", dbFile)

	conf := config.Default()
	conf.Meta.Path = dbFile
	conf.Storages[0].LocalDir = dataDir

	configPath := localConfigFilePath(WorkSpace)
	fmt.Printf("Workspace Config: %s\n", configPath)
	raw, _ := json.MarshalIndent(conf, "", "    ")
	if err := os.WriteFile(configPath, raw, 0644); err != nil {
		fmt.Printf("writeback config file failed: %s\n", err.Error())
		return
	}
	fmt.Println("Generate local configuration succeed")
}

func mkdir(p string) error {
	d, err := os.Stat(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err != nil && os.IsNotExist(err) {
		return os.MkdirAll(p, 0755)
	}

	if d.IsDir() {
		return nil
	}

	return fmt.Errorf("%s not dir", p)
}

func localConfigFilePath(local string) string {
	return path.Join(local, config.DefaultConfigBase)
}

func localDataDirPath(local string) string {
	return path.Join(local, defaultLocalDataDir)
}

func localDbFilePath(local string) string {
	return path.Join(local, defaultSqliteFile)
}
