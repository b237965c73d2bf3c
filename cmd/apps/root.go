/*
 Copyright 2026 LoftFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package apps

import (
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"

	configapp "github.com/loftfs/loftfs/cmd/apps/config"
	"github.com/loftfs/loftfs/cmd/apps/apis/rest"
	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/hierarchy"
	"github.com/loftfs/loftfs/pkg/metastore"
	"github.com/loftfs/loftfs/pkg/token"
	"github.com/loftfs/loftfs/utils"
	"github.com/loftfs/loftfs/utils/logger"
)

func init() {
	RootCmd.AddCommand(daemonCmd)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(configapp.RunCmd)

	daemonCmd.Flags().StringVar(&config.FilePath, "config", path.Join(config.LocalUserPath(), config.DefaultConfigBase), "loftfs config file")
}

var RootCmd = &cobra.Command{
	Use:   "loftfs",
	Short: "LoftFS storage server",
	Long:  `Multi-tenant hierarchical file storage service.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var daemonCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start server service",
	Run: func(cmd *cobra.Command, args []string) {
		loader := config.NewConfigLoader()
		cfg, err := loader.GetConfig()
		if err != nil {
			panic(err)
		}

		if cfg.Debug {
			logger.SetDebug(cfg.Debug)
		}

		meta, err := metastore.NewMetaStorage(cfg.Meta.Type, cfg.Meta)
		if err != nil {
			panic(err)
		}

		hierarchyMgr, err := hierarchy.NewManager(meta, cfg)
		if err != nil {
			panic(err)
		}
		tokenMgr := token.NewTokenManager(meta, cfg.Auth)

		stop := utils.HandleTerminalSignal()
		run(hierarchyMgr, tokenMgr, cfg, stop)
	},
}

func run(hierarchyMgr hierarchy.Manager, tokenMgr *token.Manager, cfg config.Config, stopCh chan struct{}) {
	log := logger.NewLogger("loftfs")
	log.Infow("starting", "version", config.VersionInfo().Version())

	shutdown := make(chan struct{})
	go func() {
		<-stopCh
		log.Info("shutdown after 5s")
		time.Sleep(time.Second * 5)
		close(shutdown)
	}()

	s, err := rest.New(hierarchyMgr, tokenMgr, cfg)
	if err != nil {
		log.Panicw("init http server failed", "err", err.Error())
	}
	go s.Run(stopCh)

	log.Info("started")
	<-shutdown
	log.Info("stopped")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "View version information",
	Run: func(cmd *cobra.Command, args []string) {
		vInfo := config.VersionInfo()
		fmt.Printf("Version: %s\n", vInfo.Version())
		fmt.Printf("GitCommit: %s\n", vInfo.Git)
	},
}
