package main

import (
	"fmt"
	"os"

	"github.com/loftfs/loftfs/cmd/apps"
	"github.com/loftfs/loftfs/utils/logger"

	_ "github.com/loftfs/loftfs/utils/metrics"
)

func main() {
	logger.InitLogger()
	defer logger.Sync()

	if err := apps.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
