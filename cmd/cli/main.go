package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userfeed/internal/buildinfo"
	"github.com/dmitrijs2005/userfeed/internal/client/cli"
	"github.com/dmitrijs2005/userfeed/internal/client/config"
	"github.com/dmitrijs2005/userfeed/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Logs go to stderr so they do not interleave with rendered output.
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
