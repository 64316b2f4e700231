package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userfeed/internal/buildinfo"
	"github.com/dmitrijs2005/userfeed/internal/client/config"
	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/server"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
