package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/inkwell-journal/inkwell/internal/client/cli"
	"github.com/inkwell-journal/inkwell/internal/client/config"
	"github.com/inkwell-journal/inkwell/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
