package main

import (
	"context"

	"github.com/itemgallery/backend/internal/client/cli"
	"github.com/itemgallery/backend/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
