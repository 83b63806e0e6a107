package main

import (
	"context"
	"log"
	"os"

	"github.com/ajcloudsolutions/vmailapi/internal/client/cli"
	"github.com/ajcloudsolutions/vmailapi/internal/client/config"
	"github.com/ajcloudsolutions/vmailapi/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	args := flagx.Positional(os.Args[1:], []string{"-a", "-t", "-c", "-config", "--config"})
	if err := app.Run(ctx, args); err != nil {
		os.Exit(1)
	}

}
