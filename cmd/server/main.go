package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gamekeeper/internal/server"
	"github.com/dmitrijs2005/gamekeeper/internal/server/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
