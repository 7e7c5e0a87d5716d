package main

import (
	"github.com/failboard/failboard/config"
	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/routes"
	"github.com/failboard/failboard/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg, &models.User{}, &models.Post{}, &models.Comment{}, &models.Vote{})
	cache := utils.NewCache(cfg)

	r := routes.SetupRouter(cfg, db, cache)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
