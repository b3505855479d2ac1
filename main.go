package main

import (
	"fmt"
	"hirehub/job-portal-api/app"
	"hirehub/job-portal-api/config"
	"hirehub/job-portal-api/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if config.SeedRequested() {
		conn, err := db.New()
		if err != nil {
			panic(err)
		}

		if err := db.Seed(conn); err != nil {
			panic(err)
		}
		return
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
