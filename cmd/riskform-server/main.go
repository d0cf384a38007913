// Command riskform-server runs a demo scoring service implementing the
// wire contract of the real one: predictor directory, descriptor fetch,
// prediction, and report download. Scores are synthesized from the
// submitted values, so it is useful for integration testing the form
// engine, not for anything clinical.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/riskform/go-riskform/pkg/catalog"
)

type config struct {
	Port    string `envconfig:"PORT" default:"5000"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().Str("component", "riskform-server").Logger()

	_ = godotenv.Load()
	var cfg config
	if err := envconfig.Process("riskform", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read environment")
	}

	gin.SetMode(cfg.GinMode)

	srv := &server{
		catalog: catalog.New(),
		log:     log,
	}

	router := setupRouter(srv)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", httpServer.Addr).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupRouter(srv *server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", srv.handleRoot)
	router.GET("/predictors", srv.handleDirectory)
	router.GET("/predictor/:id/fields", srv.handleFields)
	router.POST("/predict", srv.handlePredict)
	router.POST("/download-report", srv.handleReport)

	return router
}
