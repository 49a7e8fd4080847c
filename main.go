package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/arjunr/formbuilder/app"
	"github.com/arjunr/formbuilder/config"
	"github.com/arjunr/formbuilder/database"
	"github.com/arjunr/formbuilder/forms"
	"github.com/arjunr/formbuilder/httpx"
	"github.com/arjunr/formbuilder/log"
	"github.com/arjunr/formbuilder/media"
	"github.com/arjunr/formbuilder/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	storage, err := newMediaStorage(cfg)
	if err != nil {
		log.Fatal("main.media:", err)
	}

	app := app.App{
		Store:        forms.NewStore(db),
		BearerServer: httpx.NewBearerServer(db, cfg),
		Media:        storage,
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func newMediaStorage(cfg config.Config) (media.Storage, error) {
	if cfg.UseMinio() {
		return media.NewMinioStorage(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioSSL,
		)
	}
	return media.NewLocalStorage(cfg.MediaDir, cfg.MediaBaseUrl)
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
