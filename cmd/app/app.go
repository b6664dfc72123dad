package app

import (
	"github.com/sirupsen/logrus"

	"redsocial/internal/config"
	"redsocial/internal/database"
	"redsocial/internal/realtime"
	"redsocial/internal/repository"
	"redsocial/internal/service"
	"redsocial/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, *realtime.Hub) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize MinIO: %v", err)
	}

	// realtime hub; Run is started by the caller
	hub := realtime.NewHub()

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, hub)

	return db, repo, services, hub
}
