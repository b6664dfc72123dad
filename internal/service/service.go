package service

import (
	"io"

	"redsocial/internal/config"
	"redsocial/internal/realtime"
	"redsocial/internal/repository"
	"redsocial/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Profile ProfileService
}

// Upload carries a file received as multipart form data down to the
// storage layer.
type Upload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, notifier realtime.Broadcaster) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, storage, cfg),
		Post:    NewPostService(rep.Post, rep.Comment, storage, notifier),
		Profile: NewProfileService(rep.User, rep.Post, storage, notifier),
	}
}
