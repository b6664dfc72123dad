package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"redsocial/internal/models"
	"redsocial/internal/realtime"
	"redsocial/internal/repository"
	"redsocial/internal/storage"
)

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest, avatar *Upload) error
}

type profileService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	storage  storage.Storage
	notifier realtime.Broadcaster
}

func NewProfileService(userRepo repository.UserRepository, postRepo repository.PostRepository, storage storage.Storage, notifier realtime.Broadcaster) ProfileService {
	return &profileService{
		userRepo: userRepo,
		postRepo: postRepo,
		storage:  storage,
		notifier: notifier,
	}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Language:  user.Language,
		Posts:     count,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest, avatar *Upload) error {
	var replacedAvatarURL string
	if avatar != nil {
		user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		replacedAvatarURL = user.AvatarURL

		avatarURL, err := s.storage.Upload(ctx, "avatars", avatar.FileName, avatar.Reader, avatar.Size)
		if err != nil {
			return fmt.Errorf("failed to upload avatar: %w", err)
		}
		req.AvatarURL = &avatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, req); err != nil {
		return err
	}

	// best effort: the profile update already went through, a stale
	// object in the bucket is not worth failing the request over
	if replacedAvatarURL != "" {
		if err := s.storage.Delete(ctx, replacedAvatarURL); err != nil {
			logrus.WithError(err).Warn("failed to delete replaced avatar")
		}
	}

	s.notifier.Broadcast(realtime.EventPostsUpdated)
	return nil
}
