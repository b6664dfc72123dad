package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"redsocial/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Update(ctx context.Context, req UpdatePostRequest) error
	Delete(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, username string) (int, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetAll(ctx context.Context) ([]models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}
