package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"redsocial/internal/models"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

type CreateCommentRequest struct {
	PostID   string `json:"postId"`
	Username string `json:"user"`
	Text     string `json:"text"`
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

// Create inserts the comment without checking that the post exists; a
// comment on a deleted post is dropped by the delete cascade later.
func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	query := `
		INSERT INTO comments (comment_id, post_id, username, text, created_at)
		VALUES (:comment_id, :post_id, :username, :text, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetAll(ctx context.Context) ([]models.Comment, error) {
	query := `SELECT * FROM comments ORDER BY created_at ASC`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}
