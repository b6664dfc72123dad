package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"redsocial/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

type UpdatePostRequest struct {
	PostID string  `json:"postId"`
	Title  *string `json:"title"`
	Text   *string `json:"text"`
}

// selectPosts aggregates the liker set into liked_by so a single query
// returns the post together with everyone who liked it.
const selectPosts = `
	SELECT p.post_id, p.username, p.title, p.text, p.image_url, p.created_at, p.likes,
	       COALESCE(array_agg(l.username) FILTER (WHERE l.username IS NOT NULL), '{}') AS liked_by
	FROM posts p
	LEFT JOIN post_likes l ON l.post_id = p.post_id
`

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	post.Likes = 0

	query := `
		INSERT INTO posts (post_id, username, title, text, image_url, created_at, likes)
		VALUES (:post_id, :username, :title, :text, :image_url, :created_at, :likes)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := selectPosts + `
	GROUP BY p.post_id
	ORDER BY p.created_at DESC
`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := selectPosts + `
	WHERE p.post_id = $1
	GROUP BY p.post_id
`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, req UpdatePostRequest) error {
	// partial update: nil fields keep their current value
	query := `
		UPDATE posts
		SET title = COALESCE($2, title),
		    text  = COALESCE($3, text)
		WHERE post_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, req.PostID, req.Title, req.Text)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", req.PostID, ErrNotFound)
	}

	return nil
}

// Delete removes the post together with its comments and likes in a
// single transaction, so a crash cannot leave orphaned comments behind.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ToggleLike adds the username to the liker set if absent, removes it
// otherwise, and keeps the counter in sync. The row lock plus the
// primary key on post_likes make concurrent toggles from the same user
// settle on at most one like.
func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, username string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var likes int
	err = tx.GetContext(ctx, &likes, `SELECT likes FROM posts WHERE post_id = $1 FOR UPDATE`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get post: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, username)
		VALUES ($1, $2)
		ON CONFLICT (post_id, username) DO NOTHING
	`, postID, username)
	if err != nil {
		return 0, fmt.Errorf("failed to add like: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	if inserted > 0 {
		err = tx.GetContext(ctx, &likes, `
			UPDATE posts SET likes = likes + 1 WHERE post_id = $1 RETURNING likes
		`, postID)
	} else {
		if _, err = tx.ExecContext(ctx, `
			DELETE FROM post_likes WHERE post_id = $1 AND username = $2
		`, postID, username); err != nil {
			return 0, fmt.Errorf("failed to remove like: %w", err)
		}
		err = tx.GetContext(ctx, &likes, `
			UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE post_id = $1 RETURNING likes
		`, postID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return likes, nil
}

func (r *PostRepositoryImpl) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM posts WHERE username = $1`

	err := r.db.GetContext(ctx, &count, query, username)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}
