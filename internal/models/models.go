package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Bio          string `json:"bio" db:"bio"`
	AvatarURL    string `json:"avatarUrl" db:"avatar_url"`
	Language     string `json:"language" db:"language"`
}

// Profile is the public view of a user, with a live post count.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	Language  string `json:"language"`
	Posts     int    `json:"posts"`
}

type Post struct {
	PostID    string         `json:"postId" db:"post_id"`
	Username  string         `json:"user" db:"username"`
	Title     string         `json:"title" db:"title"`
	Text      string         `json:"text" db:"text"`
	ImageURL  string         `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	Likes     int            `json:"likes" db:"likes"`
	LikedBy   pq.StringArray `json:"likedBy" db:"liked_by"`
	Comments  []Comment      `json:"comments" db:"-"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	Username  string    `json:"user" db:"username"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
