package service

import (
	"context"
	"fmt"

	"redsocial/internal/models"
	"redsocial/internal/realtime"
	"redsocial/internal/repository"
	"redsocial/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest, image *Upload) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error
	DeletePost(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, username string) (int, error)
	AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	notifier    realtime.Broadcaster
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, storage storage.Storage, notifier realtime.Broadcaster) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
		notifier:    notifier,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest, image *Upload) (*models.Post, error) {
	post := &models.Post{
		Username: req.Username,
		Title:    req.Title,
		Text:     req.Text,
	}
	if post.Username == "" {
		post.Username = "Anonymous"
	}

	if image != nil {
		imageURL, err := p.storage.Upload(ctx, "posts", image.FileName, image.Reader, image.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		post.ImageURL = imageURL
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	post.Comments = []models.Comment{}
	p.notifier.Broadcast(realtime.EventPostsUpdated)

	return post, nil
}

// ListPosts returns every post newest first, each with its comments.
// Comments are fetched once and grouped here instead of one query per
// post.
func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byPost := make(map[string][]models.Comment, len(posts))
	for _, comment := range comments {
		byPost[comment.PostID] = append(byPost[comment.PostID], comment)
	}

	for i := range posts {
		if grouped, ok := byPost[posts[i].PostID]; ok {
			posts[i].Comments = grouped
		} else {
			posts[i].Comments = []models.Comment{}
		}
	}

	return posts, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = comments
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error {
	if err := p.postRepo.Update(ctx, req); err != nil {
		return err
	}

	p.notifier.Broadcast(realtime.EventPostsUpdated)
	return nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	p.notifier.Broadcast(realtime.EventPostsUpdated)
	return nil
}

func (p *postService) ToggleLike(ctx context.Context, postID, username string) (int, error) {
	likes, err := p.postRepo.ToggleLike(ctx, postID, username)
	if err != nil {
		return 0, err
	}

	p.notifier.Broadcast(realtime.EventPostsUpdated)
	return likes, nil
}

func (p *postService) AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   req.PostID,
		Username: req.Username,
		Text:     req.Text,
	}

	if err := p.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	p.notifier.Broadcast(realtime.EventPostsUpdated)
	return comment, nil
}
