package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gfdmit/web-forum/post-api/internal/model"
	"github.com/gfdmit/web-forum/post-api/internal/repository"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

var ErrValidation = errors.New("validation failed")

type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetPost(ctx context.Context, id int) (model.Post, error) {
	return svc.repo.FindPostByID(ctx, id)
}

func (svc *Service) ListPosts(ctx context.Context, page int, pageSize int) (model.PostPage, error) {
	if pageSize > MaxPageSize {
		return model.PostPage{}, fmt.Errorf("%w: page size must not exceed %d", ErrValidation, MaxPageSize)
	}
	return svc.repo.FindPostsInPage(ctx, page, pageSize)
}

func (svc *Service) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	if err := validate(post); err != nil {
		return model.Post{}, err
	}
	return svc.repo.CreatePost(ctx, post)
}

func (svc *Service) UpdatePost(ctx context.Context, id int, post model.Post) (model.Post, error) {
	if err := validate(post); err != nil {
		return model.Post{}, err
	}
	return svc.repo.UpdatePostByID(ctx, id, post)
}

func (svc *Service) DeletePost(ctx context.Context, id int) (int64, error) {
	return svc.repo.DeletePost(ctx, id)
}

func validate(post model.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}
