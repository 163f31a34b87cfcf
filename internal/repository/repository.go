package repository

import (
	"context"
	"errors"

	"github.com/gfdmit/web-forum/post-api/internal/model"
)

var (
	ErrNotFound    = errors.New("repository: post not found")
	ErrInvalidPage = errors.New("repository: page and page size must be positive")
)

// Repository is the storage capability set the service depends on.
type Repository interface {
	FindPostByID(ctx context.Context, id int) (model.Post, error)
	FindPostsInPage(ctx context.Context, page int, pageSize int) (model.PostPage, error)
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	UpdatePostByID(ctx context.Context, id int, post model.Post) (model.Post, error)
	DeletePost(ctx context.Context, id int) (int64, error)
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count int64, pageSize int) int64 {
	if pageSize < 1 || count <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (count + size - 1) / size
}
