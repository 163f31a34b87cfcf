package orm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gfdmit/web-forum/post-api/internal/model"
	"github.com/gfdmit/web-forum/post-api/internal/repository"
)

type ormRepository struct {
	db *gorm.DB
}

// New returns a repository over any GORM dialector.
func New(db *gorm.DB) *ormRepository {
	return &ormRepository{
		db: db,
	}
}

func (r ormRepository) FindPostByID(ctx context.Context, id int) (model.Post, error) {
	post := model.Post{}
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return model.Post{}, translate(err)
	}
	return post, nil
}

func (r ormRepository) FindPostsInPage(ctx context.Context, page int, pageSize int) (model.PostPage, error) {
	if page < 1 || pageSize < 1 {
		return model.PostPage{}, repository.ErrInvalidPage
	}

	var count int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Post{}).Count(&count).Error; err != nil {
		return model.PostPage{}, fmt.Errorf("count posts: %w", err)
	}

	result := model.PostPage{
		Posts:      []model.Post{},
		TotalCount: count,
		TotalPages: repository.TotalPages(count, pageSize),
	}
	// past the last page: nothing to select, and the offset cannot overflow
	if int64(page-1) >= result.TotalPages {
		return result, nil
	}

	err := db.Order("id ASC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&result.Posts).Error
	if err != nil {
		return model.PostPage{}, fmt.Errorf("find posts: %w", err)
	}
	return result, nil
}

func (r ormRepository) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	post.ID = 0
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (r ormRepository) UpdatePostByID(ctx context.Context, id int, post model.Post) (model.Post, error) {
	updated := model.Post{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return translate(err)
		}
		err := tx.Model(&updated).
			Select("Title", "Text").
			Updates(model.Post{Title: post.Title, Text: post.Text}).Error
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		updated.Title = post.Title
		updated.Text = post.Text
		return nil
	})
	if err != nil {
		return model.Post{}, err
	}
	return updated, nil
}

func (r ormRepository) DeletePost(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete post: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("find post: %w", err)
}
