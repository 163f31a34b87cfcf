// Package ormtest opens throwaway in-memory databases for tests.
package ormtest

import (
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gfdmit/web-forum/post-api/internal/model"
)

// NewDB returns an empty posts table in a private in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Post{}))
	return db
}

// Seed inserts n posts titled "post 1".."post n" and returns them in id order.
func Seed(t *testing.T, db *gorm.DB, n int) []model.Post {
	t.Helper()

	posts := make([]model.Post, 0, n)
	for i := 1; i <= n; i++ {
		post := model.Post{Title: "post " + strconv.Itoa(i)}
		require.NoError(t, db.Create(&post).Error)
		posts = append(posts, post)
	}
	return posts
}

