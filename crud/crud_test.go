package crud

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfBlog/domain"
)

// testDB opens a fresh in-memory database for one test, with all
// migrations applied. Naming the database after the test keeps parallel
// tests from seeing each other's rows.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	err = db.AutoMigrate(
		domain.User{},
		domain.OAuth{},
		domain.Group{},
		domain.Post{},
		domain.Comment{},
		domain.Follow{},
	)
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1234",
	}
	require.NoError(t, us.Create(user))
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID int, text string) *domain.Post {
	t.Helper()
	ps := NewPostService(db)
	post := &domain.Post{
		AuthorID: authorID,
		Text:     text,
	}
	require.NoError(t, ps.Create(post))
	return post
}

func createTestGroup(t *testing.T, db *gorm.DB, title, slug string) *domain.Group {
	t.Helper()
	gs := NewGroupService(db)
	group := &domain.Group{
		Title: title,
		Slug:  slug,
	}
	require.NoError(t, gs.Create(group))
	return group
}
