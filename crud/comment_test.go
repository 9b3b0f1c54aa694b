package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

func TestCommentCreateLoadsAuthor(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	post := createTestPost(t, db, user.ID, "hello")
	cs := NewCommentService(db)

	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     "nice one",
	}
	require.NoError(t, cs.Create(comment))
	assert.Equal(t, "leo", comment.Author.Username)
}

func TestCommentOnMissingPost(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	cs := NewCommentService(db)

	err := cs.Create(&domain.Comment{
		PostID:   999,
		AuthorID: user.ID,
		Text:     "into the void",
	})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestCommentRequiresText(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	post := createTestPost(t, db, user.ID, "hello")
	cs := NewCommentService(db)

	err := cs.Create(&domain.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     "   ",
	})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestCommentsByPostNewestFirst(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	post := createTestPost(t, db, user.ID, "hello")
	other := createTestPost(t, db, user.ID, "other")
	cs := NewCommentService(db)

	for _, text := range []string{"first", "second"} {
		require.NoError(t, cs.Create(&domain.Comment{
			PostID:   post.ID,
			AuthorID: user.ID,
			Text:     text,
		}))
	}
	require.NoError(t, cs.Create(&domain.Comment{
		PostID:   other.ID,
		AuthorID: user.ID,
		Text:     "elsewhere",
	}))

	comments, err := cs.ByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}
