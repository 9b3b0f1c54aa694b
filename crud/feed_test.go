package crud

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfBlog/domain"
)

func TestGlobalFeedNewestFirst(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	for _, text := range []string{"first", "second", "third"} {
		createTestPost(t, db, user.ID, text)
	}

	feed, err := NewFeedService(db).Global(1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 3)
	assert.Equal(t, "third", feed.Posts[0].Text)
	assert.Equal(t, "first", feed.Posts[2].Text)
	assert.EqualValues(t, 3, feed.Total)
	assert.Equal(t, 1, feed.PageCount)
}

func TestGlobalFeedEagerLoads(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	group := createTestGroup(t, db, "Cats", "cats")
	ps := NewPostService(db)
	require.NoError(t, ps.Create(&domain.Post{
		AuthorID: user.ID,
		Text:     "hello",
		GroupID:  &group.ID,
	}))

	feed, err := NewFeedService(db).Global(1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "leo", feed.Posts[0].Author.Username)
	require.NotNil(t, feed.Posts[0].Group)
	assert.Equal(t, "cats", feed.Posts[0].Group.Slug)
}

func TestFeedPagination(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	for i := 0; i < 15; i++ {
		createTestPost(t, db, user.ID, fmt.Sprintf("post %d", i))
	}
	feeds := NewFeedService(db)

	feed, err := feeds.Global(1)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, domain.FeedPageSize)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, 2, feed.PageCount)
	assert.EqualValues(t, 15, feed.Total)

	feed, err = feeds.Global(2)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 5)
	assert.Equal(t, 2, feed.Page)
}

func TestFeedPageClamps(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	for i := 0; i < 15; i++ {
		createTestPost(t, db, user.ID, fmt.Sprintf("post %d", i))
	}
	feeds := NewFeedService(db)

	// Way past the end lands on the last page.
	feed, err := feeds.Global(999)
	require.NoError(t, err)
	assert.Equal(t, 2, feed.Page)
	assert.Len(t, feed.Posts, 5)

	// Below the start lands on the first page.
	feed, err = feeds.Global(-3)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Page)
	assert.Len(t, feed.Posts, domain.FeedPageSize)
}

func TestFeedEmpty(t *testing.T) {
	db := testDB(t)

	feed, err := NewFeedService(db).Global(1)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, 0, feed.PageCount)
	assert.EqualValues(t, 0, feed.Total)
}

func TestGroupFeedFilters(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	cats := createTestGroup(t, db, "Cats", "cats")
	dogs := createTestGroup(t, db, "Dogs", "dogs")
	ps := NewPostService(db)

	require.NoError(t, ps.Create(&domain.Post{AuthorID: user.ID, Text: "meow", GroupID: &cats.ID}))
	require.NoError(t, ps.Create(&domain.Post{AuthorID: user.ID, Text: "woof", GroupID: &dogs.ID}))
	createTestPost(t, db, user.ID, "no group")

	feed, err := NewFeedService(db).Group(cats.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "meow", feed.Posts[0].Text)
}

func TestProfileFeedFilters(t *testing.T) {
	db := testDB(t)
	leo := createTestUser(t, db, "leo")
	mia := createTestUser(t, db, "mia")
	createTestPost(t, db, leo.ID, "by leo")
	createTestPost(t, db, mia.ID, "by mia")

	feed, err := NewFeedService(db).Profile(mia.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "by mia", feed.Posts[0].Text)
}

func TestFollowingFeed(t *testing.T) {
	db := testDB(t)
	leo := createTestUser(t, db, "leo")
	mia := createTestUser(t, db, "mia")
	ben := createTestUser(t, db, "ben")
	fs := NewFollowService(db)
	feeds := NewFeedService(db)

	createTestPost(t, db, mia.ID, "by mia")
	createTestPost(t, db, ben.ID, "by ben")
	createTestPost(t, db, leo.ID, "by leo")

	require.NoError(t, fs.Create(&domain.Follow{FollowerID: leo.ID, FollowedID: mia.ID}))

	feed, err := feeds.Following(leo.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "by mia", feed.Posts[0].Text)
}

func TestFollowingFeedEmptyWithoutFollows(t *testing.T) {
	db := testDB(t)
	leo := createTestUser(t, db, "leo")
	mia := createTestUser(t, db, "mia")
	createTestPost(t, db, mia.ID, "by mia")

	feed, err := NewFeedService(db).Following(leo.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.EqualValues(t, 0, feed.Total)
}
