package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

func TestGroupCreateValidatesSlug(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)

	err := gs.Create(&domain.Group{Title: "Cats", Slug: "no spaces allowed"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = gs.Create(&domain.Group{Title: "Cats"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	// Slugs normalize to lowercase before validation.
	group := &domain.Group{Title: "Cats", Slug: " CATS "}
	require.NoError(t, gs.Create(group))
	assert.Equal(t, "cats", group.Slug)
}

func TestGroupSlugTaken(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)
	createTestGroup(t, db, "Cats", "cats")

	err := gs.Create(&domain.Group{Title: "More Cats", Slug: "cats"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestGroupBySlug(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)
	created := createTestGroup(t, db, "Cats", "cats")

	group, err := gs.BySlug("cats")
	require.NoError(t, err)
	assert.Equal(t, created.ID, group.ID)

	_, err = gs.BySlug("dogs")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestGroupAllSortedByTitle(t *testing.T) {
	db := testDB(t)
	createTestGroup(t, db, "Zebras", "zebras")
	createTestGroup(t, db, "Cats", "cats")

	groups, err := NewGroupService(db).All()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title)
	assert.Equal(t, "Zebras", groups[1].Title)
}

func TestGroupDeleteKeepsPosts(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "leo")
	group := createTestGroup(t, db, "Cats", "cats")
	gs := NewGroupService(db)
	ps := NewPostService(db)

	post := &domain.Post{
		AuthorID: user.ID,
		Text:     "hello",
		GroupID:  &group.ID,
	}
	require.NoError(t, ps.Create(post))

	require.NoError(t, gs.Delete(group))

	_, err := gs.BySlug("cats")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	// The post survives with its group reference unset.
	found, err := ps.ByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, found.GroupID)
	assert.Nil(t, found.Group)
}
