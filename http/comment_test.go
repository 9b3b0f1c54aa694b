package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddCommentAnonymousDropped documents the quiet comment policy: an
// anonymous submission is bounced to the post view without creating a record
// and without raising an error.
func TestAddCommentAnonymousDropped(t *testing.T) {
	ts := newTestServer(t)
	leo, _ := ts.registerUser(t, "leo")
	post := ts.createPost(t, leo.ID, "hello")

	path := fmt.Sprintf("/profile/leo/post/%d/comment", post.ID)
	rec := ts.doJSON("POST", path, map[string]string{"text": "drive-by"}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("/profile/leo/post/%d", post.ID), rec.Header().Get("Location"))

	comments, err := ts.services.Comment.ByPostID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestAddComment(t *testing.T) {
	ts := newTestServer(t)
	leo, _ := ts.registerUser(t, "leo")
	_, miaCookie := ts.registerUser(t, "mia")
	post := ts.createPost(t, leo.ID, "hello")

	path := fmt.Sprintf("/profile/leo/post/%d/comment", post.ID)
	rec := ts.doJSON("POST", path, map[string]string{"text": "nice one"}, miaCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	comments, err := ts.services.Comment.ByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Text)
	assert.Equal(t, "mia", comments[0].Author.Username)
}

func TestAddCommentToMissingPost(t *testing.T) {
	ts := newTestServer(t)
	_, cookie := ts.registerUser(t, "leo")

	rec := ts.doJSON("POST", "/profile/leo/post/999/comment", map[string]string{"text": "hi"}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
