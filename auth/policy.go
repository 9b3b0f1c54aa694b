package auth

import "wtfBlog/domain"

// Capability checks for content writes. These are stateless predicates over
// the acting identity; a nil actor is the anonymous identity. The handlers
// evaluate them before attempting any write.
//
// Denied actions are not errors here: a non-owner edit is answered with a
// redirect to the read-only post view, and an anonymous comment is simply
// never written. Both are contractual behaviors, handled by the callers.

// CanCreatePost reports whether the actor may create a post.
func CanCreatePost(actor *domain.User) bool {
	return actor != nil
}

// CanEditPost reports whether the actor may edit the given post.
func CanEditPost(actor *domain.User, post *domain.Post) bool {
	return actor != nil && actor.ID == post.AuthorID
}

// CanComment reports whether the actor may comment on a post.
func CanComment(actor *domain.User) bool {
	return actor != nil
}
