package domain

import (
	"gorm.io/gorm"
	"time"
)

// Comment belongs to exactly one Post and one author. Comments are only ever
// created, never edited. They disappear with their Post.
type Comment struct {
	ID       int    `json:"id"`
	PostID   int    `json:"post_id" gorm:"notNull;index"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   User   `json:"author"`
	Text     string `json:"text" gorm:"type:text;notNull"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	ByPostID(postID int) ([]Comment, error)
	Create(comment *Comment) error
}
