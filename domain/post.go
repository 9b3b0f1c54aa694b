package domain

import (
	"gorm.io/gorm"
	"time"
)

// Post is the central content entity. It belongs to exactly one author
// (immutable after creation) and optionally to one Group. The Image field
// holds the relative path of an attached image file, if one was uploaded.
type Post struct {
	ID       int    `json:"id"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   User   `json:"author"`
	GroupID  *int   `json:"group_id,omitempty" gorm:"index"`
	Group    *Group `json:"group,omitempty"`
	Text     string `json:"text" gorm:"type:text;notNull"`
	Image    string `json:"image,omitempty"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

// PostService is a set of methods to manipulate and work with the Post model.
type PostService interface {
	ByID(id int) (*Post, error)
	Create(post *Post) error
	Update(post *Post) error
	Delete(post *Post) error
}
