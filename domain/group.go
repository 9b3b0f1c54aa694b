package domain

import "time"

// Group is a named topic container that posts may be filed under. Its Slug is
// a unique url-safe identifier used in group feed urls. Group membership is
// optional metadata on a Post, not ownership: deleting a Group keeps its
// posts around with their group reference unset.
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title" gorm:"notNull"`
	Slug        string `json:"slug" gorm:"uniqueIndex;notNull"`
	Description string `json:"description"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:GroupID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupService is a set of methods to manipulate and work with the Group model.
type GroupService interface {
	ByID(id int) (*Group, error)
	BySlug(slug string) (*Group, error)
	All() ([]Group, error)
	Create(group *Group) error
	Delete(group *Group) error
}
