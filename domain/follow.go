package domain

import "time"

// Follow represents a self-referential many-to-many relationship between two
// users. A Follow is created when one user decides to follow an author. The
// FollowerID is the ID of the user that follows, and the FollowedID is the ID
// of the author being followed. The follows-table carries a composite unique
// index over the pair, so at most one edge can exist per (follower, followed).
type Follow struct {
	ID         int  `json:"id"`
	FollowerID int  `json:"-" gorm:"notNull;index;uniqueIndex:idx_follow_pair"`
	Follower   User `json:"follower"`
	FollowedID int  `json:"-" gorm:"notNull;index;uniqueIndex:idx_follow_pair"`
	Followed   User `json:"followed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow
// model. Create and Delete are idempotent: a duplicate follow and an unfollow
// of an absent edge are both absorbed as no-ops, never errors.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	IsFollowing(followerID, followedID int) (bool, error)
	FollowedAuthorIDs(followerID int) ([]int, error)
}
