package domain

import (
	"time"
)

// User represents a registered account. Users author Posts and Comments and
// take part in Follow relationships on both ends. The Username is the stable
// external reference used in profile urls.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" gorm:"uniqueIndex;notNull"`
	Email    string `json:"email" gorm:"uniqueIndex"`

	// Password is only ever set in memory, on registration or login.
	// The database stores nothing but the peppered bcrypt hash.
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-"`

	// Remember is the raw session token handed out as a cookie.
	// Only its HMAC ends up in the database.
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	Posts     []Post   `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Followers []Follow `json:"-" gorm:"foreignKey:FollowedID"`
	Followeds []Follow `json:"-" gorm:"foreignKey:FollowerID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByEmail(email string) (*User, error)
	ByRemember(token string) (*User, error)
	Authenticate(email, password string) (*User, error)
	MakeRememberToken() (string, error)
	Create(user *User) error
	Update(user *User) error
}
