package domain

import "time"

// OAuth links an external provider identity (as of now only Github) to a
// local User, so returning visitors can be signed in without a password.
type OAuth struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id" gorm:"notNull;index"`
	User           *User  `json:"user,omitempty"`
	Provider       string `json:"provider" gorm:"notNull;uniqueIndex:idx_oauth_provider_user"`
	ProviderUserID string `json:"provider_user_id" gorm:"notNull;uniqueIndex:idx_oauth_provider_user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OAuthService is a set of methods to manipulate and work with the OAuth model.
type OAuthService interface {
	Find(provider, providerUserID string) (*OAuth, error)
	Create(oauth *OAuth) error
	Delete(oauth *OAuth) error
}
