package crud

import (
	"gorm.io/gorm"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// OAuthService manages links between external provider identities and Users.
// It implements the domain.OAuthService interface.
type OAuthService struct {
	oauthValidator
}

type oauthValidator struct {
	oauthGorm
}

type oauthGorm struct {
	db *gorm.DB
}

// NewOAuthService returns an instance of OAuthService.
func NewOAuthService(db *gorm.DB) *OAuthService {
	return &OAuthService{
		oauthValidator{
			oauthGorm{
				db: db,
			},
		},
	}
}

var _ domain.OAuthService = &OAuthService{}

// Find looks up the OAuth link for a provider identity. A missing link comes
// back as ENOTFOUND; the callback handler uses that to register a new user.
func (ov *oauthValidator) Find(provider, providerUserID string) (*domain.OAuth, error) {
	oauth, err := ov.oauthGorm.Find(provider, providerUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "No account is linked to this identity.")
		}
		return nil, err
	}
	return oauth, nil
}

// Create runs validations needed for creating new OAuth database records.
func (ov *oauthValidator) Create(oauth *domain.OAuth) error {
	err := runOAuthValFns(oauth,
		ov.userIdRequired,
		ov.providerRequired,
		ov.providerUserIdRequired)
	if err != nil {
		return err
	}
	return ov.oauthGorm.Create(oauth)
}

// Delete runs validations needed for deleting existing OAuth database records.
func (ov *oauthValidator) Delete(oauth *domain.OAuth) error {
	err := runOAuthValFns(oauth, ov.idValid)
	if err != nil {
		return err
	}
	return ov.oauthGorm.Delete(oauth)
}

// runOAuthValFns runs any number of functions of type oauthValFn on the passed in OAuth object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runOAuthValFns(oauth *domain.OAuth, fns ...oauthValFn) error {
	for _, fn := range fns {
		if err := fn(oauth); err != nil {
			return err
		}
	}
	return nil
}

// A oauthValFn is any function that takes in a pointer to a domain.OAuth object and returns an error.
type oauthValFn = func(oauth *domain.OAuth) error

// idValid makes sure that the passed in ID of an OAuth to be deleted is greater than 0.
func (ov *oauthValidator) idValid(oauth *domain.OAuth) error {
	if oauth.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "OAuth ID is invalid.")
	}
	return nil
}

func (ov *oauthValidator) userIdRequired(oauth *domain.OAuth) error {
	if oauth.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user is required.")
	}
	return nil
}

func (ov *oauthValidator) providerRequired(oauth *domain.OAuth) error {
	if oauth.Provider == "" {
		return errs.Errorf(errs.EINVALID, "A provider is required.")
	}
	return nil
}

func (ov *oauthValidator) providerUserIdRequired(oauth *domain.OAuth) error {
	if oauth.ProviderUserID == "" {
		return errs.Errorf(errs.EINVALID, "A provider user id is required.")
	}
	return nil
}

func (og *oauthGorm) Find(provider, providerUserID string) (*domain.OAuth, error) {
	var oauth domain.OAuth
	db := og.db.
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		Preload("User")
	err := first(db, &oauth)
	if err != nil {
		return nil, err
	}
	return &oauth, nil
}

func (og *oauthGorm) Create(oauth *domain.OAuth) error {
	return og.db.Create(oauth).Error
}

func (og *oauthGorm) Delete(oauth *domain.OAuth) error {
	return og.db.Delete(oauth).Error
}
