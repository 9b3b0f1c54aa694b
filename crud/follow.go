package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// FollowService manages Follow edges between users.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create ensures that exactly one Follow edge exists for the given pair.
// A self-follow is absorbed as a no-op without touching the database, and a
// duplicate follow hits the pair's unique index and is absorbed the same way.
func (fv *followValidator) Create(follow *domain.Follow) error {
	if follow.FollowerID == follow.FollowedID {
		return nil
	}
	err := runFollowValFns(follow,
		fv.followerIdValid,
		fv.followedUserExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete removes a Follow edge if it exists. An absent edge is a no-op.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.followerIdValid)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

// IsFollowing reports whether a Follow edge exists for the given pair.
// The anonymous identity (follower id 0) never follows anyone, so it
// answers false without a query.
func (fv *followValidator) IsFollowing(followerID, followedID int) (bool, error) {
	if followerID <= 0 {
		return false, nil
	}
	return fv.followGorm.IsFollowing(followerID, followedID)
}

// FollowedAuthorIDs returns the set of author IDs the given user follows.
// An anonymous or never-followed user yields an empty set.
func (fv *followValidator) FollowedAuthorIDs(followerID int) ([]int, error) {
	if followerID <= 0 {
		return []int{}, nil
	}
	return fv.followGorm.FollowedAuthorIDs(followerID)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn = func(follow *domain.Follow) error

// followerIdValid ensures that the follower id is not empty.
func (fv *followValidator) followerIdValid(follow *domain.Follow) error {
	if follow.FollowerID <= 0 {
		return errs.Errorf(errs.EINVALID, "A follower is required.")
	}
	return nil
}

// followedUserExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedUserExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// Create inserts the Follow edge, leaning on the (follower_id, followed_id)
// unique index to swallow duplicates instead of reporting a conflict.
func (fg *followGorm) Create(follow *domain.Follow) error {
	return fg.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

// Delete removes the Follow edge matching the pair, if any.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}

// IsFollowing counts edges for the pair.
func (fg *followGorm) IsFollowing(followerID, followedID int) (bool, error) {
	var count int64
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowedAuthorIDs plucks the followed side of all edges of one follower.
func (fg *followGorm) FollowedAuthorIDs(followerID int) ([]int, error) {
	ids := []int{}
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
