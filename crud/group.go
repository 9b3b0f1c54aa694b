package crud

import (
	"regexp"
	"strings"

	"gorm.io/gorm"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// GroupService manages Groups.
// It implements the domain.GroupService interface.
type GroupService struct {
	groupValidator
}

// groupValidator runs validations on incoming Group data.
// On success, it passes the data on to groupGorm.
// Otherwise, it returns the error of the validation that has failed.
type groupValidator struct {
	slugRegex *regexp.Regexp
	groupGorm
}

// groupGorm runs CRUD operations on the database using incoming Group data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type groupGorm struct {
	db *gorm.DB
}

// NewGroupService returns an instance of GroupService.
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		groupValidator{
			slugRegex: regexp.MustCompile(`^[a-z0-9\-]+$`),
			groupGorm: groupGorm{
				db: db,
			},
		},
	}
}

// Ensure the GroupService struct properly implements the domain.GroupService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.GroupService = &GroupService{}

// Create runs validations needed for creating new Group database records.
func (gv *groupValidator) Create(group *domain.Group) error {
	err := runGroupValFns(group,
		gv.titleRequired,
		gv.slugNormalize,
		gv.slugRequired,
		gv.slugFormat,
		gv.slugIsAvail)
	if err != nil {
		return err
	}
	return gv.groupGorm.Create(group)
}

// Delete runs validations needed for deleting existing Group database records.
func (gv *groupValidator) Delete(group *domain.Group) error {
	err := runGroupValFns(group, gv.idValid)
	if err != nil {
		return err
	}
	return gv.groupGorm.Delete(group)
}

// BySlug looks up a group by the slug used in group feed urls.
// A missing group comes back as ENOTFOUND, fit for the boundary.
func (gv *groupValidator) BySlug(slug string) (*domain.Group, error) {
	group, err := gv.groupGorm.BySlug(strings.ToLower(slug))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
		}
		return nil, err
	}
	return group, nil
}

// runGroupValFns runs any number of functions of type groupValFn on the passed in Group object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runGroupValFns(group *domain.Group, fns ...groupValFn) error {
	for _, fn := range fns {
		if err := fn(group); err != nil {
			return err
		}
	}
	return nil
}

// A groupValFn is any function that takes in a pointer to a domain.Group object and returns an error.
type groupValFn = func(group *domain.Group) error

// titleRequired makes sure that the group's title is not empty.
func (gv *groupValidator) titleRequired(group *domain.Group) error {
	if strings.TrimSpace(group.Title) == "" {
		return errs.Errorf(errs.EINVALID, "A group title is required.")
	}
	return nil
}

// slugNormalize converts the slug to all lowercase and trims its whitespaces.
func (gv *groupValidator) slugNormalize(group *domain.Group) error {
	group.Slug = strings.ToLower(group.Slug)
	group.Slug = strings.TrimSpace(group.Slug)
	return nil
}

// slugRequired makes sure that the group's slug is not empty.
func (gv *groupValidator) slugRequired(group *domain.Group) error {
	if group.Slug == "" {
		return errs.Errorf(errs.EINVALID, "A group slug is required.")
	}
	return nil
}

// slugFormat makes sure that the slug only contains url-safe characters.
func (gv *groupValidator) slugFormat(group *domain.Group) error {
	if !gv.slugRegex.MatchString(group.Slug) {
		return errs.Errorf(errs.EINVALID, "The slug may only contain lowercase letters, digits and dashes.")
	}
	return nil
}

// slugIsAvail makes sure that a provided slug is not yet taken.
func (gv *groupValidator) slugIsAvail(group *domain.Group) error {
	existing, err := gv.groupGorm.BySlug(group.Slug)
	if err == gorm.ErrRecordNotFound {
		// Slug is not taken.
		return nil
	}
	if err != nil {
		return err
	}
	if group.ID != existing.ID {
		return errs.Errorf(errs.EINVALID, "This slug is already taken.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Group to be deleted is greater than 0.
func (gv *groupValidator) idValid(group *domain.Group) error {
	if group.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Group ID is invalid.")
	}
	return nil
}

// ByID retrieves a Group database record by ID.
func (gg *groupGorm) ByID(id int) (*domain.Group, error) {
	var group domain.Group
	err := gg.db.First(&group, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
		}
		return nil, err
	}
	return &group, nil
}

// BySlug retrieves a Group database record by its slug.
func (gg *groupGorm) BySlug(slug string) (*domain.Group, error) {
	var group domain.Group
	db := gg.db.Where("slug = ?", slug)
	err := first(db, &group)
	return &group, err
}

// All retrieves all Group records, alphabetically by title.
func (gg *groupGorm) All() ([]domain.Group, error) {
	var groups []domain.Group
	err := gg.db.Order("title asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Create stores the data from the Group object in a new database record.
func (gg *groupGorm) Create(group *domain.Group) error {
	return gg.db.Create(group).Error
}

// Delete removes a Group record from the database. Its posts survive:
// inside one transaction their group reference is cleared first, so a
// failed delete never leaves half the posts detached.
func (gg *groupGorm) Delete(group *domain.Group) error {
	return gg.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}
