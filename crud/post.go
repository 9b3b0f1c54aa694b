package crud

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.authorIdValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations needed for updating existing Post database records.
// The author of a post never changes, so only text and group are validated.
func (pv *postValidator) Update(post *domain.Post) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post)
}

// Delete runs validations needed for deleting existing Post database records.
func (pv *postValidator) Delete(post *domain.Post) error {
	err := runPostValFns(post, pv.idValid)
	if err != nil {
		return err
	}
	return pv.postGorm.Delete(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn = func(post *domain.Post) error

// authorIdValid ensures that the authorId is not empty.
func (pv *postValidator) authorIdValid(post *domain.Post) error {
	if post.AuthorID <= 0 {
		return errs.Errorf(errs.EINVALID, "An author is required.")
	}
	return nil
}

// textRequired makes sure that the post's text is not empty.
func (pv *postValidator) textRequired(post *domain.Post) error {
	textStripped := strings.ReplaceAll(post.Text, " ", "")
	if textStripped == "" {
		return errs.Errorf(errs.EINVALID, "Post text must not be empty.")
	}
	return nil
}

// groupExists makes sure that the group a post is filed under actually exists.
// This check only runs if the incoming Post object carries a group reference.
func (pv *postValidator) groupExists(post *domain.Post) error {
	if post.GroupID != nil {
		err := pv.db.First(&domain.Group{}, "id = ?", *post.GroupID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
			}
			return err
		}
	}
	return nil
}

// idValid makes sure that the passed in ID of a Post is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Post ID is invalid.")
	}
	return nil
}

// ByID retrieves a single Post by ID, along with its author, its group and
// its comments (each with their author), comments newest-first.
// If the record doesn't exist, it returns ENOTFOUND.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at desc, comments.id desc")
		}).
		Preload("Comments.Author").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// Create stores the data from the Post object in a new database record,
// then reloads it with its author attached.
func (pg *postGorm) Create(post *domain.Post) error {
	if err := pg.db.Create(post).Error; err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post).Error
}

// Update saves changes to an existing post record in the database.
// Save writes all columns, so a cleared group reference sticks as NULL.
// Associations stay untouched; only the post row itself is written.
func (pg *postGorm) Update(post *domain.Post) error {
	return pg.db.Omit(clause.Associations).Save(post).Error
}

// Delete soft-deletes a Post record from the database,
// cascading to delete all of its Comments.
func (pg *postGorm) Delete(post *domain.Post) error {
	return pg.db.Select("Comments").Delete(post).Error
}
