package crud

import (
	"gorm.io/gorm"

	"wtfBlog/domain"
)

// FeedService composes the paginated post listings: the global feed, a
// group's feed, an author's profile feed and the follow feed of a user.
// It implements the domain.FeedService interface.
//
// Every feed is a live query: it counts first, clamps the requested page
// into the valid range, then fetches exactly one page with the author and
// group of each post batch-loaded in the same pass. No per-row lookups.
type FeedService struct {
	feedGorm
}

// feedGorm runs the feed queries against the database.
type feedGorm struct {
	db *gorm.DB
}

// NewFeedService returns an instance of FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		feedGorm{
			db: db,
		},
	}
}

// Ensure the FeedService struct properly implements the domain.FeedService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FeedService = &FeedService{}

// Global returns one page of all posts, newest-first.
func (fg *feedGorm) Global(page int) (*domain.Feed, error) {
	return fg.paginate(fg.db.Model(&domain.Post{}), page)
}

// Group returns one page of the posts filed under the given group.
func (fg *feedGorm) Group(groupID, page int) (*domain.Feed, error) {
	return fg.paginate(
		fg.db.Model(&domain.Post{}).Where("group_id = ?", groupID),
		page)
}

// Profile returns one page of the posts written by the given author.
func (fg *feedGorm) Profile(authorID, page int) (*domain.Feed, error) {
	return fg.paginate(
		fg.db.Model(&domain.Post{}).Where("author_id = ?", authorID),
		page)
}

// Following returns one page of the posts written by authors the given user
// follows. An empty followed set yields an empty feed, not an error.
func (fg *feedGorm) Following(followerID, page int) (*domain.Feed, error) {
	authorIDs := []int{}
	if followerID > 0 {
		err := fg.db.Model(&domain.Follow{}).
			Where("follower_id = ?", followerID).
			Pluck("followed_id", &authorIDs).Error
		if err != nil {
			return nil, err
		}
	}
	if len(authorIDs) == 0 {
		return emptyFeed(), nil
	}
	return fg.paginate(
		fg.db.Model(&domain.Post{}).Where("author_id IN ?", authorIDs),
		page)
}

// paginate turns a filtered post query into one Feed page. The requested
// 1-based page number clamps to the nearest valid page, so page 999 of a
// one-item feed serves the last page instead of failing.
func (fg *feedGorm) paginate(query *gorm.DB, page int) (*domain.Feed, error) {
	// A fresh session makes the filtered query reusable for both the count
	// and the page fetch.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 {
		return emptyFeed(), nil
	}

	pageCount := int((total + domain.FeedPageSize - 1) / domain.FeedPageSize)
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	posts := []domain.Post{}
	err := query.
		Preload("Author").
		Preload("Group").
		Order("created_at desc, id desc").
		Offset((page - 1) * domain.FeedPageSize).
		Limit(domain.FeedPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &domain.Feed{
		Posts:     posts,
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}, nil
}

// emptyFeed is the zero-post feed: one empty page, nothing to count.
func emptyFeed() *domain.Feed {
	return &domain.Feed{
		Posts:     []domain.Post{},
		Page:      1,
		PageCount: 0,
		Total:     0,
	}
}
