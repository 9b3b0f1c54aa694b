package domain

// FeedPageSize is the fixed number of posts per feed page.
const FeedPageSize = 10

// Feed is one page of an ordered post listing, along with the pagination
// metadata a client needs to render page controls. Posts come newest-first,
// ties broken by ID descending so the order is deterministic.
type Feed struct {
	Posts     []Post `json:"posts"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	Total     int64  `json:"total"`
}

// FeedService composes paginated post listings. Page numbers are 1-based and
// clamp to the nearest valid page instead of failing when out of range.
type FeedService interface {
	Global(page int) (*Feed, error)
	Group(groupID, page int) (*Feed, error)
	Profile(authorID, page int) (*Feed, error)
	Following(followerID, page int) (*Feed, error)
}
