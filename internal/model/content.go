package model

import "time"

// CategoryID identifies a category
type CategoryID string

// Category groups blog posts
type Category struct {
	ID           CategoryID
	Name         string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlogID identifies a blog post
type BlogID string

// BlogStatus is the publication state of a post
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
	BlogScheduled BlogStatus = "scheduled"
)

// Blog is a post. CategoryID is empty for uncategorised posts and
// PublishDate is nil until the post is published or scheduled.
type Blog struct {
	ID          BlogID
	Title       string
	Content     string
	CategoryID  CategoryID
	AuthorID    PrincipalID
	AuthorName  string
	Status      BlogStatus
	PublishDate *time.Time
	Featured    bool
	Tags        []string
	BlogImage   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VisibleAt reports whether the post counts as live at now:
// published, or scheduled with a publish date that has passed.
func (b *Blog) VisibleAt(now time.Time) bool {
	switch b.Status {
	case BlogPublished:
		return true
	case BlogScheduled:
		return b.PublishDate != nil && !b.PublishDate.After(now)
	default:
		return false
	}
}

// EffectiveDate is the instant a post is dated by: its publish date,
// falling back to its creation time only when no publish date is set.
func (b *Blog) EffectiveDate() time.Time {
	if b.PublishDate != nil {
		return *b.PublishDate
	}
	return b.CreatedAt
}

// DayFormat is the layout of a time series bucket key
const DayFormat = "2006-01-02"

// DayCountQuery selects visible posts whose effective date lies in
// [Since, Until] and buckets them by calendar day in Location.
type DayCountQuery struct {
	Now      time.Time
	Since    time.Time
	Until    time.Time
	Location *time.Location
}

// CategoryCount is the number of visible posts referencing a category.
// An empty CategoryID counts posts with no category.
type CategoryCount struct {
	CategoryID CategoryID
	Count      int
}

// TimeBucket is the number of posts dated on one calendar day
type TimeBucket struct {
	Date  string
	Count int
}

// CategoryTally is the number of posts under one category label
type CategoryTally struct {
	Label string
	Count int
}
