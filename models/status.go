package models

// Publication lifecycle shared by posts, volumes, books and testimonials.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var ContentStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

func ValidContentStatus(s string) bool {
	return oneOf(ContentStatuses, s)
}

func oneOf(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
