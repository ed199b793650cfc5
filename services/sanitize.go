package services

import "github.com/microcosm-cc/bluemonday"

// Free-text fields submitted by anonymous visitors are stored as plain
// text; strip any markup before it reaches the database.
var strictPolicy = bluemonday.StrictPolicy()

func SanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
