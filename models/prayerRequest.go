package models

import "time"

var PrayerCategories = []string{"healing", "family", "financial", "guidance", "salvation", "grief", "thanksgiving", "other"}

var PrayerStatuses = []string{"new", "praying", "prayed", "answered"}

func ValidPrayerCategory(c string) bool {
	return oneOf(PrayerCategories, c)
}

func ValidPrayerStatus(s string) bool {
	return oneOf(PrayerStatuses, s)
}

type PrayerRequest struct {
	Prayer_Request_ID int       `json:"id" goqu:"skipinsert"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Category          string    `json:"category"`
	Request           string    `json:"request"`
	Is_Anonymous      bool      `json:"is_anonymous"`
	Allow_Sharing     bool      `json:"allow_sharing"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes"`
	Created_At        time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At        time.Time `json:"updated_at" goqu:"skipinsert"`
}

// DisplayName falls back to Anonymous when the requester left no name.
func (p PrayerRequest) DisplayName() string {
	if p.Name == "" {
		return "Anonymous"
	}
	return p.Name
}

type PrayerRequestInput struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Category      *string `json:"category"`
	Request       *string `json:"request"`
	Is_Anonymous  *bool   `json:"is_anonymous"`
	Allow_Sharing *bool   `json:"allow_sharing"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}
