package models

import "time"

var VolumeCategories = []string{"thanksgiving", "wonder", "faith", "contemplation", "reflection"}

func ValidVolumeCategory(c string) bool {
	return oneOf(VolumeCategories, c)
}

// Volume is an audio devotional release. Downloads only ever moves up,
// through the dedicated track-download endpoint.
type Volume struct {
	Volume_ID     int       `json:"id" goqu:"skipinsert"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Excerpt       string    `json:"excerpt"`
	Category      string    `json:"category"`
	Price         string    `json:"price"`
	Image         *string   `json:"image"`
	Audio_File    *string   `json:"audio_file"`
	Download_Link string    `json:"download_link"`
	Content       string    `json:"content"`
	Downloads     int       `json:"downloads" goqu:"skipinsert"`
	Status        string    `json:"status"`
	Created_At    time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At    time.Time `json:"updated_at" goqu:"skipinsert"`
}

type VolumeInput struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Excerpt       *string `json:"excerpt"`
	Category      *string `json:"category"`
	Price         *string `json:"price"`
	Image         *string `json:"image"`
	Audio_File    *string `json:"audio_file"`
	Download_Link *string `json:"download_link"`
	Content       *string `json:"content"`
	Status        *string `json:"status"`
}
