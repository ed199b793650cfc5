package models

import "time"

// SiteSetting is a key/value pair consumed by the public site. Keys are
// unique at the database layer.
type SiteSetting struct {
	Site_Setting_ID int       `json:"id" goqu:"skipinsert"`
	Setting_Key     string    `json:"setting_key"`
	Setting_Value   string    `json:"setting_value"`
	Updated_At      time.Time `json:"updated_at" goqu:"skipinsert"`
}

type SiteSettingInput struct {
	Setting_Key   *string `json:"setting_key"`
	Setting_Value *string `json:"setting_value"`
}
