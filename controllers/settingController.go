package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchSetting(c *gin.Context, id int) (models.SiteSetting, bool) {
	var setting models.SiteSetting
	found, err := initializers.DB.From("site_setting").
		Where(goqu.C("site_setting_id").Eq(id)).
		ScanStructContext(c, &setting)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return setting, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return setting, false
	}
	return setting, true
}

func GetSettings(c *gin.Context) {
	var settings []models.SiteSetting
	err := initializers.DB.From("site_setting").
		Order(goqu.C("setting_key").Asc()).
		ScanStructsContext(c, &settings)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	if settings == nil {
		settings = []models.SiteSetting{}
	}

	c.JSON(http.StatusOK, settings)
}

// GetSetting resolves the path parameter as a numeric id, or as a setting
// key when it isn't numeric. Keys are unique, so both forms address one row.
func GetSetting(c *gin.Context) {
	param := c.Param("id")

	if id, err := strconv.Atoi(param); err == nil {
		setting, ok := fetchSetting(c, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, setting)
		return
	}

	var setting models.SiteSetting
	found, err := initializers.DB.From("site_setting").
		Where(goqu.C("setting_key").Eq(param)).
		ScanStructContext(c, &setting)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return
	}

	c.JSON(http.StatusOK, setting)
}

func CreateSetting(c *gin.Context) {
	var input models.SiteSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Setting_Key == nil || *input.Setting_Key == "" {
		fe["setting_key"] = "Setting key is required"
	}
	if fe.respond(c) {
		return
	}

	var settingID int
	insert := initializers.DB.Insert("site_setting").
		Rows(goqu.Record{
			"setting_key":   *input.Setting_Key,
			"setting_value": strOrEmpty(input.Setting_Value),
		}).
		Returning("site_setting_id")
	if _, err := insert.Executor().ScanVal(&settingID); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors{"setting_key": "Setting key already exists"}})
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create setting"})
		return
	}

	setting, ok := fetchSetting(c, settingID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, setting)
}

func UpdateSetting(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchSetting(c, id)
	if !ok {
		return
	}

	var input models.SiteSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Setting_Key != nil {
		existing.Setting_Key = *input.Setting_Key
	}
	if input.Setting_Value != nil {
		existing.Setting_Value = *input.Setting_Value
	}

	update := initializers.DB.Update("site_setting").
		Set(goqu.Record{
			"setting_key":   existing.Setting_Key,
			"setting_value": existing.Setting_Value,
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.C("site_setting_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors{"setting_key": "Setting key already exists"}})
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}

	setting, ok := fetchSetting(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, setting)
}

func DeleteSetting(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("site_setting").
		Where(goqu.C("site_setting_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete setting"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted successfully"})
}
