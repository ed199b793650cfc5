package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchVolume(c *gin.Context, id int) (models.Volume, bool) {
	var volume models.Volume
	found, err := initializers.DB.From("volume").
		Where(goqu.C("volume_id").Eq(id)).
		ScanStructContext(c, &volume)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch volume"})
		return volume, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found"})
		return volume, false
	}
	return volume, true
}

func GetVolumes(c *gin.Context) {
	query := initializers.DB.From("volume").Order(goqu.C("created_at").Desc())
	if status := listStatus(c); status != "all" {
		query = query.Where(goqu.C("status").Eq(status))
	}

	var volumes []models.Volume
	if err := query.ScanStructsContext(c, &volumes); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch volumes"})
		return
	}
	if volumes == nil {
		volumes = []models.Volume{}
	}

	c.JSON(http.StatusOK, volumes)
}

func GetVolume(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	volume, ok := fetchVolume(c, id)
	if !ok {
		return
	}

	if volume.Status != models.StatusPublished && !isOperator(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found"})
		return
	}

	c.JSON(http.StatusOK, volume)
}

func validateVolumeFields(input models.VolumeInput, fe fieldErrors) {
	if input.Category != nil && !models.ValidVolumeCategory(*input.Category) {
		fe["category"] = "Category must be one of: thanksgiving, wonder, faith, contemplation, reflection"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
}

func CreateVolume(c *gin.Context) {
	var input models.VolumeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Title == nil || *input.Title == "" {
		fe["title"] = "Title is required"
	}
	if input.Description == nil || *input.Description == "" {
		fe["description"] = "Description is required"
	}
	if input.Category == nil {
		fe["category"] = "Category is required"
	}
	validateVolumeFields(input, fe)
	if fe.respond(c) {
		return
	}

	status := models.StatusPublished
	if input.Status != nil {
		status = *input.Status
	}

	var volumeID int
	insert := initializers.DB.Insert("volume").
		Rows(goqu.Record{
			"title":         *input.Title,
			"description":   *input.Description,
			"excerpt":       strOrEmpty(input.Excerpt),
			"category":      *input.Category,
			"price":         strOrEmpty(input.Price),
			"image":         input.Image,
			"audio_file":    input.Audio_File,
			"download_link": strOrEmpty(input.Download_Link),
			"content":       strOrEmpty(input.Content),
			"status":        status,
		}).
		Returning("volume_id")
	if _, err := insert.Executor().ScanVal(&volumeID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create volume"})
		return
	}

	volume, ok := fetchVolume(c, volumeID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, volume)
}

func UpdateVolume(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchVolume(c, id)
	if !ok {
		return
	}

	var input models.VolumeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	validateVolumeFields(input, fe)
	if fe.respond(c) {
		return
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Excerpt != nil {
		existing.Excerpt = *input.Excerpt
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Image != nil {
		existing.Image = input.Image
	}
	if input.Audio_File != nil {
		existing.Audio_File = input.Audio_File
	}
	if input.Download_Link != nil {
		existing.Download_Link = *input.Download_Link
	}
	if input.Content != nil {
		existing.Content = *input.Content
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	update := initializers.DB.Update("volume").
		Set(goqu.Record{
			"title":         existing.Title,
			"description":   existing.Description,
			"excerpt":       existing.Excerpt,
			"category":      existing.Category,
			"price":         existing.Price,
			"image":         existing.Image,
			"audio_file":    existing.Audio_File,
			"download_link": existing.Download_Link,
			"content":       existing.Content,
			"status":        existing.Status,
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.C("volume_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volume"})
		return
	}

	volume, ok := fetchVolume(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, volume)
}

func DeleteVolume(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("volume").
		Where(goqu.C("volume_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete volume"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Volume deleted successfully"})
}

// TrackDownload bumps a volume's download counter by one and returns the
// new count. The increment happens in a single UPDATE so concurrent calls
// never lose updates.
func TrackDownload(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var downloads int
	update := initializers.DB.Update("volume").
		Set(goqu.Record{
			"downloads":  goqu.L("downloads + 1"),
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.C("volume_id").Eq(id)).
		Returning("downloads")

	found, err := update.Executor().ScanValContext(c, &downloads)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track download"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Download tracked", "downloads": downloads})
}
