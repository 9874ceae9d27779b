package controllers

import (
	"net/http"
	"strings"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

func GetRoomTypes(c *gin.Context) {
	var roomTypes []models.RoomType
	config.DB.Find(&roomTypes)

	c.JSON(http.StatusOK, roomTypes)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Type name is required.",
		})
		return
	}
	if rt.MaxGuests < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "maxGuests must be at least 1.",
		})
		return
	}

	if err := config.DB.Create(&rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, rt)
}

func DeleteRoomType(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.RoomType{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete room type.",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Room type not found.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room type deleted successfully",
	})
}
