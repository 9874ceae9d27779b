package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	config.DB.Preload("RoomType").Order("room_number").Find(&rooms)

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room

	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("JSON binding error (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Room Number is required.",
		})
		return
	}

	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := config.DB.Where("id = ?", *room.RoomTypeID).First(&rt).Error; err != nil {
			log.Printf("invalid RoomTypeID provided: %v", *room.RoomTypeID)
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid roomTypeId provided.",
			})
			return
		}
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") || strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room Number '%s' already exists.", room.RoomNumber),
			})
			return
		}

		log.Printf("DB error creating room: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Room (PATCH /api/rooms/:id)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// protect immutable fields
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("update error for room %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room updated successfully",
	})
}

// ----------------------------------------------------
// 4. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		log.Printf("DB error deleting room %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete room.",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Room with ID %s not found.", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room deleted successfully",
	})
}

// ----------------------------------------------------
// 5. Room availability (GET /api/rooms/available)
// ----------------------------------------------------

// RoomController wraps the inventory provider for the availability endpoint.
type RoomController struct {
	Service *services.RoomService
}

func NewRoomController(service *services.RoomService) *RoomController {
	return &RoomController{Service: service}
}

// GetAvailableRooms answers which rooms are free for ?check_in=&check_out=.
// Edit mode passes ?reservation_id= so rooms the reservation already holds
// stay selectable.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid or missing check_in")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid or missing check_out")
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
		return
	}

	var reservationID uint
	if raw := c.Query("reservation_id"); raw != "" {
		id, pErr := strconv.ParseUint(raw, 10, 64)
		if pErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid reservation_id")
			return
		}
		reservationID = uint(id)
	}

	rooms, err := rc.Service.GetRoomsWithAvailability(checkIn, checkOut, reservationID)
	if err != nil {
		log.Printf("availability query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load availability")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, rooms)
}
