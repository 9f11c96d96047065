package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-allocation/config"
	"hotel-allocation/models"
	"hotel-allocation/services"
	"hotel-allocation/utils"
)

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := config.DB.Preload("RoomType").Order("id ASC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("room create binding error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	if room.Status == "" {
		room.Status = models.RoomVacant
	}

	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := config.DB.First(&rt, *room.RoomTypeID).Error; err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomTypeId")
			return
		}
	}

	if result := config.DB.Create(&room); result.Error != nil {
		msg := result.Error.Error()
		if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("room number %q already exists", room.RoomNumber))
			return
		}
		log.Printf("room create db error: %v", result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Housekeeping override (PATCH /api/rooms/:id/housekeeping)
// ----------------------------------------------------

type HousekeepingRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetHousekeepingStatus is the housekeeping workflow's entry point: it forces
// a room into Maintenance or Cleaning, or clears the override. Cleared rooms
// are immediately re-derived from the booking set so a room with an active
// stay comes back as Occupied, not Vacant.
func SetHousekeepingStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	var req HousekeepingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	status := models.RoomStatus(req.Status)
	switch status {
	case models.RoomMaintenance, models.RoomCleaning:
		if err := config.DB.Model(&models.Room{}).Where("id = ?", id).
			Update("status", status).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "database error")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": id, "status": status})
	case models.RoomVacant:
		// clear the override, then hand status back to derivation
		if err := config.DB.Model(&models.Room{}).Where("id = ?", id).
			Update("status", models.RoomVacant).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "database error")
			return
		}
		derived, err := services.RoomStatusSynchronizer{}.Sync(config.DB, uint(id), utils.Today())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "database error")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": id, "status": derived})
	default:
		utils.JSONError(c, http.StatusBadRequest,
			"housekeeping can only set Maintenance, Cleaning or clear to Vacant")
	}
}

// ----------------------------------------------------
// 4. Retire Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

// RetireRoom soft-deletes the room. Bookings keep referencing it for history;
// the room just stops appearing in availability scans.
func RetireRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := config.DB.Delete(&models.Room{}, id).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": id, "retired": true})
}
