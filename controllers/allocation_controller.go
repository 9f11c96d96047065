package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hotel-allocation/models"
	"hotel-allocation/services"
	"hotel-allocation/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	RoomID         uint           `json:"room_id" binding:"required"`
	GuestID        uint           `json:"guest_id" binding:"required"`
	CheckIn        string         `json:"check_in" binding:"required"`
	CheckOut       string         `json:"check_out" binding:"required"`
	NumberOfGuests int            `json:"number_of_guests"`
	TotalPrice     float64        `json:"total_price"`
	Details        datatypes.JSON `json:"details,omitempty"`
}

type ModifyDatesRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type AllocationController struct {
	Svc *services.AllocationService
}

func NewAllocationController(svc *services.AllocationService) *AllocationController {
	return &AllocationController{Svc: svc}
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

// respondEngineError translates the engine's typed failures to HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var ce *services.ConflictError
	var te *services.InvalidTransitionError
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking or room not found")
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{
			"success":                 false,
			"error":                   "room already booked for that interval",
			"conflicting_booking_ids": ce.BookingIDs,
		})
	case errors.As(err, &te):
		utils.JSONError(c, http.StatusUnprocessableEntity, te.Error())
	case errors.Is(err, services.ErrTimeout):
		utils.JSONError(c, http.StatusGatewayTimeout, "operation timed out, safe to retry")
	default:
		utils.JSONError(c, http.StatusServiceUnavailable, "store unavailable, retry later")
	}
}

// POST /api/bookings
func (ac *AllocationController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ac.Svc.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		RoomID:         req.RoomID,
		GuestID:        req.GuestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     req.TotalPrice,
		Details:        req.Details,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// PATCH /api/bookings/:id/dates
func (ac *AllocationController) ModifyDates(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req ModifyDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ac.Svc.ModifyDates(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/transition
func (ac *AllocationController) TransitionBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	target, ok := parseBookingStatus(req.Target)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "unknown target status: "+req.Target)
		return
	}
	ac.transition(c, id, target)
}

// POST /api/bookings/:id/check-in
func (ac *AllocationController) CheckIn(c *gin.Context) {
	if id, ok := bookingIDParam(c); ok {
		ac.transition(c, id, models.BookingActive)
	}
}

// POST /api/bookings/:id/check-out
func (ac *AllocationController) CheckOut(c *gin.Context) {
	if id, ok := bookingIDParam(c); ok {
		ac.transition(c, id, models.BookingCheckingOut)
	}
}

// POST /api/bookings/:id/finalize
func (ac *AllocationController) FinalizeCheckOut(c *gin.Context) {
	if id, ok := bookingIDParam(c); ok {
		ac.transition(c, id, models.BookingCompleted)
	}
}

// POST /api/bookings/:id/cancel
func (ac *AllocationController) CancelBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ac.Svc.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ac *AllocationController) transition(c *gin.Context, id uint, target models.BookingStatus) {
	booking, err := ac.Svc.TransitionBooking(c.Request.Context(), id, target)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GET /api/bookings/:id
func (ac *AllocationController) GetBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ac.Svc.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GET /api/bookings
func (ac *AllocationController) ListBookings(c *gin.Context) {
	list, err := ac.Svc.ListBookings(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/availability?room_id=&check_in=&check_out=
func (ac *AllocationController) CheckAvailability(c *gin.Context) {
	var roomID uint
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid room_id")
			return
		}
		roomID = uint(id)
	}
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := ac.Svc.CheckAvailability(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"available_room_ids": ids, "available": len(ids) > 0})
}

func parseBookingStatus(raw string) (models.BookingStatus, bool) {
	switch models.BookingStatus(raw) {
	case models.BookingConfirmed, models.BookingActive, models.BookingCheckingOut,
		models.BookingCompleted, models.BookingCancelled:
		return models.BookingStatus(raw), true
	}
	return "", false
}
