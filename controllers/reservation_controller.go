package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReservationController exposes the booking flow: quoting allocation options,
// creating reservations and reconciling edits.
type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

func isValidationErr(err error) bool {
	return strings.HasPrefix(err.Error(), "validation:")
}

// Quote (POST /api/reservations/quote) runs the allocator against current
// inventory and prices each proposed option. Nothing is persisted.
func (rc *ReservationController) Quote(c *gin.Context) {
	var in services.QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	result, err := rc.Service.Quote(c.Request.Context(), in)
	if err != nil {
		switch {
		case isValidationErr(err):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case err.Error() == "no_rooms_available":
			utils.JSONError(c, http.StatusConflict, "no rooms available for that date range")
		default:
			log.Printf("quote failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to compute quote")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, result)
}

// Create (POST /api/reservations) persists a new reservation from a chosen
// option. Validation failures block submission; nothing is written.
func (rc *ReservationController) Create(c *gin.Context) {
	var in services.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	reservation, err := rc.Service.Create(c.Request.Context(), in)
	if err != nil {
		if isValidationErr(err) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create reservation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create reservation")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// Update (PUT /api/reservations/:id) reconciles the edited reservation
// against its persisted state. Store operations are independent; a partial
// failure returns the reservation as-is plus an aggregate report for a single
// user-facing alert.
func (rc *ReservationController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var in services.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	reservation, report, err := rc.Service.Edit(c.Request.Context(), uint(id), in)
	if err != nil {
		switch {
		case isValidationErr(err):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case err.Error() == "reservation_not_found":
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
		default:
			log.Printf("edit reservation %d failed: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update reservation")
		}
		return
	}

	status := http.StatusOK
	message := "reservation updated"
	if !report.FullyApplied() {
		status = http.StatusMultiStatus
		message = "reservation partially updated; some changes could not be saved"
	}
	c.JSON(status, gin.H{
		"success":   report.FullyApplied(),
		"message":   message,
		"data":      reservation,
		"reconcile": report,
	})
}

// List (GET /api/reservations)
func (rc *ReservationController) List(c *gin.Context) {
	reservations, err := rc.Service.GetAll()
	if err != nil {
		log.Printf("list reservations failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reservations")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

// Get (GET /api/reservations/:id)
func (rc *ReservationController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	reservation, err := rc.Service.GetByID(uint(id))
	if err != nil {
		if err.Error() == "reservation_not_found" {
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
			return
		}
		log.Printf("get reservation %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reservation")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// Cancel (DELETE /api/reservations/:id) soft-deletes the reservation and
// frees its rooms.
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := rc.Service.Cancel(uint(id)); err != nil {
		if err.Error() == "reservation_not_found" {
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
			return
		}
		log.Printf("cancel reservation %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"cancelled": true})
}
