package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogController exposes the special-charge catalog.
type CatalogController struct {
	Service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{Service: service}
}

// ListCharges (GET /api/charges) returns the active master charge
// definitions.
func (cc *CatalogController) ListCharges(c *gin.Context) {
	items, err := cc.Service.ListActiveCharges(c.Request.Context())
	if err != nil {
		log.Printf("failed to list charge catalog: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load charge catalog")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// CreateCharge (POST /api/charges)
func (cc *CatalogController) CreateCharge(c *gin.Context) {
	var item models.ChargeCatalogItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	if item.DefaultRate < 0 {
		utils.JSONError(c, http.StatusBadRequest, "defaultRate must not be negative")
		return
	}

	if err := cc.Service.Create(c.Request.Context(), &item); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			utils.JSONError(c, http.StatusConflict, "a charge with that name already exists")
			return
		}
		log.Printf("failed to create catalog charge: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create charge")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

// UpdateCharge (PUT /api/charges/:id)
func (cc *CatalogController) UpdateCharge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := cc.Service.Update(c.Request.Context(), uint(id), updates); err != nil {
		log.Printf("failed to update catalog charge %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update charge")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}

// DeleteCharge (DELETE /api/charges/:id)
func (cc *CatalogController) DeleteCharge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := cc.Service.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "charge not found")
			return
		}
		log.Printf("failed to delete catalog charge %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete charge")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
