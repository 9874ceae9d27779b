package controllers

import (
	"net/http"
	"strings"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load customers")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customers)
}

func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	customer.FullName = strings.TrimSpace(customer.FullName)
	if customer.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "fullName is required")
		return
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, customer)
}
