package controllers

import (
	"net/http"
	"strings"

	"guesthouse-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AdminService
}

func NewAuthController(service *services.AdminService) *AuthController {
	return &AuthController{Service: service}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	admin, err := ac.Service.Login(strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		if err.Error() == "invalid_credentials" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        admin.ID,
		"full_name": admin.FullName,
		"username":  admin.Username,
	})
}
