package controllers

import (
	"net/http"

	"github.com/booay/pizza-shop-api/internal/auth"
	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles admin surface logins.
type AuthController struct {
	userService services.UserService
	issuer      *auth.TokenIssuer
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(userService services.UserService, issuer *auth.TokenIssuer) *AuthController {
	return &AuthController{
		userService: userService,
		issuer:      issuer,
	}
}

// Login godoc
// @Summary Log into the admin surface
// @Description Exchange operator credentials for a Bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}

	user, err := ac.userService.GetUserByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	tokenString, expiresIn, err := ac.issuer.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
