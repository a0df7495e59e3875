// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// AuthHandler handles login and signup endpoints
type AuthHandler struct {
	memberService *member.Service
	config        *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		memberService: member.NewService(db, cfg),
		config:        cfg,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req member.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.memberService.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    resp,
	})
}

// SignUp handles POST /login/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req member.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.memberService.SignUp(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member registered successfully",
		"data":    resp,
	})
}

// GetProfile handles GET /members/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	memberID, exists := middleware.GetMemberIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Member not authenticated",
		})
		return
	}

	m, err := h.memberService.GetProfile(memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Member not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    m,
	})
}
