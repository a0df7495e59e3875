// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/domain/product"
	"github.com/your-org/giftshop-backend/internal/domain/wishlist"
	"github.com/your-org/giftshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	config          *config.Config
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(db, cfg),
		config:          cfg,
	}
}

// AddWish handles POST /wishes/:productId
func (h *WishlistHandler) AddWish(c *gin.Context) {
	m, ok := memberFromContext(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	prod, err := h.wishlistService.Add(productID, m)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add wish item",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wish item added successfully",
		"data":    prod,
	})
}

// GetWishes handles GET /wishes. Without paging parameters the full
// wishlist is returned; with page/size one page is returned.
func (h *WishlistHandler) GetWishes(c *gin.Context) {
	m, ok := memberFromContext(c)
	if !ok {
		return
	}

	pageStr := c.Query("page")
	sizeStr := c.Query("size")

	var (
		products []wishlist.ProductResponse
		err      error
	)

	if pageStr == "" && sizeStr == "" {
		products, err = h.wishlistService.ListByMember(m.ID)
	} else {
		page := 0
		if p, convErr := strconv.Atoi(pageStr); convErr == nil && p >= 0 {
			page = p
		}

		size := 20
		if s, convErr := strconv.Atoi(sizeStr); convErr == nil && s > 0 && s <= 100 {
			size = s
		}

		sortBy := c.DefaultQuery("sort_by", "id")
		sortOrder := c.DefaultQuery("sort_order", "asc")

		products, err = h.wishlistService.ListByMemberPage(m.ID, page, size, sortBy, sortOrder)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"products": products,
			"count":    len(products),
		},
	})
}

// DeleteWish handles DELETE /wishes/:productId
func (h *WishlistHandler) DeleteWish(c *gin.Context) {
	m, ok := memberFromContext(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	removed, err := h.wishlistService.DeleteOne(productID, m.ID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove wish item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wish item removed",
		"data": gin.H{
			"removed": removed,
		},
	})
}

// ClearWishes handles DELETE /wishes
func (h *WishlistHandler) ClearWishes(c *gin.Context) {
	m, ok := memberFromContext(c)
	if !ok {
		return
	}

	removed, err := h.wishlistService.DeleteAllByMember(m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared",
		"data": gin.H{
			"removed": removed,
		},
	})
}

// GetWishCount handles GET /wishes/count
func (h *WishlistHandler) GetWishCount(c *gin.Context) {
	m, ok := memberFromContext(c)
	if !ok {
		return
	}

	count, err := h.wishlistService.Count(m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count wish items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wish count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// memberFromContext builds the authenticated member from token claims.
// Writes the error response itself when authentication is missing.
func memberFromContext(c *gin.Context) (*member.Member, bool) {
	memberID, exists := middleware.GetMemberIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Member not authenticated",
		})
		return nil, false
	}

	email, _ := middleware.GetMemberEmailFromContext(c)
	return &member.Member{ID: memberID, Email: email}, true
}

// parseIDParam parses a numeric path parameter, writing the error
// response itself on failure
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
