// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/domain/product"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an order is absent from the store.
var ErrNotFound = errors.New("order not found")

// Service handles order business logic
type Service struct {
	db             *gorm.DB
	config         *config.Config
	productService *product.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:             db,
		config:         cfg,
		productService: product.NewService(db, cfg),
	}
}

// PlaceOrderRequest represents order placement data
type PlaceOrderRequest struct {
	ProductOptionID uint   `json:"product_option_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	Message         string `json:"message"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// OrderListResponse represents order response with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Place creates a new order against a product option. The referenced
// option must exist before anything is written; a missing option fails
// with product.ErrOptionNotFound and leaves no partial order behind.
func (s *Service) Place(memberID uint, req *PlaceOrderRequest) (*Order, error) {
	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	exists, err := s.productService.WithTx(tx).OptionExists(req.ProductOptionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !exists {
		tx.Rollback()
		return nil, product.ErrOptionNotFound
	}

	// Stamp timestamps at the write boundary
	now := time.Now().UTC()
	ord := Order{
		MemberID:        memberID,
		ProductOptionID: req.ProductOptionID,
		Quantity:        req.Quantity,
		Message:         req.Message,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := tx.Create(&ord).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &ord, nil
}

// GetByID retrieves a single order owned by the member
func (s *Service) GetByID(memberID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.Where("id = ? AND member_id = ?", orderID, memberID).First(&ord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &ord, nil
}

// ListByMember retrieves a member's orders with pagination
func (s *Service) ListByMember(memberID uint, req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &OrderListResponse{
		Orders:     orders,
		Pagination: pagination,
	}, nil
}
