// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"

	"github.com/your-org/giftshop-backend/internal/config"
	"gorm.io/gorm"
)

// Domain errors surfaced when a referenced entity is absent from the store.
var (
	ErrNotFound       = errors.New("product not found")
	ErrOptionNotFound = errors.New("product option not found")
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// WithTx returns a copy of the service bound to the given transaction
func (s *Service) WithTx(tx *gorm.DB) *Service {
	cp := *s
	cp.db = tx
	return &cp
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	IsActive  *bool  `form:"is_active"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// OptionCreateRequest represents product option creation data
type OptionCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

// ProductListResponse represents product response with pagination
type ProductListResponse struct {
	Products   []Product  `json:"products"`
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

// Exists reports whether a product with the given ID exists
func (s *Service) Exists(productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&Product{}).Where("id = ?", productID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

// GetEntity retrieves the full product aggregate, including its
// wish item collection, for read-modify-write updates
func (s *Service) GetEntity(productID uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Options").Preload("WishItems").
		Where("id = ?", productID).First(&prod).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// UpdateEntity persists the product aggregate, writing the wish item
// collection through to the store
func (s *Service) UpdateEntity(productID uint, prod *Product) error {
	prod.ID = productID
	err := s.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(prod).Error
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product with its options
func (s *Service) GetByID(productID uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Options").Where("id = ?", productID).First(&prod).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// List retrieves products with filtering and pagination
func (s *Service) List(req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).Preload("Options")

	if req.Search != "" {
		search := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", search, search)
	}

	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	orderClause := s.buildOrderClause(req.SortBy, req.SortOrder)
	query = query.Order(orderClause)

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
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

	return &ProductListResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// Create creates a new product
func (s *Service) Create(req *ProductCreateRequest) (*Product, error) {
	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &prod, nil
}

// Update updates an existing product
func (s *Service) Update(productID uint, req *ProductUpdateRequest) (*Product, error) {
	var prod Product
	err := s.db.Where("id = ?", productID).First(&prod).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return &prod, nil
}

// Delete removes a product
func (s *Service) Delete(productID uint) error {
	result := s.db.Delete(&Product{}, productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OptionExists reports whether a product option with the given ID exists
func (s *Service) OptionExists(optionID uint) (bool, error) {
	var count int64
	err := s.db.Model(&ProductOption{}).Where("id = ?", optionID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check option existence: %w", err)
	}
	return count > 0, nil
}

// GetOption retrieves a single product option
func (s *Service) GetOption(optionID uint) (*ProductOption, error) {
	var opt ProductOption
	err := s.db.Where("id = ?", optionID).First(&opt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product option: %w", err)
	}
	return &opt, nil
}

// AddOption adds an option to an existing product
func (s *Service) AddOption(productID uint, req *OptionCreateRequest) (*ProductOption, error) {
	exists, err := s.Exists(productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	opt := ProductOption{
		ProductID: productID,
		Name:      req.Name,
		Quantity:  req.Quantity,
	}

	if err := s.db.Create(&opt).Error; err != nil {
		return nil, fmt.Errorf("failed to create product option: %w", err)
	}

	return &opt, nil
}

// ListOptions retrieves all options of a product
func (s *Service) ListOptions(productID uint) ([]ProductOption, error) {
	exists, err := s.Exists(productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var options []ProductOption
	err = s.db.Where("product_id = ?", productID).Order("id ASC").Find(&options).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product options: %w", err)
	}
	return options, nil
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at": true,
		"name":       true,
		"price":      true,
		"id":         true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
