// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"
	"fmt"

	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db             *gorm.DB
	config         *config.Config
	productService *product.Service
	mapper         *Mapper
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:             db,
		config:         cfg,
		productService: product.NewService(db, cfg),
		mapper:         NewMapper(),
	}
}

// Add creates a wish item linking the member to the product and writes
// the product's wish item collection through in the same transaction.
// Returns product.ErrNotFound when the product does not exist; on any
// failure no wish item row or collection change is left behind.
func (s *Service) Add(productID uint, mem *member.Member) (*ProductResponse, error) {
	var resp ProductResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productService.WithTx(tx)

		exists, err := products.Exists(productID)
		if err != nil {
			return err
		}
		if !exists {
			return product.ErrNotFound
		}

		// Load the aggregate before creating the row so the collection
		// append below does not duplicate the new item.
		prod, err := products.GetEntity(productID)
		if err != nil {
			return err
		}

		item := s.mapper.ToEntity(productID, mem)
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create wish item: %w", err)
		}

		prod.WishItems = append(prod.WishItems, *item)
		if err := products.UpdateEntity(productID, prod); err != nil {
			return err
		}

		resp = s.mapper.ToResponse(*item, prod).ProductDTO()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// ListByMember retrieves every wishlisted product of a member in
// insertion order. An unknown member yields an empty slice, not an error.
func (s *Service) ListByMember(memberID uint) ([]ProductResponse, error) {
	var items []product.WishItem
	err := s.db.Where("member_id = ?", memberID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wish items: %w", err)
	}

	return s.toProductResponses(items)
}

// ListByMemberPage retrieves one page of a member's wishlisted products.
// Pages are zero-based; an out-of-range page yields an empty slice.
func (s *Service) ListByMemberPage(memberID uint, page, size int, sortBy, sortOrder string) ([]ProductResponse, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	var items []product.WishItem
	err := s.db.Where("member_id = ?", memberID).
		Order(s.buildOrderClause(sortBy, sortOrder)).
		Offset(page * size).Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wish items: %w", err)
	}

	return s.toProductResponses(items)
}

// DeleteAllByMember removes every wish item of a member in one atomic
// operation. Returns true iff at least one row was removed.
func (s *Service) DeleteAllByMember(memberID uint) (bool, error) {
	result := s.db.Where("member_id = ?", memberID).Delete(&product.WishItem{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete wish items: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteOne removes the wish item matching the (member, product) pair.
// The product must exist even when a matching wish item does; otherwise
// product.ErrNotFound is returned. Returns true iff a row was removed.
func (s *Service) DeleteOne(productID, memberID uint) (bool, error) {
	var removed bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.productService.WithTx(tx).Exists(productID)
		if err != nil {
			return err
		}
		if !exists {
			return product.ErrNotFound
		}

		result := tx.Where("member_id = ? AND product_id = ?", memberID, productID).
			Delete(&product.WishItem{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete wish item: %w", result.Error)
		}

		removed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

// Count returns the number of wish items of a member
func (s *Service) Count(memberID uint) (int64, error) {
	var count int64
	err := s.db.Model(&product.WishItem{}).Where("member_id = ?", memberID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count wish items: %w", err)
	}
	return count, nil
}

// toProductResponses resolves product data for each wish item
func (s *Service) toProductResponses(items []product.WishItem) ([]ProductResponse, error) {
	responses := make([]ProductResponse, 0, len(items))
	for _, item := range items {
		var prod product.Product
		err := s.db.Where("id = ?", item.ProductID).First(&prod).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product was deleted after the wish item was added;
				// nothing left to show for this row.
				continue
			}
			return nil, fmt.Errorf("failed to load product details: %w", err)
		}
		responses = append(responses, s.mapper.ToResponse(item, &prod).ProductDTO())
	}
	return responses, nil
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"product_id": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "id"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
