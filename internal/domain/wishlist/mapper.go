// internal/domain/wishlist/mapper.go
package wishlist

import (
	"time"

	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/domain/product"
)

// ProductResponse is the transport shape of a wishlisted product
type ProductResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

// WishItemResponse is the transport shape of a wish item with its
// resolved product data
type WishItemResponse struct {
	ID       uint            `json:"id"`
	MemberID uint            `json:"member_id"`
	Product  ProductResponse `json:"product"`
	AddedAt  time.Time       `json:"added_at"`
}

// ProductDTO extracts just the nested product transport object.
// Pure projection, no side effects.
func (r WishItemResponse) ProductDTO() ProductResponse {
	return r.Product
}

// Mapper converts between wish item records and transport objects
type Mapper struct{}

// NewMapper creates a new wishlist mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToEntity builds a wish item record linking the member to the product
func (m *Mapper) ToEntity(productID uint, mem *member.Member) *product.WishItem {
	return &product.WishItem{
		MemberID:  mem.ID,
		ProductID: productID,
	}
}

// ToResponse builds the transport object for a wish item and its product
func (m *Mapper) ToResponse(item product.WishItem, prod *product.Product) WishItemResponse {
	return WishItemResponse{
		ID:       item.ID,
		MemberID: item.MemberID,
		Product: ProductResponse{
			ID:       prod.ID,
			Name:     prod.Name,
			Price:    prod.Price,
			ImageURL: prod.ImageURL,
		},
		AddedAt: item.CreatedAt,
	}
}
