// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/domain/order"
	"github.com/your-org/giftshop-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&member.Member{},

		&product.Product{},
		&product.ProductOption{},
		&product.WishItem{},

		&order.Order{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Member indexes
		"CREATE INDEX IF NOT EXISTS idx_members_email_active ON members(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_members_created_at ON members(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_options_product ON product_options(product_id)",

		// Wish item indexes
		"CREATE INDEX IF NOT EXISTS idx_wish_items_member_product ON wish_items(member_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_wish_items_created_at ON wish_items(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_member_created ON orders(member_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_option ON orders(product_option_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds development data
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("🔄 Seeding initial data...")

	products := []product.Product{
		{
			Name:        "Americano",
			Description: "Single-origin americano, served hot or iced",
			Price:       4500,
			IsActive:    true,
			Options: []product.ProductOption{
				{Name: "Hot", Quantity: 100},
				{Name: "Iced", Quantity: 100},
			},
		},
		{
			Name:        "Cheesecake Slice",
			Description: "New York style cheesecake",
			Price:       6800,
			IsActive:    true,
			Options: []product.ProductOption{
				{Name: "Plain", Quantity: 50},
				{Name: "Strawberry", Quantity: 30},
			},
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}
