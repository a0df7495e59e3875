// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftshop-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Product{}, &ProductOption{}, &WishItem{}))

	return NewService(db, &config.Config{})
}

func createTestProduct(t *testing.T, svc *Service, name string, price int64) *Product {
	t.Helper()
	prod, err := svc.Create(&ProductCreateRequest{Name: name, Price: price, IsActive: true})
	require.NoError(t, err)
	return prod
}

func TestExists(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	exists, err := svc.Exists(prod.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndGetByID(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	got, err := svc.GetByID(prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Americano", got.Name)
	assert.Equal(t, int64(4500), got.Price)
	assert.True(t, got.IsActive)
}

func TestGetEntity_LoadsWishItemCollection(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	require.NoError(t, svc.db.Create(&WishItem{MemberID: 1, ProductID: prod.ID}).Error)
	require.NoError(t, svc.db.Create(&WishItem{MemberID: 2, ProductID: prod.ID}).Error)

	got, err := svc.GetEntity(prod.ID)
	require.NoError(t, err)
	assert.Len(t, got.WishItems, 2)
}

func TestGetEntity_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetEntity(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEntity_WritesCollectionThrough(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	entity, err := svc.GetEntity(prod.ID)
	require.NoError(t, err)
	entity.WishItems = append(entity.WishItems, WishItem{MemberID: 7, ProductID: prod.ID})

	require.NoError(t, svc.UpdateEntity(prod.ID, entity))

	reloaded, err := svc.GetEntity(prod.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.WishItems, 1)
	assert.Equal(t, uint(7), reloaded.WishItems[0].MemberID)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	newPrice := int64(5000)
	updated, err := svc.Update(prod.ID, &ProductUpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), updated.Price)
	assert.Equal(t, "Americano", updated.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)

	name := "x"
	_, err := svc.Update(9999, &ProductUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	require.NoError(t, svc.Delete(prod.ID))

	exists, err := svc.Exists(prod.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Delete(prod.ID), ErrNotFound)
}

func TestList_Pagination(t *testing.T) {
	svc := newTestService(t)
	for _, name := range []string{"P1", "P2", "P3"} {
		createTestProduct(t, svc, name, 100)
	}

	resp, err := svc.List(&ProductListRequest{Page: 1, Limit: 2, SortBy: "id", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)

	resp, err = svc.List(&ProductListRequest{Page: 2, Limit: 2, SortBy: "id", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 1)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestList_Search(t *testing.T) {
	svc := newTestService(t)
	createTestProduct(t, svc, "Americano", 4500)
	createTestProduct(t, svc, "Cheesecake", 6000)

	resp, err := svc.List(&ProductListRequest{Page: 1, Limit: 10, Search: "cheese"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Cheesecake", resp.Products[0].Name)
}

func TestList_UnknownSortFieldFallsBack(t *testing.T) {
	svc := newTestService(t)
	createTestProduct(t, svc, "P1", 100)

	resp, err := svc.List(&ProductListRequest{Page: 1, Limit: 10, SortBy: "name; DROP TABLE products", SortOrder: "up"})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 1)
}

func TestAddOption(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	opt, err := svc.AddOption(prod.ID, &OptionCreateRequest{Name: "Tall", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, prod.ID, opt.ProductID)
	assert.Equal(t, "Tall", opt.Name)

	_, err = svc.AddOption(9999, &OptionCreateRequest{Name: "Tall"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOptions(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)

	_, err := svc.AddOption(prod.ID, &OptionCreateRequest{Name: "Tall", Quantity: 10})
	require.NoError(t, err)
	_, err = svc.AddOption(prod.ID, &OptionCreateRequest{Name: "Grande", Quantity: 5})
	require.NoError(t, err)

	options, err := svc.ListOptions(prod.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Tall", options[0].Name)
	assert.Equal(t, "Grande", options[1].Name)

	_, err = svc.ListOptions(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOptionExistsAndGetOption(t *testing.T) {
	svc := newTestService(t)
	prod := createTestProduct(t, svc, "Americano", 4500)
	opt, err := svc.AddOption(prod.ID, &OptionCreateRequest{Name: "Tall", Quantity: 10})
	require.NoError(t, err)

	exists, err := svc.OptionExists(opt.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := svc.GetOption(opt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tall", got.Name)

	_, err = svc.GetOption(9999)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}
