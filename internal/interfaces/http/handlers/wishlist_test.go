// internal/interfaces/http/handlers/wishlist_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/domain/member"
	"github.com/your-org/giftshop-backend/internal/domain/product"
	"github.com/your-org/giftshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/giftshop-backend/internal/pkg/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newWishlistRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&member.Member{},
		&product.Product{},
		&product.ProductOption{},
		&product.WishItem{},
	))

	cfg := &config.Config{
		App: config.AppConfig{Name: "giftshop-test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
		},
	}

	handler := NewWishlistHandler(db, cfg)
	router := gin.New()
	wishes := router.Group("/wishes")
	wishes.Use(middleware.AuthMiddleware(cfg))
	{
		wishes.POST("/:productId", handler.AddWish)
		wishes.GET("", handler.GetWishes)
		wishes.GET("/count", handler.GetWishCount)
		wishes.DELETE("/:productId", handler.DeleteWish)
		wishes.DELETE("", handler.ClearWishes)
	}

	return router, db, cfg
}

func accessToken(t *testing.T, cfg *config.Config, memberID uint) string {
	t.Helper()
	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(memberID, "alice@example.com", false)
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *product.Product {
	t.Helper()
	p := &product.Product{Name: name, Price: 4500, IsActive: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestAddWish(t *testing.T) {
	router, db, cfg := newWishlistRouter(t)
	p := seedProduct(t, db, "Americano")
	token := accessToken(t, cfg, 1)

	w := doRequest(router, http.MethodPost, "/wishes/1", token)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, p.ID, body.Data.ID)
	assert.Equal(t, "Americano", body.Data.Name)
}

func TestAddWish_ProductMissing(t *testing.T) {
	router, _, cfg := newWishlistRouter(t)
	token := accessToken(t, cfg, 1)

	w := doRequest(router, http.MethodPost, "/wishes/9999", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddWish_InvalidProductID(t *testing.T) {
	router, _, cfg := newWishlistRouter(t)
	token := accessToken(t, cfg, 1)

	w := doRequest(router, http.MethodPost, "/wishes/abc", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishes_RequireAuth(t *testing.T) {
	router, _, _ := newWishlistRouter(t)

	w := doRequest(router, http.MethodGet, "/wishes", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/wishes/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetWishes(t *testing.T) {
	router, db, cfg := newWishlistRouter(t)
	seedProduct(t, db, "Americano")
	seedProduct(t, db, "Cheesecake")
	token := accessToken(t, cfg, 1)

	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/wishes/1", token).Code)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/wishes/2", token).Code)

	w := doRequest(router, http.MethodGet, "/wishes", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Products []struct {
				Name string `json:"name"`
			} `json:"products"`
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Count)
	require.Len(t, body.Data.Products, 2)
	assert.Equal(t, "Americano", body.Data.Products[0].Name)
	assert.Equal(t, "Cheesecake", body.Data.Products[1].Name)
}

func TestGetWishes_Paged(t *testing.T) {
	router, db, cfg := newWishlistRouter(t)
	for _, name := range []string{"P1", "P2", "P3"} {
		seedProduct(t, db, name)
	}
	token := accessToken(t, cfg, 1)

	for _, path := range []string{"/wishes/1", "/wishes/2", "/wishes/3"} {
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, path, token).Code)
	}

	var body struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}

	w := doRequest(router, http.MethodGet, "/wishes?page=0&size=2", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Count)

	w = doRequest(router, http.MethodGet, "/wishes?page=1&size=2", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Count)
}

func TestDeleteWish(t *testing.T) {
	router, db, cfg := newWishlistRouter(t)
	seedProduct(t, db, "Americano")
	token := accessToken(t, cfg, 1)

	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/wishes/1", token).Code)

	w := doRequest(router, http.MethodDelete, "/wishes/1", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Removed bool `json:"removed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Removed)

	// Second delete finds nothing to remove but is still a 200
	w = doRequest(router, http.MethodDelete, "/wishes/1", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Removed)
}

func TestDeleteWish_ProductMissing(t *testing.T) {
	router, _, cfg := newWishlistRouter(t)
	token := accessToken(t, cfg, 1)

	w := doRequest(router, http.MethodDelete, "/wishes/9999", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearWishesAndCount(t *testing.T) {
	router, db, cfg := newWishlistRouter(t)
	seedProduct(t, db, "P1")
	seedProduct(t, db, "P2")
	token := accessToken(t, cfg, 1)

	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/wishes/1", token).Code)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/wishes/2", token).Code)

	var countBody struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	w := doRequest(router, http.MethodGet, "/wishes/count", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countBody))
	assert.Equal(t, int64(2), countBody.Data.Count)

	var clearBody struct {
		Data struct {
			Removed bool `json:"removed"`
		} `json:"data"`
	}
	w = doRequest(router, http.MethodDelete, "/wishes", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clearBody))
	assert.True(t, clearBody.Data.Removed)

	w = doRequest(router, http.MethodGet, "/wishes/count", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countBody))
	assert.Equal(t, int64(0), countBody.Data.Count)
}
