package gallery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/middleware"
	"github.com/hillcrest-academy/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GalleryModel{}))

	router := gin.New()
	handler := NewHandler(NewService(db))
	noAuth := func(c *gin.Context) { c.Next() }
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set(middleware.ContextAdminID, "test-admin")
		}
		c.Next()
	}
	handler.RegisterRoutes(router.Group("/api/gallery"), noAuth, optionalAuth)
	return router
}

func postItem(t *testing.T, router *gin.Engine, body string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/gallery", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func listTitles(t *testing.T, router *gin.Engine, authed bool) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	if authed {
		req.Header.Set("Authorization", "Bearer test")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	titles := make([]string, 0, len(payload.Data))
	for _, item := range payload.Data {
		titles = append(titles, item.Title)
	}
	return titles
}

func TestAnonymousGalleryExcludesUnpublished(t *testing.T) {
	router := newTestRouter(t)

	postItem(t, router, `{"title":"Hidden","imageUrl":"/uploads/a.png"}`)
	postItem(t, router, `{"title":"Visible","imageUrl":"/uploads/b.png","isPublished":true}`)

	titles := listTitles(t, router, false)
	assert.Equal(t, []string{"Visible"}, titles)
}

func TestAuthenticatedGallerySeesEverything(t *testing.T) {
	router := newTestRouter(t)

	postItem(t, router, `{"title":"Hidden","imageUrl":"/uploads/a.png"}`)
	postItem(t, router, `{"title":"Visible","imageUrl":"/uploads/b.png","isPublished":true}`)

	titles := listTitles(t, router, true)
	assert.Len(t, titles, 2)
}
