package news

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/middleware"
	"github.com/hillcrest-academy/core/internal/models"
	"github.com/hillcrest-academy/core/internal/pkg/markdown"
	"github.com/hillcrest-academy/core/internal/pkg/pagination"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth, optionalAuth gin.HandlerFunc) {
	rg.GET("", optionalAuth, h.List)
	rg.GET("/:identifier", h.Get)
	rg.POST("", auth, h.Create)
	rg.PUT("/:identifier", auth, h.Update)
	rg.PATCH("/:identifier", auth, h.Update)
	rg.DELETE("/:identifier", auth, h.Delete)
}

// newsView adds the rendered HTML body to the serialized model.
type newsView struct {
	models.NewsModel
	ContentHTML string `json:"content_html"`
}

func render(item models.NewsModel) newsView {
	return newsView{NewsModel: item, ContentHTML: markdown.Render(item.Content)}
}

func (h *Handler) List(c *gin.Context) {
	// Anonymous callers never see drafts; admins see everything unless
	// they ask for the published subset.
	q := ListQuery{
		Tag:           c.Query("tag"),
		PublishedOnly: !middleware.IsAdmin(c) || c.Query("published") == "true",
	}

	items, page, err := h.svc.List(q, pagination.Parse(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	views := make([]newsView, 0, len(items))
	for _, item := range items {
		views = append(views, render(item))
	}
	response.Paged(c, views, page)
}

func (h *Handler) Get(c *gin.Context) {
	item, err := h.svc.GetByIdentifier(c.Param("identifier"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, render(*item))
}

func (h *Handler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Create(input)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, render(*item))
}

func (h *Handler) Update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Update(c.Param("identifier"), input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, render(*item))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("identifier")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "news post deleted"})
}
