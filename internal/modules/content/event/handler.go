package event

import (
	"errors"

	"github.com/gin-gonic/gin"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:identifier", h.Get)
	rg.POST("", auth, h.Create)
	rg.PUT("/:identifier", auth, h.Update)
	rg.PATCH("/:identifier", auth, h.Update)
	rg.DELETE("/:identifier", auth, h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	upcoming := c.Query("upcoming") == "true"

	items, page, err := h.svc.List(upcoming, pagination.Parse(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, page)
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
	response.OK(c, item)
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
	response.Created(c, item)
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
	response.OK(c, item)
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
	response.OK(c, gin.H{"message": "event deleted"})
}
