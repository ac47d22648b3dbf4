package image

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc        *Service
	uploadsDir string
}

func NewHandler(svc *Service, uploadsDir string) *Handler {
	return &Handler{svc: svc, uploadsDir: uploadsDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/default", h.Default)
	rg.GET("/:id", h.Get)
	rg.POST("", auth, h.Upload)
	rg.PATCH("/:id", auth, h.Update)
	rg.PUT("/:id/replace", auth, h.Replace)
	rg.DELETE("/:id", auth, h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	images, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, images)
}

func (h *Handler) Default(c *gin.Context) {
	img, err := h.svc.Default()
	if err != nil {
		if errors.Is(err, ErrNoDefaultImage) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, img)
}

func (h *Handler) Get(c *gin.Context) {
	img, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, img)
}

func (h *Handler) Upload(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		response.BadRequest(c, "title is required")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, ErrMissingFile.Error())
		return
	}

	saved, err := saveUpload(header, h.uploadsDir)
	if err != nil {
		if isUploadError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	img, err := h.svc.Create(title, "/uploads/"+saved.Name, saved.MimeType, saved.Size)
	if err != nil {
		_ = os.Remove(filepath.Join(h.uploadsDir, saved.Name))
		if errors.Is(err, ErrTitleTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, img)
}

func (h *Handler) Update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	img, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrInvalidUsageField), errors.Is(err, ErrUnsetDefault):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, img)
}

func (h *Handler) Replace(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, ErrMissingFile.Error())
		return
	}

	saved, err := saveUpload(header, h.uploadsDir)
	if err != nil {
		if isUploadError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	img, err := h.svc.Replace(c.Param("id"), "/uploads/"+saved.Name, saved.MimeType, saved.Size)
	if err != nil {
		_ = os.Remove(filepath.Join(h.uploadsDir, saved.Name))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, img)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrLastDefaultImage):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"message": "image deleted"})
}

func isUploadError(err error) bool {
	return errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrNotAnImage) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrUnsafeExtension)
}
