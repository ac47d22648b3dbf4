package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/middleware"
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
	rg.POST("/login", h.Login)
	rg.POST("/logout", auth, h.Logout)
	rg.GET("/session", auth, h.Session)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	token, admin, err := h.svc.Login(req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token": token,
		"admin": admin,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	err := h.svc.Logout(middleware.AdminID(c), middleware.SessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) Session(c *gin.Context) {
	admin, err := h.svc.CurrentAdmin(middleware.AdminID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, admin)
}
