package http

import (
	"net/http"

	"templatebot/internal/usecases"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	admin *usecases.AdminUsecase
}

func NewHandler(admin *usecases.AdminUsecase) *Handler {
	return &Handler{admin: admin}
}

func SetupRoutes(r *gin.Engine, admin *usecases.AdminUsecase, middleware *Middleware) {
	h := NewHandler(admin)

	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size

	r.GET("/api/health", h.Health)
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(), middleware.RateLimit())
	{
		api.GET("/stats", h.Stats)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	token, err := h.admin.Login(loginReq.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
