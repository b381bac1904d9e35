package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type AssetController struct {
	storage services.StorageService
}

func NewAssetController(storage services.StorageService) *AssetController {
	return &AssetController{storage: storage}
}

// ServeAsset godoc
// @Summary Serve an uploaded image
// @Tags Assets
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param key path string true "Object key, e.g. plan_images/<id>.png"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Router /assets/{key} [get]
func (a *AssetController) ServeAsset(c *gin.Context) {
	data, contentType, err := a.storage.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, contentType, data)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health godoc
// @Summary Liveness and database check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
}
