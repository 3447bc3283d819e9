package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/diasporahub/internal/app/models/dto"
)

// SystemController serves the health check and the app packaging manifest
type SystemController struct {
	manifest       dto.AppManifestResponse
	backendEnabled bool
}

// NewSystemController creates a new SystemController
func NewSystemController(manifest dto.AppManifestResponse, backendEnabled bool) *SystemController {
	return &SystemController{manifest: manifest, backendEnabled: backendEnabled}
}

func (c *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{
		Status:  "ok",
		Backend: c.backendEnabled,
	}))
}

// AppManifest describes how the web bundle is packaged into the native shell
func (c *SystemController) AppManifest(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.manifest))
}
