package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studentreg/internal/app/services"
	"github.com/yigit/studentreg/internal/middleware"
)

// SystemController serves the liveness endpoints
type SystemController struct {
	systemService services.SystemService
}

// NewSystemController creates a new SystemController
func NewSystemController(systemService services.SystemService) *SystemController {
	return &SystemController{systemService: systemService}
}

// Hello answers with a greeting
// @Summary Hello
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HelloResponse}
// @Router /hello [post]
func (c *SystemController) Hello(ctx *gin.Context) {
	middleware.RespondOK(ctx, c.systemService.Hello())
}

// Health reports liveness and database connectivity
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [post]
func (c *SystemController) Health(ctx *gin.Context) {
	middleware.RespondOK(ctx, c.systemService.Health(ctx.Request.Context()))
}
