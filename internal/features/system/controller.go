package system

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemController struct{}

func (c *SystemController) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.Healthcheck)
}

func (c *SystemController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/stats", c.GetSystemStats)
}

// Healthcheck
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (c *SystemController) Healthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSystemStats
// @Summary Host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /system/stats [get]
func (c *SystemController) GetSystemStats(ctx *gin.Context) {
	stats := gin.H{
		"goroutines": runtime.NumGoroutine(),
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		stats["memory"] = gin.H{
			"totalBytes":  memory.Total,
			"usedBytes":   memory.Used,
			"usedPercent": memory.UsedPercent,
		}
	}

	if usage, err := disk.Usage("/"); err == nil {
		stats["disk"] = gin.H{
			"totalBytes":  usage.Total,
			"usedBytes":   usage.Used,
			"usedPercent": usage.UsedPercent,
		}
	}

	ctx.JSON(http.StatusOK, stats)
}

var systemController = &SystemController{}

func GetSystemController() *SystemController {
	return systemController
}
