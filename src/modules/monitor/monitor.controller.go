package monitor

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sentrywatch/src/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MonitorController struct {
	service          Service
	uptimeCalculator *UptimeCalculator
	logger           *zap.SugaredLogger
}

func NewMonitorController(
	service Service,
	uptimeCalculator *UptimeCalculator,
	logger *zap.SugaredLogger,
) *MonitorController {
	return &MonitorController{
		service:          service,
		uptimeCalculator: uptimeCalculator,
		logger:           logger.Named("[monitor-controller]"),
	}
}

func (mc *MonitorController) FindAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	q := ctx.Query("q")

	var active *bool
	if v := ctx.Query("active"); v != "" {
		b := v == "true"
		active = &b
	}
	var status *int
	if v := ctx.Query("status"); v != "" {
		if s, err := strconv.Atoi(v); err == nil {
			status = &s
		}
	}

	monitors, err := mc.service.FindAll(ctx, page, limit, q, active, status)
	if err != nil {
		mc.logger.Errorw("failed to find monitors", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", monitors))
}

func (mc *MonitorController) FindByIDs(ctx *gin.Context) {
	idsParam := ctx.Query("ids")
	if idsParam == "" {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("ids query parameter is required"))
		return
	}
	ids := strings.Split(idsParam, ",")

	monitors, err := mc.service.FindByIDs(ctx, ids)
	if err != nil {
		mc.logger.Errorw("failed to find monitors by ids", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", monitors))
}

func (mc *MonitorController) FindByID(ctx *gin.Context) {
	id := ctx.Param("id")
	m, err := mc.service.FindByID(ctx, id)
	if err != nil {
		mc.logger.Errorw("failed to find monitor", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	if m == nil {
		ctx.JSON(http.StatusNotFound, utils.NewFailResponse("Monitor not found"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", m))
}

func (mc *MonitorController) Create(ctx *gin.Context) {
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	created, err := mc.service.Create(ctx, &dto)
	if err != nil {
		mc.logger.Errorw("failed to create monitor", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("monitor created successfully", created))
}

func (mc *MonitorController) UpdateFull(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	updated, err := mc.service.UpdateFull(ctx, id, &dto)
	if err != nil {
		mc.logger.Errorw("failed to update monitor", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("monitor updated successfully", updated))
}

func (mc *MonitorController) UpdatePartial(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto PartialUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	updated, err := mc.service.UpdatePartial(ctx, id, &dto)
	if err != nil {
		mc.logger.Errorw("failed to update monitor", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("monitor updated successfully", updated))
}

func (mc *MonitorController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := mc.service.Delete(ctx, id); err != nil {
		mc.logger.Errorw("failed to delete monitor", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("monitor deleted successfully", nil))
}

func (mc *MonitorController) ResetMonitorData(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := mc.service.ResetMonitorData(ctx, id); err != nil {
		mc.logger.Errorw("failed to reset monitor data", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("monitor data reset successfully", nil))
}

func (mc *MonitorController) FindByMonitorIDPaginated(ctx *gin.Context) {
	id := ctx.Param("id")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	reverse := ctx.DefaultQuery("reverse", "false") == "true"

	var important *bool
	if v := ctx.Query("important"); v != "" {
		b := v == "true"
		important = &b
	}

	beats, err := mc.uptimeCalculator.HeartbeatService.FindByMonitorIDPaginated(ctx, id, limit, page, important, reverse)
	if err != nil {
		mc.logger.Errorw("failed to find heartbeats", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", beats))
}

// GetUptimeStats returns uptime(monitorId, windowHours) for the common
// windows shown on a monitor's dashboard card.
func (mc *MonitorController) GetUptimeStats(ctx *gin.Context) {
	id := ctx.Param("id")
	now := time.Now()

	windows := map[string]float64{"24h": 24, "30d": 24 * 30, "1y": 24 * 365}
	stats := make(map[string]float64, len(windows))
	for name, hours := range windows {
		ratio, err := mc.uptimeCalculator.GetUptimeRatio(ctx, id, hours, now)
		if err != nil {
			mc.logger.Errorw("failed to compute uptime ratio", "window", name, "error", err)
			ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
			return
		}
		stats[name] = ratio * 100
	}

	avgPing, err := mc.uptimeCalculator.AvgPing(ctx, id, 24, now)
	if err != nil {
		mc.logger.Errorw("failed to compute avg ping", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", gin.H{
		"uptime":  stats,
		"avgPing": avgPing,
	}))
}

// GetStatPoints returns bucketed chart points for the monitor's history,
// used to render the uptime heartbeat bar and ping chart.
func (mc *MonitorController) GetStatPoints(ctx *gin.Context) {
	id := ctx.Param("id")

	hoursBack, _ := strconv.Atoi(ctx.DefaultQuery("hours", "24"))
	granularity := UptimeGranularity(ctx.DefaultQuery("granularity", string(GranularityMinute)))

	until := time.Now()
	since := until.Add(-time.Duration(hoursBack) * time.Hour)

	result, err := mc.uptimeCalculator.GetUptime(ctx, id, since, until, granularity)
	if err != nil {
		mc.logger.Errorw("failed to compute stat points", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", result))
}
