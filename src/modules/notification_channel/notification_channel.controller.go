package notification_channel

import (
	"net/http"
	"strconv"
	"time"

	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/monitor"
	"sentrywatch/src/modules/shared"
	"sentrywatch/src/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewController(service Service, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		service: service,
		logger:  logger.Named("[notification-channel-controller]"),
	}
}

func (nc *Controller) FindAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	q := ctx.Query("q")

	channels, err := nc.service.FindAll(ctx, page, limit, q)
	if err != nil {
		nc.logger.Errorw("failed to find notification channels", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", channels))
}

func (nc *Controller) FindByID(ctx *gin.Context) {
	id := ctx.Param("id")
	channel, err := nc.service.FindByID(ctx, id)
	if err != nil {
		nc.logger.Errorw("failed to find notification channel", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	if channel == nil {
		ctx.JSON(http.StatusNotFound, utils.NewFailResponse("Notification channel not found"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", channel))
}

func (nc *Controller) Create(ctx *gin.Context) {
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	provider, ok := GetNotificationChannelProvider(dto.Type)
	if !ok {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Unsupported notification channel type: "+dto.Type))
		return
	}
	if err := provider.Validate(dto.Config); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	created, err := nc.service.Create(ctx, &dto)
	if err != nil {
		nc.logger.Errorw("failed to create notification channel", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("notification channel created successfully", created))
}

func (nc *Controller) UpdateFull(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	provider, ok := GetNotificationChannelProvider(dto.Type)
	if !ok {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Unsupported notification channel type: "+dto.Type))
		return
	}
	if err := provider.Validate(dto.Config); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	updated, err := nc.service.UpdateFull(ctx, id, &dto)
	if err != nil {
		nc.logger.Errorw("failed to update notification channel", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("notification channel updated successfully", updated))
}

func (nc *Controller) UpdatePartial(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto PartialUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	updated, err := nc.service.UpdatePartial(ctx, id, &dto)
	if err != nil {
		nc.logger.Errorw("failed to update notification channel", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("notification channel updated successfully", updated))
}

func (nc *Controller) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := nc.service.Delete(ctx, id); err != nil {
		nc.logger.Errorw("failed to delete notification channel", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("notification channel deleted successfully", nil))
}

// testRequest carries an ad-hoc config for a provider type so a channel can
// be exercised before it is saved.
type testRequest struct {
	Type   string `json:"type" validate:"required"`
	Config string `json:"config" validate:"required"`
}

func (nc *Controller) Test(ctx *gin.Context) {
	var req testRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	provider, ok := GetNotificationChannelProvider(req.Type)
	if !ok {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Unsupported notification channel type: "+req.Type))
		return
	}
	if err := provider.Validate(req.Config); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	now := time.Now()
	testMonitor := &monitor.Model{Name: "Test Monitor"}
	testHeartbeat := &heartbeat.Model{Status: shared.MonitorStatusUp, Msg: "Test notification", Time: now}

	if err := provider.Send(ctx, req.Config, "This is a test notification from sentrywatch.", testMonitor, testHeartbeat); err != nil {
		ctx.JSON(http.StatusOK, utils.NewFailResponse("Test notification failed: "+err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("test notification sent successfully", nil))
}
