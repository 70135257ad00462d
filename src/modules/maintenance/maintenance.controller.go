package maintenance

import (
	"net/http"
	"strconv"

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
		logger:  logger.Named("[maintenance-controller]"),
	}
}

func (c *Controller) FindAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	q := ctx.Query("q")
	strategy := ctx.Query("strategy")

	maintenances, err := c.service.FindAll(ctx, page, limit, q, strategy)
	if err != nil {
		c.logger.Errorw("failed to find maintenances", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenances retrieved successfully", maintenances))
}

func (c *Controller) Create(ctx *gin.Context) {
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	m, err := c.service.Create(ctx, &dto)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("maintenance created successfully", m))
}

func (c *Controller) FindByID(ctx *gin.Context) {
	id := ctx.Param("id")

	m, err := c.service.FindByID(ctx, id)
	if err != nil {
		c.logger.Errorw("failed to find maintenance", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	if m == nil {
		ctx.JSON(http.StatusNotFound, utils.NewFailResponse("Maintenance not found"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenance retrieved successfully", m))
}

func (c *Controller) UpdateFull(ctx *gin.Context) {
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

	m, err := c.service.UpdateFull(ctx, id, &dto)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenance updated successfully", m))
}

func (c *Controller) UpdatePartial(ctx *gin.Context) {
	id := ctx.Param("id")

	var dto PartialUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	m, err := c.service.UpdatePartial(ctx, id, &dto)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenance updated successfully", m))
}

func (c *Controller) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.service.Delete(ctx, id); err != nil {
		c.logger.Errorw("failed to delete maintenance", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("maintenance deleted successfully", nil))
}

func (c *Controller) Pause(ctx *gin.Context) {
	id := ctx.Param("id")

	m, err := c.service.Pause(ctx, id)
	if err != nil {
		c.logger.Errorw("failed to pause maintenance", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenance paused successfully", m))
}

func (c *Controller) Resume(ctx *gin.Context) {
	id := ctx.Param("id")

	m, err := c.service.Resume(ctx, id)
	if err != nil {
		c.logger.Errorw("failed to resume maintenance", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("maintenance resumed successfully", m))
}
