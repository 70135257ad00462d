package proxy

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
		logger:  logger.Named("[proxy-controller]"),
	}
}

func (pc *Controller) FindAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	q := ctx.Query("q")

	proxies, err := pc.service.FindAll(ctx, page, limit, q)
	if err != nil {
		pc.logger.Errorw("failed to find proxies", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", proxies))
}

func (pc *Controller) FindByID(ctx *gin.Context) {
	id := ctx.Param("id")
	p, err := pc.service.FindByID(ctx, id)
	if err != nil {
		pc.logger.Errorw("failed to find proxy", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	if p == nil {
		ctx.JSON(http.StatusNotFound, utils.NewFailResponse("Proxy not found"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", p))
}

func (pc *Controller) Create(ctx *gin.Context) {
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	created, err := pc.service.Create(ctx, &dto)
	if err != nil {
		pc.logger.Errorw("failed to create proxy", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("proxy created successfully", created))
}

func (pc *Controller) UpdateFull(ctx *gin.Context) {
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

	updated, err := pc.service.UpdateFull(ctx, id, &dto)
	if err != nil {
		pc.logger.Errorw("failed to update proxy", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("proxy updated successfully", updated))
}

func (pc *Controller) UpdatePartial(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto PartialUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	updated, err := pc.service.UpdatePartial(ctx, id, &dto)
	if err != nil {
		pc.logger.Errorw("failed to update proxy", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("proxy updated successfully", updated))
}

func (pc *Controller) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := pc.service.Delete(ctx, id); err != nil {
		pc.logger.Errorw("failed to delete proxy", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("proxy deleted successfully", nil))
}
