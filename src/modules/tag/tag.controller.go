package tag

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
		logger:  logger.Named("[tag-controller]"),
	}
}

func (tc *Controller) FindAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	q := ctx.Query("q")

	tags, err := tc.service.FindAll(ctx, page, limit, q)
	if err != nil {
		tc.logger.Errorw("failed to find tags", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", tags))
}

func (tc *Controller) FindByID(ctx *gin.Context) {
	id := ctx.Param("id")
	t, err := tc.service.FindByID(ctx, id)
	if err != nil {
		tc.logger.Errorw("failed to find tag", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	if t == nil {
		ctx.JSON(http.StatusNotFound, utils.NewFailResponse("Tag not found"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("success", t))
}

func (tc *Controller) Create(ctx *gin.Context) {
	var dto CreateUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	created, err := tc.service.Create(ctx, &dto)
	if err != nil {
		tc.logger.Errorw("failed to create tag", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("tag created successfully", created))
}

func (tc *Controller) UpdateFull(ctx *gin.Context) {
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

	updated, err := tc.service.UpdateFull(ctx, id, &dto)
	if err != nil {
		tc.logger.Errorw("failed to update tag", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("tag updated successfully", updated))
}

func (tc *Controller) UpdatePartial(ctx *gin.Context) {
	id := ctx.Param("id")
	var dto PartialUpdateDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	updated, err := tc.service.UpdatePartial(ctx, id, &dto)
	if err != nil {
		tc.logger.Errorw("failed to update tag", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("tag updated successfully", updated))
}

func (tc *Controller) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := tc.service.Delete(ctx, id); err != nil {
		tc.logger.Errorw("failed to delete tag", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("tag deleted successfully", nil))
}
