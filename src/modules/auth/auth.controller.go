package auth

import (
	"errors"
	"net/http"

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
		logger:  logger.Named("[auth-controller]"),
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *Controller) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	user, err := c.service.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, utils.NewFailResponse(err.Error()))
			return
		}
		c.logger.Errorw("failed to register user", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusCreated, utils.NewSuccessResponse("account created successfully", user))
}

type loginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	TwoFACode string `json:"two_fa_code"`
}

func (c *Controller) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	user, pair, err := c.service.Login(ctx, req.Email, req.Password, req.TwoFACode)
	if err != nil {
		switch {
		case errors.Is(err, ErrTwoFARequired):
			ctx.JSON(http.StatusUnauthorized, utils.NewFailResponse("two-factor code required"))
		case errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrInvalidTwoFACode):
			ctx.JSON(http.StatusUnauthorized, utils.NewFailResponse("invalid email, password or two-factor code"))
		default:
			c.logger.Errorw("failed to log in", "error", err)
			ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		}
		return
	}

	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("login successful", gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}))
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req refreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	pair, err := c.service.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.NewFailResponse("Invalid or expired refresh token"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("token refreshed successfully", pair))
}

func (c *Controller) SetupTwoFA(ctx *gin.Context) {
	userID := ctx.GetString("userId")

	key, err := c.service.SetupTwoFA(ctx, userID)
	if err != nil {
		c.logger.Errorw("failed to set up 2fa", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, utils.NewSuccessResponse("scan this QR code with your authenticator app", gin.H{
		"secret": key.Secret(),
		"url":    key.URL(),
	}))
}

type twoFARequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

func (c *Controller) VerifyTwoFA(ctx *gin.Context) {
	userID := ctx.GetString("userId")

	var req twoFARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	if err := c.service.VerifyTwoFA(ctx, userID, req.Code); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid two-factor code"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("two-factor authentication enabled", nil))
}

func (c *Controller) DisableTwoFA(ctx *gin.Context) {
	userID := ctx.GetString("userId")

	var req twoFARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}

	if err := c.service.DisableTwoFA(ctx, userID, req.Code); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid two-factor code"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("two-factor authentication disabled", nil))
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (c *Controller) UpdatePassword(ctx *gin.Context) {
	userID := ctx.GetString("userId")

	var req updatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse("Invalid request body"))
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.NewFailResponse(err.Error()))
		return
	}

	if err := c.service.UpdatePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			ctx.JSON(http.StatusUnauthorized, utils.NewFailResponse("current password is incorrect"))
			return
		}
		c.logger.Errorw("failed to update password", "error", err)
		ctx.JSON(http.StatusInternalServerError, utils.NewFailResponse("Internal server error"))
		return
	}
	ctx.JSON(http.StatusOK, utils.NewSuccessResponse[any]("password updated successfully", nil))
}
