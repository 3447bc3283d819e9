package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
)

// AuthController handles backend account operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SignUp handles account creation
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Credentials"
// @Success 201 {object} dto.StructuredResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.authService.SignUp(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Sign up failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(resp, "Account created"))
}

// SignIn handles login. With redirect set, a one-time exchange code is
// returned instead of a session.
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/signin [post]
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	if req.Redirect {
		code, err := c.authService.SignInWithRedirect(ctx.Request.Context(), &req)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(code))
		return
	}

	resp, err := c.authService.SignIn(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ExchangeCode trades a redirect code for a session
func (c *AuthController) ExchangeCode(ctx *gin.Context) {
	var req dto.ExchangeCodeRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	resp, err := c.authService.ExchangeCode(ctx.Request.Context(), req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RefreshToken rotates the refresh token
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	resp, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SignOut revokes the refresh token
func (c *AuthController) SignOut(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	if err := c.authService.SignOut(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Signed out"))
}

// Me returns the signed-in account
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	user, err := c.authService.Me(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
