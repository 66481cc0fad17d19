package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/controller"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/middleware"
	"interviewiq-server/internal/service"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

func (ctrl *AuthController) RegisterRoutes(public, private *gin.RouterGroup) {
	auth := public.Group("/auth")
	auth.POST("/signup", ctrl.SignupHandler)
	auth.POST("/login", ctrl.LoginHandler)

	private.GET("/auth/me", ctrl.MeHandler)
}

// SignupHandler godoc
// @Summary Register a new candidate account
// @Description Creates a candidate account and returns an access token. Privacy consent is required.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Signup data"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body, missing consent, or email already registered"
// @Router /auth/signup [post]
func (ctrl *AuthController) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SignupRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: string(apperr.CodeInvalidInput), Message: err.Error()})
		return
	}

	resp, err := ctrl.authSvc.Signup(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler godoc
// @Summary Log in
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ctrl *AuthController) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: string(apperr.CodeInvalidInput), Message: err.Error()})
		return
	}

	resp, err := ctrl.authSvc.Login(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (ctrl *AuthController) MeHandler(c *gin.Context) {
	resp, err := ctrl.authSvc.Me(middleware.UserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
