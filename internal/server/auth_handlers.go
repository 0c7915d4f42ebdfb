package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/api"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/auth"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/config"
)

// authHandler issues tokens for the two configured principals: the wallet
// owner and the gym operator. There is no user registration; this is a
// single-owner service.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	GymID    string `json:"gym_id"` // operator logins only
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

// Login godoc
// @Summary      Login
// @Description  Authenticates the owner or a gym operator and returns a
// @Description  token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		RespondWithValidationErrors(c, errs)
		return
	}

	var (
		userID string
		role   string
		gymID  string
	)

	switch {
	case req.Email == h.cfg.OwnerEmail && auth.CheckPassword(h.cfg.OwnerPasswordHash, req.Password):
		userID = h.cfg.OwnerID
		role = auth.RoleOwner
	case req.Email == h.cfg.OperatorEmail && auth.CheckPassword(h.cfg.OperatorPasswordHash, req.Password):
		if req.GymID == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "gym_id required for operator login"})
			return
		}
		userID = "operator:" + req.GymID
		role = auth.RoleOperator
		gymID = req.GymID
	default:
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(userID, req.Email, role, gymID, h.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         role,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *authHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	accessToken, claims, err := auth.RefreshAccessToken(req.RefreshToken, h.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		Role:         claims.Role,
	})
}
