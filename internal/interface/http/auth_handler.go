package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/application"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/interface/middleware"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/response"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Admin    bool   `json:"admin"`
	Active   *bool  `json:"active"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type formLoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Index GET /autenticacao/
func (h *AuthHandler) Index(c *gin.Context) {
	response.Success(c, http.StatusCreated, gin.H{"message": "authentication routes"}, "ok", nil)
}

// Register POST /autenticacao/criar_conta (auth required)
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	actor := middleware.ActorFrom(c)
	u, err := h.Svc.Register(c.Request.Context(), actor, application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Admin:    req.Admin,
		Active:   active,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
		case errors.Is(err, application.ErrUnauthorized):
			response.Error[any](c, http.StatusUnauthorized, "you are not allowed to create admin accounts", nil)
		default:
			helpers.LogError(h.Logger, "register failed", err, logrus.Fields{"email": req.Email})
			response.Error[any](c, http.StatusInternalServerError, "failed to create account", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": u.ID, "email": u.Email}, "account created", nil)
}

// Login POST /autenticacao/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	h.login(c, req.Email, req.Password, true)
}

// LoginForm POST /autenticacao/login-form
// Form-encoded variant used by interactive tooling; username carries
// the email. Only the access token is returned.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	var req formLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	h.login(c, req.Username, req.Password, false)
}

func (h *AuthHandler) login(c *gin.Context, email, password string, withRefresh bool) {
	_, pair, err := h.Svc.Login(c.Request.Context(), email, password)
	if err != nil {
		// Same response for unknown email and wrong password.
		response.Error[any](c, http.StatusBadRequest, "user not found or invalid password", nil)
		return
	}
	data := gin.H{
		"access_token": pair.AccessToken,
		"token_type":   "Bearer",
	}
	meta := gin.H{"access_expires_at": pair.AccessExpiry}
	if withRefresh {
		data["refresh_token"] = pair.RefreshToken
		meta["refresh_expires_at"] = pair.RefreshExpiry
	}
	response.Success(c, http.StatusOK, data, "user authenticated", meta)
}

// Refresh GET /autenticacao/refresh (auth required)
// Any currently-valid token, access or refresh, mints a new access
// token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		response.Error[any](c, http.StatusUnauthorized, "access denied, check token validity", nil)
		return
	}
	access, exp, err := h.Svc.RefreshAccess(actor)
	if err != nil {
		helpers.LogError(h.Logger, "refresh failed", err, logrus.Fields{"user_id": actor.ID})
		response.Error[any](c, http.StatusInternalServerError, "failed to refresh token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token": access,
		"token_type":   "Bearer",
	}, "user authenticated", gin.H{"access_expires_at": exp})
}
