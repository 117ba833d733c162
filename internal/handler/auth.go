package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/taskboard/internal/logging"
	"github.com/kube-rca/taskboard/internal/model"
	"github.com/kube-rca/taskboard/internal/service"
)

const msgInvalidBody = "Invalid request body"

type authService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	ListUsers(ctx context.Context) ([]model.UserResponse, error)
	Me(ctx context.Context, subject string) (*model.UserResponse, error)
}

type AuthHandler struct {
	svc authService
	log logging.Logger
}

func NewAuthHandler(svc authService, log logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Name, email and password"
// @Success 200 {object} model.UserResponse
// @Failure 400 {string} string "Name, email, and password are required"
// @Failure 500 {string} string
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login
// @Description Returns the public profile with an access/refresh token pair.
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {string} string "Email and password are required"
// @Failure 401 {string} string "Invalid credentials"
// @Failure 500 {string} string
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if errors.Is(err, service.ErrUnauthorized) {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserResponse
// @Failure 401 {string} string
// @Router /users/get_user [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	subject, ok := Subject(c)
	if !ok {
		c.String(http.StatusUnauthorized, msgAuthHeaderInvalid)
		return
	}

	user, err := h.svc.Me(c.Request.Context(), subject)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingRegistration):
		c.String(http.StatusBadRequest, "Name, email, and password are required")
	case errors.Is(err, service.ErrMissingLogin):
		c.String(http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, service.ErrConflict):
		c.String(http.StatusBadRequest, "Email already exists")
	case errors.Is(err, service.ErrUnauthorized):
		c.String(http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "User not found")
	default:
		h.log.Error(c.Request.Context(), "auth request failed", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, msgInternalError)
	}
}
