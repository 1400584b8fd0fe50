package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gomarket/internal/application"
	"gomarket/internal/domain/apperr"
	"gomarket/pkg/response"
	"gomarket/pkg/validation"
)

type AuthHandler struct {
	Service *application.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// Register POST /users/
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}

	_, err := h.Service.Register(c.Request.Context(), req.Username, req.Name, req.Password, req.Gender, req.Location)
	if err != nil {
		if errors.Is(err, apperr.ErrUsernameTaken) {
			response.Error(c, http.StatusBadRequest, apperr.ErrUsernameTaken.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			// Same message for unknown user and wrong password.
			response.Error(c, http.StatusBadRequest, apperr.ErrInvalidCredentials.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jwtToken": token})
}
