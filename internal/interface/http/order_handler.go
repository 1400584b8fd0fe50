package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gomarket/internal/application"
	"gomarket/internal/domain/apperr"
	"gomarket/internal/interface/middleware"
	"gomarket/pkg/response"
	"gomarket/pkg/validation"
)

type OrderHandler struct {
	Service *application.OrderService
	Logger  *logrus.Logger
}

func NewOrderHandler(service *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Service: service, Logger: logger}
}

type placeOrderRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

// Place POST /orders/ (privileged)
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}

	userID := middleware.UserID(c)
	_, err := h.Service.PlaceOrder(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrProductNotFound):
			response.Error(c, http.StatusBadRequest, apperr.ErrProductNotFound.Error(), nil)
		case errors.Is(err, apperr.ErrInsufficientStock):
			response.Error(c, http.StatusBadRequest, apperr.ErrInsufficientStock.Error(), nil)
		case errors.Is(err, apperr.ErrValidation):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("order placement failed")
			response.Error(c, http.StatusInternalServerError, "could not place order", nil)
		}
		return
	}

	c.String(http.StatusCreated, "order placed successfully")
}

// List GET /orders/ (privileged, scoped to the caller)
func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	lines, err := h.Service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("order list failed")
		response.Error(c, http.StatusInternalServerError, "could not list orders", nil)
		return
	}
	c.JSON(http.StatusOK, lines)
}
