package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gomarket/internal/application"
	"gomarket/pkg/response"
	"gomarket/pkg/validation"
)

type ProductHandler struct {
	Service *application.CatalogService
	Logger  *logrus.Logger
}

func NewProductHandler(service *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Service: service, Logger: logger}
}

// List GET /products/
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("product list failed")
		response.Error(c, http.StatusInternalServerError, "could not list products", nil)
		return
	}
	c.JSON(http.StatusOK, products)
}

type createProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    *int64 `json:"price" binding:"required,gte=0"`
	Quantity *int64 `json:"quantity" binding:"required,gte=0"`
}

// Create POST /products/ (privileged)
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}

	if _, err := h.Service.Create(c.Request.Context(), req.Name, *req.Price, *req.Quantity); err != nil {
		h.Logger.WithError(err).Error("product create failed")
		response.Error(c, http.StatusInternalServerError, "could not create product", nil)
		return
	}

	c.String(http.StatusCreated, "product created successfully")
}

// Search GET /products/search?q=
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Service.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	c.JSON(http.StatusOK, hits)
}

// Top GET /products/top
func (h *ProductHandler) Top(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	top, err := h.Service.TopSellers(c.Request.Context(), n)
	if err != nil {
		h.Logger.WithError(err).Error("top sellers lookup failed")
		response.Error(c, http.StatusInternalServerError, "could not load top sellers", nil)
		return
	}
	c.JSON(http.StatusOK, top)
}
