package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzaorders/internal/core/port"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, product := range list {
		result = append(result, productResponse{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			ImageURL:    product.ImageURL,
			Price:       product.Price,
		})
	}

	ph.handleSuccess(ctx, result)
}
