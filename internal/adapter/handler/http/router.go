package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzaorders/internal/adapter/config"
	"github.com/sliceline/pizzaorders/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	access port.AccessService,
	orderHandler *OrderHandler,
	productHandler *ProductHandler) (*Router, error) {

	router := gin.New()
	router.Use(requestID())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", capabilityCheck(access, port.CapabilityManageOrders), orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/number/:number", orderHandler.GetOrderByNumber)
			orders.PATCH("/:id/status", capabilityCheck(access, port.CapabilityManageOrders), orderHandler.UpdateOrderStatus)
			orders.PATCH("/:id/cancel", capabilityCheck(access, port.CapabilityManageOrders), orderHandler.CancelOrder)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
