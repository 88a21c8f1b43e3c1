package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type customerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type deliveryPayload struct {
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	Entrance  string `json:"entrance,omitempty"`
	Floor     string `json:"floor,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

type orderItemRequest struct {
	ProductID uint64  `json:"productId"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type createOrderRequest struct {
	Customer      customerPayload    `json:"customer"`
	Delivery      deliveryPayload    `json:"delivery"`
	Items         []orderItemRequest `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
	DeliveryFee   float64            `json:"deliveryFee"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        string             `json:"status,omitempty"`
}

type productResponse struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
}

type orderItemResponse struct {
	Product   *productResponse `json:"product,omitempty"`
	ProductID uint64           `json:"productId"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
}

type orderResponse struct {
	ID                  uint64              `json:"id"`
	Number              string              `json:"orderNumber"`
	Customer            customerPayload     `json:"customer"`
	Delivery            deliveryPayload     `json:"delivery"`
	Items               []orderItemResponse `json:"items"`
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	DeliveryFee         decimal.Decimal     `json:"deliveryFee"`
	Status              string              `json:"status"`
	PaymentMethod       string              `json:"paymentMethod"`
	EstimatedDeliveryAt time.Time           `json:"estimatedDeliveryTime"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		r := orderItemResponse{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if item.Product != nil {
			r.Product = &productResponse{
				ID:          item.Product.ID,
				Name:        item.Product.Name,
				Description: item.Product.Description,
				ImageURL:    item.Product.ImageURL,
				Price:       item.Product.Price,
			}
		}
		items = append(items, r)
	}

	return orderResponse{
		ID:     order.ID,
		Number: order.Number,
		Customer: customerPayload{
			Name:  order.Customer.Name,
			Phone: order.Customer.Phone,
			Email: order.Customer.Email,
		},
		Delivery: deliveryPayload{
			Address:   order.Delivery.Address,
			Apartment: order.Delivery.Apartment,
			Entrance:  order.Delivery.Entrance,
			Floor:     order.Delivery.Floor,
			Comment:   order.Delivery.Comment,
		},
		Items:               items,
		TotalAmount:         order.TotalAmount,
		DeliveryFee:         order.DeliveryFee,
		Status:              string(order.Status),
		PaymentMethod:       string(order.PaymentMethod),
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	totalAmount, err := decimal.NewFromFloat64(req.TotalAmount)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	deliveryFee, err := decimal.NewFromFloat64(req.DeliveryFee)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := decimal.NewFromFloat64(item.Price)
		if err != nil {
			oh.handleValidationError(ctx, err)
			return
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	order := &domain.Order{
		Customer: domain.Customer{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
		},
		Delivery: domain.Delivery{
			Address:   req.Delivery.Address,
			Apartment: req.Delivery.Apartment,
			Entrance:  req.Delivery.Entrance,
			Floor:     req.Delivery.Floor,
			Comment:   req.Delivery.Comment,
		},
		Items:         items,
		TotalAmount:   totalAmount,
		DeliveryFee:   deliveryFee,
		Status:        domain.OrderStatus(req.Status),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}

	newOrder, err := oh.service.CreateOrder(ctx, order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(newOrder), http.StatusCreated)
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	filter := domain.OrderFilter{
		CustomerPhone: ctx.Query("phone"),
	}
	if statusParam := ctx.Query("status"); statusParam != "" {
		status, err := domain.ParseOrderStatus(statusParam)
		if err != nil {
			oh.handleError(ctx, err)
			return
		}
		filter.Status = &status
	}

	list, err := oh.service.ListOrders(ctx, filter)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, newOrderResponse(order))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	order, err := oh.service.GetOrder(ctx, id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) GetOrderByNumber(ctx *gin.Context) {
	order, err := oh.service.GetOrderByNumber(ctx, ctx.Param("number"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (oh *OrderHandler) UpdateOrderStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	req := updateStatusRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.logger.Info("order status updated",
		zap.String("subject", getAccessPayload(ctx).Subject),
		zap.Uint64("order", id),
		zap.String("status", string(order.Status)))

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	order, err := oh.service.CancelOrder(ctx, id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.logger.Info("order cancelled",
		zap.String("subject", getAccessPayload(ctx).Subject),
		zap.Uint64("order", id))

	oh.handleSuccess(ctx, newOrderResponse(order))
}
