package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/sliceline/pizzaorders/internal/adapter/auth"
	"github.com/sliceline/pizzaorders/internal/adapter/config"
	handler "github.com/sliceline/pizzaorders/internal/adapter/handler/http"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
	"github.com/sliceline/pizzaorders/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, svc port.Service) (*handler.Router, port.AccessService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()

	access, err := auth.New(&config.Auth{})
	assert.NoError(t, err)

	orderHandler, err := handler.NewOrderHandler(svc, logger)
	assert.NoError(t, err)
	productHandler, err := handler.NewProductHandler(svc, logger)
	assert.NoError(t, err)

	router, err := handler.NewRouter(&config.HTTP{}, access, orderHandler, productHandler)
	assert.NoError(t, err)

	return router, access
}

func manageToken(t *testing.T, access port.AccessService) string {
	t.Helper()
	token, err := access.CreateToken(&port.AccessPayload{
		Subject:      "admin",
		Capabilities: []string{port.CapabilityManageOrders},
	})
	assert.NoError(t, err)
	return token
}

func hydratedOrder() *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:     1,
		Number: "ORD-1715520600000-42",
		Customer: domain.Customer{
			Name:  "Иван Петров",
			Phone: "+79991234567",
			Email: "ivan@example.com",
		},
		Delivery: domain.Delivery{Address: "ул. Ленина, 1"},
		Items: []domain.OrderItem{
			{
				ProductID: 1,
				Size:      "Large",
				Quantity:  2,
				UnitPrice: decimal.MustParse("500"),
				Product: &domain.Product{
					ID:    1,
					Name:  "Маргарита",
					Price: decimal.MustParse("450"),
				},
			},
		},
		TotalAmount:         decimal.MustParse("1000"),
		Status:              domain.OrderStatusNew,
		PaymentMethod:       domain.PaymentMethodCash,
		EstimatedDeliveryAt: now.Add(45 * time.Minute),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(hydratedOrder(), nil)

	router, _ := newTestRouter(t, svc)

	body := `{
		"customer": {"name": "Иван Петров", "phone": "+79991234567", "email": "ivan@example.com"},
		"delivery": {"address": "ул. Ленина, 1"},
		"items": [{"productId": 1, "size": "Large", "quantity": 2, "price": 500}],
		"totalAmount": 1000,
		"paymentMethod": "Наличные"
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Number string `json:"orderNumber"`
		Status string `json:"status"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^ORD-\d+-\d+$`, resp.Number)
	assert.Equal(t, "Новый", resp.Status)
}

func TestOrderHandler_CreateOrder_BadBody(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CreateOrder_ValidationError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, &domain.ValidationError{Field: "customer.phone", Reason: "is required"})

	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders",
		bytes.NewBufferString(`{"customer": {"name": "Иван"}}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "customer.phone")
}

func TestOrderHandler_CreateOrder_NumberCollision(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrConflictingData)

	router, _ := newTestRouter(t, svc)

	body := `{
		"customer": {"name": "Иван Петров", "phone": "+79991234567"},
		"delivery": {"address": "ул. Ленина, 1"},
		"items": [{"productId": 1, "size": "Large", "quantity": 2, "price": 500}],
		"totalAmount": 1000,
		"paymentMethod": "Наличные"
	}`

	// A duplicate order number is the service's failure, not the caller's.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().GetOrder(gomock.Any(), uint64(1)).Return(hydratedOrder(), nil)
	svc.EXPECT().GetOrder(gomock.Any(), uint64(99)).Return(nil, domain.ErrDataNotFound)

	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Маргарита")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/orders/99", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetOrderByNumber(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().GetOrderByNumber(gomock.Any(), "ORD-1715520600000-42").
		Return(hydratedOrder(), nil)
	svc.EXPECT().GetOrderByNumber(gomock.Any(), "ORD-0-0").
		Return(nil, domain.ErrDataNotFound)

	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders/number/ORD-1715520600000-42", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/orders/number/ORD-0-0", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_ListOrders_Capability(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().ListOrders(gomock.Any(), gomock.Any()).
		Return([]*domain.Order{hydratedOrder()}, nil)

	router, access := newTestRouter(t, svc)

	// No token.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token without the capability.
	token, err := access.CreateToken(&port.AccessPayload{Subject: "guest"})
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Manager token.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/orders?status=Новый&phone=%2B79991234567", nil)
	req.Header.Set("Authorization", "Bearer "+manageToken(t, access))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_ListOrders_BadStatusFilter(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, access := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders?status=Потерян", nil)
	req.Header.Set("Authorization", "Bearer "+manageToken(t, access))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	confirmed := hydratedOrder()
	confirmed.Status = domain.OrderStatusConfirmed

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(1), "Подтвержден").
		Return(confirmed, nil)
	svc.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(1), "Потерян").
		Return(nil, domain.ErrBadOrderStatus)
	svc.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(99), "Подтвержден").
		Return(nil, domain.ErrDataNotFound)

	router, access := newTestRouter(t, svc)
	token := manageToken(t, access)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/api/orders/1/status",
		bytes.NewBufferString(`{"status": "Подтвержден"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Подтвержден")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPatch, "/api/orders/1/status",
		bytes.NewBufferString(`{"status": "Потерян"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPatch, "/api/orders/99/status",
		bytes.NewBufferString(`{"status": "Подтвержден"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cancelled := hydratedOrder()
	cancelled.Status = domain.OrderStatusCancelled

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().CancelOrder(gomock.Any(), uint64(1)).Return(cancelled, nil).Times(2)

	router, access := newTestRouter(t, svc)
	token := manageToken(t, access)

	// Cancelling twice succeeds both times.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPatch, "/api/orders/1/cancel", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Отменен")
	}
}

func TestProductHandler_ListProducts(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().ListProducts(gomock.Any()).Return([]*domain.Product{
		{ID: 1, Name: "Маргарита", Price: decimal.MustParse("450"), Available: true},
	}, nil)

	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Маргарита")
}
