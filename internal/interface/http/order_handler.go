package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/application"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/interface/middleware"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/response"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type createOrderRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	OwnerName string `json:"owner_name" binding:"required"`
}

type itemRequest struct {
	Name      string  `json:"name" binding:"required"`
	UnitValue float64 `json:"unit_value" binding:"required,gt=0"`
	Weight    float64 `json:"weight" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Flavor    string  `json:"flavor" binding:"required"`
}

type itemResponse struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	Name      string  `json:"name"`
	UnitValue float64 `json:"unit_value"`
	Weight    float64 `json:"weight"`
	Quantity  int     `json:"quantity"`
	Flavor    string  `json:"flavor"`
}

type orderResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	OwnerName string         `json:"owner_name"`
	Status    string         `json:"status"`
	Total     float64        `json:"total"`
	Items     []itemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toItemResponse(it entity.OrderItem) itemResponse {
	return itemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		Name:      it.Name,
		UnitValue: it.UnitValue,
		Weight:    it.Weight,
		Quantity:  it.Quantity,
		Flavor:    it.Flavor,
	}
}

func toOrderResponse(o *entity.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toItemResponse(it))
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		OwnerName: o.OwnerName,
		Status:    string(o.Status),
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderResponses(orders []entity.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

// fail maps service errors onto the API error taxonomy.
func (h *OrderHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrOrderNotFound):
		response.Error[any](c, http.StatusBadRequest, "order not found", nil)
	case errors.Is(err, application.ErrItemNotFound):
		response.Error[any](c, http.StatusBadRequest, "order item not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, "you are not allowed to perform this operation", nil)
	default:
		helpers.LogError(h.Logger, "order operation failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// Index GET /pedidos/
func (h *OrderHandler) Index(c *gin.Context) {
	response.Success(c, http.StatusCreated, gin.H{"message": "order routes"}, "ok", nil)
}

// Create POST /pedidos/pedido
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.ActorFrom(c)
	o, err := h.Svc.CreateOrder(c.Request.Context(), actor, req.UserID, req.OwnerName)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order_id": o.ID}, "order created", nil)
}

// AddItem POST /pedidos/pedido/adicionar-item/:id
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.ActorFrom(c)
	item, total, err := h.Svc.AddItem(c.Request.Context(), actor, orderID, application.ItemInput{
		Name:      req.Name,
		UnitValue: req.UnitValue,
		Weight:    req.Weight,
		Quantity:  req.Quantity,
		Flavor:    req.Flavor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"item_id":     item.ID,
		"order_total": total,
	}, "item added", nil)
}

// RemoveItem POST /pedidos/pedido/remover-item/:id
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)
	remaining, order, err := h.Svc.RemoveItem(c.Request.Context(), actor, itemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"item_id":         itemID,
		"remaining_items": remaining,
		"order":           toOrderResponse(order),
	}, "item removed", nil)
}

// Cancel POST /pedidos/pedido/cancelar/:id
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)
	o, err := h.Svc.Cancel(c.Request.Context(), actor, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": toOrderResponse(o)}, "order cancelled", nil)
}

// Finalize POST /pedidos/pedido/finalizar/:id
func (h *OrderHandler) Finalize(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)
	o, err := h.Svc.Finalize(c.Request.Context(), actor, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": toOrderResponse(o)}, "order finalized", nil)
}

// Get GET /pedidos/pedido/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)
	o, err := h.Svc.Get(c.Request.Context(), actor, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"item_count": len(o.Items),
		"order":      toOrderResponse(o),
	}, "order fetched", nil)
}

// ListForUser GET /pedidos/pedido/listar-pedidos-usuario/:id
func (h *OrderHandler) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)
	orders, err := h.Svc.ListForUser(c.Request.Context(), actor, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderResponses(orders), "orders fetched", gin.H{"count": len(orders)})
}

// ListAll GET /pedidos/listar-pedidos (admin only)
func (h *OrderHandler) ListAll(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	orders, err := h.Svc.ListAll(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderResponses(orders), "orders fetched", gin.H{"count": len(orders)})
}

// ListHTML GET /pedidos/listar-html (admin only)
// Renders the admin listing grouped by status.
func (h *OrderHandler) ListHTML(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	orders, err := h.Svc.ListAll(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	var pending, finalized, cancelled []orderResponse
	for i := range orders {
		r := toOrderResponse(&orders[i])
		switch orders[i].Status {
		case entity.StatusFinalized:
			finalized = append(finalized, r)
		case entity.StatusCancelled:
			cancelled = append(cancelled, r)
		default:
			pending = append(pending, r)
		}
	}
	c.HTML(http.StatusOK, "orders.html", gin.H{
		"Pending":   pending,
		"Finalized": finalized,
		"Cancelled": cancelled,
	})
}

// Search GET /pedidos/buscar?q= (admin only)
func (h *OrderHandler) Search(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchOrders(c.Request.Context(), actor, q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
