package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/policy"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/mailer"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
)

// OrderService implements the order lifecycle: creation, item
// management with eager total recomputation, and status transitions.
// Every operation consults the authorization policy before touching
// state.
type OrderService struct {
	Orders        repo.OrderRepository
	Users         repo.UserRepository
	Logger        *logrus.Logger
	Pub           *helpers.RabbitPublisher
	ES            *elasticsearch.Client
	ESOrdersIndex string
}

func NewOrderService(orders repo.OrderRepository, users repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esOrdersIndex string) *OrderService {
	return &OrderService{
		Orders:        orders,
		Users:         users,
		Logger:        logger,
		Pub:           pub,
		ES:            es,
		ESOrdersIndex: esOrdersIndex,
	}
}

type ItemInput struct {
	Name      string
	UnitValue float64
	Weight    float64
	Quantity  int
	Flavor    string
}

// CreateOrder opens a new PENDING order. The actor must be the declared
// owner; administrators get no exception on this path.
func (s *OrderService) CreateOrder(ctx context.Context, actor *entity.User, ownerID int64, ownerName string) (*entity.Order, error) {
	if actor == nil || actor.ID != ownerID {
		return nil, ErrUnauthorized
	}
	o := entity.NewOrder(ownerID, ownerName)
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.indexOrder(ctx, o)
	return o, nil
}

// AddItem attaches an item to the order and returns it together with
// the recomputed order total.
func (s *OrderService) AddItem(ctx context.Context, actor *entity.User, orderID int64, in ItemInput) (*entity.OrderItem, float64, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	if !policy.CanAccess(actor, o) {
		return nil, 0, ErrUnauthorized
	}

	item := &entity.OrderItem{
		OrderID:   orderID,
		Name:      in.Name,
		UnitValue: in.UnitValue,
		Weight:    in.Weight,
		Quantity:  in.Quantity,
		Flavor:    in.Flavor,
	}
	total, err := s.Orders.AddItem(ctx, item)
	if err != nil {
		return nil, 0, err
	}
	o.Total = total
	o.Items = append(o.Items, *item)
	s.indexOrder(ctx, o)
	return item, total, nil
}

// RemoveItem detaches an item, resolving the parent order through the
// item reference for the authorization check. It returns the remaining
// item count and the refreshed order summary.
func (s *OrderService) RemoveItem(ctx context.Context, actor *entity.User, itemID int64) (int, *entity.Order, error) {
	it, err := s.Orders.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil, ErrItemNotFound
		}
		return 0, nil, err
	}
	o, err := s.getOrder(ctx, it.OrderID)
	if err != nil {
		return 0, nil, err
	}
	if !policy.CanAccess(actor, o) {
		return 0, nil, ErrUnauthorized
	}

	remaining, _, err := s.Orders.RemoveItem(ctx, itemID, o.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil, ErrItemNotFound
		}
		return 0, nil, err
	}
	o, err = s.getOrder(ctx, it.OrderID)
	if err != nil {
		return 0, nil, err
	}
	s.indexOrder(ctx, o)
	return remaining, o, nil
}

// Cancel moves the order to CANCELLED. There is currently no guard
// against cancelling a finalized order; see Order.Transition.
func (s *OrderService) Cancel(ctx context.Context, actor *entity.User, orderID int64) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, entity.StatusCancelled)
}

// Finalize moves the order to FINALIZED and enqueues the confirmation
// email for the owner.
func (s *OrderService) Finalize(ctx context.Context, actor *entity.User, orderID int64) (*entity.Order, error) {
	o, err := s.transition(ctx, actor, orderID, entity.StatusFinalized)
	if err != nil {
		return nil, err
	}
	s.notifyFinalized(ctx, o)
	return o, nil
}

func (s *OrderService) transition(ctx context.Context, actor *entity.User, orderID int64, target entity.OrderStatus) (*entity.Order, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccess(actor, o) {
		return nil, ErrUnauthorized
	}
	if err := o.Transition(target); err != nil {
		return nil, err
	}
	if err := s.Orders.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}
	s.indexOrder(ctx, o)
	return o, nil
}

// Get returns the order with its full item list.
func (s *OrderService) Get(ctx context.Context, actor *entity.User, orderID int64) (*entity.Order, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccess(actor, o) {
		return nil, ErrUnauthorized
	}
	return o, nil
}

// ListForUser returns all orders owned by userID. The authorization
// check runs before the query is issued.
func (s *OrderService) ListForUser(ctx context.Context, actor *entity.User, userID int64) ([]entity.Order, error) {
	if !policy.CanListUserOrders(actor, userID) {
		return nil, ErrUnauthorized
	}
	return s.Orders.ListByUser(ctx, userID)
}

// ListAll returns every order in the system. Admin only.
func (s *OrderService) ListAll(ctx context.Context, actor *entity.User) ([]entity.Order, error) {
	if !policy.CanManageAccounts(actor) {
		return nil, ErrUnauthorized
	}
	return s.Orders.ListAll(ctx)
}

func (s *OrderService) getOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) notifyFinalized(ctx context.Context, o *entity.Order) {
	if s.Pub == nil {
		return
	}
	owner, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("owner lookup for notification failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       owner.Email,
		Template: mailer.TemplateOrderFinalized,
		Data: map[string]any{
			"OrderID":   o.ID,
			"OwnerName": o.OwnerName,
			"Total":     o.Total,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("publish order email failed")
	}
}

// SearchOrders performs a multi_match search over indexed orders. Admin
// only.
func (s *OrderService) SearchOrders(ctx context.Context, actor *entity.User, q string, size int) ([]map[string]any, error) {
	if !policy.CanManageAccounts(actor) {
		return nil, ErrUnauthorized
	}
	if s.ES == nil || s.ESOrdersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"owner_name^2", "status"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESOrdersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *OrderService) indexOrder(ctx context.Context, o *entity.Order) {
	if s.ES == nil || s.ESOrdersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         o.ID,
		"user_id":    o.UserID,
		"owner_name": o.OwnerName,
		"status":     o.Status,
		"total":      o.Total,
		"item_count": len(o.Items),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESOrdersIndex,
		DocumentID: strconv.FormatInt(o.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("order_id", o.ID).Warn("es index response error")
	}
}
