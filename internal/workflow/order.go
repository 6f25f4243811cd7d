// Package workflow implements the order editing flow: load and flatten one
// order, offer eligible couriers, and persist status/assignment changes with
// the transition table enforced ahead of the UI.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"orderdesk/internal/audit"
	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
)

var ErrCourierOnDineIn = errors.New("dine-in orders cannot have a courier assigned")

// OrderAPI is the slice of the upstream client the workflow needs.
type OrderAPI interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) error
	DeleteOrder(ctx context.Context, id string) error
	ActiveDeliveryBoys(ctx context.Context) ([]domain.DeliveryBoy, error)
}

// OrderView is the flattened form the edit screen works with.
type OrderView struct {
	ID             string
	Code           string
	Type           domain.OrderType
	Status         domain.Status
	StatusLabel    string
	CustomerName   string
	Contact        string
	TableOrAddress string
	Items          []domain.OrderLine
	Subtotal       float64
	DeliveryCharge float64
	GrandTotal     float64
	PaymentStatus  domain.PaymentStatus
	IsPaid         bool
	Courier        *domain.DeliveryBoy
	PlacedAt       time.Time
}

// Change is what the operator may edit in one save.
type Change struct {
	Status         domain.Status
	TableOrAddress string
	CourierID      string
}

type Service struct {
	api   OrderAPI
	cache cache.Cache
	audit audit.Publisher
}

func NewService(api OrderAPI, queryCache cache.Cache, auditor audit.Publisher) *Service {
	return &Service{api: api, cache: queryCache, audit: auditor}
}

// Load fetches one order and normalizes the nested customer blocks into flat
// display fields.
func (s *Service) Load(ctx context.Context, id string) (*OrderView, error) {
	order, err := s.api.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Normalize(order), nil
}

// Normalize flattens an order for display. Missing customer blocks fall back
// to walk-in defaults, matching what the original console rendered.
func Normalize(order *domain.Order) *OrderView {
	view := &OrderView{
		ID:             order.ID,
		Code:           order.OrderID,
		Type:           order.OrderType,
		Status:         domain.ParseStatus(order.Status),
		Items:          order.Items,
		Subtotal:       order.TotalAmount,
		DeliveryCharge: order.DeliveryCharges,
		GrandTotal:     order.GrandTotal,
		PaymentStatus:  order.PaymentStatus,
		IsPaid:         order.IsPaid,
		Courier:        order.DeliveryBoy,
		PlacedAt:       order.CreatedAt,
	}
	view.StatusLabel = view.Status.Label(view.Type)
	if view.Code == "" {
		view.Code = order.ID
	}

	switch {
	case order.OrderType == domain.OrderTypeDineIn && order.DineInDetails != nil:
		d := order.DineInDetails
		view.CustomerName = customerName(d.FirstName, d.LastName)
		view.Contact = d.Phone
		view.TableOrAddress = d.TableNumber
		if view.TableOrAddress == "" {
			view.TableOrAddress = "Table Not Assigned"
		}
	case order.DeliveryDetails != nil:
		d := order.DeliveryDetails
		view.CustomerName = customerName(d.FirstName, d.LastName)
		view.Contact = d.Phone
		view.TableOrAddress = fmt.Sprintf("%s, Room %s, Floor %s", d.Hostel, d.RoomNumber, d.Floor)
	default:
		view.CustomerName = "Walk-in Customer"
		if order.OrderType == domain.OrderTypeDineIn {
			view.TableOrAddress = "Table Not Assigned"
		}
	}
	return view
}

func customerName(first, last string) string {
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "Walk-in Customer"
	}
	return name
}

// Save validates the change against the transition table, persists it, and
// runs the invalidation contract. On failure nothing is invalidated, so the
// edit screen keeps its state and the server message is surfaced as-is.
func (s *Service) Save(ctx context.Context, view *OrderView, change Change, actor string) error {
	if !view.Status.CanTransition(change.Status) {
		return &domain.InvalidTransitionError{From: view.Status, To: change.Status}
	}
	if change.CourierID != "" && view.Type == domain.OrderTypeDineIn {
		return ErrCourierOnDineIn
	}

	patch := domain.OrderPatch{Status: change.Status, DeliveryBoyID: change.CourierID}
	if view.Type == domain.OrderTypeDineIn {
		patch.TableNumber = change.TableOrAddress
	} else {
		patch.DeliveryAddress = change.TableOrAddress
	}

	if err := s.api.UpdateOrder(ctx, view.ID, patch); err != nil {
		return err
	}

	s.invalidate(ctx, "order.update")
	s.record(ctx, audit.Event{
		Type:       "order.update",
		Actor:      actor,
		Resource:   "order",
		ResourceID: view.ID,
		Detail:     fmt.Sprintf("%s -> %s", view.Status, change.Status),
	})

	view.Status = change.Status
	view.StatusLabel = change.Status.Label(view.Type)
	if change.TableOrAddress != "" {
		view.TableOrAddress = change.TableOrAddress
	}
	return nil
}

// Delete removes an order and stales the same views an update would.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	if err := s.api.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "order.delete")
	s.record(ctx, audit.Event{Type: "order.delete", Actor: actor, Resource: "order", ResourceID: id})
	return nil
}

// Couriers lists active delivery personnel, only meaningful for delivery
// orders.
func (s *Service) Couriers(ctx context.Context) ([]domain.DeliveryBoy, error) {
	return s.api.ActiveDeliveryBoys(ctx)
}

func (s *Service) invalidate(ctx context.Context, mutation string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.StaleAfter(mutation)...); err != nil {
		log.Printf("[workflow] cache invalidation failed: %v", err)
	}
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		log.Printf("[workflow] audit publish failed: %v", err)
	}
}
