package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tapppp/storeorders/internal/models"
	"github.com/tapppp/storeorders/internal/notify"
	"github.com/tapppp/storeorders/internal/reconcile"
	"github.com/tapppp/storeorders/internal/session"
)

// display filter labels
const (
	FilterAllOrders = "All Orders"
	FilterApproved  = "Approved"
	FilterDecline   = "Decline"
)

// OrderAPI is interface for remote order calls used by the service
type OrderAPI interface {
	// FetchOrders returns the full raw order snapshot for the store
	FetchOrders(ctx context.Context, sess session.Session) ([]models.RawOrder, error)
	// UpdateStatus changes order status by its mutation id
	UpdateStatus(ctx context.Context, sess session.Session, mid uint64, newStatus string) error
	// DeleteOrder removes order by its mutation id
	DeleteOrder(ctx context.Context, sess session.Session, mid uint64) error
}

// Confirmer asks the merchant to confirm a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// OrderService owns the reconciled order collection. Snapshots replace
// it wholesale via Apply, the mutators adjust single entries after the
// backend confirms. Reads get copies, never the backing slice.
type OrderService struct {
	api      OrderAPI
	sess     session.Session
	notifier notify.Notifier
	confirm  Confirmer
	logger   *zap.Logger

	mu     sync.RWMutex
	orders []models.Order
	newIDs map[string]struct{}
}

// NewOrderService creates new OrderService instance
func NewOrderService(api OrderAPI, sess session.Session, notifier notify.Notifier, confirm Confirmer, logger *zap.Logger) *OrderService {
	return &OrderService{
		api:      api,
		sess:     sess,
		notifier: notifier,
		confirm:  confirm,
		logger:   logger,
		newIDs:   make(map[string]struct{}),
	}
}

// Fetch returns the raw order snapshot, the poller's fetch path
func (s *OrderService) Fetch(ctx context.Context) ([]models.RawOrder, error) {
	return s.api.FetchOrders(ctx, s.sess)
}

// Apply replaces the collection with a reconciled snapshot.
// One assignment per publish, no partial merge.
func (s *OrderService) Apply(snap reconcile.Snapshot) {
	s.mu.Lock()
	s.orders = snap.Orders
	s.newIDs = snap.NewIDs
	s.mu.Unlock()
}

// Orders returns a copy of the current collection
func (s *OrderService) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// NewIDs returns the ids that appeared in the latest snapshot
func (s *OrderService) NewIDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.newIDs))
	for id := range s.newIDs {
		out[id] = struct{}{}
	}
	return out
}

// Filter returns orders matching a display filter label
func (s *OrderService) Filter(label string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Order{}
	for _, o := range s.orders {
		switch label {
		case FilterAllOrders, "":
			out = append(out, o)
		case FilterApproved:
			if o.Status == models.OrderStatusDispatch {
				out = append(out, o)
			}
		case FilterDecline:
			if o.Status == models.OrderStatusDecline {
				out = append(out, o)
			}
		}
	}
	return out
}

// Get returns order by display id
func (s *OrderService) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, models.ErrOrderNotFound
}

// Approve transitions a pending order to Dispatch
func (s *OrderService) Approve(ctx context.Context, id string) error {
	return s.changeStatus(ctx, id, models.OrderStatusDispatch)
}

// Decline transitions a pending order to Decline
func (s *OrderService) Decline(ctx context.Context, id string) error {
	return s.changeStatus(ctx, id, models.OrderStatusDecline)
}

// changeStatus issues the remote status change and, only after the
// backend confirms, flips the one order's status in place. A failed
// call leaves the collection untouched.
func (s *OrderService) changeStatus(ctx context.Context, id, newStatus string) error {
	order, err := s.Get(id)
	if err != nil {
		return err
	}

	if order.Status != models.OrderStatusPending {
		// caller error, Pending is the only mutable status
		s.logger.Warn("status change on non-pending order",
			zap.String("id", id), zap.String("status", order.Status))
		return models.ErrOrderNotPending
	}

	if err := s.api.UpdateStatus(ctx, s.sess, order.ServerID, newStatus); err != nil {
		s.logger.Error("update order status", zap.String("id", id), zap.Error(err))
		s.notifier.Notify("Error", "Could not update order status")
		return err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ServerID == order.ServerID {
			s.orders[i].Status = newStatus
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Notify("Success", "Order status updated to "+newStatus)
	return nil
}

// Delete removes an order after merchant confirmation. Removal is keyed
// by the server mutation id, two orders may share a display id prefix.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.Get(id)
	if err != nil {
		return err
	}

	if !s.confirm.Confirm(fmt.Sprintf("Do you want to delete Order ID #%s?", order.ID)) {
		return nil
	}

	if err := s.api.DeleteOrder(ctx, s.sess, order.ServerID); err != nil {
		s.logger.Error("delete order", zap.String("id", id), zap.Error(err))
		s.notifier.Notify("Error", "Failed to delete order.")
		return err
	}

	s.mu.Lock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ServerID != order.ServerID {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.mu.Unlock()

	s.notifier.Notify("Success", "Order deleted successfully.")
	return nil
}
