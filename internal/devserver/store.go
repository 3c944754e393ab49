package devserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tapppp/storeorders/internal/models"
)

// memStore is the in-memory order store behind the development backend
type memStore struct {
	mu      sync.Mutex
	orders  map[uint64]models.RawOrder
	nextMID uint64
	nextNum int
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[uint64]models.RawOrder),
		nextMID: 1,
		nextNum: 1,
	}
}

// List returns all orders, order of entries is unspecified
func (m *memStore) List() []models.RawOrder {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.RawOrder, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out
}

// UpdateStatus sets a new status by mutation id
func (m *memStore) UpdateStatus(mid uint64, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[mid]
	if !ok {
		return false
	}
	o.OrderStatus = status
	m.orders[mid] = o
	return true
}

// Delete removes order by mutation id
func (m *memStore) Delete(mid uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[mid]; !ok {
		return false
	}
	delete(m.orders, mid)
	return true
}

// Seed inserts one new pending order and returns it
func (m *memStore) Seed() models.RawOrder {
	m.mu.Lock()
	defer m.mu.Unlock()

	mid := m.nextMID
	m.nextMID++
	num := m.nextNum
	m.nextNum++

	order := models.RawOrder{
		OrderID:           fmt.Sprintf("#%d", num),
		MID:               mid,
		OrderStatus:       models.OrderStatusPending,
		TransactionDt:     time.Now().Format("2006-01-02T15:04:05"),
		PaymentMethodName: "Cash on Delivery",
		TotalPrice:        450,
		IsSeen:            1,
		OrderDetails: []models.RawOrderDetail{
			{
				EColumn:      "Seeded Product",
				ProductImage: "https://img.example.com/" + uuid.NewString() + ".jpg",
				Price:        400,
				ProductItem:  1,
			},
		},
		Customer: &models.RawCustomer{
			CustomerName:    "Seed Customer",
			CustomerContact: "+920000000000",
			CustomerAddress: "1 Test Street",
			City:            "Lahore",
		},
		ItemPrice:     380,
		Discount:      20,
		SalesTax:      20,
		ShippingPrice: 30,
	}

	m.orders[mid] = order
	return order
}
