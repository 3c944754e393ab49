package models

import "time"

//Pending — заказ ожидает решения продавца;
//Dispatch — заказ принят продавцом (в интерфейсе показывается как "Approved");
//Decline — заказ отклонён продавцом.

// order status
const (
	OrderStatusPending  = "Pending"
	OrderStatusDispatch = "Dispatch"
	OrderStatusDecline  = "Decline"
)

// DisplayStatus maps a server status to its display label.
// The server vocabulary is canonical, labels are presentation only.
func DisplayStatus(status string) string {
	if status == OrderStatusDispatch {
		return "Approved"
	}
	return status
}

// LineItem is one cart position of an order
type LineItem struct {
	Title     string
	ImageURL  string
	UnitPrice float64
	Quantity  int
}

// Customer is the buyer contact block, optional on the wire
type Customer struct {
	Name    string
	Contact string
	Address string
	City    string
}

// Pricing is the payment summary breakdown
type Pricing struct {
	ItemPrice     float64
	Discount      float64
	SalesTax      float64
	ShippingPrice float64
}

// ItemsSubtotal returns the "Items" line of the payment summary.
// The backend reports itemPrice with the discount already taken out,
// so the subtotal adds it back.
func (p Pricing) ItemsSubtotal() float64 {
	return p.ItemPrice + p.Discount
}

// Order is order entity
type Order struct {
	ID              string // orderId with the leading '#' stripped, stable list key
	ServerID        uint64 // mid, the only valid key for mutation calls
	CustomerName    string
	PrimaryImageURL string
	PlacedAt        time.Time
	PlacedAtText    string
	PaymentMethod   string
	Status          string
	Total           float64
	IsNew           int // isSeen flag, 1 until the merchant has acknowledged the order
	LineItems       []LineItem
	Customer        *Customer
	Pricing         Pricing
}
