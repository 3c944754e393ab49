package reconcile

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tapppp/storeorders/internal/models"
)

// transactionDt layouts seen from the backend, tried in order
var placedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const placedAtDisplayLayout = "1/2/2006, 3:04:05 PM"

// Snapshot is the reconciled view of one poll cycle
type Snapshot struct {
	Orders []models.Order
	NewIDs map[string]struct{}
}

// Reconcile formats raw records into the domain shape, sorts them by
// numeric id descending and diffs the id set against previousIDs.
// It is pure: no network, no storage, same inputs give the same output.
// Callers own carrying the returned id set into the next cycle,
// replacing the previous set wholesale.
func Reconcile(raw []models.RawOrder, previousIDs map[string]struct{}) Snapshot {
	orders := make([]models.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, format(r))
	}

	// stable to preserve input order for equal ids
	sort.SliceStable(orders, func(i, j int) bool {
		return numericID(orders[i].ID) > numericID(orders[j].ID)
	})

	newIDs := make(map[string]struct{})
	for _, o := range orders {
		if _, ok := previousIDs[o.ID]; !ok {
			newIDs[o.ID] = struct{}{}
		}
	}

	return Snapshot{Orders: orders, NewIDs: newIDs}
}

// IDSet returns the id set of orders, for use as the next cycle's previousIDs
func IDSet(orders []models.Order) map[string]struct{} {
	ids := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		ids[o.ID] = struct{}{}
	}
	return ids
}

// format maps one raw record to the Order shape. Missing optional
// fields degrade to defaults, never an error.
func format(r models.RawOrder) models.Order {
	order := models.Order{
		ID:            strings.TrimPrefix(r.OrderID, "#"),
		ServerID:      r.MID,
		CustomerName:  "Unknown",
		PaymentMethod: r.PaymentMethodName,
		Status:        r.OrderStatus,
		Total:         r.TotalPrice,
		IsNew:         r.IsSeen,
		Pricing: models.Pricing{
			ItemPrice:     r.ItemPrice,
			Discount:      r.Discount,
			SalesTax:      r.SalesTax,
			ShippingPrice: r.ShippingPrice,
		},
	}

	if r.Customer != nil {
		if r.Customer.CustomerName != "" {
			order.CustomerName = r.Customer.CustomerName
		}
		order.Customer = &models.Customer{
			Name:    r.Customer.CustomerName,
			Contact: r.Customer.CustomerContact,
			Address: r.Customer.CustomerAddress,
			City:    r.Customer.City,
		}
	}

	if len(r.OrderDetails) > 0 {
		order.PrimaryImageURL = r.OrderDetails[0].ProductImage
	}
	for _, d := range r.OrderDetails {
		title := d.EColumn
		if title == "" {
			title = "Product"
		}
		qty := d.ProductItem
		if qty == 0 {
			qty = 1
		}
		order.LineItems = append(order.LineItems, models.LineItem{
			Title:     title,
			ImageURL:  d.ProductImage,
			UnitPrice: d.Price,
			Quantity:  qty,
		})
	}

	order.PlacedAt, order.PlacedAtText = parsePlacedAt(r.TransactionDt)

	return order
}

func parsePlacedAt(raw string) (time.Time, string) {
	for _, layout := range placedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, t.Format(placedAtDisplayLayout)
		}
	}
	// unparseable datetime is shown as-is
	return time.Time{}, raw
}

func numericID(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
