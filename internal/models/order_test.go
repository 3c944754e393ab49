package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatus(t *testing.T) {
	assert.Equal(t, "Approved", DisplayStatus(OrderStatusDispatch))
	assert.Equal(t, "Pending", DisplayStatus(OrderStatusPending))
	assert.Equal(t, "Decline", DisplayStatus(OrderStatusDecline))
}

func TestPricing_ItemsSubtotal(t *testing.T) {
	p := Pricing{ItemPrice: 380, Discount: 20, SalesTax: 20, ShippingPrice: 30}
	assert.Equal(t, 400.0, p.ItemsSubtotal())
}
