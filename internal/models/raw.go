package models

// RawOrderDetail is one cart position as returned by fetch_orders
type RawOrderDetail struct {
	EColumn      string  `json:"eColumn"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	ProductItem  int     `json:"productItem"`
}

// RawCustomer is the nested customer block, may be absent
type RawCustomer struct {
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	CustomerAddress string `json:"customerAddress"`
	City            string `json:"city"`
}

// RawOrder mirrors one record of the fetch_orders response
type RawOrder struct {
	OrderID           string           `json:"orderId"`
	MID               uint64           `json:"mid"`
	OrderStatus       string           `json:"orderStatus"`
	TransactionDt     string           `json:"transactionDt"`
	PaymentMethodName string           `json:"paymentMethodName"`
	TotalPrice        float64          `json:"totalPrice"`
	IsSeen            int              `json:"isSeen"`
	OrderDetails      []RawOrderDetail `json:"orderDetails"`
	Customer          *RawCustomer     `json:"customer"`
	ItemPrice         float64          `json:"itemPrice"`
	Discount          float64          `json:"discount"`
	SalesTax          float64          `json:"salesTax"`
	ShippingPrice     float64          `json:"shippingPrice"`
}
