package domain

import "time"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dinein"
	OrderTypeDelivery OrderType = "delivery"
)

type PaymentStatus string

const (
	PaymentSuccess   PaymentStatus = "SUCCESS"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// DeliveryDetails is the embedded customer block on delivery-type orders.
type DeliveryDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Hostel     string `json:"hostel"`
	RoomNumber string `json:"roomNumber"`
	Floor      string `json:"floor"`
	Phone      string `json:"phone"`
}

// DineInDetails is the embedded customer block on dine-in orders.
type DineInDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	TableNumber string `json:"tableNumber"`
}

// OrderLine is a menu snapshot captured at order time; Name and Price do not
// track later menu edits.
type OrderLine struct {
	ID       string  `json:"_id"`
	MenuID   string  `json:"menuId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID              string           `json:"_id"`
	OrderID         string           `json:"orderId"`
	Items           []OrderLine      `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
	DeliveryCharges float64          `json:"deliveryCharges,omitempty"`
	GrandTotal      float64          `json:"grandTotal"`
	OrderType       OrderType        `json:"orderType"`
	DeliveryDetails *DeliveryDetails `json:"deliveryDetails,omitempty"`
	DineInDetails   *DineInDetails   `json:"dineInDetails,omitempty"`
	DeliveryBoy     *DeliveryBoy     `json:"deliveryBoy,omitempty"`
	IsPaid          bool             `json:"isPaid"`
	PaymentStatus   PaymentStatus    `json:"paymentStatus,omitempty"`
	Status          string           `json:"status"`
	PaymentURL      string           `json:"paymentUrl,omitempty"`
	TransactionID   string           `json:"transactionId,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// StatusCounts is returned alongside the order list page.
type StatusCounts struct {
	TotalOrder int `json:"totalOrder"`
	Pending    int `json:"pending"`
	Ready      int `json:"ready"`
	Delivered  int `json:"delivered"`
}

// OrderPage is the paginated order-list payload.
type OrderPage struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"totalPages"`
	Data         []Order      `json:"data"`
	StatusCounts StatusCounts `json:"statusCounts"`
}

// OrderFilter narrows the order list. Zero values mean "no filter".
type OrderFilter struct {
	Search    string
	OrderType OrderType
	PaidOnly  bool
}

// OrderPatch is the writable subset of an order. Exactly one of TableNumber or
// DeliveryAddress applies, depending on the order type.
type OrderPatch struct {
	Status          Status `json:"status"`
	TableNumber     string `json:"tableNumber,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	DeliveryBoyID   string `json:"deliveryBoyId,omitempty"`
}
