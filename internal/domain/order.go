package domain

import "time"

// Payment methods accepted at checkout.
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentGCash        = "gcash"
	PaymentCOD          = "cod"
)

// Payment statuses. Transitions happen only through admin action;
// there is no payment-confirmation webhook.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Order statuses.
const (
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// CustomerInfo is the contact snapshot copied onto an order at creation.
// Later profile edits do not alter it.
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// ShippingAddress is the Philippine-subdivision address snapshot on an order.
type ShippingAddress struct {
	Street     string `json:"street"`
	Unit       string `json:"unit,omitempty"`
	Barangay   string `json:"barangay"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is a full snapshot of the purchased variant, not a live
// product reference.
type OrderItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	Image          string `json:"image,omitempty"`
}

// Order is one customer purchase attempt. Created once at checkout
// submission, mutated only by admin status updates, never deleted.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          *string         `json:"userId,omitempty"`
	Customer        CustomerInfo    `json:"customerInfo"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	SubtotalCents   int64           `json:"subtotalCents"`
	ShippingCents   int64           `json:"shippingCents"`
	TotalCents      int64           `json:"totalCents"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	OrderStatus     string          `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentBankTransfer, PaymentGCash, PaymentCOD:
		return true
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}
