package models

import "time"

// Payment values.
const (
	PaymentCash   = "cash"
	PaymentUPI    = "upi"
	PaymentCard   = "card"
	PaymentCredit = "credit"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentPartial  = "partial"
	PaymentRefunded = "refunded"
)

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ItemType string  `bson:"itemType" json:"itemType"` // "service" or "product"
	ItemName string  `bson:"itemName" json:"itemName"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
	Total    float64 `bson:"total" json:"total"`
}

// Invoice bills a completed appointment.
type Invoice struct {
	ID            string        `bson:"id" json:"id"`
	TenantID      string        `bson:"tenantId" json:"tenantId"`
	AppointmentID string        `bson:"appointmentId" json:"appointmentId"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	InvoiceNumber string        `bson:"invoiceNumber" json:"invoiceNumber"`
	Subtotal      float64       `bson:"subtotal" json:"subtotal"`
	Tax           float64       `bson:"tax" json:"tax"`
	Discount      float64       `bson:"discount" json:"discount"`
	Total         float64       `bson:"total" json:"total"`
	PaymentMethod string        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentStatus string        `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt        *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Items         []InvoiceItem `bson:"items" json:"items"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// InvoiceFilter narrows tenant-scoped invoice listings.
type InvoiceFilter struct {
	ClientID      string
	PaymentStatus string
	StartDate     *time.Time
	EndDate       *time.Time
}
