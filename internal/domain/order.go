package domain

import "time"

// Order status values as reported by the remote service. The client never
// invents a status; anything it does not recognise is treated as
// non-cancellable.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type OrderItem struct {
	ItemName  string `json:"itemName"`
	ItemImg   string `json:"itemImg"`
	Quantity  int    `json:"quantity"`
	ItemPrice int64  `json:"itemPrice"`
}

// Order is server-owned state, read-only to this client. The only way to
// change one is an explicit cancellation request followed by a re-fetch.
type Order struct {
	ID                    string      `json:"_id"`
	VendorName            string      `json:"vendorName"`
	Status                string      `json:"status"`
	DeliveryPerson        *string     `json:"deliveryPerson,omitempty"`
	TotalPrice            int64       `json:"totalPrice"`
	EstimatedDeliveryTime time.Time   `json:"estimatedDeliveryTime"`
	Items                 []OrderItem `json:"items"`
}

type DraftItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// OrderDraft is the transient payload assembled from cart and session at
// checkout submission time. It is discarded once the remote call resolves;
// Reference identifies the attempt in logs and request headers.
type OrderDraft struct {
	Reference       string      `json:"-"`
	User            string      `json:"user"`
	Vendor          string      `json:"vendor"`
	Items           []DraftItem `json:"items"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}
