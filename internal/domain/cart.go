package domain

// Product is the catalog item payload handed over when adding to the cart.
// Prices are integer amounts in the smallest currency unit.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	VendorID string `json:"vendorId"`
}

// CartEntry is one distinct catalog item and its requested quantity within
// the shopper's pending purchase. A cart never holds two entries with the
// same ID, and a persisted quantity is always >= 1.
type CartEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	VendorID string `json:"vendorId"`
	Quantity int    `json:"quantity"`
}

// CartSnapshot is the persisted form of the cart: entries only, insertion
// order preserved. Derived counters are recomputed on load, never trusted.
type CartSnapshot struct {
	Items []CartEntry `json:"items"`
}
