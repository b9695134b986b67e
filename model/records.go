package model

// Product is a catalog item. Name and category together form its identity.
type Product struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// Customer is keyed by email. Orders holds the codes of every order the
// customer has placed, in creation order; TotalSpent is the running sum of
// their totals.
type Customer struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	TotalSpent float64  `json:"total_spent"`
	Orders     []string `json:"orders"`
}

// OrderLine is one (product identity, quantity) entry in an order.
type OrderLine struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Order is immutable once created. Total is computed at creation time from
// the prices the products had at that moment.
type Order struct {
	OrderCode     string      `json:"order_code"`
	CustomerEmail string      `json:"customer_email"`
	Products      []OrderLine `json:"products"`
	Total         float64     `json:"total"`
}
