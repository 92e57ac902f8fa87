package domain

// ProductSnapshot is the denormalized slice of a product captured when it is
// added to a cart. Later catalog changes do not affect existing cart lines.
type ProductSnapshot struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

// CartLine is one entry in the ledger: a product snapshot and how many the
// shopper wants. Quantity is always positive; a line at zero is removed.
type CartLine struct {
	ProductSnapshot
	Quantity int `json:"quantity"`
}

// CartSummary is the ledger's derived state, as served to the UI.
type CartSummary struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice string     `json:"total_price"`
}

// Cart mutation event types.
const (
	EventItemAdded       = "item_added"
	EventItemRemoved     = "item_removed"
	EventQuantityUpdated = "quantity_updated"
	EventCartCleared     = "cart_cleared"
)

// Event is published on every cart mutation.
type Event struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	TotalItems int    `json:"total_items"`
}
