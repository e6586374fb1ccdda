package cart

import "github.com/google/uuid"

// QuoteCartInput is the client cart intent; prices are always resolved server side.
type QuoteCartInput struct {
	Items []QuoteCartItem `json:"items"`
}

// QuoteCartItem captures each intent line from the client.
type QuoteCartItem struct {
	PizzaID  uuid.UUID `json:"pizzaId"`
	Size     string    `json:"size"`
	Quantity int       `json:"quantity"`
}
