package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// LineItem is one cart line for a single checkout attempt. Carts are never
// persisted; they exist only for the duration of the attempt.
type LineItem struct {
	MenuItemID  string  `json:"menuItemId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Calories    string  `json:"calories"`
	UnitPrice   float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	MaxQuantity int     `json:"maxOrderQuantity" validate:"required,gt=0"`
}

// ValidateCart enforces the cart preconditions: non-empty, every line with
// a positive order limit and 0 < quantity <= limit.
func ValidateCart(items []LineItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %s: quantity must be positive", item.MenuItemID)
		}
		if item.MaxQuantity <= 0 {
			return fmt.Errorf("item %s: order limit must be positive", item.MenuItemID)
		}
		if item.Quantity > item.MaxQuantity {
			return fmt.Errorf("item %s: quantity %d exceeds limit %d", item.MenuItemID, item.Quantity, item.MaxQuantity)
		}
	}
	return nil
}

// CartTotal sums unit price times quantity over the cart. Plain float64
// arithmetic, same as the rest of the ledger.
func CartTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
