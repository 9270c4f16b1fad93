package models

import "time"

// OrderItem is a cart line expanded at submission time. TotalPrice is
// price * quantity, computed by the checkout sequencer.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Calories   string  `json:"calories"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// Order is the record handed to the order store. Contact fields are
// denormalized from the session profile at the moment of checkout.
type Order struct {
	ID           string      `json:"_id,omitempty"`
	UserID       string      `json:"userId"`
	VendorID     string      `json:"vendorId"`
	MenuItems    []OrderItem `json:"menuItems"`
	TotalAmount  float64     `json:"totalAmount"`
	DeliveryTime time.Time   `json:"deliveryTime"`
	Status       string      `json:"status,omitempty"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MobileNumber string      `json:"mobileNumber"`
}
