package models

// MenuItem is one dish on a vendor's menu. OrderQuantity tracks how many
// units have been ordered so far; MaxOrderQuantity is the per-order ceiling.
type MenuItem struct {
	ID               string  `json:"_id,omitempty"`
	Name             string  `json:"name" validate:"required"`
	Calories         string  `json:"calories"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Availability     bool    `json:"availability"`
	OrderQuantity    int     `json:"orderQuantity" validate:"gte=0"`
	MaxOrderQuantity int     `json:"maxOrderQuantity" validate:"required,gt=0"`
}

type Menu struct {
	ID       string     `json:"_id,omitempty"`
	VendorID string     `json:"vendorId" validate:"required"`
	Items    []MenuItem `json:"items" validate:"required,min=1,dive"`
}
