package models

// ReviewItem scores a single menu item, 1 to 5 stars.
type ReviewItem struct {
	MenuItemID  string `json:"menuItemId" validate:"required"`
	Score       int    `json:"score" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"max=1000"`
}

type Review struct {
	ID           string     `json:"_id,omitempty"`
	UserID       string     `json:"userId"`
	VendorID     string     `json:"vendorId" validate:"required"`
	ReviewItem   ReviewItem `json:"reviewItem" validate:"required"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	MobileNumber string     `json:"mobileNumber"`
}
