package models

// UserCategory mirrors the categories the cafeteria backend recognises.
type UserCategory string

const (
	CategoryManagement       UserCategory = "management"
	CategoryTeachingStaff    UserCategory = "teaching_staff"
	CategoryNonTeachingStaff UserCategory = "non_teaching_staff"
	CategoryStudent          UserCategory = "student"
	CategoryUnion            UserCategory = "union"
)

// Profile is the user document as the account store returns it. Credits is
// the ledger balance; Version increments on every balance write and backs
// the conditional update precondition.
type Profile struct {
	ID              string       `json:"_id"`
	Name            string       `json:"name"`
	AdmissionNumber string       `json:"admissionNumber"`
	Email           string       `json:"email"`
	Role            string       `json:"role"`
	UserCategory    UserCategory `json:"userCategory"`
	Credits         float64      `json:"credits"`
	Version         int64        `json:"version"`
	MobileNumber    string       `json:"mobileNumber"`
}

// CreateUserRequest is the admin-facing payload for provisioning a user.
type CreateUserRequest struct {
	Name            string       `json:"name" validate:"required"`
	AdmissionNumber string       `json:"admissionNumber" validate:"required"`
	Email           string       `json:"email" validate:"required,email"`
	Password        string       `json:"password" validate:"required,min=8"`
	Role            string       `json:"role" validate:"required,oneof=user vendor admin"`
	UserCategory    UserCategory `json:"userCategory" validate:"required,oneof=management teaching_staff non_teaching_staff student union"`
	MobileNumber    string       `json:"mobileNumber" validate:"required"`
}

// UpdateUserRequest carries the mutable profile fields. Credits is absent on
// purpose: balance writes go through the account store's conditional update,
// never through a plain profile update.
type UpdateUserRequest struct {
	Name            string       `json:"name,omitempty"`
	AdmissionNumber string       `json:"admissionNumber,omitempty"`
	Email           string       `json:"email,omitempty" validate:"omitempty,email"`
	Role            string       `json:"role,omitempty" validate:"omitempty,oneof=user vendor admin"`
	UserCategory    UserCategory `json:"userCategory,omitempty"`
	MobileNumber    string       `json:"mobileNumber,omitempty"`
}

// BalanceSnapshot is what one fresh read of the account store yields: the
// ledger balance, the version observed with it and the denormalized profile.
type BalanceSnapshot struct {
	AccountID string
	Balance   float64
	Version   int64
	Profile   Profile
}
