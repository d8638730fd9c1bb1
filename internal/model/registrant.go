package model

import "time"

// Branches lists the academic branches offered on the registration form.
// The server stores whatever branch is submitted; this list is advisory.
var Branches = []string{
	"Computer Science",
	"Information Technology",
	"Electronics and Communication",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Civil Engineering",
	"Chemical Engineering",
	"Artificial Intelligence and Data Science",
	"Other",
}

// UniqueField names a registrant column carrying a unique constraint.
type UniqueField string

const (
	FieldEmail      UniqueField = "email"
	FieldPhone      UniqueField = "phone"
	FieldRollNumber UniqueField = "rollNumber"
)

// UniqueFields is the fixed order in which uniqueness is checked.
var UniqueFields = []UniqueField{FieldEmail, FieldPhone, FieldRollNumber}

// Registrant is one row of the registrants table.
type Registrant struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	RollNumber string    `json:"rollNumber"`
	Branch     string    `json:"branch"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Value returns the registrant's value for a unique field.
func (r *Registrant) Value(f UniqueField) string {
	switch f {
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldRollNumber:
		return r.RollNumber
	}
	return ""
}

// Summary is the echo returned to the registrant after admission.
func (r *Registrant) Summary() RegistrantSummary {
	return RegistrantSummary{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		RollNumber: r.RollNumber,
		Branch:     r.Branch,
	}
}

// RegistrantSummary is the public view of a registrant.
type RegistrantSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RollNumber string `json:"rollNumber"`
	Branch     string `json:"branch"`
}

// RegisterRequest is the public registration form payload.
// Field order matters: validation reports the first failing field.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,phone"`
	RollNumber string `json:"rollNumber" validate:"required,max=50"`
	Branch     string `json:"branch" validate:"required,max=100"`
}

// UpdateRegistrantRequest is the admin edit payload. All five fields are
// required; partial updates are not supported.
type UpdateRegistrantRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,phone"`
	RollNumber string `json:"rollNumber" validate:"required,max=50,digits"`
	Branch     string `json:"branch" validate:"required,max=100"`
}
