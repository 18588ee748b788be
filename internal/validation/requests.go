package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/crewscore/crewscore/internal/errors"
	pkgvalidator "github.com/crewscore/crewscore/pkg/validator"
)

const (
	MaxNameLen        = 120
	MaxTitleLen       = 200
	MaxDescriptionLen = 1024
	MaxProofSize      = 256 * 1024
)

// RegisterPersonRequest creates a new person.
type RegisterPersonRequest struct {
	Name  string `validate:"required,max=120"`
	Email string `validate:"required,email"`
	Role  string `validate:"required,role"`
}

// CreateActivityRequest opens a new activity.
type CreateActivityRequest struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1024"`
	Points      int    `validate:"required,gt=0"`
}

// UpdateActivityRequest renames an existing activity.
type UpdateActivityRequest struct {
	ActivityID  string `validate:"required,uuid4"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1024"`
}

// SubmitActionRequest claims completion of an activity with proof attached.
type SubmitActionRequest struct {
	ActivityID  string `validate:"required,uuid4"`
	PersonID    string `validate:"required,uuid4"`
	Proof       []byte `validate:"required"`
	ContentType string `validate:"required"`
}

// ReviewActionRequest settles a pending action.
type ReviewActionRequest struct {
	ActionID string `validate:"required,uuid4"`
	Approve  bool
}

// RequestValidator validates inbound request structs before they reach the
// services.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() (*RequestValidator, error) {
	v := validator.New()
	if err := pkgvalidator.RegisterCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register custom validators: %w", err)
	}
	return &RequestValidator{validator: v}, nil
}

// Validate checks any request struct, wrapping violations as invalid input.
func (rv *RequestValidator) Validate(req any) error {
	if err := rv.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

// ValidateSubmitActionRequest adds the proof-size bound on top of the struct
// tags.
func (rv *RequestValidator) ValidateSubmitActionRequest(req SubmitActionRequest) error {
	if err := rv.Validate(req); err != nil {
		return err
	}
	if len(req.Proof) > MaxProofSize {
		return fmt.Errorf("%w: proof size %d exceeds maximum of %d bytes",
			apperrors.ErrInvalidInput, len(req.Proof), MaxProofSize)
	}
	return nil
}
