package ingredient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// Input carries user-entered ingredient fields through validation. Name,
// Quantity and Unit must be non-blank; everything else is optional.
type Input struct {
	Name       string `validate:"notblank"`
	Quantity   string `validate:"notblank"`
	Unit       string `validate:"notblank"`
	Category   Category
	ExpiryDate *time.Time
	Notes      string
	ImageURL   string
}

// Service wraps the repository with the add/update/delete use cases.
// Validation happens here, before any write reaches storage.
type Service struct {
	repo     *Repository
	validate *validator.Validate
}

// NewService creates a Service over the given repository.
func NewService(repo *Repository) *Service {
	v := validator.New()
	// The stock "required" tag accepts whitespace-only strings.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Service{
		repo:     repo,
		validate: v,
	}
}

// Add validates the input and inserts a new ingredient. The returned
// ingredient carries the generated ID and added date.
func (s *Service) Add(ctx context.Context, in Input) (*Ingredient, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	ing := Ingredient{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		Category:   in.Category,
		ExpiryDate: in.ExpiryDate,
		AddedDate:  time.Now(),
		Notes:      in.Notes,
		ImageURL:   in.ImageURL,
	}
	if ing.Category == "" {
		ing.Category = CategoryOther
	}

	if err := s.repo.Insert(ctx, ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Update validates and fully replaces an existing ingredient record.
func (s *Service) Update(ctx context.Context, ing Ingredient) error {
	if err := s.validateInput(Input{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}); err != nil {
		return err
	}
	return s.repo.Update(ctx, ing)
}

// Delete removes an ingredient by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// DeleteExpired removes all ingredients already past their expiry date.
func (s *Service) DeleteExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now())
}

func (s *Service) validateInput(in Input) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		switch errs[0].Field() {
		case "Name":
			return fmt.Errorf("ingredient name cannot be empty")
		case "Quantity":
			return fmt.Errorf("quantity cannot be empty")
		case "Unit":
			return fmt.Errorf("unit cannot be empty")
		}
	}
	return fmt.Errorf("invalid ingredient: %w", err)
}
