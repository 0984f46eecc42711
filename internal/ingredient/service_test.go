package ingredient

import (
	"context"
	"testing"
	"time"
)

func TestServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(t))

	t.Run("Success", func(t *testing.T) {
		expiry := time.Now().Add(72 * time.Hour)
		got, err := svc.Add(ctx, Input{
			Name:       "Eggs",
			Quantity:   "12",
			Unit:       "pcs",
			Category:   CategoryDairy,
			ExpiryDate: &expiry,
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.ID == "" {
			t.Error("Expected a generated ID")
		}
		if got.AddedDate.IsZero() {
			t.Error("Expected AddedDate to be set")
		}
	})

	t.Run("DefaultsCategory", func(t *testing.T) {
		got, err := svc.Add(ctx, Input{Name: "Mystery", Quantity: "1", Unit: "pcs"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Category != CategoryOther {
			t.Errorf("Expected CategoryOther default, got %v", got.Category)
		}
	})

	validationCases := []struct {
		name    string
		input   Input
		wantErr string
	}{
		{"BlankName", Input{Name: "  ", Quantity: "1", Unit: "pcs"}, "ingredient name cannot be empty"},
		{"EmptyName", Input{Quantity: "1", Unit: "pcs"}, "ingredient name cannot be empty"},
		{"BlankQuantity", Input{Name: "Eggs", Quantity: " ", Unit: "pcs"}, "quantity cannot be empty"},
		{"BlankUnit", Input{Name: "Eggs", Quantity: "1", Unit: ""}, "unit cannot be empty"},
	}

	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.input)
			if err == nil {
				t.Fatal("Expected a validation error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("Expected error %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestServiceUpdateValidates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewService(repo)

	added, err := svc.Add(ctx, Input{Name: "Rice", Quantity: "2", Unit: "kg", Category: CategoryPantry})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	bad := *added
	bad.Name = ""
	if err := svc.Update(ctx, bad); err == nil {
		t.Error("Expected validation error for blank name on update")
	}

	good := *added
	good.Quantity = "1"
	if err := svc.Update(ctx, good); err != nil {
		t.Errorf("Expected update to succeed, got %v", err)
	}

	stored, err := repo.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Quantity != "1" {
		t.Errorf("Expected quantity '1', got %q", stored.Quantity)
	}
}

func TestServiceDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewService(repo)

	past := time.Now().Add(-24 * time.Hour)
	if err := repo.Insert(ctx, testIngredient("old", &past)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	affected, err := svc.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 deleted row, got %d", affected)
	}
}
