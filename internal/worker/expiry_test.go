package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ffridge/internal/database"
	"ffridge/internal/ingredient"
	"ffridge/internal/user"
)

type mockNotifier struct {
	err         error
	timesCalled int
	gotTitle    string
	gotMessage  string
}

func (m *mockNotifier) Notify(ctx context.Context, title, message string) error {
	m.timesCalled++
	m.gotTitle = title
	m.gotMessage = message
	return m.err
}

func newTestWorker(t *testing.T, notifier *mockNotifier) (*ExpiryWorker, *ingredient.Repository, *user.Store) {
	t.Helper()
	dir := t.TempDir()

	db, err := database.NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := ingredient.NewRepository(db.SQL)

	prefs, err := user.NewStore(filepath.Join(dir, "prefs.json"))
	if err != nil {
		t.Fatalf("failed to create preferences store: %v", err)
	}

	return NewExpiryWorker(repo, prefs, notifier, 0), repo, prefs
}

func addIngredient(t *testing.T, repo *ingredient.Repository, name string, expiry time.Time) {
	t.Helper()
	err := repo.Insert(context.Background(), ingredient.Ingredient{
		ID:         name,
		Name:       name,
		Quantity:   "1",
		Unit:       "pcs",
		Category:   ingredient.CategoryOther,
		ExpiryDate: &expiry,
		AddedDate:  time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to insert ingredient: %v", err)
	}
}

func TestRunOnceNotifies(t *testing.T) {
	notifier := &mockNotifier{}
	w, repo, _ := newTestWorker(t, notifier)
	now := time.Now()

	addIngredient(t, repo, "milk", now.Add(24*time.Hour))
	addIngredient(t, repo, "flour", now.Add(90*24*time.Hour))

	if err := w.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if notifier.timesCalled != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.timesCalled)
	}
	if notifier.gotTitle != "1 ingredient expiring soon" {
		t.Errorf("unexpected title: %q", notifier.gotTitle)
	}
	if notifier.gotMessage != "milk" {
		t.Errorf("unexpected message: %q", notifier.gotMessage)
	}
}

func TestRunOnceNothingExpiring(t *testing.T) {
	notifier := &mockNotifier{}
	w, repo, _ := newTestWorker(t, notifier)
	now := time.Now()

	addIngredient(t, repo, "flour", now.Add(90*24*time.Hour))

	if err := w.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if notifier.timesCalled != 0 {
		t.Errorf("expected no notification, got %d", notifier.timesCalled)
	}
}

func TestRunOnceRespectsSettings(t *testing.T) {
	notifier := &mockNotifier{}
	w, repo, prefs := newTestWorker(t, notifier)
	now := time.Now()

	addIngredient(t, repo, "milk", now.Add(24*time.Hour))
	if err := prefs.UpdateExpiryNotifications(false); err != nil {
		t.Fatalf("failed to disable notifications: %v", err)
	}

	if err := w.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if notifier.timesCalled != 0 {
		t.Errorf("expected no notification when disabled, got %d", notifier.timesCalled)
	}
}

func TestRunOnceSurfacesNotifierError(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("chat unreachable")}
	w, repo, _ := newTestWorker(t, notifier)
	now := time.Now()

	addIngredient(t, repo, "milk", now.Add(24*time.Hour))

	if err := w.RunOnce(context.Background(), now); err == nil {
		t.Fatal("expected error from RunOnce")
	}
}
