package notify

import (
	"bytes"
	"context"
	"log"
	"testing"

	"ffridge/internal/ingredient"
)

func named(names ...string) []ingredient.Ingredient {
	out := make([]ingredient.Ingredient, len(names))
	for i, n := range names {
		out[i] = ingredient.Ingredient{ID: n, Name: n}
	}
	return out
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	if err := (LogNotifier{}).Notify(context.Background(), "2 ingredients expiring soon", "milk, eggs"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	got := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("NOTIFICATION: 2 ingredients expiring soon - milk, eggs")) {
		t.Errorf("unexpected log line: %q", got)
	}
	for _, r := range got {
		if r > 127 {
			t.Errorf("log line contains non-ASCII character %q: %q", r, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		expiring    []ingredient.Ingredient
		wantTitle   string
		wantMessage string
	}{
		{
			name:        "single ingredient",
			expiring:    named("milk"),
			wantTitle:   "1 ingredient expiring soon",
			wantMessage: "milk",
		},
		{
			name:        "three ingredients",
			expiring:    named("milk", "eggs", "spinach"),
			wantTitle:   "3 ingredients expiring soon",
			wantMessage: "milk, eggs, spinach",
		},
		{
			name:        "more than three",
			expiring:    named("milk", "eggs", "spinach", "yogurt", "ham"),
			wantTitle:   "5 ingredients expiring soon",
			wantMessage: "milk, eggs, spinach and more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message := Summarize(tt.expiring)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}
