// Package notify delivers expiry alerts to the user.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ffridge/internal/ingredient"
)

// Notifier delivers a titled message to the user.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// LogNotifier writes notifications to the process log. It is the delivery
// channel when no Telegram credentials are configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, title, message string) error {
	log.Printf("NOTIFICATION: %s - %s", title, message)
	return nil
}

// Summarize builds the alert title and body for a batch of expiring
// ingredients. The body names at most three ingredients.
func Summarize(expiring []ingredient.Ingredient) (title, message string) {
	title = fmt.Sprintf("%d ingredients expiring soon", len(expiring))
	if len(expiring) == 1 {
		title = "1 ingredient expiring soon"
	}

	names := make([]string, 0, 3)
	for i, ing := range expiring {
		if i == 3 {
			break
		}
		names = append(names, ing.Name)
	}
	message = strings.Join(names, ", ")
	if len(expiring) > 3 {
		message += " and more"
	}
	return title, message
}
