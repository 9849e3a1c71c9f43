// Package notify provides delivery sinks for rental notifications. Sinks are
// fire-and-forget: callers log a returned error and move on, so no sink may
// block indefinitely or panic on malformed input.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wearloop/rental-system/internal/core/ports"
)

// EmailNotifier delivers rental notifications by email via SendGrid. Both
// parties are notified: the renter gets a confirmation, the owner an alert.
type EmailNotifier struct {
	users     ports.AuthRepository
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailNotifier(users ports.AuthRepository, apiKey, fromEmail, fromName string) *EmailNotifier {
	return &EmailNotifier{
		users:     users,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, event ports.NotificationEvent) error {
	renter, err := n.users.FindByID(ctx, event.RenterID)
	if err != nil {
		return fmt.Errorf("resolve renter: %w", err)
	}
	owner, err := n.users.FindByID(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}

	renterSubject, renterBody, ownerSubject, ownerBody := composeEmails(event, renter.Name, owner.Name)

	if err := n.send(ctx, renter.Email, renter.Name, renterSubject, renterBody); err != nil {
		return fmt.Errorf("notify renter: %w", err)
	}
	if err := n.send(ctx, owner.Email, owner.Name, ownerSubject, ownerBody); err != nil {
		return fmt.Errorf("notify owner: %w", err)
	}
	return nil
}

func (n *EmailNotifier) send(ctx context.Context, to, toName, subject, body string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	response, err := sendgrid.NewSendClient(n.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func composeEmails(event ports.NotificationEvent, renterName, ownerName string) (renterSubject, renterBody, ownerSubject, ownerBody string) {
	fee := centsToDollars(event.TotalFeeCents)
	deposit := centsToDollars(event.DepositCents)

	switch event.Type {
	case ports.EventRentalReturned:
		renterSubject = fmt.Sprintf("You returned %q", event.ItemName)
		renterBody = fmt.Sprintf(
			"Hello %s,\n\nYour rental of %q is complete. The deposit of %s will be released by the owner.\n\nThanks for keeping fashion in the loop!",
			renterName, event.ItemName, deposit)
		ownerSubject = fmt.Sprintf("%q was returned", event.ItemName)
		ownerBody = fmt.Sprintf(
			"Hello %s,\n\n%q has been returned and is available again. Remember to release the %s deposit once you have checked the item.",
			ownerName, event.ItemName, deposit)
	default: // rental created
		renterSubject = fmt.Sprintf("You rented %q", event.ItemName)
		renterBody = fmt.Sprintf(
			"Hello %s,\n\nYou rented %q from %s until %s.\nRental fee: %s\nDeposit: %s\n\nEnjoy!",
			renterName, event.ItemName, event.StartedAt.Format("Jan 2, 2006"), event.DueAt.Format("Jan 2, 2006"), fee, deposit)
		ownerSubject = fmt.Sprintf("%q was rented out", event.ItemName)
		ownerBody = fmt.Sprintf(
			"Hello %s,\n\nYour item %q was rented until %s.\nYou will earn %s; a deposit of %s is held as an obligation.",
			ownerName, event.ItemName, event.DueAt.Format("Jan 2, 2006"), fee, deposit)
	}
	return renterSubject, renterBody, ownerSubject, ownerBody
}

func centsToDollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
