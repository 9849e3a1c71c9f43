package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/wearloop/rental-system/internal/core/ports"
)

func TestComposeEmails_Created(t *testing.T) {
	event := ports.NotificationEvent{
		Type:          ports.EventRentalCreated,
		ItemName:      "Silk evening dress",
		TotalFeeCents: 8400,
		DepositCents:  5000,
		StartedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DueAt:         time.Date(2026, 8, 8, 12, 0, 0, 0, time.UTC),
	}

	renterSubject, renterBody, ownerSubject, ownerBody := composeEmails(event, "Alice", "Bob")

	if !strings.Contains(renterSubject, "Silk evening dress") {
		t.Errorf("renter subject must name the item: %q", renterSubject)
	}
	if !strings.Contains(renterBody, "$84.00") {
		t.Errorf("renter body must state the total fee: %q", renterBody)
	}
	if !strings.Contains(renterBody, "Aug 8, 2026") {
		t.Errorf("renter body must state the due date: %q", renterBody)
	}
	if !strings.Contains(ownerSubject, "rented out") {
		t.Errorf("owner subject: %q", ownerSubject)
	}
	if !strings.Contains(ownerBody, "$50.00") {
		t.Errorf("owner body must state the deposit: %q", ownerBody)
	}
}

func TestComposeEmails_Returned(t *testing.T) {
	event := ports.NotificationEvent{
		Type:         ports.EventRentalReturned,
		ItemName:     "Wool overcoat",
		DepositCents: 10000,
	}

	renterSubject, renterBody, ownerSubject, ownerBody := composeEmails(event, "Alice", "Bob")

	if !strings.Contains(renterSubject, "returned") {
		t.Errorf("renter subject: %q", renterSubject)
	}
	if !strings.Contains(renterBody, "$100.00") {
		t.Errorf("renter body must state the deposit to release: %q", renterBody)
	}
	if !strings.Contains(ownerSubject, "returned") {
		t.Errorf("owner subject: %q", ownerSubject)
	}
	if !strings.Contains(ownerBody, "available again") {
		t.Errorf("owner body: %q", ownerBody)
	}
}

func TestCentsToDollars(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{8400, "$84.00"},
		{123456, "$1234.56"},
	}
	for _, tc := range cases {
		if got := centsToDollars(tc.cents); got != tc.want {
			t.Errorf("centsToDollars(%d): expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}
