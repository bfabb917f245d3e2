// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transfer

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name      string
		toAccount string
		amount    string
		balance   float64
		want      []string
	}{
		{
			name:      "valid",
			toAccount: "2844829203",
			amount:    "100",
			balance:   500,
			want:      nil,
		},
		{
			name:      "missing recipient",
			toAccount: "   ",
			amount:    "100",
			balance:   500,
			want:      []string{"Recipient account number is required"},
		},
		{
			name:      "short account",
			toAccount: "12345",
			amount:    "100",
			balance:   500,
			want:      []string{"Account number must be 10 digits"},
		},
		{
			name:      "empty amount",
			toAccount: "2844829203",
			amount:    "",
			balance:   500,
			want:      []string{"Please enter a valid amount"},
		},
		{
			name:      "non-numeric amount",
			toAccount: "2844829203",
			amount:    "abc",
			balance:   500,
			want:      []string{"Please enter a valid amount"},
		},
		{
			name:      "zero amount",
			toAccount: "2844829203",
			amount:    "0",
			balance:   500,
			want:      []string{"Please enter a valid amount"},
		},
		{
			name:      "negative amount",
			toAccount: "2844829203",
			amount:    "-5",
			balance:   500,
			want:      []string{"Please enter a valid amount"},
		},
		{
			name:      "insufficient funds",
			toAccount: "2844829203",
			amount:    "600",
			balance:   500,
			want:      []string{"Insufficient funds"},
		},
		{
			name:      "over daily limit",
			toAccount: "2844829203",
			amount:    "10001",
			balance:   50000,
			want:      []string{"Amount exceeds daily limit of $10,000"},
		},
		{
			name:      "multiple problems",
			toAccount: "",
			amount:    "bad",
			balance:   500,
			want: []string{
				"Recipient account number is required",
				"Please enter a valid amount",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWizard(tt.balance)
			w.SetDetails(tt.toAccount, tt.amount, "")
			got := w.ValidateDetails()
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateDetails = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("error[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInsufficientFundsChecksBeforeDailyLimit(t *testing.T) {
	// A broke account sending a huge amount reports insufficient funds,
	// not the limit.
	w := NewWizard(100)
	w.SetDetails("2844829203", "20000", "")
	got := w.ValidateDetails()
	if len(got) != 1 || got[0] != "Insufficient funds" {
		t.Errorf("ValidateDetails = %v, want insufficient funds only", got)
	}
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestScheduleDateValidation(t *testing.T) {
	cases := []struct {
		name string
		date string
		want string
	}{
		{"empty is immediate", "", ""},
		{"garbage", "tomorrow", "Please enter a valid date (YYYY-MM-DD)"},
		{"past", "2020-01-01", "Scheduled date must be in the future"},
		{"future", time.Now().AddDate(0, 0, 7).Format("2006-01-02"), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWizard(500)
			w.SetDetails("2844829203", "100", "")
			w.SetScheduleDate(tc.date)
			errs := w.ValidateDetails()
			if tc.want == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("errors = %v, want [%q]", errs, tc.want)
			}
		})
	}
}

func TestParsedSchedule(t *testing.T) {
	w := NewWizard(500)
	if _, ok := w.ParsedSchedule(); ok {
		t.Fatal("no date set, nothing to parse")
	}
	w.SetScheduleDate("2030-06-15")
	when, ok := w.ParsedSchedule()
	if !ok {
		t.Fatal("expected a parsed date")
	}
	if when.Year() != 2030 || when.Month() != 6 || when.Day() != 15 {
		t.Fatalf("parsed = %v", when)
	}
}

func TestNextJoinsErrorsWithPeriods(t *testing.T) {
	w := NewWizard(500)
	w.SetDetails("", "bad", "")

	if w.Next() {
		t.Fatal("invalid details must not advance")
	}
	if w.Step() != StepDetails {
		t.Errorf("Step = %v, want StepDetails", w.Step())
	}
	want := "Recipient account number is required. Please enter a valid amount"
	if w.Error() != want {
		t.Errorf("Error = %q, want %q", w.Error(), want)
	}
}

func TestNextAdvancesToConfirm(t *testing.T) {
	w := NewWizard(500)
	w.SetDetails("2844829203", "100", "Rent")

	if !w.Next() {
		t.Fatal("valid details should advance")
	}
	if w.Step() != StepConfirm {
		t.Errorf("Step = %v, want StepConfirm", w.Step())
	}
	if w.Error() != "" {
		t.Errorf("Error = %q, want empty", w.Error())
	}
}

func TestConfirmGate(t *testing.T) {
	w := NewWizard(500)
	w.SetDetails("2844829203", "100", "")
	w.Next()

	if w.Next() {
		t.Fatal("unconfirmed transfer must not proceed")
	}
	if w.Error() != "Please confirm the transfer by checking the box" {
		t.Errorf("Error = %q", w.Error())
	}

	w.ToggleConfirmed()
	if !w.Next() {
		t.Error("confirmed transfer should proceed")
	}
}

func TestBackDropsConfirmation(t *testing.T) {
	w := NewWizard(500)
	w.SetDetails("2844829203", "100", "")
	w.Next()
	w.ToggleConfirmed()

	if !w.Back() {
		t.Fatal("Back from confirm should succeed")
	}
	if w.Step() != StepDetails {
		t.Errorf("Step = %v, want StepDetails", w.Step())
	}
	if w.Request().Confirmed {
		t.Error("leaving confirm must drop the confirmation")
	}

	// Round trip requires confirming again.
	w.Next()
	if w.Next() {
		t.Error("re-entered confirm step must require a fresh confirmation")
	}
}

func TestDetailsInputIgnoredOffStep(t *testing.T) {
	w := NewWizard(500)
	w.SetDetails("2844829203", "100", "")
	w.Next()

	w.SetDetails("0000000000", "999", "sneaky")
	if w.Request().ToAccount != "2844829203" {
		t.Error("details edits must be ignored on the confirm step")
	}
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func confirmedWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard(500)
	w.SetDetails("2844829203", "100", "Rent")
	w.Next()
	w.ToggleConfirmed()
	return w
}

func TestBeginSubmitSingleFlight(t *testing.T) {
	w := confirmedWizard(t)

	attempt, ok := w.BeginSubmit()
	if !ok || attempt != 1 {
		t.Fatalf("BeginSubmit = (%d, %v), want (1, true)", attempt, ok)
	}

	// Second Enter while in flight
	if _, ok := w.BeginSubmit(); ok {
		t.Error("BeginSubmit must refuse while a submission is running")
	}
	// So must Back
	if w.Back() {
		t.Error("Back must refuse while a submission is running")
	}
}

func TestBeginSubmitRequiresConfirmStep(t *testing.T) {
	w := NewWizard(500)
	if _, ok := w.BeginSubmit(); ok {
		t.Error("BeginSubmit must refuse on the details step")
	}

	w.SetDetails("2844829203", "100", "")
	w.Next()
	if _, ok := w.BeginSubmit(); ok {
		t.Error("BeginSubmit must refuse without confirmation")
	}
}

func TestCompleteSubmitSuccess(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()

	applied := w.CompleteSubmit(attempt, Outcome{
		Success:     true,
		Message:     "Transfer successful",
		Transaction: &model.Transaction{TransactionID: "tx-1", Amount: 100},
		NewBalance:  400,
		HasBalance:  true,
	})
	if !applied {
		t.Fatal("matching attempt should apply")
	}
	if w.Step() != StepResult {
		t.Errorf("Step = %v, want StepResult", w.Step())
	}
	if w.Outcome() == nil || !w.Outcome().Success {
		t.Fatal("outcome should be recorded")
	}
	if w.Balance() != 400 {
		t.Errorf("Balance = %v, want server's new balance", w.Balance())
	}
	if w.Submitting() {
		t.Error("submission flag should clear")
	}
}

func TestCompleteSubmitRejectionStaysOnConfirm(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()

	w.CompleteSubmit(attempt, Outcome{Success: false, Message: "Insufficient funds"})

	if w.Step() != StepConfirm {
		t.Errorf("Step = %v, want StepConfirm for a retry", w.Step())
	}
	if w.Error() != "Insufficient funds" {
		t.Errorf("Error = %q", w.Error())
	}
	if w.Outcome() != nil {
		t.Error("a rejection must not record a result")
	}

	// Retry works
	if _, ok := w.BeginSubmit(); !ok {
		t.Error("retry after rejection should be allowed")
	}
}

func TestCompleteSubmitFallbackMessage(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()

	w.CompleteSubmit(attempt, Outcome{Success: false})
	if !strings.Contains(w.Error(), "Transfer failed") {
		t.Errorf("Error = %q, want generic failure message", w.Error())
	}
}

func TestCompleteSubmitDropsStaleAttempt(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()

	// User abandons the flow before the reply lands.
	w.Reset()

	if w.CompleteSubmit(attempt, Outcome{Success: true, NewBalance: 400, HasBalance: true}) {
		t.Fatal("stale outcome must be dropped")
	}
	if w.Step() != StepDetails {
		t.Errorf("Step = %v, want StepDetails", w.Step())
	}
	if w.Outcome() != nil {
		t.Error("stale outcome must not resurrect a result")
	}
}

func TestResetClearsEverything(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()
	w.CompleteSubmit(attempt, Outcome{Success: true, NewBalance: 400, HasBalance: true})

	w.Reset()

	if w.Step() != StepDetails {
		t.Errorf("Step = %v, want StepDetails", w.Step())
	}
	if w.Request() != (Request{}) {
		t.Error("request should be blank")
	}
	if w.Outcome() != nil || w.Error() != "" || w.Submitting() {
		t.Error("result, error, and flight state should all clear")
	}
	if w.Balance() != 400 {
		t.Error("balance should carry over across resets")
	}
}

// =============================================================================
// QUICK AMOUNT TESTS
// =============================================================================

func TestSetQuickAmount(t *testing.T) {
	w := NewWizard(500)
	w.SetQuickAmount(50)
	if w.Request().Amount != "50" {
		t.Errorf("Amount = %q, want %q", w.Request().Amount, "50")
	}

	w.SetMaxAmount()
	if w.Request().Amount != "500" {
		t.Errorf("Amount = %q, want full balance", w.Request().Amount)
	}
}

func TestAttachTransaction(t *testing.T) {
	w := confirmedWizard(t)
	attempt, _ := w.BeginSubmit()
	w.CompleteSubmit(attempt, Outcome{Success: true})

	w.AttachTransaction(&model.Transaction{TransactionID: "tx-9", Status: model.StatusCompleted})
	if w.Outcome().Transaction == nil || w.Outcome().Transaction.TransactionID != "tx-9" {
		t.Error("fetched details should replace the summary transaction")
	}
}

// =============================================================================
// TEMPLATE TESTS
// =============================================================================

func TestTemplateName(t *testing.T) {
	if got := TemplateName("2844829203"); got != "Transfer to 9203" {
		t.Errorf("TemplateName = %q", got)
	}
	if got := TemplateName("42"); got != "Transfer to 42" {
		t.Errorf("TemplateName short = %q", got)
	}
}
