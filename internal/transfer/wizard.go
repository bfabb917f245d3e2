// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transfer implements the three-step money transfer wizard:
// details entry, confirmation, and result. The wizard is a pure state
// machine; the UI layer drives it and performs the actual network call.
package transfer

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DailyLimit is the maximum amount for a single transfer.
	DailyLimit = 10000

	// AccountNumberLength is the required recipient account length.
	AccountNumberLength = 10
)

// QuickAmounts are the one-keystroke amount presets on the details step.
// The MAX preset maps to the full available balance.
var QuickAmounts = []float64{10, 50, 100, 500}

// =============================================================================
// TYPES
// =============================================================================

// Step identifies the wizard's current screen.
type Step int

const (
	StepDetails Step = iota
	StepConfirm
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// Request holds the user's transfer input. Amount stays a raw string
// until validation so that partial edits never produce surprise values.
// A non-empty ScheduleFor books the transfer for a future date instead
// of sending it immediately.
type Request struct {
	ToAccount   string
	Amount      string
	Description string
	ScheduleFor string
	Confirmed   bool
}

// Outcome is the terminal result of a submission, success or failure.
// Remote rejections arrive here as values, never as Go errors. AuthFailed
// marks a rejection of the session credential itself; the host must log
// out instead of showing a failed-transfer result.
type Outcome struct {
	Success     bool
	Message     string
	Transaction *model.Transaction
	NewBalance  float64
	HasBalance  bool
	AuthFailed  bool
}

// Wizard is the transfer flow state machine. Not safe for concurrent
// use; it lives inside the UI event loop and is only touched there.
type Wizard struct {
	step       Step
	req        Request
	balance    float64
	errMsg     string
	submitting bool
	attempt    int
	outcome    *Outcome
}

// NewWizard returns a wizard on the details step with the given
// available balance, which bounds amount validation.
func NewWizard(balance float64) *Wizard {
	return &Wizard{step: StepDetails, balance: balance}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (w *Wizard) Step() Step        { return w.step }
func (w *Wizard) Request() Request  { return w.req }
func (w *Wizard) Balance() float64  { return w.balance }
func (w *Wizard) Outcome() *Outcome { return w.outcome }
func (w *Wizard) Submitting() bool  { return w.submitting }

// Error returns the current validation or submission error message,
// empty when there is none.
func (w *Wizard) Error() string { return w.errMsg }

// ParsedAmount returns the amount as a number. Only meaningful after
// validation has passed.
func (w *Wizard) ParsedAmount() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(w.req.Amount), 64)
	return v
}

// =============================================================================
// INPUT
// =============================================================================

// SetDetails replaces the editable fields. Allowed only on the details
// step; input elsewhere in the flow is ignored.
func (w *Wizard) SetDetails(toAccount, amount, description string) {
	if w.step != StepDetails {
		return
	}
	w.req.ToAccount = toAccount
	w.req.Amount = amount
	w.req.Description = description
}

// SetScheduleDate sets the optional future date, details step only.
func (w *Wizard) SetScheduleDate(date string) {
	if w.step != StepDetails {
		return
	}
	w.req.ScheduleFor = strings.TrimSpace(date)
}

// ParsedSchedule returns the schedule date when one is set and valid.
func (w *Wizard) ParsedSchedule() (time.Time, bool) {
	if w.req.ScheduleFor == "" {
		return time.Time{}, false
	}
	when, err := time.Parse("2006-01-02", w.req.ScheduleFor)
	if err != nil {
		return time.Time{}, false
	}
	return when, true
}

// SetQuickAmount applies a preset amount on the details step.
func (w *Wizard) SetQuickAmount(amount float64) {
	if w.step != StepDetails {
		return
	}
	w.req.Amount = strconv.FormatFloat(amount, 'f', -1, 64)
}

// SetMaxAmount sets the amount to the full available balance.
func (w *Wizard) SetMaxAmount() {
	w.SetQuickAmount(w.balance)
}

// SetBalance refreshes the balance used by validation, e.g. after the
// dashboard reloads while the wizard is open.
func (w *Wizard) SetBalance(balance float64) {
	w.balance = balance
}

// ToggleConfirmed flips the confirmation checkbox. Allowed only on the
// confirm step.
func (w *Wizard) ToggleConfirmed() {
	if w.step != StepConfirm {
		return
	}
	w.req.Confirmed = !w.req.Confirmed
	if w.req.Confirmed {
		w.errMsg = ""
	}
}

// ApplyTemplate prefills the details fields from a saved template.
func (w *Wizard) ApplyTemplate(toAccount, amount, description string) {
	w.SetDetails(toAccount, amount, description)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateDetails checks the details fields and returns every problem
// found, in field order. An empty slice means the form is valid.
func (w *Wizard) ValidateDetails() []string {
	var errs []string

	if strings.TrimSpace(w.req.ToAccount) == "" {
		errs = append(errs, "Recipient account number is required")
	} else if len(w.req.ToAccount) < AccountNumberLength {
		errs = append(errs, "Account number must be 10 digits")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(w.req.Amount), 64)
	if w.req.Amount == "" || err != nil || amount <= 0 {
		errs = append(errs, "Please enter a valid amount")
	} else if amount > w.balance {
		errs = append(errs, "Insufficient funds")
	} else if amount > DailyLimit {
		errs = append(errs, "Amount exceeds daily limit of $10,000")
	}

	if w.req.ScheduleFor != "" {
		when, ok := w.ParsedSchedule()
		if !ok {
			errs = append(errs, "Please enter a valid date (YYYY-MM-DD)")
		} else if !when.After(time.Now()) {
			errs = append(errs, "Scheduled date must be in the future")
		}
	}

	return errs
}

// =============================================================================
// NAVIGATION
// =============================================================================

// Next advances the wizard one step. On the details step it validates
// first; on the confirm step it requires the checkbox. The return
// value reports whether the step changed.
func (w *Wizard) Next() bool {
	switch w.step {
	case StepDetails:
		if errs := w.ValidateDetails(); len(errs) > 0 {
			w.errMsg = strings.Join(errs, ". ")
			return false
		}
		w.errMsg = ""
		w.req.Description = util.CollapseWhitespace(w.req.Description)
		w.step = StepConfirm
		return true
	case StepConfirm:
		if !w.req.Confirmed {
			w.errMsg = "Please confirm the transfer by checking the box"
			return false
		}
		w.errMsg = ""
		return true
	default:
		return false
	}
}

// Back returns from confirm to details. Leaving the confirm step
// always drops the confirmation; it must be given again after any
// chance to edit. No-op elsewhere.
func (w *Wizard) Back() bool {
	if w.step != StepConfirm || w.submitting {
		return false
	}
	w.step = StepDetails
	w.req.Confirmed = false
	w.errMsg = ""
	return true
}

// Reset returns the wizard to a blank details step for a new transfer.
// The balance carries over; callers refresh it via SetBalance when a
// newer figure is known.
func (w *Wizard) Reset() {
	w.step = StepDetails
	w.req = Request{}
	w.errMsg = ""
	w.submitting = false
	w.outcome = nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

// BeginSubmit marks the wizard in flight and returns an attempt number
// the caller must pass back to CompleteSubmit. It refuses when the
// wizard is not on a confirmed confirm step or a submission is already
// running, so a second Enter while the spinner is up cannot double-send.
func (w *Wizard) BeginSubmit() (int, bool) {
	if w.step != StepConfirm || !w.req.Confirmed || w.submitting {
		return 0, false
	}
	w.submitting = true
	w.attempt++
	return w.attempt, true
}

// CompleteSubmit lands a submission outcome. Outcomes from a stale
// attempt are dropped: after a reset or a forced logout the attempt
// counter has moved on, and a late network reply must not resurrect a
// finished flow. Returns whether the outcome was applied.
func (w *Wizard) CompleteSubmit(attempt int, outcome Outcome) bool {
	if attempt != w.attempt || !w.submitting {
		return false
	}
	w.submitting = false

	if !outcome.Success {
		// Stay on confirm so the user can retry or go back and edit.
		if outcome.Message == "" {
			outcome.Message = "Transfer failed. Please try again."
		}
		w.errMsg = outcome.Message
		return true
	}

	w.errMsg = ""
	w.outcome = &outcome
	w.step = StepResult
	if outcome.HasBalance {
		w.balance = outcome.NewBalance
	}
	return true
}

// AttachTransaction swaps in fuller transaction details fetched after
// the transfer landed. Ignored unless the wizard is showing a result.
func (w *Wizard) AttachTransaction(tx *model.Transaction) {
	if w.step != StepResult || w.outcome == nil || tx == nil {
		return
	}
	w.outcome.Transaction = tx
}

// =============================================================================
// TEMPLATES
// =============================================================================

// TemplateName derives the saved-template display name from the
// recipient account, e.g. "Transfer to 9203".
func TemplateName(toAccount string) string {
	tail := toAccount
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "Transfer to " + tail
}
