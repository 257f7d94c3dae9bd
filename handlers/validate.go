// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/mail"

	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/timefmt"
)

// validateSlot checks one date/time slot against the strict wire formats
// and the start < end rule. Returns a caller-facing message on failure.
func validateSlot(s models.SlotInput) error {
	if _, err := timefmt.ParseDate(s.Date); err != nil {
		return err
	}
	start, err := timefmt.ParseTime(s.StartTime)
	if err != nil {
		return err
	}
	end, err := timefmt.ParseTime(s.EndTime)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("slot %s %s-%s: start must be before end", s.Date, s.StartTime, s.EndTime)
	}
	return nil
}

// validateSlots applies validateSlot to a whole set; the first failure
// rejects the batch.
func validateSlots(slots []models.SlotInput) error {
	for _, s := range slots {
		if err := validateSlot(s); err != nil {
			return err
		}
	}
	return nil
}

func validParticipantType(t string) bool {
	switch t {
	case models.TypeCadreRequired, models.TypeCadreOptional, models.TypeClient:
		return true
	}
	return false
}

// validateParticipant checks one participant input. Emails go through
// net/mail so obviously malformed addresses are rejected up front.
func validateParticipant(p models.ParticipantInput) error {
	if p.Name == "" {
		return fmt.Errorf("participant name is required")
	}
	if !validParticipantType(p.Type) {
		return fmt.Errorf("participant type must be CADRE_REQUIRED, CADRE_OPTIONAL, or CLIENT")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("invalid email %q", p.Email)
	}
	return nil
}
