// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package heatmap

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/meetpoll/models"
)

func window(id int64, date, start, end string) models.Window {
	return models.Window{ID: id, PollID: 1, Date: date, StartTime: start, EndTime: end}
}

func participant(id int64, ptype, name string) models.Participant {
	return models.Participant{ID: id, PollID: 1, Type: ptype, Name: name, Email: name + "@example.com"}
}

func response(participantID int64, date, start, end string) models.Response {
	return models.Response{ParticipantID: participantID, Date: date, StartTime: start, EndTime: end}
}

func TestComputeEmptyWindows(t *testing.T) {
	hm := Compute(nil, nil, []models.Participant{participant(1, models.TypeClient, "Alice")}, "")

	if len(hm.Cells) != 0 {
		t.Errorf("expected no cells, got %d", len(hm.Cells))
	}
	if hm.Cells == nil || hm.Stats.OptimalSlots == nil || hm.Stats.PerfectSlots == nil {
		t.Error("expected initialized empty slices, got nil")
	}
}

func TestComputeFourParticipants(t *testing.T) {
	windows := []models.Window{
		window(1, "2025-07-01", "09:00", "10:00"),
		window(2, "2025-07-01", "14:00", "15:00"),
	}
	participants := []models.Participant{
		participant(1, models.TypeCadreRequired, "Alice"),
		participant(2, models.TypeCadreOptional, "Bob"),
		participant(3, models.TypeClient, "Charlie"),
		participant(4, models.TypeClient, "Diana"),
	}
	responses := []models.Response{
		response(1, "2025-07-01", "09:00", "10:00"),
		response(2, "2025-07-01", "09:00", "10:00"),
		response(3, "2025-07-01", "09:00", "10:00"),
		response(4, "2025-07-01", "14:00", "15:00"),
	}

	hm := Compute(windows, responses, participants, "")

	if len(hm.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(hm.Cells))
	}
	morning := hm.Cells[0]
	if morning.ResponseCount != 3 {
		t.Errorf("expected 3 responses in morning slot, got %d", morning.ResponseCount)
	}
	if morning.PercentAvailable != 75 {
		t.Errorf("expected 75%% availability, got %d", morning.PercentAvailable)
	}
	wantNames := []string{"Alice", "Bob", "Charlie"}
	if !reflect.DeepEqual(morning.ParticipantNames, wantNames) {
		t.Errorf("expected names %v, got %v", wantNames, morning.ParticipantNames)
	}
	afternoon := hm.Cells[1]
	if afternoon.PercentAvailable != 25 {
		t.Errorf("expected 25%% availability, got %d", afternoon.PercentAvailable)
	}

	if hm.Stats.TotalResponses != 4 {
		t.Errorf("expected 4 total responses, got %d", hm.Stats.TotalResponses)
	}
	if hm.Stats.TotalParticipants != 4 {
		t.Errorf("expected 4 total participants, got %d", hm.Stats.TotalParticipants)
	}
	if len(hm.Stats.OptimalSlots) != 1 || hm.Stats.OptimalSlots[0].StartTime != "09:00" {
		t.Errorf("expected the morning slot to be optimal, got %v", hm.Stats.OptimalSlots)
	}
	if len(hm.Stats.PerfectSlots) != 0 {
		t.Errorf("expected no perfect slots, got %d", len(hm.Stats.PerfectSlots))
	}
}

func TestComputeUnanimous(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{
		participant(1, models.TypeClient, "Alice"),
		participant(2, models.TypeClient, "Bob"),
	}
	responses := []models.Response{
		response(1, "2025-07-01", "09:00", "10:00"),
		response(2, "2025-07-01", "09:00", "10:00"),
	}

	hm := Compute(windows, responses, participants, "")

	if hm.Cells[0].PercentAvailable != 100 {
		t.Errorf("expected 100%%, got %d", hm.Cells[0].PercentAvailable)
	}
	if len(hm.Stats.PerfectSlots) != 1 {
		t.Errorf("expected 1 perfect slot, got %d", len(hm.Stats.PerfectSlots))
	}
	if len(hm.Stats.OptimalSlots) != 1 {
		t.Errorf("expected 1 optimal slot, got %d", len(hm.Stats.OptimalSlots))
	}
}

// With zero responses every cell is 0% and nothing is "optimal": a tie
// at zero availability recommends nothing.
func TestComputeZeroResponses(t *testing.T) {
	windows := []models.Window{
		window(1, "2025-07-01", "09:00", "10:00"),
		window(2, "2025-07-02", "09:00", "10:00"),
	}
	participants := []models.Participant{participant(1, models.TypeClient, "Alice")}

	hm := Compute(windows, nil, participants, "")

	for _, cell := range hm.Cells {
		if cell.PercentAvailable != 0 || cell.ResponseCount != 0 {
			t.Errorf("expected empty cell, got %+v", cell)
		}
	}
	if len(hm.Stats.OptimalSlots) != 0 {
		t.Errorf("expected no optimal slots at zero availability, got %d", len(hm.Stats.OptimalSlots))
	}
}

// A filter that matches no participants must not divide by zero, and
// responses from filtered-out participants are invisible.
func TestComputeEmptyFilterPopulation(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{participant(1, models.TypeClient, "Alice")}
	responses := []models.Response{response(1, "2025-07-01", "09:00", "10:00")}

	hm := Compute(windows, responses, participants, models.TypeCadreRequired)

	if hm.Stats.TotalParticipants != 0 {
		t.Errorf("expected 0 participants under filter, got %d", hm.Stats.TotalParticipants)
	}
	cell := hm.Cells[0]
	if cell.ResponseCount != 0 || cell.PercentAvailable != 0 {
		t.Errorf("filtered-out responses leaked into cell: %+v", cell)
	}
}

func TestComputeFilterChangesDenominator(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{
		participant(1, models.TypeCadreRequired, "Alice"),
		participant(2, models.TypeClient, "Bob"),
	}
	responses := []models.Response{
		response(1, "2025-07-01", "09:00", "10:00"),
	}

	all := Compute(windows, responses, participants, "")
	required := Compute(windows, responses, participants, models.TypeCadreRequired)

	if all.Cells[0].PercentAvailable != 50 {
		t.Errorf("unfiltered: expected 50%%, got %d", all.Cells[0].PercentAvailable)
	}
	if required.Cells[0].PercentAvailable != 100 {
		t.Errorf("required-only: expected 100%%, got %d", required.Cells[0].PercentAvailable)
	}
}

func TestComputeDeduplicatesPerParticipant(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{
		participant(1, models.TypeClient, "Alice"),
		participant(2, models.TypeClient, "Bob"),
	}
	responses := []models.Response{
		response(1, "2025-07-01", "09:00", "10:00"),
		response(1, "2025-07-01", "09:00", "10:00"),
	}

	hm := Compute(windows, responses, participants, "")

	cell := hm.Cells[0]
	if cell.ResponseCount != 1 {
		t.Errorf("duplicate response double-counted: got %d", cell.ResponseCount)
	}
	if cell.PercentAvailable != 50 {
		t.Errorf("expected 50%%, got %d", cell.PercentAvailable)
	}
}

// Compute must be pure: same inputs, same output, inputs untouched.
func TestComputePurity(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{participant(1, models.TypeClient, "Alice")}
	responses := []models.Response{response(1, "2025-07-01", "09:00", "10:00")}

	windowsCopy := append([]models.Window(nil), windows...)
	responsesCopy := append([]models.Response(nil), responses...)

	first := Compute(windows, responses, participants, "")
	second := Compute(windows, responses, participants, "")

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated computation produced different results")
	}
	if !reflect.DeepEqual(windows, windowsCopy) || !reflect.DeepEqual(responses, responsesCopy) {
		t.Error("Compute mutated its inputs")
	}
}

func TestAnonymize(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{
		participant(1, models.TypeClient, "Alice"),
		participant(2, models.TypeClient, "Bob"),
	}
	responses := []models.Response{
		response(1, "2025-07-01", "09:00", "10:00"),
		response(2, "2025-07-01", "09:00", "10:00"),
	}

	hm := Compute(windows, responses, participants, "")
	anon := Anonymize(hm)

	if len(anon.Cells[0].ParticipantNames) != 0 {
		t.Errorf("names survived anonymization: %v", anon.Cells[0].ParticipantNames)
	}
	for _, cell := range anon.Stats.PerfectSlots {
		if len(cell.ParticipantNames) != 0 {
			t.Errorf("names survived in perfect slots: %v", cell.ParticipantNames)
		}
	}
	if anon.Cells[0].ResponseCount != hm.Cells[0].ResponseCount ||
		anon.Cells[0].PercentAvailable != hm.Cells[0].PercentAvailable {
		t.Error("anonymization changed counts")
	}
	// the original is untouched
	if len(hm.Cells[0].ParticipantNames) != 2 {
		t.Error("Anonymize mutated its input")
	}
}

func TestComputeBoth(t *testing.T) {
	windows := []models.Window{window(1, "2025-07-01", "09:00", "10:00")}
	participants := []models.Participant{
		participant(1, models.TypeCadreRequired, "Alice"),
		participant(2, models.TypeClient, "Bob"),
	}
	responses := []models.Response{response(2, "2025-07-01", "09:00", "10:00")}

	all, required := ComputeBoth(windows, responses, participants)

	if all.Stats.TotalParticipants != 2 {
		t.Errorf("expected 2 in unfiltered population, got %d", all.Stats.TotalParticipants)
	}
	if required.Stats.TotalParticipants != 1 {
		t.Errorf("expected 1 in required population, got %d", required.Stats.TotalParticipants)
	}
	if required.Cells[0].ResponseCount != 0 {
		t.Errorf("client response counted in required map: %d", required.Cells[0].ResponseCount)
	}
}
