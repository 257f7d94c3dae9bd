// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package heatmap

import (
	"math"

	"github.com/danielhkuo/meetpoll/models"
)

// slotKey identifies one exact slot. Dates and times are canonical
// zero-padded strings, so equality here is exact slot equality.
type slotKey struct {
	date  string
	start string
	end   string
}

// Compute aggregates participant responses into one heat-map cell per
// window, plus summary statistics. filterType restricts the considered
// population to one participant type; the empty string means everyone.
//
// The function is pure: no I/O, no clock, no randomness. Cell order
// follows window input order. Responses from participants outside the
// filter are ignored entirely - they neither count toward the
// denominator nor appear in any cell. A participant who responds twice
// for the same slot is counted once.
func Compute(windows []models.Window, responses []models.Response, participants []models.Participant, filterType string) models.HeatMap {
	hm := models.HeatMap{
		Cells: []models.HeatMapCell{},
		Stats: models.HeatMapStats{
			OptimalSlots: []models.HeatMapCell{},
			PerfectSlots: []models.HeatMapCell{},
		},
	}
	if len(windows) == 0 {
		return hm
	}

	nameByID := make(map[int64]string)
	total := 0
	for _, p := range participants {
		if filterType != "" && p.Type != filterType {
			continue
		}
		nameByID[p.ID] = p.Name
		total++
	}
	hm.Stats.TotalParticipants = total

	counted := make(map[slotKey]map[int64]bool)
	namesByKey := make(map[slotKey][]string)
	for _, r := range responses {
		name, ok := nameByID[r.ParticipantID]
		if !ok {
			continue
		}
		key := slotKey{date: r.Date, start: r.StartTime, end: r.EndTime}
		if counted[key] == nil {
			counted[key] = make(map[int64]bool)
		}
		if counted[key][r.ParticipantID] {
			continue
		}
		counted[key][r.ParticipantID] = true
		namesByKey[key] = append(namesByKey[key], name)
	}

	maxAvailability := 0
	for _, w := range windows {
		key := slotKey{date: w.Date, start: w.StartTime, end: w.EndTime}
		names := namesByKey[key]
		count := len(names)

		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(count) / float64(total) * 100))
		}

		cellNames := make([]string, len(names))
		copy(cellNames, names)

		cell := models.HeatMapCell{
			Date:              w.Date,
			StartTime:         w.StartTime,
			EndTime:           w.EndTime,
			ResponseCount:     count,
			TotalParticipants: total,
			PercentAvailable:  percent,
			ParticipantNames:  cellNames,
		}
		hm.Cells = append(hm.Cells, cell)
		hm.Stats.TotalResponses += count
		if percent > maxAvailability {
			maxAvailability = percent
		}
		if percent == 100 {
			hm.Stats.PerfectSlots = append(hm.Stats.PerfectSlots, cell)
		}
	}

	// A tie at zero availability is not "optimal": if nobody can make
	// any slot, there is nothing to recommend.
	if maxAvailability > 0 {
		for _, cell := range hm.Cells {
			if cell.PercentAvailable == maxAvailability {
				hm.Stats.OptimalSlots = append(hm.Stats.OptimalSlots, cell)
			}
		}
	}

	return hm
}

// ComputeBoth returns the unfiltered heat map and the required-cadre-only
// heat map, the two views the organizer page shows side by side.
func ComputeBoth(windows []models.Window, responses []models.Response, participants []models.Participant) (all, required models.HeatMap) {
	all = Compute(windows, responses, participants, "")
	required = Compute(windows, responses, participants, models.TypeCadreRequired)
	return all, required
}

// Anonymize returns a copy of hm with every participant-name list
// emptied. Public consumers see counts and percentages only.
func Anonymize(hm models.HeatMap) models.HeatMap {
	out := models.HeatMap{
		Cells: stripNames(hm.Cells),
		Stats: models.HeatMapStats{
			OptimalSlots:      stripNames(hm.Stats.OptimalSlots),
			PerfectSlots:      stripNames(hm.Stats.PerfectSlots),
			TotalResponses:    hm.Stats.TotalResponses,
			TotalParticipants: hm.Stats.TotalParticipants,
		},
	}
	return out
}

func stripNames(cells []models.HeatMapCell) []models.HeatMapCell {
	out := make([]models.HeatMapCell, len(cells))
	for i, c := range cells {
		c.ParticipantNames = []string{}
		out[i] = c
	}
	return out
}
