package models

import "time"

// Poll status constants
const (
	StatusActive  = "ACTIVE"
	StatusClosed  = "CLOSED"
	StatusExpired = "EXPIRED"
	StatusBooked  = "BOOKED"
)

// Participant type constants
const (
	TypeCadreRequired = "CADRE_REQUIRED"
	TypeCadreOptional = "CADRE_OPTIONAL"
	TypeClient        = "CLIENT"
)

// Booking status constants
const (
	BookingAccepted = "ACCEPTED"
)

// Request types

// SlotInput is a single date/time slot on the wire, used both for poll
// windows and for availability submissions.
type SlotInput struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

type ParticipantInput struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID *int64 `json:"user_id,omitempty"`
}

type CreatePollRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	EventTypeID     *int64             `json:"event_type_id,omitempty"`
	DurationMinutes int                `json:"duration_minutes"`
	DateRangeStart  string             `json:"date_range_start"`
	DateRangeEnd    string             `json:"date_range_end"`
	Windows         []SlotInput        `json:"windows"`
	Participants    []ParticipantInput `json:"participants"`
}

type UpdatePollRequest struct {
	Title                *string            `json:"title,omitempty"`
	Description          *string            `json:"description,omitempty"`
	DateRangeStart       *string            `json:"date_range_start,omitempty"`
	DateRangeEnd         *string            `json:"date_range_end,omitempty"`
	AddParticipants      []ParticipantInput `json:"add_participants,omitempty"`
	RemoveParticipantIDs []int64            `json:"remove_participant_ids,omitempty"`
	// Windows, when present, replaces the entire window set and resets
	// every participant's response state.
	Windows []SlotInput `json:"windows,omitempty"`
}

type SubmitResponseRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Availability []SlotInput `json:"availability"`
}

type SubmitMultiResponseRequest struct {
	ParticipantIDs []int64     `json:"participant_ids"`
	Availability   []SlotInput `json:"availability"`
}

type BookSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Response types

type CreatePollResponse struct {
	ID        int64  `json:"id"`
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type UpdatePollResponse struct {
	ID                  int64 `json:"id"`
	ParticipantsAdded   int   `json:"participants_added"`
	ParticipantsRemoved int   `json:"participants_removed"`
	WindowsReplaced     bool  `json:"windows_replaced"`
}

type PollSummary struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	DurationMinutes  int       `json:"duration_minutes"`
	DateRangeStart   string    `json:"date_range_start"`
	DateRangeEnd     string    `json:"date_range_end"`
	Status           string    `json:"status"`
	ShareSlug        string    `json:"share_slug"`
	CreatedAt        time.Time `json:"created_at"`
	WindowCount      int       `json:"window_count"`
	ParticipantCount int       `json:"participant_count"`
	RespondedCount   int       `json:"responded_count"`
}

type PollDetail struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Status          string        `json:"status"`
	DurationMinutes int           `json:"duration_minutes"`
	DateRangeStart  string        `json:"date_range_start"`
	DateRangeEnd    string        `json:"date_range_end"`
	CreatedAt       time.Time     `json:"created_at"`
	EventType       *EventType    `json:"event_type,omitempty"`
	Booking         *BookingInfo  `json:"booking,omitempty"`
	SelectedDate    *string       `json:"selected_date,omitempty"`
	SelectedStart   *string       `json:"selected_start_time,omitempty"`
	SelectedEnd     *string       `json:"selected_end_time,omitempty"`
	Windows         []Window      `json:"windows"`
	Participants    []Participant `json:"participants"`
	HeatMap         HeatMap       `json:"heat_map"`
	HeatMapRequired HeatMap       `json:"heat_map_required"`
}

type SubmitResponseResult struct {
	Success bool `json:"success"`
}

type SubmitMultiResponseResult struct {
	Success                 bool `json:"success"`
	UpdatedParticipantCount int  `json:"updated_participant_count"`
}

type BookingInfo struct {
	ID            int64     `json:"id"`
	UID           string    `json:"uid"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	AttendeeCount int       `json:"attendee_count"`
}

type BookSlotResponse struct {
	Success bool        `json:"success"`
	Booking BookingInfo `json:"booking"`
}

// Public (unauthenticated) view types. These deliberately omit access
// tokens, and the token view omits other participants' emails.

type TokenPollView struct {
	Poll        TokenPollSummary     `json:"poll"`
	Participant TokenParticipantView `json:"participant"`
	HeatMap     HeatMap              `json:"heat_map"`
}

type TokenPollSummary struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	DurationMinutes  int           `json:"duration_minutes"`
	DateRangeStart   string        `json:"date_range_start"`
	DateRangeEnd     string        `json:"date_range_end"`
	Status           string        `json:"status"`
	Windows          []Window      `json:"windows"`
	ParticipantCount int           `json:"participant_count"`
	RespondedCount   int           `json:"responded_count"`
	Participants     []RosterEntry `json:"participants"`
}

type RosterEntry struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	HasResponded bool   `json:"has_responded"`
}

type TokenParticipantView struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	HasResponded bool       `json:"has_responded"`
	Responses    []Response `json:"responses"`
}

type SharedPollView struct {
	Poll         SharedPollSummary   `json:"poll"`
	Participants []SharedParticipant `json:"participants"`
	HeatMap      HeatMap             `json:"heat_map"`
}

type SharedPollSummary struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	DateRangeStart  string   `json:"date_range_start"`
	DateRangeEnd    string   `json:"date_range_end"`
	Status          string   `json:"status"`
	ShareSlug       string   `json:"share_slug"`
	Windows         []Window `json:"windows"`
}

type SharedParticipant struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	HasResponded bool       `json:"has_responded"`
	Responses    []Response `json:"responses"`
}

// Domain types

type Poll struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	EventTypeID     *int64    `json:"event_type_id,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	DateRangeStart  string    `json:"date_range_start"`
	DateRangeEnd    string    `json:"date_range_end"`
	Status          string    `json:"status"`
	ShareSlug       string    `json:"share_slug"`
	BookingID       *int64    `json:"booking_id,omitempty"`
	SelectedDate    *string   `json:"selected_date,omitempty"`
	SelectedStart   *string   `json:"selected_start_time,omitempty"`
	SelectedEnd     *string   `json:"selected_end_time,omitempty"`
	CreatedBy       int64     `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

type Window struct {
	ID        int64  `json:"id"`
	PollID    int64  `json:"poll_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Participant struct {
	ID           int64      `json:"id"`
	PollID       int64      `json:"poll_id"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	AccessToken  string     `json:"access_token,omitempty"`
	HasResponded bool       `json:"has_responded"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	UserID       *int64     `json:"user_id,omitempty"`
}

type Response struct {
	ID            int64  `json:"id"`
	ParticipantID int64  `json:"participant_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type EventType struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"-"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Length  int    `json:"length"`
}

// Heat map types (derived, never persisted)

type HeatMapCell struct {
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	ResponseCount     int      `json:"response_count"`
	TotalParticipants int      `json:"total_participants"`
	PercentAvailable  int      `json:"percent_available"`
	ParticipantNames  []string `json:"participant_names"`
}

type HeatMapStats struct {
	OptimalSlots      []HeatMapCell `json:"optimal_slots"`
	PerfectSlots      []HeatMapCell `json:"perfect_slots"`
	TotalResponses    int           `json:"total_responses"`
	TotalParticipants int           `json:"total_participants"`
}

type HeatMap struct {
	Cells []HeatMapCell `json:"cells"`
	Stats HeatMapStats  `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
