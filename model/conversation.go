package model

import "time"

// Step identifies a position in the proposal conversation flow.
type Step string

const (
	StepStart           Step = "start"
	StepEventType       Step = "event_type"
	StepEventDates      Step = "event_dates"
	StepAttendeeCount   Step = "attendee_count"
	StepRoomNeeds       Step = "room_needs"
	StepHotelRating     Step = "hotel_rating"
	StepDestination     Step = "destination"
	StepResort          Step = "resort"
	StepMeetingNeeds    Step = "meeting_needs"
	StepMeetingSetup    Step = "meeting_setup"
	StepProgramElements Step = "program_elements"
	StepClientInfo      Step = "client_info"
	StepReview          Step = "review"
	StepComplete        Step = "complete"
)

// Author identifies who wrote a message.
type Author string

const (
	AuthorBot  Author = "bot"
	AuthorUser Author = "user"
)

// InputHint tells the host what input affordance to render for a prompt.
type InputHint string

const (
	InputText         InputHint = "text"
	InputDate         InputHint = "date"
	InputNumber       InputHint = "number"
	InputSingleSelect InputHint = "single-select"
	InputMultiSelect  InputHint = "multi-select"
)

// Message is one entry in the conversation transcript.
type Message struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Options   []string  `json:"options,omitempty"`
	InputHint InputHint `json:"inputHint,omitempty"`
}

// FormData holds the fields collected over the conversation. Fields are
// written by the step that owns them and keep their zero value until then.
type FormData struct {
	EventName         string   `json:"eventName,omitempty"`
	EventPurpose      string   `json:"eventPurpose,omitempty"`
	StartDate         string   `json:"startDate,omitempty"`
	EndDate           string   `json:"endDate,omitempty"`
	AttendeeCount     int      `json:"attendeeCount,omitempty"`
	EstimatedRooms    int      `json:"estimatedRooms,omitempty"`
	RoomsNeeded       int      `json:"roomsNeeded,omitempty"`
	HotelRating       string   `json:"hotelRating,omitempty"`
	DestinationID     string   `json:"destinationId,omitempty"`
	ResortID          string   `json:"resortId,omitempty"`
	SetupPreferences  []string `json:"setupPreferences,omitempty"`
	ProgramInclusions []string `json:"programInclusions,omitempty"`
	ClientName        string   `json:"clientName,omitempty"`
	ClientCompany     string   `json:"clientCompany,omitempty"`
	ClientEmail       string   `json:"clientEmail,omitempty"`
}

// Input is one user turn: free text, or the selected option keys for a
// multi-select prompt.
type Input struct {
	Text       string   `json:"text,omitempty"`
	Selections []string `json:"selections,omitempty"`
}

// Empty reports whether the input carries nothing to act on.
func (in Input) Empty() bool {
	return in.Text == "" && len(in.Selections) == 0
}

// ConversationState is the full persisted state of one proposal-builder
// session. Session stores serialize it as JSON.
type ConversationState struct {
	SessionID   string    `json:"sessionId"`
	CurrentStep Step      `json:"currentStep"`
	FormData    FormData  `json:"formData"`
	Messages    []Message `json:"messages"`

	// DestinationOffset is the pagination cursor for the destination list,
	// advanced by the "Show me more" option.
	DestinationOffset int `json:"destinationOffset,omitempty"`

	// ProposalID is set once the proposal service accepts the submission.
	ProposalID string `json:"proposalId,omitempty"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// LastMessage returns the most recent message, or nil for an empty
// transcript. The last bot message determines the current input affordance.
func (s *ConversationState) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// Clone returns a deep copy so transitions can build a new state without
// mutating the caller's copy.
func (s *ConversationState) Clone() *ConversationState {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	for i := range out.Messages {
		out.Messages[i].Options = append([]string(nil), s.Messages[i].Options...)
	}
	out.FormData.SetupPreferences = append([]string(nil), s.FormData.SetupPreferences...)
	out.FormData.ProgramInclusions = append([]string(nil), s.FormData.ProgramInclusions...)
	return &out
}
