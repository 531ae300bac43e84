package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ProposalBot/model"

	"github.com/google/uuid"
)

// Effect tells the host what I/O to perform after a transition. The engine
// itself never touches the network or the session store.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSubmit asks the host to build the payload and POST it, then apply
	// Submitted or SubmitFailed.
	EffectSubmit
	// EffectReset asks the host to discard the persisted session.
	EffectReset
	// EffectView asks the host to navigate to the submitted proposal.
	EffectView
)

// Engine advances proposal conversations. The destination and resort
// snapshots are fetched once by the host and treated as immutable for the
// lifetime of the engine.
type Engine struct {
	destinations []model.Destination
	resorts      []model.Resort
}

func NewEngine(destinations []model.Destination, resorts []model.Resort) *Engine {
	return &Engine{destinations: destinations, resorts: resorts}
}

// NewConversation starts a fresh session at the first step.
func (e *Engine) NewConversation() *model.ConversationState {
	s := &model.ConversationState{
		SessionID:   uuid.NewString(),
		CurrentStep: model.StepStart,
		LastUpdated: time.Now(),
	}
	pushBot(s, "Hi! I'm your event proposal assistant. I'll ask a few quick questions and put a proposal together for you. First, what's the name of your event?", nil, model.InputText)
	return s
}

// Advance applies one user turn. It returns the next state and the effect the
// host should perform. An empty input is a no-op: the same state comes back
// unchanged and no new prompt is produced.
func (e *Engine) Advance(state *model.ConversationState, in model.Input) (*model.ConversationState, Effect) {
	if in.Empty() {
		return state, EffectNone
	}

	s := state.Clone()
	pushUser(s, in)
	effect := EffectNone

	switch s.CurrentStep {
	case model.StepStart:
		s.FormData.EventName = in.Text
		s.CurrentStep = model.StepEventType
		pushBot(s, fmt.Sprintf("Great! What type of event is %s?", s.FormData.EventName), eventTypeOptions, model.InputSingleSelect)

	case model.StepEventType:
		// Unknown labels normalize to an empty purpose tag and the
		// conversation moves on; the proposal service owns validation.
		s.FormData.EventPurpose = eventPurposeTags[in.Text]
		s.CurrentStep = model.StepEventDates
		pushBot(s, "When will your event take place? Give me a start and end date, e.g. 2026-06-10 to 2026-06-13.", nil, model.InputDate)

	case model.StepEventDates:
		start, end, ok := parseDateRange(in.Text)
		if !ok {
			pushBot(s, "I couldn't find a date in that. Please use the format 2026-06-10 to 2026-06-13.", nil, model.InputDate)
			break
		}
		s.FormData.StartDate = start
		s.FormData.EndDate = end
		s.CurrentStep = model.StepAttendeeCount
		pushBot(s, "How many attendees are you expecting?", nil, model.InputNumber)

	case model.StepAttendeeCount:
		n, err := strconv.Atoi(strings.TrimSpace(in.Text))
		if err != nil || n < 0 {
			pushBot(s, "Please give me the attendee count as a number.", nil, model.InputNumber)
			break
		}
		s.FormData.AttendeeCount = n
		s.FormData.EstimatedRooms = (n + 1) / 2
		s.CurrentStep = model.StepRoomNeeds
		pushBot(s,
			fmt.Sprintf("For %d attendees I'd estimate %d rooms at double occupancy. Does that work?", n, s.FormData.EstimatedRooms),
			[]string{fmt.Sprintf("Yes, %d rooms", s.FormData.EstimatedRooms), DeclineRoomsOption},
			model.InputSingleSelect)

	case model.StepRoomNeeds:
		answer := strings.ToLower(strings.TrimSpace(in.Text))
		switch {
		case strings.HasPrefix(answer, "yes"):
			s.FormData.RoomsNeeded = s.FormData.EstimatedRooms
			e.askHotelRating(s)
		case strings.HasPrefix(answer, "no"):
			pushBot(s, "No problem. How many rooms will you need?", nil, model.InputNumber)
		default:
			n, err := strconv.Atoi(strings.TrimSpace(in.Text))
			if err != nil || n < 0 {
				pushBot(s, "Please answer yes or no, or give me the room count as a number.", nil, model.InputNumber)
				break
			}
			s.FormData.RoomsNeeded = n
			e.askHotelRating(s)
		}

	case model.StepHotelRating:
		s.FormData.HotelRating = normalizeRating(in.Text)
		s.CurrentStep = model.StepDestination
		s.DestinationOffset = 0
		pushBot(s, "Where would you like to host it?", e.destinationPage(0), model.InputSingleSelect)

	case model.StepDestination:
		if in.Text == ShowMoreOption {
			if s.DestinationOffset+destinationPageSize < len(e.destinations) {
				s.DestinationOffset += destinationPageSize
			}
			pushBot(s, "Here are some more destinations.", e.destinationPage(s.DestinationOffset), model.InputSingleSelect)
			break
		}
		// An unresolvable name leaves the id empty; the payload builder
		// falls back to the first snapshot entry.
		s.FormData.DestinationID = e.destinationID(in.Text)
		s.CurrentStep = model.StepResort
		pushBot(s, "Great choice! Which resort would you like?", e.resortNames(), model.InputSingleSelect)

	case model.StepResort:
		s.FormData.ResortID = e.resortID(in.Text)
		s.CurrentStep = model.StepMeetingNeeds
		pushBot(s, "Will you need meeting space?", meetingNeedsOptions, model.InputSingleSelect)

	case model.StepMeetingNeeds:
		if in.Text == meetingNone {
			e.askProgramElements(s)
			break
		}
		s.CurrentStep = model.StepMeetingSetup
		pushBot(s, "How should the meeting space be set up?", setupStyleOptions, model.InputSingleSelect)

	case model.StepMeetingSetup:
		s.FormData.SetupPreferences = []string{in.Text}
		e.askProgramElements(s)

	case model.StepProgramElements:
		if acceptsDefaults(in) {
			s.FormData.ProgramInclusions = DefaultInclusions(s.FormData.EventPurpose)
		} else {
			s.FormData.ProgramInclusions = resolveInclusions(in)
		}
		s.CurrentStep = model.StepClientInfo
		pushBot(s, "Almost done! Who should the proposal be addressed to? Name, company, email.", nil, model.InputText)

	case model.StepClientInfo:
		name, company, email := splitClientInfo(in.Text)
		s.FormData.ClientName = name
		s.FormData.ClientCompany = company
		s.FormData.ClientEmail = email
		s.CurrentStep = model.StepReview
		pushBot(s, e.summary(s.FormData), reviewOptions(), model.InputSingleSelect)

	case model.StepReview:
		switch in.Text {
		case GenerateProposalOption:
			pushBot(s, "One moment while I put your proposal together.", nil, "")
			effect = EffectSubmit
		case MakeChangesOption:
			pushBot(s, "Sure, tell me what you'd like to change.", nil, model.InputText)
		default:
			// Free-text change request; there is no structured edit flow.
			pushBot(s, "Noted for the planning team.\n\n"+e.summary(s.FormData), reviewOptions(), model.InputSingleSelect)
		}

	case model.StepComplete:
		switch in.Text {
		case ViewProposalOption:
			pushBot(s, "You can view your proposal here: /proposals/"+s.ProposalID, completeOptions(), model.InputSingleSelect)
			effect = EffectView
		case CreateAnotherOption:
			return e.NewConversation(), EffectReset
		default:
			pushBot(s, "What would you like to do next?", completeOptions(), model.InputSingleSelect)
		}
	}

	s.LastUpdated = time.Now()
	return s, effect
}

// Submitted records a successful proposal submission and moves the session to
// its terminal step.
func (e *Engine) Submitted(state *model.ConversationState, proposalID string) *model.ConversationState {
	s := state.Clone()
	s.ProposalID = proposalID
	s.CurrentStep = model.StepComplete
	pushBot(s, "Your proposal is ready! What would you like to do next?", completeOptions(), model.InputSingleSelect)
	s.LastUpdated = time.Now()
	return s
}

// SubmitFailed reports a failed submission and keeps the session at review so
// the user can retry.
func (e *Engine) SubmitFailed(state *model.ConversationState) *model.ConversationState {
	s := state.Clone()
	s.CurrentStep = model.StepReview
	pushBot(s, "Something went wrong while submitting your proposal. Please try again.", reviewOptions(), model.InputSingleSelect)
	s.LastUpdated = time.Now()
	return s
}

// Payload builds the submission body for the collected form data.
func (e *Engine) Payload(state *model.ConversationState) model.ProposalPayload {
	return BuildPayload(state.FormData, e.destinations, e.resorts)
}

func (e *Engine) askHotelRating(s *model.ConversationState) {
	s.CurrentStep = model.StepHotelRating
	pushBot(s, "What standard of hotel are you looking for?", hotelRatingOptions, model.InputSingleSelect)
}

func (e *Engine) askProgramElements(s *model.ConversationState) {
	s.CurrentStep = model.StepProgramElements
	defaults := DefaultInclusions(s.FormData.EventPurpose)
	content := fmt.Sprintf(
		"Which program elements should I include? For your event I've preselected: %s. Keep that set, or pick your own.",
		strings.Join(programLabelsFor(defaults), ", "))
	pushBot(s, content, append([]string{KeepDefaultsOption}, programLabels()...), model.InputMultiSelect)
}

func (e *Engine) destinationPage(offset int) []string {
	if offset >= len(e.destinations) {
		return nil
	}
	end := offset + destinationPageSize
	if end > len(e.destinations) {
		end = len(e.destinations)
	}
	var names []string
	for _, d := range e.destinations[offset:end] {
		names = append(names, d.Name)
	}
	if end < len(e.destinations) {
		names = append(names, ShowMoreOption)
	}
	return names
}

func (e *Engine) destinationID(name string) string {
	for _, d := range e.destinations {
		if d.Name == name {
			return d.ID
		}
	}
	return ""
}

func (e *Engine) resortNames() []string {
	var names []string
	for _, r := range e.resorts {
		names = append(names, r.Name)
	}
	return names
}

func (e *Engine) resortID(name string) string {
	for _, r := range e.resorts {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}

func (e *Engine) destinationName(id string) string {
	for _, d := range e.destinations {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

func (e *Engine) resortName(id string) string {
	for _, r := range e.resorts {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

func (e *Engine) summary(f model.FormData) string {
	var b strings.Builder
	b.WriteString("Here's what I have so far:\n")
	fmt.Fprintf(&b, "Event: %s (%s)\n", f.EventName, f.EventPurpose)
	fmt.Fprintf(&b, "Dates: %s to %s\n", f.StartDate, f.EndDate)
	fmt.Fprintf(&b, "Attendees: %d, rooms: %d\n", f.AttendeeCount, f.RoomsNeeded)
	if f.HotelRating != "" {
		fmt.Fprintf(&b, "Hotel rating: %s\n", f.HotelRating)
	}
	if name := e.destinationName(f.DestinationID); name != "" {
		fmt.Fprintf(&b, "Destination: %s\n", name)
	}
	if name := e.resortName(f.ResortID); name != "" {
		fmt.Fprintf(&b, "Resort: %s\n", name)
	}
	if len(f.SetupPreferences) > 0 {
		fmt.Fprintf(&b, "Meeting setup: %s\n", strings.Join(f.SetupPreferences, ", "))
	}
	if len(f.ProgramInclusions) > 0 {
		fmt.Fprintf(&b, "Program: %s\n", strings.Join(programLabelsFor(f.ProgramInclusions), ", "))
	}
	fmt.Fprintf(&b, "Contact: %s, %s, %s\n", f.ClientName, f.ClientCompany, f.ClientEmail)
	b.WriteString("\nShall I generate the proposal?")
	return b.String()
}

func reviewOptions() []string {
	return []string{GenerateProposalOption, MakeChangesOption}
}

func completeOptions() []string {
	return []string{ViewProposalOption, CreateAnotherOption}
}

func pushBot(s *model.ConversationState, content string, options []string, hint model.InputHint) {
	s.Messages = append(s.Messages, model.Message{
		ID:        uuid.NewString(),
		Author:    model.AuthorBot,
		Content:   content,
		Options:   options,
		InputHint: hint,
	})
}

func pushUser(s *model.ConversationState, in model.Input) {
	content := in.Text
	if content == "" {
		content = strings.Join(in.Selections, ", ")
	}
	s.Messages = append(s.Messages, model.Message{
		ID:      uuid.NewString(),
		Author:  model.AuthorUser,
		Content: content,
	})
}

// parseDateRange picks the first one or two ISO dates out of the input. A
// single date means a one-day event.
func parseDateRange(text string) (start, end string, ok bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var dates []string
	for _, tok := range tokens {
		if _, err := time.Parse("2006-01-02", tok); err == nil {
			dates = append(dates, tok)
		}
	}
	switch len(dates) {
	case 0:
		return "", "", false
	case 1:
		return dates[0], dates[0], true
	default:
		return dates[0], dates[1], true
	}
}

// acceptsDefaults reports whether the user chose to keep the preselected
// program set rather than pick their own.
func acceptsDefaults(in model.Input) bool {
	if in.Text == KeepDefaultsOption {
		return true
	}
	return len(in.Selections) == 1 && in.Selections[0] == KeepDefaultsOption
}

// resolveInclusions maps a multi-select answer to catalog keys. Hosts may
// send option keys, labels, or one comma-separated line of either.
func resolveInclusions(in model.Input) []string {
	raw := in.Selections
	if len(raw) == 0 {
		raw = strings.Split(in.Text, ",")
	}
	var keys []string
	seen := make(map[string]bool)
	for _, entry := range raw {
		if key, ok := programKey(entry); ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	return keys
}

// splitClientInfo interprets one free-text line as up to three
// comma-separated fields: name, company, email. Missing trailing fields stay
// empty. Names containing commas will split wrong; that matches the original
// intake behavior.
func splitClientInfo(text string) (name, company, email string) {
	parts := strings.SplitN(text, ",", 3)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		company = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		email = strings.TrimSpace(parts[2])
	}
	return name, company, email
}
