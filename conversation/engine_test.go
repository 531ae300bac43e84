package conversation

import (
	"encoding/json"
	"fmt"
	"testing"

	"ProposalBot/model"

	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return NewEngine(
		[]model.Destination{
			{ID: "dest-cancun", Name: "Cancun"},
			{ID: "dest-los-cabos", Name: "Los Cabos"},
			{ID: "dest-punta-cana", Name: "Punta Cana"},
			{ID: "dest-riviera-maya", Name: "Riviera Maya"},
			{ID: "dest-montego-bay", Name: "Montego Bay"},
			{ID: "dest-aruba", Name: "Aruba"},
			{ID: "dest-nassau", Name: "Nassau"},
		},
		[]model.Resort{
			{ID: "resort-grand-azul", Name: "Grand Azul"},
			{ID: "resort-villa-sol", Name: "Villa Sol"},
		},
	)
}

func text(s string) model.Input {
	return model.Input{Text: s}
}

func selections(keys ...string) model.Input {
	return model.Input{Selections: keys}
}

// happyInputs walks every step of the flow up to review.
var happyInputs = []model.Input{
	text("Product Launch"),
	text("Corporate Meeting"),
	text("2026-06-10 to 2026-06-13"),
	text("41"),
	text("Yes, 21 rooms"),
	text("5-Star Luxury"),
	text("Cancun"),
	text("Villa Sol"),
	text("Full-group meeting space"),
	text("Banquet"),
	selections("welcomeReception", "galaDinner", "businessMeeting"),
	text("Jane Doe, Acme Co, jane@acme.com"),
}

// stateAt replays the happy path until the conversation reaches the given
// step.
func stateAt(t *testing.T, e *Engine, step model.Step) *model.ConversationState {
	t.Helper()
	s := e.NewConversation()
	for _, in := range happyInputs {
		if s.CurrentStep == step {
			return s
		}
		s, _ = e.Advance(s, in)
	}
	require.Equal(t, step, s.CurrentStep)
	return s
}

func TestStartCollectsEventName(t *testing.T) {
	e := testEngine()
	s := e.NewConversation()
	require.Equal(t, model.StepStart, s.CurrentStep)

	s, effect := e.Advance(s, text("Product Launch"))
	require.Equal(t, EffectNone, effect)
	require.Equal(t, "Product Launch", s.FormData.EventName)
	require.Equal(t, model.StepEventType, s.CurrentStep)

	last := s.LastMessage()
	require.Equal(t, model.AuthorBot, last.Author)
	require.Equal(t, []string{"Corporate Meeting", "Incentive Trip", "Conference", "Company Retreat"}, last.Options)
}

func TestFullFlowReachesComplete(t *testing.T) {
	e := testEngine()
	s := e.NewConversation()
	for _, in := range happyInputs {
		s, _ = e.Advance(s, in)
	}
	require.Equal(t, model.StepReview, s.CurrentStep)

	f := s.FormData
	require.Equal(t, "Product Launch", f.EventName)
	require.Equal(t, "corporate", f.EventPurpose)
	require.Equal(t, "2026-06-10", f.StartDate)
	require.Equal(t, "2026-06-13", f.EndDate)
	require.Equal(t, 41, f.AttendeeCount)
	require.Equal(t, 21, f.EstimatedRooms)
	require.Equal(t, 21, f.RoomsNeeded)
	require.Equal(t, "5-star", f.HotelRating)
	require.Equal(t, "dest-cancun", f.DestinationID)
	require.Equal(t, "resort-villa-sol", f.ResortID)
	require.Equal(t, []string{"Banquet"}, f.SetupPreferences)
	require.Equal(t, []string{"welcomeReception", "galaDinner", "businessMeeting"}, f.ProgramInclusions)
	require.Equal(t, "Jane Doe", f.ClientName)
	require.Equal(t, "Acme Co", f.ClientCompany)
	require.Equal(t, "jane@acme.com", f.ClientEmail)

	s, effect := e.Advance(s, text(GenerateProposalOption))
	require.Equal(t, EffectSubmit, effect)
	require.Equal(t, model.StepReview, s.CurrentStep)

	s = e.Submitted(s, "prop-1")
	require.Equal(t, model.StepComplete, s.CurrentStep)
	require.Equal(t, "prop-1", s.ProposalID)
	require.Equal(t, []string{ViewProposalOption, CreateAnotherOption}, s.LastMessage().Options)

	viewed, effect := e.Advance(s, text(ViewProposalOption))
	require.Equal(t, EffectView, effect)
	require.Contains(t, viewed.LastMessage().Content, "/proposals/prop-1")

	fresh, effect := e.Advance(viewed, text(CreateAnotherOption))
	require.Equal(t, EffectReset, effect)
	require.Equal(t, model.StepStart, fresh.CurrentStep)
	require.Equal(t, model.FormData{}, fresh.FormData)
	require.NotEqual(t, viewed.SessionID, fresh.SessionID)
}

func TestEmptyInputIsNoOpAtEveryStep(t *testing.T) {
	e := testEngine()

	assertNoOp := func(s *model.ConversationState) {
		t.Helper()
		before, _ := json.Marshal(s)
		next, effect := e.Advance(s, model.Input{})
		require.Same(t, s, next, "step %s", s.CurrentStep)
		require.Equal(t, EffectNone, effect)
		after, _ := json.Marshal(s)
		require.JSONEq(t, string(before), string(after))
	}

	s := e.NewConversation()
	for i := 0; ; i++ {
		assertNoOp(s)
		if i == len(happyInputs) {
			break
		}
		s, _ = e.Advance(s, happyInputs[i])
	}

	// The terminal step must be a no-op as well.
	s, _ = e.Advance(s, text(GenerateProposalOption))
	s = e.Submitted(s, "prop-9")
	require.Equal(t, model.StepComplete, s.CurrentStep)
	assertNoOp(s)
}

func TestRoomEstimate(t *testing.T) {
	e := testEngine()
	for _, tc := range []struct {
		attendees string
		rooms     int
	}{
		{"0", 0},
		{"1", 1},
		{"41", 21},
	} {
		s := stateAt(t, e, model.StepAttendeeCount)
		s, _ = e.Advance(s, text(tc.attendees))
		require.Equal(t, tc.rooms, s.FormData.EstimatedRooms, "attendees=%s", tc.attendees)
		require.Equal(t, model.StepRoomNeeds, s.CurrentStep)
		require.Equal(t,
			[]string{fmt.Sprintf("Yes, %d rooms", tc.rooms), DeclineRoomsOption},
			s.LastMessage().Options)
	}
}

func TestDeclineRoomEstimate(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepRoomNeeds)

	s, _ = e.Advance(s, text(DeclineRoomsOption))
	require.Equal(t, model.StepRoomNeeds, s.CurrentStep)
	require.Zero(t, s.FormData.RoomsNeeded)

	s, _ = e.Advance(s, text("15"))
	require.Equal(t, 15, s.FormData.RoomsNeeded)
	require.Equal(t, model.StepHotelRating, s.CurrentStep)
}

func TestRoomConfirmationIsCaseInsensitive(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepRoomNeeds)

	s, _ = e.Advance(s, text("yes please"))
	require.Equal(t, 21, s.FormData.RoomsNeeded)
	require.Equal(t, model.StepHotelRating, s.CurrentStep)

	s = stateAt(t, e, model.StepRoomNeeds)
	s, _ = e.Advance(s, text("no thanks"))
	require.Equal(t, model.StepRoomNeeds, s.CurrentStep)
	require.Zero(t, s.FormData.RoomsNeeded)

	s, _ = e.Advance(s, text("15"))
	require.Equal(t, 15, s.FormData.RoomsNeeded)
	require.Equal(t, model.StepHotelRating, s.CurrentStep)
}

func TestRoomConfirmationRepromptMentionsBothAnswers(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepRoomNeeds)

	s, _ = e.Advance(s, text("maybe"))
	require.Equal(t, model.StepRoomNeeds, s.CurrentStep)
	require.Zero(t, s.FormData.RoomsNeeded)
	require.Contains(t, s.LastMessage().Content, "yes or no")
	require.Equal(t, model.InputNumber, s.LastMessage().InputHint)
}

func TestNonNumericAttendeeCountReprompts(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepAttendeeCount)

	next, _ := e.Advance(s, text("a lot"))
	require.Equal(t, model.StepAttendeeCount, next.CurrentStep)
	require.Zero(t, next.FormData.AttendeeCount)
	require.Equal(t, model.InputNumber, next.LastMessage().InputHint)
}

func TestSingleDateMeansOneDayEvent(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepEventDates)

	s, _ = e.Advance(s, text("2026-09-01"))
	require.Equal(t, "2026-09-01", s.FormData.StartDate)
	require.Equal(t, "2026-09-01", s.FormData.EndDate)
	require.Equal(t, model.StepAttendeeCount, s.CurrentStep)
}

func TestUnparseableDateReprompts(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepEventDates)

	next, _ := e.Advance(s, text("sometime next summer"))
	require.Equal(t, model.StepEventDates, next.CurrentStep)
	require.Empty(t, next.FormData.StartDate)
}

func TestDestinationPagination(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepDestination)

	first := s.LastMessage().Options
	require.Equal(t, []string{"Cancun", "Los Cabos", "Punta Cana", "Riviera Maya", "Montego Bay", ShowMoreOption}, first)

	s, _ = e.Advance(s, text(ShowMoreOption))
	require.Equal(t, model.StepDestination, s.CurrentStep)
	require.Equal(t, []string{"Aruba", "Nassau"}, s.LastMessage().Options)

	s, _ = e.Advance(s, text("Aruba"))
	require.Equal(t, "dest-aruba", s.FormData.DestinationID)
	require.Equal(t, model.StepResort, s.CurrentStep)
}

func TestUnknownDestinationLeavesIDEmpty(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepDestination)

	s, _ = e.Advance(s, text("Atlantis"))
	require.Empty(t, s.FormData.DestinationID)
	require.Equal(t, model.StepResort, s.CurrentStep)
}

func TestNoMeetingSpaceSkipsSetup(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepMeetingNeeds)

	s, _ = e.Advance(s, text(meetingNone))
	require.Equal(t, model.StepProgramElements, s.CurrentStep)
	require.Empty(t, s.FormData.SetupPreferences)
	require.Equal(t, model.InputMultiSelect, s.LastMessage().InputHint)
}

func TestDefaultInclusions(t *testing.T) {
	for _, opt := range ProgramCatalog() {
		if opt.Key == "businessMeeting" {
			require.False(t, opt.DefaultChecked)
		}
	}
	require.Contains(t, DefaultInclusions("corporate"), "businessMeeting")
	require.NotContains(t, DefaultInclusions("incentive"), "businessMeeting")
	require.Contains(t, DefaultInclusions("incentive"), "welcomeReception")
}

func TestKeepPreselectedProgramSet(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepProgramElements)

	prompt := s.LastMessage()
	require.Equal(t, KeepDefaultsOption, prompt.Options[0])
	require.Contains(t, prompt.Content, "Business Meeting Sessions")

	s, _ = e.Advance(s, selections(KeepDefaultsOption))
	require.Equal(t, DefaultInclusions("corporate"), s.FormData.ProgramInclusions)
	require.Contains(t, s.FormData.ProgramInclusions, "businessMeeting")
	require.Equal(t, model.StepClientInfo, s.CurrentStep)
}

func TestPreselectedSetFollowsEventPurpose(t *testing.T) {
	e := testEngine()
	s := e.NewConversation()
	for i := 0; s.CurrentStep != model.StepProgramElements; i++ {
		in := happyInputs[i]
		if i == 1 {
			in = text("Incentive Trip")
		}
		s, _ = e.Advance(s, in)
	}

	require.NotContains(t, s.LastMessage().Content, "Business Meeting Sessions")

	s, _ = e.Advance(s, text(KeepDefaultsOption))
	require.NotContains(t, s.FormData.ProgramInclusions, "businessMeeting")
	require.Contains(t, s.FormData.ProgramInclusions, "welcomeReception")
	require.Equal(t, model.StepClientInfo, s.CurrentStep)
}

func TestProgramSelectionAcceptsLabelsAndKeys(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepProgramElements)

	s, _ = e.Advance(s, text("Welcome Reception, golfOuting, Bowling Night"))
	require.Equal(t, []string{"welcomeReception", "golfOuting"}, s.FormData.ProgramInclusions)
	require.Equal(t, model.StepClientInfo, s.CurrentStep)
}

func TestClientInfoMissingTrailingFields(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepClientInfo)

	s, _ = e.Advance(s, text("Jane Doe"))
	require.Equal(t, "Jane Doe", s.FormData.ClientName)
	require.Empty(t, s.FormData.ClientCompany)
	require.Empty(t, s.FormData.ClientEmail)
	require.Equal(t, model.StepReview, s.CurrentStep)
}

func TestMakeChangesStaysAtReview(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepReview)

	s, effect := e.Advance(s, text(MakeChangesOption))
	require.Equal(t, EffectNone, effect)
	require.Equal(t, model.StepReview, s.CurrentStep)

	s, effect = e.Advance(s, text("make the hotel 4-star instead"))
	require.Equal(t, EffectNone, effect)
	require.Equal(t, model.StepReview, s.CurrentStep)
	require.Equal(t, []string{GenerateProposalOption, MakeChangesOption}, s.LastMessage().Options)
}

func TestSubmitFailedAllowsRetry(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepReview)

	s, effect := e.Advance(s, text(GenerateProposalOption))
	require.Equal(t, EffectSubmit, effect)

	s = e.SubmitFailed(s)
	require.Equal(t, model.StepReview, s.CurrentStep)
	require.Equal(t, []string{GenerateProposalOption, MakeChangesOption}, s.LastMessage().Options)

	_, effect = e.Advance(s, text(GenerateProposalOption))
	require.Equal(t, EffectSubmit, effect)
}

func TestSerializationRoundTrip(t *testing.T) {
	e := testEngine()
	s := stateAt(t, e, model.StepRoomNeeds)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var restored model.ConversationState
	require.NoError(t, json.Unmarshal(raw, &restored))

	next, _ := e.Advance(s, text("Yes, 21 rooms"))
	restoredNext, _ := e.Advance(&restored, text("Yes, 21 rooms"))

	require.Equal(t, next.CurrentStep, restoredNext.CurrentStep)
	require.Equal(t, next.FormData, restoredNext.FormData)
	require.Equal(t, next.LastMessage().Content, restoredNext.LastMessage().Content)
	require.Equal(t, next.LastMessage().Options, restoredNext.LastMessage().Options)
}

func TestAdvanceDoesNotMutateInputState(t *testing.T) {
	e := testEngine()
	s := e.NewConversation()
	before, _ := json.Marshal(s)

	_, _ = e.Advance(s, text("Product Launch"))

	after, _ := json.Marshal(s)
	require.JSONEq(t, string(before), string(after))
}
