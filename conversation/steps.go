package conversation

import "strings"

// Option labels the engine offers and matches against. Hosts send these back
// verbatim when the user taps/clicks an option.
const (
	ShowMoreOption         = "Show me more"
	DeclineRoomsOption     = "No, let me specify"
	KeepDefaultsOption     = "Keep the preselected set"
	GenerateProposalOption = "Generate Proposal"
	MakeChangesOption      = "Make Changes"
	ViewProposalOption     = "View Proposal"
	CreateAnotherOption    = "Create Another"
)

const (
	meetingFullGroup = "Full-group meeting space"
	meetingBreakout  = "Breakout rooms"
	meetingNone      = "No meeting space needed"
)

// destinationPageSize is how many destination names are revealed per
// "Show me more" batch.
const destinationPageSize = 5

var eventTypeOptions = []string{
	"Corporate Meeting",
	"Incentive Trip",
	"Conference",
	"Company Retreat",
}

// eventPurposeTags maps the offered event types to the canonical purpose tag
// carried in the proposal payload.
var eventPurposeTags = map[string]string{
	"Corporate Meeting": "corporate",
	"Incentive Trip":    "incentive",
	"Conference":        "conference",
	"Company Retreat":   "retreat",
}

var hotelRatingOptions = []string{
	"5-Star Luxury",
	"4-Star Premium",
	"No Preference",
}

var meetingNeedsOptions = []string{
	meetingFullGroup,
	meetingBreakout,
	meetingNone,
}

var setupStyleOptions = []string{
	"Banquet",
	"Theater",
	"Reception",
	"Classroom",
}

// ProgramOption is one entry of the program-inclusion catalog.
type ProgramOption struct {
	Key            string
	Label          string
	DefaultChecked bool
}

var programCatalog = []ProgramOption{
	{Key: "welcomeReception", Label: "Welcome Reception", DefaultChecked: true},
	{Key: "galaDinner", Label: "Gala Dinner", DefaultChecked: true},
	{Key: "teamBuilding", Label: "Team Building Activities", DefaultChecked: false},
	{Key: "businessMeeting", Label: "Business Meeting Sessions", DefaultChecked: false},
	{Key: "spaAccess", Label: "Spa Access", DefaultChecked: false},
	{Key: "golfOuting", Label: "Golf Outing", DefaultChecked: false},
	{Key: "farewellBrunch", Label: "Farewell Brunch", DefaultChecked: true},
}

// ProgramCatalog returns a copy of the program-inclusion catalog.
func ProgramCatalog() []ProgramOption {
	out := make([]ProgramOption, len(programCatalog))
	copy(out, programCatalog)
	return out
}

// DefaultInclusions returns the inclusion keys that start out checked for the
// given event purpose. Business meeting sessions are preselected for
// corporate events even though their catalog entry is unchecked by default.
func DefaultInclusions(purpose string) []string {
	var keys []string
	for _, opt := range programCatalog {
		if opt.DefaultChecked || (opt.Key == "businessMeeting" && purpose == "corporate") {
			keys = append(keys, opt.Key)
		}
	}
	return keys
}

// programKey resolves a catalog key or label to the catalog key.
func programKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, opt := range programCatalog {
		if s == opt.Key || strings.EqualFold(s, opt.Label) {
			return opt.Key, true
		}
	}
	return "", false
}

func programLabels() []string {
	labels := make([]string, len(programCatalog))
	for i, opt := range programCatalog {
		labels[i] = opt.Label
	}
	return labels
}

// programLabelsFor maps inclusion keys back to their catalog labels.
func programLabelsFor(keys []string) []string {
	var labels []string
	for _, key := range keys {
		for _, opt := range programCatalog {
			if opt.Key == key {
				labels = append(labels, opt.Label)
			}
		}
	}
	return labels
}

// normalizeRating maps a rating option to the payload value; anything without
// a star grade normalizes to no preference.
func normalizeRating(choice string) string {
	switch {
	case strings.Contains(choice, "5-Star"):
		return "5-star"
	case strings.Contains(choice, "4-Star"):
		return "4-star"
	default:
		return ""
	}
}
