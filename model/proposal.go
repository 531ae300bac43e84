package model

// Destination is a read-only snapshot entry fetched once before the
// conversation starts.
type Destination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resort is a read-only snapshot entry fetched once before the conversation
// starts.
type Resort struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProposalPayload is the body of POST /api/proposals.
type ProposalPayload struct {
	Client            ClientInfo      `json:"client"`
	EventDetails      EventDetails    `json:"eventDetails"`
	DestinationID     string          `json:"destinationId"`
	ResortID          string          `json:"resortId"`
	RoomTypeIDs       []string        `json:"roomTypeIds"`
	EventSpaceIDs     []string        `json:"eventSpaceIds"`
	DiningIDs         []string        `json:"diningIds"`
	FlightRouteIDs    []string        `json:"flightRouteIds"`
	SpaceSetups       SpaceSetups     `json:"spaceSetups"`
	ProgramInclusions map[string]bool `json:"programInclusions"`
	Branding          Branding        `json:"branding"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

type EventDetails struct {
	Name          string `json:"name"`
	Purpose       string `json:"purpose"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	AttendeeCount int    `json:"attendeeCount"`
	RoomsNeeded   int    `json:"roomsNeeded"`
	HotelRating   string `json:"hotelRating"`
}

type SpaceSetups struct {
	Banquet   bool `json:"banquet"`
	Theater   bool `json:"theater"`
	Reception bool `json:"reception"`
}

type Branding struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Theme          string `json:"theme"`
}
