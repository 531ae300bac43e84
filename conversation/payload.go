package conversation

import "ProposalBot/model"

// Default branding applied to every proposal; the conversation never collects
// branding choices.
const (
	defaultPrimaryColor   = "#1a365d"
	defaultSecondaryColor = "#c9a227"
	defaultTheme          = "classic"
)

// BuildPayload turns the collected form data into the POST /api/proposals
// body. It is tolerant by design: the conversation does not force every
// field, so absent values become zero values, and an unresolved destination
// or resort falls back to the first snapshot entry.
func BuildPayload(f model.FormData, destinations []model.Destination, resorts []model.Resort) model.ProposalPayload {
	destinationID := f.DestinationID
	if destinationID == "" && len(destinations) > 0 {
		destinationID = destinations[0].ID
	}
	resortID := f.ResortID
	if resortID == "" && len(resorts) > 0 {
		resortID = resorts[0].ID
	}

	// Presence-only encoding: absent keys read as false on the consuming
	// side.
	inclusions := make(map[string]bool, len(f.ProgramInclusions))
	for _, key := range f.ProgramInclusions {
		inclusions[key] = true
	}

	var setups model.SpaceSetups
	for _, pref := range f.SetupPreferences {
		switch pref {
		case "Banquet":
			setups.Banquet = true
		case "Theater":
			setups.Theater = true
		case "Reception":
			setups.Reception = true
		}
	}

	return model.ProposalPayload{
		Client: model.ClientInfo{
			Name:    f.ClientName,
			Company: f.ClientCompany,
			Email:   f.ClientEmail,
		},
		EventDetails: model.EventDetails{
			Name:          f.EventName,
			Purpose:       f.EventPurpose,
			StartDate:     f.StartDate,
			EndDate:       f.EndDate,
			AttendeeCount: f.AttendeeCount,
			RoomsNeeded:   f.RoomsNeeded,
			HotelRating:   f.HotelRating,
		},
		DestinationID:     destinationID,
		ResortID:          resortID,
		RoomTypeIDs:       []string{},
		EventSpaceIDs:     []string{},
		DiningIDs:         []string{},
		FlightRouteIDs:    []string{},
		SpaceSetups:       setups,
		ProgramInclusions: inclusions,
		Branding: model.Branding{
			PrimaryColor:   defaultPrimaryColor,
			SecondaryColor: defaultSecondaryColor,
			Theme:          defaultTheme,
		},
	}
}
