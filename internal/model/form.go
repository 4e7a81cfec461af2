package model

import (
	"strings"

	"github.com/google/uuid"
)

// ContactForm holds the values entered for a new contact.
type ContactForm struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Description  string `json:"description"`
	MeetingPlace string `json:"meetingPlace"`
	EventDetails string `json:"eventDetails"`
	// SaveLocation asks for the last known position to be stored with the contact.
	SaveLocation bool `json:"saveLocation"`
	// Photo is an encoded image (JPEG, PNG or GIF). In JSON it is a base64 string.
	Photo []byte `json:"photo,omitempty"`
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// Valid reports whether both first and last name contain more than whitespace.
func (f ContactForm) Valid() bool {
	return trim(f.FirstName) != "" && trim(f.LastName) != ""
}

// MissingFields names the required fields that are empty, e.g. "first name and a last name".
// It returns an empty string for a valid form.
func (f ContactForm) MissingFields() string {
	var missing []string
	if trim(f.FirstName) == "" {
		missing = append(missing, "first name")
	}
	if trim(f.LastName) == "" {
		missing = append(missing, "last name")
	}
	switch len(missing) {
	case 0:
		return ""
	case 1:
		return missing[0]
	default:
		return missing[0] + " and a " + missing[1]
	}
}

// MissingDataMessage is the text shown when a form is submitted without the required fields.
func (f ContactForm) MissingDataMessage() string {
	return "Looks like your new contact is missing some info. Please give them a " + f.MissingFields() + "."
}

// Contact creates a new contact with fresh ids from the trimmed form values. Without a location
// the coordinate is 0, 0.
func (f ContactForm) Contact(location *Coordinate) Contact {
	contact := Contact{
		Id:           uuid.New(),
		FirstName:    trim(f.FirstName),
		LastName:     trim(f.LastName),
		Description:  trim(f.Description),
		ImageId:      uuid.New(),
		MeetingPlace: trim(f.MeetingPlace),
		EventDetails: trim(f.EventDetails),
	}
	if location != nil {
		contact.LocationLatitude = location.Latitude
		contact.LocationLongitude = location.Longitude
	}
	return contact
}
