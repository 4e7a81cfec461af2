package model

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// noDescription is shown for contacts without a description.
const noDescription = "No further information available."

// Contact is the data structure for a person that we met.
// The JSON keys are the ones of the contacts.json file.
type Contact struct {
	Id                uuid.UUID `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Description       string    `json:"description"`
	ImageId           uuid.UUID `json:"imageId"`
	LocationLatitude  float64   `json:"locationLatitude"`
	LocationLongitude float64   `json:"locationLongitude"`
	MeetingPlace      string    `json:"meetingPlace"`
	EventDetails      string    `json:"eventDetails"`
}

// DisplayName returns first and last name separated by a space.
func (c Contact) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// Summary returns the description, or a placeholder if there is none.
func (c Contact) Summary() string {
	if c.Description == "" {
		return noDescription
	}
	return c.Description
}

// Annotation returns the map pin for the place where we met the contact.
func (c Contact) Annotation() LocationAnnotation {
	return LocationAnnotation{
		Title:     c.MeetingPlace,
		Subtitle:  c.EventDetails,
		Latitude:  c.LocationLatitude,
		Longitude: c.LocationLongitude,
	}
}

// Less orders contacts by last name.
func Less(a, b Contact) bool {
	return a.LastName < b.LastName
}

// SortByLastName sorts contacts by last name. Contacts with the same last name keep their order.
func SortByLastName(contacts []Contact) {
	slices.SortStableFunc(contacts, func(a, b Contact) int {
		return strings.Compare(a.LastName, b.LastName)
	})
}

// Coordinate is a geographical position in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationAnnotation is a map pin with a title, a subtitle and a coordinate.
type LocationAnnotation struct {
	Title     string  `json:"title"`
	Subtitle  string  `json:"subtitle,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the position of the pin.
func (a LocationAnnotation) Coordinate() Coordinate {
	return Coordinate{Latitude: a.Latitude, Longitude: a.Longitude}
}
