package model

import "time"

// ResourceType categorises a bookable room.  Types are closed strings
// rather than free text so that availability filters stay exact.
type ResourceType string

const (
	TypeConference ResourceType = "conference"  // large conference room
	TypeMeeting    ResourceType = "meeting"     // standard meeting room
	TypePhoneBooth ResourceType = "phone_booth" // single-occupant booth
)

// KnownResourceType reports whether t is one of the enumerated types.
func KnownResourceType(t ResourceType) bool {
	switch t {
	case TypeConference, TypeMeeting, TypePhoneBooth:
		return true
	}
	return false
}

// Resource is a bookable room.  Resources are created and mutated by an
// administrative collaborator; the engine treats them as read-mostly.
// A resource is never deleted while reservations reference it — it is
// deactivated instead, which removes it from availability while leaving
// existing reservations valid as history.
//
// Fields:
//  ID              – stable identifier.
//  Name            – human readable label.
//  Type            – enumerated category (conference, meeting, phone_booth).
//  Capacity        – maximum simultaneous occupants; always ≥ 1.
//  HourlyRateCents – price per billed hour in integer cents; ≥ 0.
//  Amenities       – free-form amenity tags (whiteboard, screen, ...).
//  Active          – whether the resource may take new bookings.
//  CreatedAt       – creation timestamp (UTC).
//  UpdatedAt       – last mutation timestamp (UTC).
type Resource struct {
	ID              string       // resources.id
	Name            string       // resources.name
	Type            ResourceType // resources.type
	Capacity        int          // resources.capacity
	HourlyRateCents int64        // resources.hourly_rate_cents
	Amenities       []string     // resources.amenities
	Active          bool         // resources.is_active
	CreatedAt       time.Time    // resources.created_at
	UpdatedAt       time.Time    // resources.updated_at
}
