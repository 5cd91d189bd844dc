package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Trip struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	StartDate    *time.Time           `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate      *time.Time           `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Travellers   []string             `bson:"travellers" json:"travellers"`
	Destinations []primitive.ObjectID `bson:"destinations" json:"destinations"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// HasTraveller reports whether userID is a member of the trip. Membership is an
// exact identity match over the flat travellers list; there is no owner/guest
// distinction at this layer.
func (t *Trip) HasTraveller(userID string) bool {
	for _, id := range t.Travellers {
		if id == userID {
			return true
		}
	}
	return false
}

// AddTraveller appends userID preserving insertion order. Adding an existing
// traveller is a no-op, keeping the at-most-once invariant.
func (t *Trip) AddTraveller(userID string) bool {
	if t.HasTraveller(userID) {
		return false
	}
	t.Travellers = append(t.Travellers, userID)
	return true
}

// RemoveTraveller removes userID from the travellers list if present.
func (t *Trip) RemoveTraveller(userID string) bool {
	for i, id := range t.Travellers {
		if id == userID {
			t.Travellers = append(t.Travellers[:i], t.Travellers[i+1:]...)
			return true
		}
	}
	return false
}

// TripPatch carries a partial update. Nil fields are left untouched.
type TripPatch struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}
