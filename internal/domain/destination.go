package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coordinate struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Destination struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Location    *Coordinate        `bson:"location,omitempty" json:"location,omitempty"`
	PlaceID     *string            `bson:"place_id,omitempty" json:"place_id,omitempty"`
	StartDate   *time.Time         `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Attractions []Attraction       `bson:"attractions" json:"attractions"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// AttractionByID locates an attraction inside the embedded sequence. Returns
// nil when the id is not present.
func (d *Destination) AttractionByID(id primitive.ObjectID) *Attraction {
	for i := range d.Attractions {
		if d.Attractions[i].ID == id {
			return &d.Attractions[i]
		}
	}
	return nil
}

type Attraction struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Location  *Coordinate        `bson:"location,omitempty" json:"location,omitempty"`
	Address   *string            `bson:"address,omitempty" json:"address,omitempty"`
	PlaceID   *string            `bson:"place_id,omitempty" json:"place_id,omitempty"`
	Photos    []string           `bson:"photos" json:"photos"`
	Notes     *string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Cost      *float64           `bson:"cost,omitempty" json:"cost,omitempty"`
	VisitDate *time.Time         `bson:"visit_date,omitempty" json:"visit_date,omitempty"`
	Visited   bool               `bson:"visited" json:"visited"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DestinationPatch carries a partial update: only non-nil fields are written.
// A field the payload omits is never cleared.
type DestinationPatch struct {
	Name      *string     `json:"name"`
	Location  *Coordinate `json:"location"`
	PlaceID   *string     `json:"place_id"`
	StartDate *time.Time  `json:"start_date"`
	EndDate   *time.Time  `json:"end_date"`
}

// AttractionPatch carries a partial update for an embedded attraction.
type AttractionPatch struct {
	Name      *string     `json:"name"`
	Location  *Coordinate `json:"location"`
	Address   *string     `json:"address"`
	PlaceID   *string     `json:"place_id"`
	Notes     *string     `json:"notes"`
	Cost      *float64    `json:"cost"`
	VisitDate *time.Time  `json:"visit_date"`
	Visited   *bool       `json:"visited"`
}

// Apply merges the patch onto a in place, overwriting provided fields only.
func (p AttractionPatch) Apply(a *Attraction) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Location != nil {
		a.Location = p.Location
	}
	if p.Address != nil {
		a.Address = p.Address
	}
	if p.PlaceID != nil {
		a.PlaceID = p.PlaceID
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	if p.Cost != nil {
		a.Cost = p.Cost
	}
	if p.VisitDate != nil {
		a.VisitDate = p.VisitDate
	}
	if p.Visited != nil {
		a.Visited = *p.Visited
	}
}
