package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderplan/wanderplan-api/internal/domain"
	"github.com/wanderplan/wanderplan-api/internal/repository/ports"
)

var (
	ErrDestinationNotFound   = errors.New("destination not found")
	ErrDestinationValidation = errors.New("invalid destination")
)

type DestinationService struct {
	trips        ports.TripRepository
	destinations ports.DestinationRepository
}

func NewDestinationService(trips ports.TripRepository, destinations ports.DestinationRepository) *DestinationService {
	return &DestinationService{trips: trips, destinations: destinations}
}

// List resolves the trip's reference list into full documents, preserving
// reference order. Ids with no backing document are skipped; Reconcile cleans
// them up.
func (s *DestinationService) List(ctx context.Context, tripID primitive.ObjectID, userID string) ([]domain.Destination, error) {
	trip, err := authorizeTrip(ctx, s.trips, tripID, userID)
	if err != nil {
		return nil, err
	}
	found, err := s.destinations.FindByIDs(ctx, trip.Destinations)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Destination, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	ordered := make([]domain.Destination, 0, len(found))
	for _, ref := range trip.Destinations {
		if dest, ok := byID[ref]; ok {
			ordered = append(ordered, *dest)
		}
	}
	return ordered, nil
}

type DestinationCreateInput struct {
	Name      string
	Location  *domain.Coordinate
	PlaceID   *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create persists the destination, then appends its id onto the trip's
// reference list. The two writes are sequential and not atomic: if the second
// fails the new destination is left unreferenced and the error is surfaced.
func (s *DestinationService) Create(ctx context.Context, tripID primitive.ObjectID, userID string, input DestinationCreateInput) (*domain.Destination, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrDestinationValidation)
	}

	dest, err := s.destinations.Create(ctx, &domain.Destination{
		Name:      strings.TrimSpace(input.Name),
		Location:  input.Location,
		PlaceID:   input.PlaceID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.trips.AddDestinationRef(ctx, tripID, dest.ID); err != nil {
		return nil, err
	}
	return dest, nil
}

// Get fetches the destination directly by id once the trip guard has passed.
// The id is not re-checked against the trip's reference list.
func (s *DestinationService) Get(ctx context.Context, tripID, destinationID primitive.ObjectID, userID string) (*domain.Destination, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	dest, err := s.destinations.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

// Update overwrites only the fields the patch provides.
func (s *DestinationService) Update(ctx context.Context, tripID, destinationID primitive.ObjectID, userID string, patch domain.DestinationPatch) (*domain.Destination, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrDestinationValidation)
	}
	dest, err := s.destinations.Update(ctx, destinationID, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

// Delete removes the destination document, then pulls its id from the trip's
// reference list. A trip that never referenced the id is saved unchanged.
func (s *DestinationService) Delete(ctx context.Context, tripID, destinationID primitive.ObjectID, userID string) (*domain.Destination, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	dest, err := s.destinations.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if err := s.destinations.Delete(ctx, destinationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if err := s.trips.RemoveDestinationRef(ctx, tripID, destinationID); err != nil {
		return nil, err
	}
	return dest, nil
}

// Reconcile drops reference-list entries whose destination document no longer
// exists, the cleanup path for the non-atomic create/delete windows. It
// returns the ids that were removed.
func (s *DestinationService) Reconcile(ctx context.Context, tripID primitive.ObjectID, userID string) ([]primitive.ObjectID, error) {
	trip, err := authorizeTrip(ctx, s.trips, tripID, userID)
	if err != nil {
		return nil, err
	}
	found, err := s.destinations.FindByIDs(ctx, trip.Destinations)
	if err != nil {
		return nil, err
	}
	exists := make(map[primitive.ObjectID]bool, len(found))
	for i := range found {
		exists[found[i].ID] = true
	}

	kept := make([]primitive.ObjectID, 0, len(trip.Destinations))
	removed := []primitive.ObjectID{}
	for _, ref := range trip.Destinations {
		if exists[ref] {
			kept = append(kept, ref)
		} else {
			removed = append(removed, ref)
		}
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if err := s.trips.SetDestinationRefs(ctx, tripID, kept); err != nil {
		return nil, err
	}
	return removed, nil
}
