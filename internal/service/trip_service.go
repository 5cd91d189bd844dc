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
	ErrTripNotFound   = errors.New("trip not found")
	ErrForbidden      = errors.New("caller is not a traveller on this trip")
	ErrTripValidation = errors.New("invalid trip")
)

type TripService struct {
	trips        ports.TripRepository
	destinations ports.DestinationRepository
	users        ports.UserRepository
}

func NewTripService(trips ports.TripRepository, destinations ports.DestinationRepository, users ports.UserRepository) *TripService {
	return &TripService{trips: trips, destinations: destinations, users: users}
}

// authorizeTrip is the access guard for everything beneath a trip: the trip
// must exist (checked first, so callers always learn existence before
// permission) and the caller must appear in its travellers list.
func authorizeTrip(ctx context.Context, trips ports.TripRepository, tripID primitive.ObjectID, userID string) (*domain.Trip, error) {
	trip, err := trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if !trip.HasTraveller(userID) {
		return nil, ErrForbidden
	}
	return trip, nil
}

type TripCreateInput struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create persists a new trip with the caller as its first traveller.
func (s *TripService) Create(ctx context.Context, userID string, input TripCreateInput) (*domain.Trip, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrTripValidation)
	}
	trip := &domain.Trip{
		Name:       strings.TrimSpace(input.Name),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Travellers: []string{userID},
	}
	return s.trips.Create(ctx, trip)
}

func (s *TripService) ListForUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.trips.ListByTraveller(ctx, userID)
}

func (s *TripService) Get(ctx context.Context, tripID primitive.ObjectID, userID string) (*domain.Trip, error) {
	return authorizeTrip(ctx, s.trips, tripID, userID)
}

func (s *TripService) Update(ctx context.Context, tripID primitive.ObjectID, userID string, patch domain.TripPatch) (*domain.Trip, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrTripValidation)
	}
	trip, err := s.trips.Update(ctx, tripID, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// Delete removes the trip together with every destination it references. Each
// destination delete is an independent write; a failure part-way leaves the
// remaining documents in place and is surfaced to the caller.
func (s *TripService) Delete(ctx context.Context, tripID primitive.ObjectID, userID string) error {
	trip, err := authorizeTrip(ctx, s.trips, tripID, userID)
	if err != nil {
		return err
	}
	for _, destID := range trip.Destinations {
		if err := s.destinations.Delete(ctx, destID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

// AddTraveller grants newUserID access to the trip. Adding someone who is
// already a traveller is a no-op success, preserving list uniqueness.
func (s *TripService) AddTraveller(ctx context.Context, tripID primitive.ObjectID, callerID, newUserID string) (*domain.Trip, error) {
	trip, err := authorizeTrip(ctx, s.trips, tripID, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, newUserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !trip.AddTraveller(newUserID) {
		return trip, nil
	}
	return s.trips.SetTravellers(ctx, tripID, trip.Travellers)
}

func (s *TripService) RemoveTraveller(ctx context.Context, tripID primitive.ObjectID, callerID, userID string) (*domain.Trip, error) {
	trip, err := authorizeTrip(ctx, s.trips, tripID, callerID)
	if err != nil {
		return nil, err
	}
	if !trip.RemoveTraveller(userID) {
		return trip, nil
	}
	return s.trips.SetTravellers(ctx, tripID, trip.Travellers)
}
