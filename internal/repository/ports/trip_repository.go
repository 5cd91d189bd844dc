package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderplan/wanderplan-api/internal/domain"
)

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error)
	ListByTraveller(ctx context.Context, userID string) ([]domain.Trip, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.TripPatch) (*domain.Trip, error)
	SetTravellers(ctx context.Context, id primitive.ObjectID, travellers []string) (*domain.Trip, error)
	AddDestinationRef(ctx context.Context, id, destinationID primitive.ObjectID) error
	RemoveDestinationRef(ctx context.Context, id, destinationID primitive.ObjectID) error
	SetDestinationRefs(ctx context.Context, id primitive.ObjectID, refs []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
