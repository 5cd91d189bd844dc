package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderplan/wanderplan-api/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Destination, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Destination, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AppendAttraction(ctx context.Context, id primitive.ObjectID, attraction domain.Attraction) error
	UpdateAttraction(ctx context.Context, id, attractionID primitive.ObjectID, patch domain.AttractionPatch) error
	RemoveAttraction(ctx context.Context, id, attractionID primitive.ObjectID) error
	AppendAttractionPhoto(ctx context.Context, id, attractionID primitive.ObjectID, photoURL string) error
}
