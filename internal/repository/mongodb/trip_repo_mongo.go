package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderplan/wanderplan-api/internal/domain"
)

type TripRepository struct {
	col *mongo.Collection
}

func NewTripRepo(db *mongo.Database) *TripRepository {
	return &TripRepository{col: db.Collection("trips")}
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	now := time.Now().UTC()
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	if trip.Travellers == nil {
		trip.Travellers = []string{}
	}
	if trip.Destinations == nil {
		trip.Destinations = []primitive.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *TripRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	var trip domain.Trip
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListByTraveller(ctx context.Context, userID string) ([]domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"travellers": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.TripPatch) (*domain.Trip, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var trip domain.Trip
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) SetTravellers(ctx context.Context, id primitive.ObjectID, travellers []string) (*domain.Trip, error) {
	update := bson.M{"$set": bson.M{
		"travellers": travellers,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var trip domain.Trip
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) AddDestinationRef(ctx context.Context, id, destinationID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"destinations": destinationID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveDestinationRef pulls destinationID from the reference list. Removing an
// id that was never referenced matches the document and succeeds unchanged.
func (r *TripRepository) RemoveDestinationRef(ctx context.Context, id, destinationID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"destinations": destinationID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TripRepository) SetDestinationRefs(ctx context.Context, id primitive.ObjectID, refs []primitive.ObjectID) error {
	if refs == nil {
		refs = []primitive.ObjectID{}
	}
	update := bson.M{"$set": bson.M{
		"destinations": refs,
		"updated_at":   time.Now().UTC(),
	}}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
