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

type DestinationRepository struct {
	col *mongo.Collection
}

func NewDestinationRepo(db *mongo.Database) *DestinationRepository {
	return &DestinationRepository{col: db.Collection("destinations")}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	dest.ID = primitive.NewObjectID()
	dest.CreatedAt = time.Now().UTC()
	if dest.Attractions == nil {
		dest.Attractions = []domain.Attraction{}
	}
	if _, err := r.col.InsertOne(ctx, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Destination, error) {
	var dest domain.Destination
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

// FindByIDs fetches every destination whose id appears in ids. Missing ids are
// simply absent from the result; callers decide how to treat dangling refs.
func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Destination, error) {
	if len(ids) == 0 {
		return []domain.Destination{}, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	dests := []domain.Destination{}
	if err := cursor.All(ctx, &dests); err != nil {
		return nil, err
	}
	return dests, nil
}

func (r *DestinationRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.DestinationPatch) (*domain.Destination, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.PlaceID != nil {
		set["place_id"] = *patch.PlaceID
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var dest domain.Destination
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *DestinationRepository) AppendAttraction(ctx context.Context, id primitive.ObjectID, attraction domain.Attraction) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$push": bson.M{"attractions": attraction}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateAttraction merges the provided fields onto the embedded element with a
// filtered positional update, leaving omitted fields untouched.
func (r *DestinationRepository) UpdateAttraction(ctx context.Context, id, attractionID primitive.ObjectID, patch domain.AttractionPatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["attractions.$[elem].name"] = *patch.Name
	}
	if patch.Location != nil {
		set["attractions.$[elem].location"] = *patch.Location
	}
	if patch.Address != nil {
		set["attractions.$[elem].address"] = *patch.Address
	}
	if patch.PlaceID != nil {
		set["attractions.$[elem].place_id"] = *patch.PlaceID
	}
	if patch.Notes != nil {
		set["attractions.$[elem].notes"] = *patch.Notes
	}
	if patch.Cost != nil {
		set["attractions.$[elem].cost"] = *patch.Cost
	}
	if patch.VisitDate != nil {
		set["attractions.$[elem].visit_date"] = *patch.VisitDate
	}
	if patch.Visited != nil {
		set["attractions.$[elem].visited"] = *patch.Visited
	}
	if len(set) == 0 {
		return nil
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem._id": attractionID}},
	})
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set}, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *DestinationRepository) RemoveAttraction(ctx context.Context, id, attractionID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"attractions": bson.M{"_id": attractionID}}}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *DestinationRepository) AppendAttractionPhoto(ctx context.Context, id, attractionID primitive.ObjectID, photoURL string) error {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem._id": attractionID}},
	})
	update := bson.M{"$push": bson.M{"attractions.$[elem].photos": photoURL}}
	res, err := r.col.UpdateByID(ctx, id, update, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
