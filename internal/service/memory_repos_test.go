package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderplan/wanderplan-api/internal/domain"
)

// In-memory port implementations shared by the service tests.

type memoryTripRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.Trip
}

func newMemoryTripRepo() *memoryTripRepo {
	return &memoryTripRepo{items: map[primitive.ObjectID]*domain.Trip{}}
}

func (r *memoryTripRepo) put(trip *domain.Trip) *domain.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()
	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	if trip.Destinations == nil {
		trip.Destinations = []primitive.ObjectID{}
	}
	clone := *trip
	r.items[trip.ID] = &clone
	return trip
}

func (r *memoryTripRepo) Create(_ context.Context, trip *domain.Trip) (*domain.Trip, error) {
	trip.CreatedAt = time.Now().UTC()
	trip.UpdatedAt = trip.CreatedAt
	return r.put(trip), nil
}

func (r *memoryTripRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *trip
	clone.Travellers = append([]string(nil), trip.Travellers...)
	clone.Destinations = append([]primitive.ObjectID(nil), trip.Destinations...)
	return &clone, nil
}

func (r *memoryTripRepo) ListByTraveller(_ context.Context, userID string) ([]domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trips := []domain.Trip{}
	for _, trip := range r.items {
		if trip.HasTraveller(userID) {
			trips = append(trips, *trip)
		}
	}
	return trips, nil
}

func (r *memoryTripRepo) Update(ctx context.Context, id primitive.ObjectID, patch domain.TripPatch) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if patch.Name != nil {
		trip.Name = *patch.Name
	}
	if patch.StartDate != nil {
		trip.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = patch.EndDate
	}
	trip.UpdatedAt = time.Now().UTC()
	clone := *trip
	return &clone, nil
}

func (r *memoryTripRepo) SetTravellers(_ context.Context, id primitive.ObjectID, travellers []string) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	trip.Travellers = append([]string(nil), travellers...)
	clone := *trip
	return &clone, nil
}

func (r *memoryTripRepo) AddDestinationRef(_ context.Context, id, destinationID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, ref := range trip.Destinations {
		if ref == destinationID {
			return nil
		}
	}
	trip.Destinations = append(trip.Destinations, destinationID)
	return nil
}

func (r *memoryTripRepo) RemoveDestinationRef(_ context.Context, id, destinationID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i, ref := range trip.Destinations {
		if ref == destinationID {
			trip.Destinations = append(trip.Destinations[:i], trip.Destinations[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryTripRepo) SetDestinationRefs(_ context.Context, id primitive.ObjectID, refs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	trip.Destinations = append([]primitive.ObjectID(nil), refs...)
	return nil
}

func (r *memoryTripRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.items, id)
	return nil
}

type memoryDestinationRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.Destination
}

func newMemoryDestinationRepo() *memoryDestinationRepo {
	return &memoryDestinationRepo{items: map[primitive.ObjectID]*domain.Destination{}}
}

func (r *memoryDestinationRepo) clone(d *domain.Destination) *domain.Destination {
	out := *d
	out.Attractions = append([]domain.Attraction(nil), d.Attractions...)
	return &out
}

func (r *memoryDestinationRepo) Create(_ context.Context, dest *domain.Destination) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest.ID = primitive.NewObjectID()
	dest.CreatedAt = time.Now().UTC()
	if dest.Attractions == nil {
		dest.Attractions = []domain.Attraction{}
	}
	r.items[dest.ID] = r.clone(dest)
	return dest, nil
}

func (r *memoryDestinationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return r.clone(dest), nil
}

func (r *memoryDestinationRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []domain.Destination{}
	for _, id := range ids {
		if dest, ok := r.items[id]; ok {
			found = append(found, *r.clone(dest))
		}
	}
	return found, nil
}

func (r *memoryDestinationRepo) Update(_ context.Context, id primitive.ObjectID, patch domain.DestinationPatch) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if patch.Name != nil {
		dest.Name = *patch.Name
	}
	if patch.Location != nil {
		dest.Location = patch.Location
	}
	if patch.PlaceID != nil {
		dest.PlaceID = patch.PlaceID
	}
	if patch.StartDate != nil {
		dest.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		dest.EndDate = patch.EndDate
	}
	return r.clone(dest), nil
}

func (r *memoryDestinationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.items, id)
	return nil
}

func (r *memoryDestinationRepo) AppendAttraction(_ context.Context, id primitive.ObjectID, attraction domain.Attraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	dest.Attractions = append(dest.Attractions, attraction)
	return nil
}

func (r *memoryDestinationRepo) UpdateAttraction(_ context.Context, id, attractionID primitive.ObjectID, patch domain.AttractionPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i := range dest.Attractions {
		if dest.Attractions[i].ID == attractionID {
			patch.Apply(&dest.Attractions[i])
			return nil
		}
	}
	return nil
}

func (r *memoryDestinationRepo) RemoveAttraction(_ context.Context, id, attractionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i := range dest.Attractions {
		if dest.Attractions[i].ID == attractionID {
			dest.Attractions = append(dest.Attractions[:i], dest.Attractions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryDestinationRepo) AppendAttractionPhoto(_ context.Context, id, attractionID primitive.ObjectID, photoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i := range dest.Attractions {
		if dest.Attractions[i].ID == attractionID {
			dest.Attractions[i].Photos = append(dest.Attractions[i].Photos, photoURL)
			return nil
		}
	}
	return nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	items map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{items: map[string]*domain.User{}}
}

func (r *memoryUserRepo) add(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.items[user.ID] = &clone
	return user
}

func (r *memoryUserRepo) CreateEmailUser(_ context.Context, email string, username *string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	now := time.Now().UTC()
	return r.add(&domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}), nil
}

func (r *memoryUserRepo) UpsertGoogleUser(_ context.Context, email string, fullName *string) (*domain.User, error) {
	r.mu.Lock()
	for _, user := range r.items {
		if user.Email == email {
			user.GoogleLinked = true
			if fullName != nil {
				user.FullName = fullName
			}
			clone := *user
			r.mu.Unlock()
			return &clone, nil
		}
	}
	r.mu.Unlock()
	return r.add(&domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		GoogleLinked: true,
		CreatedAt:    time.Now().UTC(),
	}), nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.items {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *user
	return &clone, nil
}

type memoryObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryObjectStorage() *memoryObjectStorage {
	return &memoryObjectStorage{objects: map[string][]byte{}}
}

func (s *memoryObjectStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := bucket + "/" + objectName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return fmt.Sprintf("https://storage.test/%s", key), nil
}
