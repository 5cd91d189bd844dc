package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderplan/wanderplan-api/internal/domain"
	"github.com/wanderplan/wanderplan-api/internal/media"
	"github.com/wanderplan/wanderplan-api/internal/repository/ports"
)

var (
	ErrAttractionNotFound   = errors.New("attraction not found")
	ErrAttractionValidation = errors.New("invalid attraction")
)

// AttractionService manages the attraction subdocuments embedded in a
// destination. Reads require only an authenticated caller; writes require the
// edit capability, which is traveller membership on the owning trip.
type AttractionService struct {
	trips        ports.TripRepository
	destinations ports.DestinationRepository
	storage      ports.ObjectStorage

	photoBucket       string
	photoMaxBytes     int64
	photoMaxDimension int
}

type AttractionServiceConfig struct {
	PhotoBucket       string
	PhotoMaxBytes     int64
	PhotoMaxDimension int
}

func NewAttractionService(trips ports.TripRepository, destinations ports.DestinationRepository, storage ports.ObjectStorage, cfg AttractionServiceConfig) *AttractionService {
	return &AttractionService{
		trips:             trips,
		destinations:      destinations,
		storage:           storage,
		photoBucket:       cfg.PhotoBucket,
		photoMaxBytes:     cfg.PhotoMaxBytes,
		photoMaxDimension: cfg.PhotoMaxDimension,
	}
}

func (s *AttractionService) findDestination(ctx context.Context, destinationID primitive.ObjectID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

// List returns the destination's full attraction sequence in insertion order.
func (s *AttractionService) List(ctx context.Context, destinationID primitive.ObjectID) ([]domain.Attraction, error) {
	dest, err := s.findDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	return dest.Attractions, nil
}

func (s *AttractionService) Get(ctx context.Context, destinationID, attractionID primitive.ObjectID) (*domain.Attraction, error) {
	dest, err := s.findDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	attraction := dest.AttractionByID(attractionID)
	if attraction == nil {
		return nil, ErrAttractionNotFound
	}
	return attraction, nil
}

type AttractionCreateInput struct {
	Name      string
	Location  *domain.Coordinate
	Address   *string
	PlaceID   *string
	Notes     *string
	Cost      *float64
	VisitDate *time.Time
	Visited   bool
}

// Create appends a new attraction to the destination's sequence and returns
// the element carrying the id assigned at insert time.
func (s *AttractionService) Create(ctx context.Context, tripID, destinationID primitive.ObjectID, userID string, input AttractionCreateInput) (*domain.Attraction, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrAttractionValidation)
	}
	if _, err := s.findDestination(ctx, destinationID); err != nil {
		return nil, err
	}

	attraction := domain.Attraction{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(input.Name),
		Location:  input.Location,
		Address:   input.Address,
		PlaceID:   input.PlaceID,
		Photos:    []string{},
		Notes:     input.Notes,
		Cost:      input.Cost,
		VisitDate: input.VisitDate,
		Visited:   input.Visited,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.destinations.AppendAttraction(ctx, destinationID, attraction); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return &attraction, nil
}

// Update merges the provided fields onto the embedded element and returns the
// merged result.
func (s *AttractionService) Update(ctx context.Context, tripID, destinationID, attractionID primitive.ObjectID, userID string, patch domain.AttractionPatch) (*domain.Attraction, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrAttractionValidation)
	}
	dest, err := s.findDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	attraction := dest.AttractionByID(attractionID)
	if attraction == nil {
		return nil, ErrAttractionNotFound
	}
	if err := s.destinations.UpdateAttraction(ctx, destinationID, attractionID, patch); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	patch.Apply(attraction)
	return attraction, nil
}

// Delete removes exactly one element from the sequence by id.
func (s *AttractionService) Delete(ctx context.Context, tripID, destinationID, attractionID primitive.ObjectID, userID string) error {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return err
	}
	dest, err := s.findDestination(ctx, destinationID)
	if err != nil {
		return err
	}
	if dest.AttractionByID(attractionID) == nil {
		return ErrAttractionNotFound
	}
	if err := s.destinations.RemoveAttraction(ctx, destinationID, attractionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// AddPhoto validates the uploaded image, stores it in object storage under a
// fresh key, and appends the resulting URL to the attraction's photo list.
func (s *AttractionService) AddPhoto(ctx context.Context, tripID, destinationID, attractionID primitive.ObjectID, userID string, upload PhotoUpload) (string, error) {
	if _, err := authorizeTrip(ctx, s.trips, tripID, userID); err != nil {
		return "", err
	}
	if s.storage == nil {
		return "", errors.New("photo storage is not configured")
	}
	dest, err := s.findDestination(ctx, destinationID)
	if err != nil {
		return "", err
	}
	if dest.AttractionByID(attractionID) == nil {
		return "", ErrAttractionNotFound
	}

	photo, err := media.ValidatePhoto(upload.Reader, upload.Size, s.photoMaxBytes, upload.ContentType, s.photoMaxDimension)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) {
			return "", fmt.Errorf("%w: %v", ErrAttractionValidation, err)
		}
		return "", err
	}

	objectName := fmt.Sprintf("attractions/%s/%s%s", attractionID.Hex(), uuid.NewString(), extensionFor(photo.ContentType))
	url, err := s.storage.Upload(ctx, s.photoBucket, objectName, photo.ContentType, bytes.NewReader(photo.Bytes), int64(len(photo.Bytes)))
	if err != nil {
		return "", err
	}
	if err := s.destinations.AppendAttractionPhoto(ctx, destinationID, attractionID, url); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrDestinationNotFound
		}
		return "", err
	}
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
