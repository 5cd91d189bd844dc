package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderplan/wanderplan-api/internal/domain"
)

func attractionFixture(t *testing.T) (*AttractionService, *memoryTripRepo, *memoryDestinationRepo, *memoryObjectStorage, *domain.Trip, *domain.Destination, string) {
	t.Helper()
	trips := newMemoryTripRepo()
	destinations := newMemoryDestinationRepo()
	storage := newMemoryObjectStorage()

	member := uuid.NewString()
	trip := seedTrip(t, trips, "Attractions", member)

	dest, err := NewDestinationService(trips, destinations).Create(context.Background(), trip.ID, member, DestinationCreateInput{Name: "Kyoto"})
	if err != nil {
		t.Fatalf("seeding destination: %v", err)
	}

	svc := NewAttractionService(trips, destinations, storage, AttractionServiceConfig{
		PhotoBucket:       "wanderplan-photos",
		PhotoMaxBytes:     1 << 20,
		PhotoMaxDimension: 512,
	})
	return svc, trips, destinations, storage, trip, dest, member
}

func TestAttractionService_Create_RetrievableByAssignedID(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, trip, dest, member := attractionFixture(t)

	notes := "go early, queues by 9am"
	cost := 12.5
	created, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{
		Name:  "Fushimi Inari",
		Notes: &notes,
		Cost:  &cost,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected assigned attraction id")
	}
	if created.Photos == nil || len(created.Photos) != 0 {
		t.Fatalf("expected empty photo list, got %v", created.Photos)
	}

	got, err := svc.Get(ctx, dest.ID, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Fushimi Inari" || got.Notes == nil || *got.Notes != notes || got.Cost == nil || *got.Cost != cost {
		t.Fatalf("fields not preserved: %+v", got)
	}
}

func TestAttractionService_ReadsNeedNoTripMembership(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, trip, dest, member := attractionFixture(t)

	created, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Gion"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// List and Get take no caller id and succeed without the trip guard.
	listed, err := svc.List(ctx, dest.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected listing: %v", listed)
	}

	// Writes are guarded.
	if _, err := svc.Create(ctx, trip.ID, dest.ID, uuid.NewString(), AttractionCreateInput{Name: "Nijo"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider write, got %v", err)
	}
	if _, err := svc.Create(ctx, primitive.NewObjectID(), dest.ID, member, AttractionCreateInput{Name: "Nijo"}); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound for missing trip, got %v", err)
	}
}

func TestAttractionService_Update_PartialMerge(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, trip, dest, member := attractionFixture(t)

	addr := "68 Fukakusa Yabunouchicho"
	created, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Fushimi Inari", Address: &addr})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	visited := true
	updated, err := svc.Update(ctx, trip.ID, dest.ID, created.ID, member, domain.AttractionPatch{Visited: &visited})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Visited {
		t.Fatalf("expected visited flag set")
	}
	if updated.Address == nil || *updated.Address != addr {
		t.Fatalf("untouched address changed: %v", updated.Address)
	}

	empty := " "
	if _, err := svc.Update(ctx, trip.ID, dest.ID, created.ID, member, domain.AttractionPatch{Name: &empty}); !errors.Is(err, ErrAttractionValidation) {
		t.Fatalf("expected ErrAttractionValidation for blank name, got %v", err)
	}
	if _, err := svc.Update(ctx, trip.ID, dest.ID, primitive.NewObjectID(), member, domain.AttractionPatch{Visited: &visited}); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("expected ErrAttractionNotFound, got %v", err)
	}
}

func TestAttractionService_Delete_RemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, trip, dest, member := attractionFixture(t)

	first, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Kinkaku-ji"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Ginkaku-ji"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(ctx, trip.ID, dest.ID, first.ID, member); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	remaining, err := svc.List(ctx, dest.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Fatalf("expected only second attraction left, got %v", remaining)
	}

	if err := svc.Delete(ctx, trip.ID, dest.ID, first.ID, member); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("expected ErrAttractionNotFound on second delete, got %v", err)
	}
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestAttractionService_AddPhoto(t *testing.T) {
	ctx := context.Background()
	svc, _, destinations, storage, trip, dest, member := attractionFixture(t)

	created, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Arashiyama"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	img := encodePNG(t)
	url, err := svc.AddPhoto(ctx, trip.ID, dest.ID, created.ID, member, PhotoUpload{
		Reader:      bytes.NewReader(img),
		Size:        int64(len(img)),
		FileName:    "bamboo.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("AddPhoto returned error: %v", err)
	}
	if !strings.Contains(url, "attractions/"+created.ID.Hex()+"/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected object url: %q", url)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("expected 1 stored object, got %d", len(storage.objects))
	}

	stored, err := destinations.FindByID(ctx, dest.ID)
	if err != nil {
		t.Fatalf("reloading destination: %v", err)
	}
	attraction := stored.AttractionByID(created.ID)
	if attraction == nil || len(attraction.Photos) != 1 || attraction.Photos[0] != url {
		t.Fatalf("photo url not appended: %+v", attraction)
	}
}

func TestAttractionService_AddPhoto_RejectsNonImages(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, trip, dest, member := attractionFixture(t)

	created, err := svc.Create(ctx, trip.ID, dest.ID, member, AttractionCreateInput{Name: "Nishiki Market"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	body := []byte("not an image")
	_, err = svc.AddPhoto(ctx, trip.ID, dest.ID, created.ID, member, PhotoUpload{
		Reader:      bytes.NewReader(body),
		Size:        int64(len(body)),
		FileName:    "notes.txt",
		ContentType: "text/plain",
	})
	if !errors.Is(err, ErrAttractionValidation) {
		t.Fatalf("expected ErrAttractionValidation, got %v", err)
	}
}
