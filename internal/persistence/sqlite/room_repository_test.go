package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/roombook/internal/persistence"
)

func TestRoomRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	room := testRoom("room-1")
	room.Amenities = []string{"whiteboard", "projector"}
	mustCreateRoom(t, storage, room)

	got, err := storage.GetRoom(ctx, "room-1")
	if err != nil {
		t.Fatalf("failed to get room: %v", err)
	}
	if got.Name != room.Name || got.Location != room.Location || got.Capacity != room.Capacity {
		t.Errorf("room attributes mismatch: %+v", got)
	}
	if !got.IsActive {
		t.Error("expected room to be active")
	}
	if got.WorkHoursStart != "08:00" || got.WorkHoursEnd != "18:00" {
		t.Errorf("work hours mismatch: %q-%q", got.WorkHoursStart, got.WorkHoursEnd)
	}
	if len(got.Amenities) != 2 || got.Amenities[0] != "whiteboard" || got.Amenities[1] != "projector" {
		t.Errorf("amenities mismatch: %v", got.Amenities)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	storage := newTestStorage(t)
	_, err := storage.GetRoom(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRoomRejectsNonPositiveCapacity(t *testing.T) {
	storage := newTestStorage(t)
	room := testRoom("room-1")
	room.Capacity = 0
	err := storage.CreateRoom(context.Background(), room)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestCreateRoomRejectsInvertedWorkHours(t *testing.T) {
	storage := newTestStorage(t)
	room := testRoom("room-1")
	room.WorkHoursStart = "18:00"
	room.WorkHoursEnd = "08:00"
	err := storage.CreateRoom(context.Background(), room)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestUpdateRoom(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	mustCreateRoom(t, storage, testRoom("room-1"))

	updated := testRoom("room-1")
	updated.Name = "Renamed"
	updated.IsActive = false
	if err := storage.UpdateRoom(ctx, updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := storage.GetRoom(ctx, "room-1")
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if got.Name != "Renamed" || got.IsActive {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateRoomNotFound(t *testing.T) {
	storage := newTestStorage(t)
	err := storage.UpdateRoom(context.Background(), testRoom("missing"))
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRoomsOrdersByName(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	zebra := testRoom("r1")
	zebra.Name = "Zebra"
	atrium := testRoom("r2")
	atrium.Name = "atrium"
	mustCreateRoom(t, storage, zebra)
	mustCreateRoom(t, storage, atrium)

	got, err := storage.ListRooms(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "atrium" || got[1].Name != "Zebra" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestDeleteRoomCascadesBookings(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	mustCreateRoom(t, storage, testRoom("room-1"))
	mustCreateBooking(t, storage, testBooking("b1", "room-1", 10, 11, "pending"))

	if err := storage.DeleteRoom(ctx, "room-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := storage.GetBooking(ctx, "b1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected booking to cascade, got %v", err)
	}
}
