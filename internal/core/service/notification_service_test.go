package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

type stubDedup struct {
	seen    map[string]bool
	failing bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	if d.failing {
		return false, errors.New("dedup store down")
	}
	return d.seen[eventID], nil
}

func (d *stubDedup) Mark(_ context.Context, eventID string) error {
	if d.failing {
		return errors.New("dedup store down")
	}
	d.seen[eventID] = true
	return nil
}

type stubPublisher struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (p *stubPublisher) Publish(_ context.Context, key string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	return nil
}

func sampleNotification() ports.BookingNotification {
	return ports.BookingNotification{
		EventID:   "evt-1",
		HotelCode: "H100",
		HotelName: "Seaside Inn",
		UserID:    "alice",
		CheckIn:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotificationService_Process_Publishes(t *testing.T) {
	dedup := newStubDedup()
	pub := &stubPublisher{}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pub.keys) != 1 || pub.keys[0] != "H100" {
		t.Fatalf("expected publish keyed by hotel code, got %v", pub.keys)
	}

	var decoded ports.BookingNotification
	if err := json.Unmarshal(pub.payloads[0], &decoded); err != nil {
		t.Fatalf("payload not valid json: %v", err)
	}
	if decoded.EventID != "evt-1" || decoded.UserID != "alice" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestNotificationService_Process_SkipsDuplicate(t *testing.T) {
	dedup := newStubDedup()
	pub := &stubPublisher{}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	n := sampleNotification()
	if err := svc.Process(context.Background(), n); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if err := svc.Process(context.Background(), n); err != nil {
		t.Fatalf("duplicate Process: %v", err)
	}
	if len(pub.keys) != 1 {
		t.Fatalf("duplicate was published, %d publishes", len(pub.keys))
	}
}

func TestNotificationService_Process_AssignsEventID(t *testing.T) {
	dedup := newStubDedup()
	pub := &stubPublisher{}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	n := sampleNotification()
	n.EventID = ""
	if err := svc.Process(context.Background(), n); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	var decoded ports.BookingNotification
	if err := json.Unmarshal(pub.payloads[0], &decoded); err != nil {
		t.Fatalf("payload not valid json: %v", err)
	}
	if decoded.EventID == "" {
		t.Fatalf("missing event id was not assigned")
	}
}

func TestNotificationService_Process_DedupFailurePublishesAnyway(t *testing.T) {
	dedup := newStubDedup()
	dedup.failing = true
	pub := &stubPublisher{}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pub.keys) != 1 {
		t.Fatalf("expected publish despite dedup failure")
	}
}

func TestNotificationService_Process_PublishError(t *testing.T) {
	dedup := newStubDedup()
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleNotification()); err == nil {
		t.Fatalf("expected publish error to surface")
	}
}

func TestNotificationService_Process_RedeliveryAfterPublishFailure(t *testing.T) {
	dedup := newStubDedup()
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := NewNotificationService(dedup, pub, zerolog.Nop())

	n := sampleNotification()
	if err := svc.Process(context.Background(), n); err == nil {
		t.Fatalf("expected publish error to surface")
	}

	// The failed attempt must not have marked the event, so a redelivery
	// goes out once the broker recovers.
	pub.err = nil
	if err := svc.Process(context.Background(), n); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if len(pub.keys) != 1 {
		t.Fatalf("expected exactly one successful publish, got %d", len(pub.keys))
	}
}
