package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/botica/citas-api/internal/core/domain"
)

func TestAuditRepository_History(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "citas_test_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = Disconnect(client)
	})

	repo := NewAuditRepository(db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	changes := []domain.StatusChange{
		{CitaID: 1, Estado: domain.StatusConfirmed, ActorID: 2, ActorRol: domain.RoleDoctor, Timestamp: base.Add(time.Minute)},
		{CitaID: 1, Estado: domain.StatusPending, ActorID: 3, ActorRol: domain.RolePatient, Timestamp: base},
		{CitaID: 2, Estado: domain.StatusPending, ActorID: 3, ActorRol: domain.RolePatient, Timestamp: base},
	}
	for _, c := range changes {
		if err := repo.Record(ctx, c); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	history, err := repo.History(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(history))
	}
	if history[0].Estado != domain.StatusPending || history[1].Estado != domain.StatusConfirmed {
		t.Fatalf("expected oldest first, got %+v", history)
	}
	if history[0].EventID == "" {
		t.Fatalf("expected generated event id")
	}

	empty, err := repo.History(ctx, 99)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil history, got %v %v", empty, err)
	}
}
