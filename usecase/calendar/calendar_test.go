package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

type fakeCalendarRepo struct {
	connections []domain.CalendarConnection
	events      map[string][]domain.ExternalEvent
	syncedAt    map[string]time.Time
	replaceErr  error
}

func newFakeCalendarRepo(connections ...domain.CalendarConnection) *fakeCalendarRepo {
	return &fakeCalendarRepo{
		connections: connections,
		events:      map[string][]domain.ExternalEvent{},
		syncedAt:    map[string]time.Time{},
	}
}

func (r *fakeCalendarRepo) ListConnections(_ context.Context, userID string) ([]domain.CalendarConnection, error) {
	var out []domain.CalendarConnection
	for _, conn := range r.connections {
		if conn.UserID == userID {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) GetConnection(_ context.Context, id string) (*domain.CalendarConnection, error) {
	for _, conn := range r.connections {
		if conn.ID == id {
			copied := conn
			return &copied, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *fakeCalendarRepo) TouchSynced(_ context.Context, connectionID string, at time.Time) error {
	r.syncedAt[connectionID] = at
	return nil
}

func (r *fakeCalendarRepo) ListEvents(_ context.Context, filter repository.EventFilter) ([]domain.ExternalEvent, error) {
	var out []domain.ExternalEvent
	for _, events := range r.events {
		for _, event := range events {
			if filter.UserID != "" && event.UserID != filter.UserID {
				continue
			}
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) ReplaceEvents(_ context.Context, connectionID string, events []domain.ExternalEvent) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.events[connectionID] = events
	return nil
}

type staticSource struct {
	events map[string][]domain.ExternalEvent
	err    error
}

func (s staticSource) FetchEvents(_ context.Context, conn domain.CalendarConnection) ([]domain.ExternalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events[conn.ID], nil
}

func TestSyncReplacesCachedEvents(t *testing.T) {
	repo := newFakeCalendarRepo(
		domain.CalendarConnection{ID: "c1", UserID: "u1", Provider: domain.ProviderGoogle},
	)
	repo.events["c1"] = []domain.ExternalEvent{{ID: "stale", ConnectionID: "c1"}}

	source := staticSource{events: map[string][]domain.ExternalEvent{
		"c1": {
			{ExternalID: "g-1", Title: "Standup"},
			{ExternalID: "g-2", Title: "1:1"},
		},
	}}
	uc := New(repo, nil).WithSource(source)

	result, err := uc.Sync(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.SyncedConnections != 1 {
		t.Fatalf("synced = %d, want 1", result.SyncedConnections)
	}

	cached := repo.events["c1"]
	if len(cached) != 2 {
		t.Fatalf("cached events = %d, want the provider's 2", len(cached))
	}
	for _, event := range cached {
		if event.UserID != "u1" || event.ConnectionID != "c1" {
			t.Fatalf("event %q not stamped with owner and connection: %+v", event.ExternalID, event)
		}
	}
	if _, ok := repo.syncedAt["c1"]; !ok {
		t.Fatal("last_synced_at not stamped")
	}
}

func TestSyncKeepsCacheWhenFetchFails(t *testing.T) {
	repo := newFakeCalendarRepo(
		domain.CalendarConnection{ID: "c1", UserID: "u1", Provider: domain.ProviderGoogle},
	)
	repo.events["c1"] = []domain.ExternalEvent{{ID: "kept", ConnectionID: "c1"}}

	uc := New(repo, nil).WithSource(staticSource{err: errors.New("provider down")})

	result, err := uc.Sync(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.SyncedConnections != 0 {
		t.Fatalf("synced = %d, want 0 after fetch failure", result.SyncedConnections)
	}
	if len(repo.events["c1"]) != 1 || repo.events["c1"][0].ID != "kept" {
		t.Fatal("fetch failure must leave the cache untouched")
	}
	if _, ok := repo.syncedAt["c1"]; ok {
		t.Fatal("failed sync must not stamp last_synced_at")
	}
}

func TestSyncWithoutSourceOnlyStamps(t *testing.T) {
	repo := newFakeCalendarRepo(
		domain.CalendarConnection{ID: "c1", UserID: "u1", Provider: domain.ProviderMicrosoft},
	)
	repo.events["c1"] = []domain.ExternalEvent{{ID: "kept", ConnectionID: "c1"}}

	uc := New(repo, nil)

	result, err := uc.Sync(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.SyncedConnections != 1 {
		t.Fatalf("synced = %d, want 1", result.SyncedConnections)
	}
	if len(repo.events["c1"]) != 1 {
		t.Fatal("sourceless sync must not touch the cache")
	}
	if _, ok := repo.syncedAt["c1"]; !ok {
		t.Fatal("last_synced_at not stamped")
	}
}

func TestSyncRejectsForeignConnection(t *testing.T) {
	repo := newFakeCalendarRepo(
		domain.CalendarConnection{ID: "c1", UserID: "u1", Provider: domain.ProviderGoogle},
	)
	uc := New(repo, nil)

	if _, err := uc.Sync(context.Background(), "u2", "c1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("foreign sync should look like not-found, got %v", err)
	}
}

func TestSyncRequiresConnections(t *testing.T) {
	uc := New(newFakeCalendarRepo(), nil)
	if _, err := uc.Sync(context.Background(), "u1", ""); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("want NOT_FOUND without connections, got %v", err)
	}
}

func TestListEventsValidatesRange(t *testing.T) {
	uc := New(newFakeCalendarRepo(), nil)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter repository.EventFilter
	}{
		{"zero range", repository.EventFilter{UserID: "u1"}},
		{"inverted range", repository.EventFilter{UserID: "u1", From: from, To: from.Add(-time.Hour)}},
		{"unknown provider", repository.EventFilter{UserID: "u1", From: from, To: from.Add(time.Hour), Provider: "exchange"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.ListEvents(context.Background(), tt.filter); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Fatalf("want INVALID, got %v", err)
			}
		})
	}
}
