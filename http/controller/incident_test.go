package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-storage-gateway/entity"
)

type memIncidentLister struct {
	incidents []entity.Incident
	err       error
	lastLimit int
}

func (m *memIncidentLister) ListRecent(ctx context.Context, limit int) ([]entity.Incident, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.incidents, nil
}

func TestListIncidents(t *testing.T) {
	lister := &memIncidentLister{
		incidents: []entity.Incident{
			{
				ID:         uuid.New(),
				Kind:       entity.IncidentOrphanBlob,
				Bucket:     "avatars",
				ObjectName: "profile.png",
				Key:        "projectref/avatars/profile.png",
			},
		},
	}
	router := newTestRouterWithIncidents(t, newMemMetadata("avatars"), newMemBlobs(), lister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal/incidents", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.NewString()))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if lister.lastLimit != 50 {
		t.Fatalf("default limit = %d, want 50", lister.lastLimit)
	}

	var got []entity.Incident
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(got) != 1 || got[0].Kind != entity.IncidentOrphanBlob {
		t.Fatalf("unexpected incidents: %+v", got)
	}
}

func TestListIncidentsLimit(t *testing.T) {
	lister := &memIncidentLister{}
	router := newTestRouterWithIncidents(t, newMemMetadata("avatars"), newMemBlobs(), lister)
	auth := bearerToken(t, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal/incidents?limit=10", nil)
	req.Header.Set("Authorization", auth)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if lister.lastLimit != 10 {
		t.Fatalf("limit = %d, want 10", lister.lastLimit)
	}

	for _, raw := range []string{"0", "-1", "501", "ten"} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/internal/incidents?limit="+raw, nil)
		req.Header.Set("Authorization", auth)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: status = %d, want 400", raw, w.Code)
		}
	}
}

func TestListIncidentsRequiresCredential(t *testing.T) {
	router := newTestRouterWithIncidents(t, newMemMetadata("avatars"), newMemBlobs(), &memIncidentLister{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal/incidents", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestListIncidentsStoreFailure(t *testing.T) {
	lister := &memIncidentLister{err: errors.New("connection refused")}
	router := newTestRouterWithIncidents(t, newMemMetadata("avatars"), newMemBlobs(), lister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal/incidents", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.NewString()))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
