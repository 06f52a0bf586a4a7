package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/api"
	"github.com/IMNJL/AI-chef/internal/db"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

var msk = time.FixedZone("MSK", 3*3600)

func newTestServer(t *testing.T) (*Server, *db.SQLite) {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := New(store,
		WithLocation(msk),
		WithClock(func() time.Time { return time.Date(2025, 1, 8, 10, 0, 0, 0, msk) }),
	)
	return srv, store
}

func do(t *testing.T, srv *Server, method, target, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if auth {
		r.Header.Set(api.InitDataHeader, "user=1&hash=abc")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

func decodeMeeting(t *testing.T, w *httptest.ResponseRecorder) api.MeetingJSON {
	t.Helper()

	var m api.MeetingJSON
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return m
}

func createBody(title, start, end string) string {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(map[string]string{
		"title":    title,
		"startsAt": start,
		"endsAt":   end,
	})
	return buf.String()
}

func TestCredentialRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-12", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-12&telegramId=42", "", false)
	if w.Code != http.StatusOK {
		t.Errorf("telegramId fallback: status = %d", w.Code)
	}

	w = do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-12&telegramId=abc", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad telegramId: status = %d", w.Code)
	}
}

func TestCreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, api.MeetingsPath,
		createBody("Review", "2025-01-07T09:00:00+03:00", "2025-01-07T10:00:00+03:00"), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	created := decodeMeeting(t, w)
	if created.ID == "" || created.StartsAt != "2025-01-07T09:00:00+03:00" {
		t.Errorf("created = %+v", created)
	}

	w = do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-12", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []api.MeetingJSON
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}
}

func TestCreateValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"blank title", createBody(" ", "2025-01-07T09:00:00+03:00", "2025-01-07T10:00:00+03:00"), "Missing required fields"},
		{"missing end", `{"title":"A","startsAt":"2025-01-07T09:00:00+03:00"}`, "Missing required fields"},
		{"reversed", createBody("A", "2025-01-07T10:00:00+03:00", "2025-01-07T09:00:00+03:00"), "end must be after start"},
		{"malformed json", `{"title":`, "invalid request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, api.MeetingsPath, tt.body, true)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %s, want %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestListRequiresRange(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, q := range []string{"", "?from=2025-01-06", "?from=x&to=2025-01-06", "?from=2025-01-12&to=2025-01-06"} {
		w := do(t, srv, http.MethodGet, api.MeetingsPath+q, "", true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%q: status = %d, want 400", q, w.Code)
		}
	}
}

func TestUpdate(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, api.MeetingsPath,
		createBody("Review", "2025-01-07T09:00:00+03:00", "2025-01-07T10:00:00+03:00"), true)
	created := decodeMeeting(t, w)

	t.Run("partial update", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, api.MeetingsPath+"/"+created.ID,
			`{"endsAt":"2025-01-07T10:30:00+03:00","title":"  "}`, true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		got := decodeMeeting(t, w)
		if got.Title != "Review" || got.EndsAt != "2025-01-07T10:30:00+03:00" || got.StartsAt != created.StartsAt {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, api.MeetingsPath+"/"+created.ID,
			`{"endsAt":"2025-01-07T08:00:00+03:00"}`, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, api.MeetingsPath+"/nope", `{"title":"x"}`, true)
		if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Meeting not found") {
			t.Errorf("status = %d body = %s", w.Code, w.Body.String())
		}
	})
}

func TestDelete(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, api.MeetingsPath,
		createBody("Review", "2025-01-07T09:00:00+03:00", "2025-01-07T10:00:00+03:00"), true)
	created := decodeMeeting(t, w)

	w = do(t, srv, http.MethodDelete, api.MeetingsPath+"/"+created.ID, "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	w = do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-12", "", true)
	if strings.Contains(w.Body.String(), created.ID) {
		t.Error("canceled meeting still listed")
	}

	w = do(t, srv, http.MethodDelete, api.MeetingsPath+"/"+created.ID, "", true)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestExportICS(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, api.MeetingsPath,
		createBody("Review", "2025-01-07T09:00:00+03:00", "2025-01-07T10:00:00+03:00"), true)
	created := decodeMeeting(t, w)

	w = do(t, srv, http.MethodGet, api.MeetingsPath+".ics", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "UID:"+created.ID+"@aichef") || !strings.Contains(body, "DTSTART:20250107T060000Z") {
		t.Errorf("feed = %s", body)
	}
}

// brokenStore fails every listing.
type brokenStore struct {
	*db.SQLite
}

func (brokenStore) List(context.Context, time.Time, time.Time) ([]meeting.Meeting, error) {
	return nil, &meeting.StoreError{Status: http.StatusBadGateway, Body: "disk on fire"}
}

func TestExportICS_FailureHasNoCalendarBody(t *testing.T) {
	_, store := newTestServer(t)
	srv := New(brokenStore{store}, WithLocation(msk))

	w := do(t, srv, http.MethodGet, api.MeetingsPath+".ics?from=2025-01-06&to=2025-01-12", "", true)
	if w.Code < 500 {
		t.Errorf("status = %d, want a server error", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q on failure", ct)
	}
	if strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("partial calendar sent: %s", w.Body.String())
	}
}

func TestListIncludesMeetingsFromPreviousDay(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, api.MeetingsPath,
		createBody("Night shift", "2025-01-05T23:00:00+03:00", "2025-01-06T02:00:00+03:00"), true)
	created := decodeMeeting(t, w)

	w = do(t, srv, http.MethodGet, api.MeetingsPath+"?from=2025-01-06&to=2025-01-06", "", true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.ID) {
		t.Errorf("list = %d %s, want the meeting running into Jan 6", w.Code, w.Body.String())
	}
}
