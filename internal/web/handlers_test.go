package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/backend"
	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/board"
)

// fakeBackend mimics the activity API: an in-memory activity map with the
// signup and removal endpoints.
type fakeBackend struct {
	mu         sync.Mutex
	activities map[string]*activityRecord
	listCalls  int
}

type activityRecord struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		activities: map[string]*activityRecord{
			"Chess Club": {
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
			"Art Studio": {
				Description:     "Painting, drawing, and visual art creation",
				Schedule:        "Mondays, 3:30 PM - 4:30 PM",
				MaxParticipants: 18,
				Participants:    []string{},
			},
		},
	}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	if r.Method == http.MethodGet && r.URL.Path == "/activities" {
		f.listCalls++
		writeJSON(http.StatusOK, f.activities)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/activities/")
	if !ok {
		writeJSON(http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/signup"):
		name := strings.TrimSuffix(rest, "/signup")
		email := r.URL.Query().Get("email")
		activity, ok := f.activities[name]
		if !ok {
			writeJSON(http.StatusNotFound, map[string]string{"detail": "Activity not found"})
			return
		}
		if slices.Contains(activity.Participants, email) {
			writeJSON(http.StatusBadRequest, map[string]string{
				"detail": fmt.Sprintf("Student %s is already signed up for %s", email, name),
			})
			return
		}
		activity.Participants = append(activity.Participants, email)
		writeJSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Signed up %s for %s", email, name),
		})
	case r.Method == http.MethodDelete && strings.Contains(rest, "/participants/"):
		name, email, _ := strings.Cut(rest, "/participants/")
		activity, ok := f.activities[name]
		if !ok {
			writeJSON(http.StatusNotFound, map[string]string{"detail": "Activity not found"})
			return
		}
		idx := slices.Index(activity.Participants, email)
		if idx < 0 {
			writeJSON(http.StatusNotFound, map[string]string{"detail": "Participant not found"})
			return
		}
		activity.Participants = slices.Delete(activity.Participants, idx, idx+1)
		writeJSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Removed %s from %s", email, name),
		})
	default:
		writeJSON(http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (f *fakeBackend) lists() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func newTestUI(t *testing.T) (*fakeBackend, *board.Controller, http.Handler) {
	t.Helper()

	fake := newFakeBackend()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	quiet := log.New(io.Discard, "", 0)
	client := backend.NewClient(srv.URL, backend.WithLogger(quiet))
	controller := board.New(client, board.WithLogger(quiet))
	handler := NewHandler(controller, WithLogger(quiet))
	return fake, controller, handler.Routes()
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexRendersBoard(t *testing.T) {
	_, controller, handler := newTestUI(t)
	controller.Dispatch(context.Background(), board.Loaded{})

	rr := get(handler, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"<h4>Chess Club</h4>",
		"<h4>Art Studio</h4>",
		"10 spots left",
		"18 spots left",
		"michael@mergington.edu",
		"No participants yet",
		`<option value="Chess Club">Chess Club</option>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("index body missing %q:\n%s", want, body)
		}
	}
}

func TestIndexShowsFailureNoticeWhenBackendUnreachable(t *testing.T) {
	fake := newFakeBackend()
	srv := httptest.NewServer(fake)
	srv.Close() // refuse connections

	quiet := log.New(io.Discard, "", 0)
	client := backend.NewClient(srv.URL, backend.WithLogger(quiet))
	controller := board.New(client, board.WithLogger(quiet))
	handler := NewHandler(controller, WithLogger(quiet)).Routes()

	controller.Dispatch(context.Background(), board.Loaded{})

	body := get(handler, "/").Body.String()
	if !strings.Contains(body, "Failed to load activities. Please try again later.") {
		t.Fatalf("expected failure notice, got:\n%s", body)
	}
}

func TestSignupRedirectsAndRefreshes(t *testing.T) {
	fake, controller, handler := newTestUI(t)
	controller.Dispatch(context.Background(), board.Loaded{})
	before := fake.lists()

	rr := postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"new@mergington.edu"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to / got %q", loc)
	}
	if fake.lists() != before+1 {
		t.Fatalf("expected one refresh after signup, got %d", fake.lists()-before)
	}

	body := get(handler, "/").Body.String()
	if !strings.Contains(body, "Signed up new@mergington.edu for Chess Club") {
		t.Fatalf("expected success banner, got:\n%s", body)
	}
	if !strings.Contains(body, `class="success"`) {
		t.Fatalf("expected success styling, got:\n%s", body)
	}
	if !strings.Contains(body, "new@mergington.edu") {
		t.Fatalf("expected new participant rendered, got:\n%s", body)
	}
}

func TestDuplicateSignupShowsDetailWithoutRefresh(t *testing.T) {
	fake, controller, handler := newTestUI(t)
	controller.Dispatch(context.Background(), board.Loaded{})
	before := fake.lists()

	postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"michael@mergington.edu"},
	})
	if fake.lists() != before {
		t.Fatalf("expected no refresh after rejected signup")
	}

	body := get(handler, "/").Body.String()
	if !strings.Contains(body, "is already signed up for Chess Club") {
		t.Fatalf("expected server detail in banner, got:\n%s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("expected error styling, got:\n%s", body)
	}
}

func TestUnregisterRemovesParticipant(t *testing.T) {
	fake, controller, handler := newTestUI(t)
	controller.Dispatch(context.Background(), board.Loaded{})
	before := fake.lists()

	rr := postForm(handler, "/unregister", url.Values{
		"activity": {"Chess Club"},
		"email":    {"daniel@mergington.edu"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rr.Code)
	}
	if fake.lists() != before+1 {
		t.Fatalf("expected one refresh after removal")
	}

	body := get(handler, "/").Body.String()
	if strings.Contains(body, `<span class="participant-email">daniel@mergington.edu</span>`) {
		t.Fatalf("expected participant removed from roster, got:\n%s", body)
	}
	if !strings.Contains(body, "Removed daniel@mergington.edu from Chess Club") {
		t.Fatalf("expected removal banner, got:\n%s", body)
	}
}

func TestHealthz(t *testing.T) {
	_, _, handler := newTestUI(t)
	rr := get(handler, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}
