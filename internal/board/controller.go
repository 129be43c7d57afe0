// Package board holds the activity board controller: an immutable view-state
// snapshot rebuilt from each backend fetch, plus a dispatcher over the closed
// set of UI events that mutate it.
package board

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/backend"
	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/observability"
)

// DefaultBannerTTL is how long a status banner stays visible unless a newer
// one replaces it.
const DefaultBannerTTL = 5 * time.Second

// API is the slice of the backend client the controller uses.
type API interface {
	Activities(ctx context.Context) (map[string]backend.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Remove(ctx context.Context, activity, email string) (string, error)
}

// Option configures optional behaviour for the Controller.
type Option func(*Controller)

// WithLogger overrides the logger used to report backend failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithBannerTTL overrides the banner auto-hide delay.
func WithBannerTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		c.ttl = ttl
	}
}

// Controller owns the board state. Backend calls happen outside the lock, so
// overlapping actions proceed independently; each one triggers its own
// refresh and the last refresh to complete determines the rendered state.
type Controller struct {
	api    API
	logger *log.Logger
	ttl    time.Duration

	mu       sync.Mutex
	snapshot Snapshot
	banner   Banner
	// generation increments on every banner show. A scheduled hide only
	// applies while its generation is still current, so a newer banner is
	// never hidden early by an older timer.
	generation uint64
}

// New constructs a Controller over the given backend API.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		logger: log.New(os.Stderr, "", log.LstdFlags),
		ttl:    DefaultBannerTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Banner returns the current banner state.
func (c *Controller) Banner() Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Dispatch routes one UI event to its handler. Failures never propagate to
// the caller; they end up in the banner or in the load-failed snapshot, and
// the controller stays usable afterwards.
func (c *Controller) Dispatch(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case Loaded:
		c.refresh(ctx)
	case SubmitSignup:
		c.act(ctx, actionSignup, e.Activity, e.Email, c.api.Signup)
	case ClickDelete:
		c.act(ctx, actionRemove, e.Activity, e.Email, c.api.Remove)
	}
}

// refresh refetches the activity map and swaps in a rebuilt snapshot. On
// failure the card area becomes a static failure notice while the selector
// options keep their previous value.
func (c *Controller) refresh(ctx context.Context) {
	activities, err := c.api.Activities(ctx)
	if err != nil {
		c.logger.Printf("refresh activities: %v", err)
		observability.RecordRefresh(false)
		c.mu.Lock()
		c.snapshot = Snapshot{Options: c.snapshot.Options, LoadFailed: true}
		c.mu.Unlock()
		return
	}

	snapshot := buildSnapshot(activities)
	observability.RecordRefresh(true)
	observability.RecordActivitiesRendered(len(snapshot.Cards))

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()
}

type action struct {
	name     string
	fallback string
}

var (
	actionSignup = action{name: "signup", fallback: "Failed to sign up. Please try again."}
	actionRemove = action{name: "remove", fallback: "Failed to unregister. Please try again."}
)

// act performs a signup or removal, surfaces the outcome in the banner, and
// refreshes the board only when the backend accepted the change.
func (c *Controller) act(ctx context.Context, a action, activity, email string, call func(context.Context, string, string) (string, error)) {
	message, err := call(ctx, activity, email)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			detail := apiErr.Detail
			if detail == "" {
				detail = "An error occurred"
			}
			observability.RecordAction(a.name, "rejected")
			c.show(detail, StyleError)
			return
		}
		c.logger.Printf("%s %s for %s: %v", a.name, activity, email, err)
		observability.RecordAction(a.name, "error")
		c.show(a.fallback, StyleError)
		return
	}

	observability.RecordAction(a.name, "success")
	c.show(message, StyleSuccess)
	c.refresh(ctx)
}

// show reveals the banner and arms an auto-hide bound to this show's
// generation.
func (c *Controller) show(text string, style Style) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.banner = Banner{Text: text, Style: style, Visible: true}
	c.mu.Unlock()

	time.AfterFunc(c.ttl, func() {
		c.hide(generation)
	})
}

// hide clears the banner unless a newer show superseded it.
func (c *Controller) hide(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.banner.Visible = false
}
