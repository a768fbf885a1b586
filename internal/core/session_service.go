package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nutrigo-backend-go/internal/models"
)

// Sentinel errors for session operations.
var (
	// ErrSessionNotFound is returned when a session ID has no live session
	// (never issued, or expired by the janitor).
	ErrSessionNotFound = errors.New("session not found")

	// ErrGenerationInFlight is returned when a profile is submitted while a
	// previous submission is still loading. A session has at most one
	// generation in flight.
	ErrGenerationInFlight = errors.New("a plan generation is already in flight")

	// ErrGenerationInterrupted is returned when the submit join is cut
	// short (context cancellation). The view is left unchanged.
	ErrGenerationInterrupted = errors.New("plan generation was interrupted")

	// ErrNoPlan is returned when an operation needs a generated plan and
	// the session has none.
	ErrNoPlan = errors.New("no meal plan has been generated")
)

// LoadingStepMessages is the fixed progress sequence shown while a plan is
// generating. The stepper advances one message per interval and holds on
// the last one.
var LoadingStepMessages = []string{
	"Analyzing your metabolic profile...",
	"Scanning Hong Kong local food database...",
	"Calculating optimal macro split...",
	"Curating your perfect menu...",
}

const (
	// DefaultMinLoading is the minimum visible loading duration for a
	// profile submission, regardless of provider latency.
	DefaultMinLoading = 3000 * time.Millisecond

	// DefaultStepInterval is how often the loading step advances.
	DefaultStepInterval = 1200 * time.Millisecond
)

// Session is the view controller for one browsing session. It owns the
// current view, the loading flag, and the last generated plan; all three
// are mutated only through the operations below. Presentational layers
// read state, they never write it.
type Session struct {
	id      string
	planner PlannerService
	logger  *zap.Logger

	minLoading   time.Duration
	stepInterval time.Duration

	mu          sync.Mutex
	currentView models.ViewState
	isLoading   bool
	loadingStep int
	plan        *models.DailyPlan
	lastSeen    time.Time
	closed      chan struct{}
	closeOnce   sync.Once
}

func newSession(id string, planner PlannerService, logger *zap.Logger, minLoading, stepInterval time.Duration) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if minLoading <= 0 {
		minLoading = DefaultMinLoading
	}
	if stepInterval <= 0 {
		stepInterval = DefaultStepInterval
	}
	return &Session{
		id:           id,
		planner:      planner,
		logger:       logger,
		minLoading:   minLoading,
		stepInterval: stepInterval,
		currentView:  models.ViewHome,
		lastSeen:     time.Now(),
		closed:       make(chan struct{}),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// StartOnboarding moves the session to the onboarding form. No guards.
func (s *Session) StartOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = models.ViewOnboarding
	s.touchLocked()
}

// SubmitProfile runs the generation workflow: it raises the loading flag,
// starts the provider call and a minimum-duration timer together, and
// waits for BOTH to finish (a join, not a race) so the loading experience
// never lasts less than minLoading and never less than the call itself.
//
// On success the plan is stored and the session moves to the plan view; a
// plan-view transition therefore always has a plan behind it. On a join
// error (only context cancellation can produce one, since the planner
// absorbs its own failures) the view is left unchanged and the error is
// returned for the caller to surface as a notification. The loading flag
// is cleared on every path.
func (s *Session) SubmitProfile(ctx context.Context, profile models.UserProfile) (*models.DailyPlan, error) {
	s.mu.Lock()
	if s.isLoading {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	s.isLoading = true
	s.loadingStep = 0
	s.touchLocked()
	s.mu.Unlock()

	stopStepper := make(chan struct{})
	go s.cycleLoadingSteps(stopStepper)

	defer func() {
		close(stopStepper)
		s.mu.Lock()
		s.isLoading = false
		s.loadingStep = 0
		s.mu.Unlock()
	}()

	var plan *models.DailyPlan
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		plan = s.planner.Generate(gctx, profile)
		return nil
	})
	g.Go(func() error {
		timer := time.NewTimer(s.minLoading)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		case <-s.closed:
			return fmt.Errorf("session torn down")
		}
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("profile submission interrupted",
			zap.String("session_id", s.id),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationInterrupted, err)
	}

	s.mu.Lock()
	s.plan = plan
	s.currentView = models.ViewPlan
	s.mu.Unlock()
	return plan, nil
}

// cycleLoadingSteps advances the loading step once per interval until told
// to stop, holding on the last message. The ticker is released when the
// submission settles, so no callback ever fires against a settled session.
func (s *Session) cycleLoadingSteps(stop <-chan struct{}) {
	ticker := time.NewTicker(s.stepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.advanceLoadingStepLocked()
			s.mu.Unlock()
		case <-stop:
			return
		case <-s.closed:
			return
		}
	}
}

func (s *Session) advanceLoadingStepLocked() {
	if s.loadingStep < len(LoadingStepMessages)-1 {
		s.loadingStep++
	}
}

// PlaceOrder acknowledges an order against the current plan and returns
// the session to the home view. No real order is created; the generated
// plan is deliberately kept so the user can navigate back to it.
func (s *Session) PlaceOrder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = models.ViewHome
	s.touchLocked()
	return "Order placed successfully! In a real app, this would go to payment."
}

// Navigate unconditionally sets the current view. Prerequisite state is
// not checked here; Render guards instead.
func (s *Session) Navigate(view models.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = view
	s.touchLocked()
}

// Render is a pure function of session state: the loading view wins while
// a generation is in flight; the plan view is only rendered when a plan
// exists; anything unrecognized falls back to home.
func (s *Session) Render() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isLoading {
		return models.ViewLoading
	}
	switch s.currentView {
	case models.ViewHome, models.ViewOnboarding, models.ViewMenu, models.ViewProfile:
		return s.currentView
	case models.ViewPlan:
		if s.plan != nil {
			return models.ViewPlan
		}
		return models.ViewHome
	default:
		return models.ViewHome
	}
}

// Plan returns the last generated plan, or nil.
func (s *Session) Plan() *models.DailyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// IsLoading reports whether a generation is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// LoadingStep returns the index and message of the current loading step.
// Outside of loading it reports the first step.
func (s *Session) LoadingStep() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingStep, LoadingStepMessages[s.loadingStep]
}

// Close releases any pending timers tied to the session. A result that
// arrives after teardown is simply not actionable.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

func (s *Session) touchLocked() {
	s.lastSeen = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionStoreOptions tune the in-memory session registry.
type SessionStoreOptions struct {
	MinLoading      time.Duration // minimum visible loading duration per submission
	StepInterval    time.Duration // loading step advance interval
	IdleTTL         time.Duration // sessions idle longer than this are evicted
	JanitorInterval time.Duration // how often eviction runs
}

// SessionStore is an in-memory registry of live sessions keyed by UUID.
// Nothing here is durable: restarting the server forgets every session,
// which is the intended lifecycle.
type SessionStore struct {
	planner PlannerService
	logger  *zap.Logger
	opts    SessionStoreOptions

	mu       sync.Mutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates the registry and starts its eviction janitor.
func NewSessionStore(planner PlannerService, logger *zap.Logger, opts SessionStoreOptions) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	if opts.JanitorInterval <= 0 {
		opts.JanitorInterval = time.Minute
	}
	st := &SessionStore{
		planner:  planner,
		logger:   logger,
		opts:     opts,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go st.janitor()
	return st
}

// Create issues a new session with a fresh UUID.
func (st *SessionStore) Create() *Session {
	sess := newSession(uuid.NewString(), st.planner, st.logger, st.opts.MinLoading, st.opts.StepInterval)
	st.mu.Lock()
	st.sessions[sess.ID()] = sess
	st.mu.Unlock()
	st.logger.Debug("session created", zap.String("session_id", sess.ID()))
	return sess
}

// Get returns the live session for id, or ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return sess, nil
}

// GetOrCreate returns the session for id when it is live, and otherwise
// issues a new one. An empty or stale id is treated like a first visit.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, err := st.Get(id); err == nil {
			return sess
		}
	}
	return st.Create()
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Close stops the janitor and tears down every live session.
func (st *SessionStore) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		sess.Close()
		delete(st.sessions, id)
	}
}

func (st *SessionStore) janitor() {
	ticker := time.NewTicker(st.opts.JanitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			st.evictIdle()
		case <-st.stop:
			return
		}
	}
}

func (st *SessionStore) evictIdle() {
	cutoff := time.Now().Add(-st.opts.IdleTTL)
	st.mu.Lock()
	var evicted []*Session
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			evicted = append(evicted, sess)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, sess := range evicted {
		sess.Close()
		st.logger.Debug("idle session evicted", zap.String("session_id", sess.ID()))
	}
}
