package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrigo-backend-go/internal/models"
)

// fastPlanner returns the fallback plan immediately.
type fastPlanner struct{}

func (fastPlanner) Generate(context.Context, models.UserProfile) *models.DailyPlan {
	return FallbackPlan()
}

// gatedPlanner blocks until release is closed (or the context ends).
type gatedPlanner struct {
	release chan struct{}
}

func (p *gatedPlanner) Generate(ctx context.Context, _ models.UserProfile) *models.DailyPlan {
	select {
	case <-p.release:
	case <-ctx.Done():
	}
	return FallbackPlan()
}

func newTestSession(planner PlannerService, minLoading, stepInterval time.Duration) *Session {
	return newSession("test-session", planner, nil, minLoading, stepInterval)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestSubmitProfileHonorsMinimumDuration(t *testing.T) {
	const minLoading = 80 * time.Millisecond
	s := newTestSession(fastPlanner{}, minLoading, time.Hour)
	defer s.Close()
	s.StartOnboarding()

	start := time.Now()
	plan, err := s.SubmitProfile(context.Background(), testProfile())
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	if plan == nil {
		t.Fatal("SubmitProfile returned nil plan")
	}
	if elapsed < minLoading {
		t.Errorf("submission settled after %v, want at least %v", elapsed, minLoading)
	}
	if got := s.Render(); got != models.ViewPlan {
		t.Errorf("Render() = %q after success, want plan", got)
	}
	if s.IsLoading() {
		t.Error("loading flag still set after submission settled")
	}
}

func TestSubmitProfileRejectsConcurrentSubmission(t *testing.T) {
	planner := &gatedPlanner{release: make(chan struct{})}
	s := newTestSession(planner, time.Millisecond, time.Hour)
	defer s.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.SubmitProfile(context.Background(), testProfile())
	}()

	waitFor(t, time.Second, s.IsLoading)

	// The loading view wins over whatever the stored view is.
	if got := s.Render(); got != models.ViewLoading {
		t.Errorf("Render() = %q while in flight, want loading", got)
	}

	if _, err := s.SubmitProfile(context.Background(), testProfile()); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("second submission error = %v, want ErrGenerationInFlight", err)
	}

	close(planner.release)
	<-done
}

func TestSubmitProfileCancelledContextLeavesViewUnchanged(t *testing.T) {
	s := newTestSession(fastPlanner{}, time.Hour, time.Hour)
	defer s.Close()
	s.StartOnboarding()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SubmitProfile(ctx, testProfile())
	if !errors.Is(err, ErrGenerationInterrupted) {
		t.Fatalf("error = %v, want ErrGenerationInterrupted", err)
	}
	if got := s.Render(); got != models.ViewOnboarding {
		t.Errorf("Render() = %q after interruption, want onboarding unchanged", got)
	}
	if s.IsLoading() {
		t.Error("loading flag still set after interrupted submission")
	}
	if s.Plan() != nil {
		t.Error("interrupted submission stored a plan")
	}
}

func TestSessionCloseUnblocksSubmission(t *testing.T) {
	planner := &gatedPlanner{release: make(chan struct{})}
	s := newTestSession(planner, time.Hour, time.Hour)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.SubmitProfile(context.Background(), testProfile())
		errCh <- err
	}()
	waitFor(t, time.Second, s.IsLoading)

	s.Close()
	close(planner.release)

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrGenerationInterrupted) {
			t.Errorf("error = %v, want ErrGenerationInterrupted", err)
		}
	case <-time.After(time.Second):
		t.Fatal("submission did not settle after session close")
	}
}

func TestRenderGuardsPlanViewWithoutPlan(t *testing.T) {
	s := newTestSession(fastPlanner{}, time.Millisecond, time.Hour)
	defer s.Close()

	s.Navigate(models.ViewPlan)
	if got := s.Render(); got != models.ViewHome {
		t.Errorf("Render() = %q for plan view without a plan, want home", got)
	}

	s.Navigate(models.ViewState("bogus"))
	if got := s.Render(); got != models.ViewHome {
		t.Errorf("Render() = %q for unknown view tag, want home", got)
	}
}

func TestPlaceOrderReturnsHomeAndKeepsPlan(t *testing.T) {
	s := newTestSession(fastPlanner{}, time.Millisecond, time.Hour)
	defer s.Close()

	if _, err := s.SubmitProfile(context.Background(), testProfile()); err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}

	msg := s.PlaceOrder()
	if msg != "Order placed successfully! In a real app, this would go to payment." {
		t.Errorf("order message = %q", msg)
	}
	if got := s.Render(); got != models.ViewHome {
		t.Errorf("Render() = %q after order, want home", got)
	}
	if s.Plan() == nil {
		t.Error("plan was dropped by PlaceOrder")
	}

	// Navigating back to the plan view still works since the plan is kept.
	s.Navigate(models.ViewPlan)
	if got := s.Render(); got != models.ViewPlan {
		t.Errorf("Render() = %q after navigating back, want plan", got)
	}
}

func TestLoadingStepClampsAtLastMessage(t *testing.T) {
	s := newTestSession(fastPlanner{}, time.Millisecond, time.Hour)
	defer s.Close()

	s.mu.Lock()
	for i := 0; i < len(LoadingStepMessages)*3; i++ {
		s.advanceLoadingStepLocked()
	}
	s.mu.Unlock()

	step, message := s.LoadingStep()
	if step != len(LoadingStepMessages)-1 {
		t.Errorf("step = %d, want clamped at %d", step, len(LoadingStepMessages)-1)
	}
	if message != LoadingStepMessages[len(LoadingStepMessages)-1] {
		t.Errorf("message = %q, want last step message", message)
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(fastPlanner{}, nil, SessionStoreOptions{})
	defer store.Close()

	created := store.Create()
	got, err := store.Get(created.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Error("Get returned a different session")
	}

	if _, err := store.Get("no-such-id"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get unknown id error = %v, want ErrSessionNotFound", err)
	}

	// A stale ID is treated like a first visit.
	fresh := store.GetOrCreate("no-such-id")
	if fresh == created {
		t.Error("GetOrCreate with a stale id returned an existing session")
	}
	if store.GetOrCreate(created.ID()) != created {
		t.Error("GetOrCreate with a live id did not return it")
	}
}

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	store := NewSessionStore(fastPlanner{}, nil, SessionStoreOptions{
		IdleTTL:         10 * time.Millisecond,
		JanitorInterval: 5 * time.Millisecond,
	})
	defer store.Close()

	store.Create()
	waitFor(t, time.Second, func() bool { return store.Len() == 0 })
}
