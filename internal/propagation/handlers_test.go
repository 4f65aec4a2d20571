package propagation

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeGoalStore records onboarding goals created by the employee handler.
type fakeGoalStore struct {
	employeeID string
	title      string
	category   string
	targetDate time.Time
	calls      int
	err        error
}

func (f *fakeGoalStore) CreateOnboardingGoal(_ context.Context, employeeID, title, category string, targetDate time.Time) error {
	f.calls++
	f.employeeID = employeeID
	f.title = title
	f.category = category
	f.targetDate = targetDate
	return f.err
}

func TestEmployeeHandlerSeedsOnboardingGoal(t *testing.T) {
	goals := &fakeGoalStore{}
	h := NewEmployeeHandler(goals)

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainEmployee,
		Kind:    KindCreate,
		Payload: EmployeePayload{EmployeeID: "emp-1", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals.calls != 1 {
		t.Fatalf("expected 1 goal, got %d", goals.calls)
	}
	if goals.employeeID != "emp-1" || goals.category != "onboarding" {
		t.Fatalf("unexpected goal: %+v", goals)
	}
	wantTarget := created.AddDate(0, 0, 30)
	if !goals.targetDate.Equal(wantTarget) {
		t.Fatalf("expected target %v, got %v", wantTarget, goals.targetDate)
	}
}

func TestEmployeeHandlerIgnoresUpdates(t *testing.T) {
	goals := &fakeGoalStore{}
	h := NewEmployeeHandler(goals)

	for _, kind := range []Kind{KindUpdate, KindDelete} {
		err := h.Handle(context.Background(), ChangeEvent{
			Domain:  DomainEmployee,
			Kind:    kind,
			Payload: EmployeePayload{EmployeeID: "emp-1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if goals.calls != 0 {
		t.Fatalf("expected no goals, got %d", goals.calls)
	}
}

func TestEmployeeHandlerMalformedPayloadIsNoOp(t *testing.T) {
	goals := &fakeGoalStore{}
	h := NewEmployeeHandler(goals)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainEmployee,
		Kind:    KindCreate,
		Payload: "not a payload",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals.calls != 0 {
		t.Fatalf("expected no goals, got %d", goals.calls)
	}
}

// fakeAttendance accumulates hours per day the way the real store's atomic
// upsert does.
type fakeAttendance struct {
	hours  map[string]float64
	status map[string]string
	marked map[string][]time.Time
	notes  string
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{
		hours:  map[string]float64{},
		status: map[string]string{},
		marked: map[string][]time.Time{},
	}
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

func (f *fakeAttendance) AccumulateHours(_ context.Context, employeeID string, day time.Time, _, _ time.Time, hours float64) error {
	key := dayKey(employeeID, day)
	f.hours[key] += hours
	if f.hours[key] >= 8 {
		f.status[key] = "present"
	} else {
		f.status[key] = "partial"
	}
	return nil
}

func (f *fakeAttendance) MarkOnLeave(_ context.Context, employeeID string, dates []time.Time, notes string) error {
	f.marked[employeeID] = append(f.marked[employeeID], dates...)
	f.notes = notes
	for _, day := range dates {
		f.status[dayKey(employeeID, day)] = "on_leave"
	}
	return nil
}

func completedEntry(employeeID string, start time.Time, hours float64) ChangeEvent {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return ChangeEvent{
		Domain: DomainTimeTracking,
		Kind:   KindUpdate,
		Payload: TimeEntryPayload{
			EmployeeID: employeeID,
			StartTime:  start,
			EndTime:    &end,
			Status:     "completed",
		},
	}
}

func TestTimeTrackingHandlerAccumulatesToPresent(t *testing.T) {
	att := newFakeAttendance()
	h := NewTimeTrackingHandler(att)
	ctx := context.Background()
	start := time.Date(2026, 4, 7, 9, 0, 0, 0, time.UTC)

	if err := h.Handle(ctx, completedEntry("emp-1", start, 3.0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Handle(ctx, completedEntry("emp-1", start.Add(4*time.Hour), 5.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := dayKey("emp-1", DayOf(start))
	if att.hours[key] != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", att.hours[key])
	}
	if att.status[key] != "present" {
		t.Fatalf("expected present, got %s", att.status[key])
	}
}

func TestTimeTrackingHandlerShortDayStaysPartial(t *testing.T) {
	att := newFakeAttendance()
	h := NewTimeTrackingHandler(att)
	ctx := context.Background()
	start := time.Date(2026, 4, 8, 9, 0, 0, 0, time.UTC)

	if err := h.Handle(ctx, completedEntry("emp-1", start, 3.0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Handle(ctx, completedEntry("emp-1", start.Add(4*time.Hour), 2.0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := dayKey("emp-1", DayOf(start))
	if att.hours[key] != 5.0 {
		t.Fatalf("expected 5.0 hours, got %v", att.hours[key])
	}
	if att.status[key] != "partial" {
		t.Fatalf("expected partial, got %s", att.status[key])
	}
}

func TestTimeTrackingHandlerIgnoresOpenEntries(t *testing.T) {
	att := newFakeAttendance()
	h := NewTimeTrackingHandler(att)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain: DomainTimeTracking,
		Kind:   KindUpdate,
		Payload: TimeEntryPayload{
			EmployeeID: "emp-1",
			StartTime:  time.Now(),
			Status:     "active",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(att.hours) != 0 {
		t.Fatalf("expected no accumulation, got %v", att.hours)
	}
}

func TestLeaveHandlerExpandsApprovedRange(t *testing.T) {
	att := newFakeAttendance()
	h := NewLeaveHandler(att)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain: DomainLeave,
		Kind:   KindUpdate,
		Payload: LeavePayload{
			EmployeeID:     "emp-1",
			LeaveType:      "annual",
			StartDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
			Status:         "approved",
			PreviousStatus: "pending",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(att.marked["emp-1"]) != 3 {
		t.Fatalf("expected 3 on-leave days, got %d", len(att.marked["emp-1"]))
	}
	for i, day := range att.marked["emp-1"] {
		want := time.Date(2026, 7, 1+i, 0, 0, 0, 0, time.UTC)
		if !day.Equal(want) {
			t.Fatalf("day %d: expected %v, got %v", i, want, day)
		}
		if att.status[dayKey("emp-1", day)] != "on_leave" {
			t.Fatalf("day %d not marked on_leave", i)
		}
	}
	if att.notes != "On annual leave" {
		t.Fatalf("unexpected notes: %q", att.notes)
	}
}

func TestLeaveHandlerOnlyFiresOnApprovalTransition(t *testing.T) {
	att := newFakeAttendance()
	h := NewLeaveHandler(att)
	ctx := context.Background()
	base := LeavePayload{
		EmployeeID: "emp-1",
		LeaveType:  "sick",
		StartDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
	}

	rejected := base
	rejected.Status = "rejected"
	rejected.PreviousStatus = "pending"
	if err := h.Handle(ctx, ChangeEvent{Domain: DomainLeave, Kind: KindUpdate, Payload: rejected}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resaved := base
	resaved.Status = "approved"
	resaved.PreviousStatus = "approved"
	if err := h.Handle(ctx, ChangeEvent{Domain: DomainLeave, Kind: KindUpdate, Payload: resaved}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(att.marked["emp-1"]) != 0 {
		t.Fatalf("expected no on-leave days, got %d", len(att.marked["emp-1"]))
	}
}

// fakeLearningGoals applies the same clamp the real store does in SQL.
type fakeLearningGoals struct {
	progress map[string]int
	calls    int
}

func (f *fakeLearningGoals) AdvanceLearningGoals(_ context.Context, _ string, increment int) ([]GoalProgress, error) {
	f.calls++
	var out []GoalProgress
	for id, p := range f.progress {
		if p >= 100 {
			continue
		}
		p += increment
		if p > 100 {
			p = 100
		}
		f.progress[id] = p
		status := "in_progress"
		if p == 100 {
			status = "completed"
		}
		out = append(out, GoalProgress{GoalID: id, Progress: p, Status: status})
	}
	return out, nil
}

func TestLearningHandlerAdvancesGoalsOnCompletion(t *testing.T) {
	goals := &fakeLearningGoals{progress: map[string]int{"goal-a": 90, "goal-b": 60}}
	h := NewLearningHandler(goals)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainLearning,
		Kind:    KindUpdate,
		Payload: EnrollmentPayload{EmployeeID: "emp-1", CourseID: "course-1", Status: "completed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals.progress["goal-a"] != 100 {
		t.Fatalf("expected goal-a clamped to 100, got %d", goals.progress["goal-a"])
	}
	if goals.progress["goal-b"] != 85 {
		t.Fatalf("expected goal-b at 85, got %d", goals.progress["goal-b"])
	}
}

func TestLearningHandlerIgnoresNonCompleted(t *testing.T) {
	goals := &fakeLearningGoals{progress: map[string]int{"goal-a": 50}}
	h := NewLearningHandler(goals)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainLearning,
		Kind:    KindUpdate,
		Payload: EnrollmentPayload{EmployeeID: "emp-1", CourseID: "course-1", Status: "enrolled"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals.calls != 0 {
		t.Fatalf("expected no advance, got %d calls", goals.calls)
	}
}

type fakeCatalog struct {
	category string
	courses  []CourseRef
	err      error
}

func (f *fakeCatalog) ActiveCoursesByCategory(_ context.Context, category string, _ int) ([]CourseRef, error) {
	f.category = category
	return f.courses, f.err
}

func TestPerformanceHandlerLooksUpSuggestions(t *testing.T) {
	catalog := &fakeCatalog{courses: []CourseRef{{ID: "c1", Title: "Advanced Go"}}}
	h := NewPerformanceHandler(catalog)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainPerformance,
		Kind:    KindUpdate,
		Payload: GoalPayload{EmployeeID: "emp-1", Category: "engineering", Status: "completed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.category != "engineering" {
		t.Fatalf("expected lookup for engineering, got %q", catalog.category)
	}
}

func TestPerformanceHandlerIgnoresIncompleteGoals(t *testing.T) {
	catalog := &fakeCatalog{}
	h := NewPerformanceHandler(catalog)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainPerformance,
		Kind:    KindUpdate,
		Payload: GoalPayload{EmployeeID: "emp-1", Category: "engineering", Status: "in_progress"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.category != "" {
		t.Fatal("catalog must not be queried for an incomplete goal")
	}
}

func TestPerformanceHandlerPropagatesCatalogError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("db down")}
	h := NewPerformanceHandler(catalog)

	err := h.Handle(context.Background(), ChangeEvent{
		Domain:  DomainPerformance,
		Kind:    KindUpdate,
		Payload: GoalPayload{EmployeeID: "emp-1", Category: "engineering", Status: "completed"},
	})
	if err == nil {
		t.Fatal("expected catalog error to surface")
	}
}

// Derived writes go through stores, not back through the feed, so a chain
// of handlers never cascades past the first hop. This wires a full bus and
// dispatcher to show an employee creation stops after the onboarding goal.
func TestPropagationIsSingleHop(t *testing.T) {
	counter := &countingMetrics{}
	bus := NewBus(context.Background(), 16, counter)
	defer bus.Close()

	goals := &fakeGoalStore{}
	employee := NewEmployeeHandler(goals)
	employeeDone := make(chan struct{}, 1)
	performanceInvoked := make(chan struct{}, 1)

	d := NewDispatcher(counter)
	d.Register(DomainEmployee, HandlerFunc(func(ctx context.Context, event ChangeEvent) error {
		err := employee.Handle(ctx, event)
		employeeDone <- struct{}{}
		return err
	}))
	d.Register(DomainPerformance, HandlerFunc(func(context.Context, ChangeEvent) error {
		performanceInvoked <- struct{}{}
		return nil
	}))
	subs := d.Attach(bus)
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	bus.Publish(ChangeEvent{
		Domain:  DomainEmployee,
		Kind:    KindCreate,
		Payload: EmployeePayload{EmployeeID: "emp-1", CreatedAt: time.Now().UTC()},
	})

	select {
	case <-employeeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for onboarding goal")
	}
	if goals.calls != 1 {
		t.Fatalf("expected 1 onboarding goal, got %d", goals.calls)
	}

	select {
	case <-performanceInvoked:
		t.Fatal("goal creation must not cascade into the performance handler")
	case <-time.After(100 * time.Millisecond):
	}
}
