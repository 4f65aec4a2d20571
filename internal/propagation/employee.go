package propagation

import (
	"context"
	"log/slog"
	"time"
)

const (
	onboardingGoalTitle    = "Onboarding Completion"
	onboardingGoalCategory = "onboarding"
	onboardingGoalDays     = 30
)

// OnboardingGoalStore creates the initial goal for a new hire.
type OnboardingGoalStore interface {
	CreateOnboardingGoal(ctx context.Context, employeeID, title, category string, targetDate time.Time) error
}

// EmployeeHandler reacts to employee creation by seeding an onboarding goal.
// Updates and deletes are ignored.
type EmployeeHandler struct {
	Goals OnboardingGoalStore
}

func NewEmployeeHandler(goals OnboardingGoalStore) *EmployeeHandler {
	return &EmployeeHandler{Goals: goals}
}

func (h *EmployeeHandler) Handle(ctx context.Context, event ChangeEvent) error {
	if event.Kind != KindCreate {
		return nil
	}
	payload, ok := event.Payload.(EmployeePayload)
	if !ok || payload.EmployeeID == "" {
		slog.Info("employee propagation skipped, malformed payload", "changeKind", event.Kind)
		return nil
	}

	created := payload.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	target := created.AddDate(0, 0, onboardingGoalDays)

	if err := h.Goals.CreateOnboardingGoal(ctx, payload.EmployeeID, onboardingGoalTitle, onboardingGoalCategory, target); err != nil {
		return err
	}
	slog.Info("onboarding goal created",
		"sourceDomain", DomainEmployee,
		"employeeId", payload.EmployeeID,
		"targetTable", "performance_goals",
	)
	return nil
}
