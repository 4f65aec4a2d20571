package propagation

import (
	"context"
	"log/slog"
)

const learningProgressIncrement = 25

// GoalProgress reports one goal's state after an advance.
type GoalProgress struct {
	GoalID   string
	Progress int
	Status   string
}

// LearningGoalStore advances every open learning-category goal of an
// employee by the given increment. Each goal is updated independently and
// the new progress is clamped to 100 in the update itself, so concurrent
// completions cannot push a goal past the clamp.
type LearningGoalStore interface {
	AdvanceLearningGoals(ctx context.Context, employeeID string, increment int) ([]GoalProgress, error)
}

// LearningHandler credits learning-goal progress when a course enrollment
// completes.
type LearningHandler struct {
	Goals LearningGoalStore
}

func NewLearningHandler(goals LearningGoalStore) *LearningHandler {
	return &LearningHandler{Goals: goals}
}

func (h *LearningHandler) Handle(ctx context.Context, event ChangeEvent) error {
	payload, ok := event.Payload.(EnrollmentPayload)
	if !ok || payload.EmployeeID == "" {
		slog.Info("learning propagation skipped, malformed payload", "changeKind", event.Kind)
		return nil
	}
	if payload.Status != "completed" {
		return nil
	}

	advanced, err := h.Goals.AdvanceLearningGoals(ctx, payload.EmployeeID, learningProgressIncrement)
	if err != nil {
		return err
	}
	if len(advanced) == 0 {
		return nil
	}
	for _, goal := range advanced {
		slog.Info("learning goal advanced",
			"sourceDomain", DomainLearning,
			"employeeId", payload.EmployeeID,
			"goalId", goal.GoalID,
			"progress", goal.Progress,
			"status", goal.Status,
			"targetTable", "performance_goals",
		)
	}
	return nil
}
