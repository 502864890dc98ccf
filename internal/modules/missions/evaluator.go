package missions

import (
	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/modules/portfolio"
)

// Evaluate recomputes a mission's progress against the current state and
// flips it to completed once the requirement is met. Terminal missions are
// returned unchanged. Archetypes without an evaluator keep whatever
// progress they have and never complete on their own.
func Evaluate(mission domain.Mission, state *domain.GameState) domain.Mission {
	if mission.Status.Terminal() {
		return mission
	}

	switch mission.Type {
	case domain.MissionDiversify:
		mission.CurrentProgress = portfolio.HeldCategories(state.Holdings, state.Assets)
	}

	if mission.ProgressRequired > 0 && mission.CurrentProgress >= mission.ProgressRequired {
		mission.Status = domain.MissionCompleted
	}

	return mission
}

// EvaluateAll runs Evaluate over a round's active missions.
func EvaluateAll(active []domain.Mission, state *domain.GameState) []domain.Mission {
	out := make([]domain.Mission, len(active))
	for i, mission := range active {
		out[i] = Evaluate(mission, state)
	}
	return out
}
