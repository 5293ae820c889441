package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionFollowsTable(t *testing.T) {
	for current, allowed := range ValidTransitions {
		for _, next := range allowed {
			assert.True(t, CanTransition(current, next), "%s -> %s should be allowed", current, next)
		}
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	statuses := []string{}
	for s := range ValidTransitions {
		statuses = append(statuses, s)
	}
	statuses = append(statuses, StatusCompleted)

	allowedSet := func(current string) map[string]bool {
		set := map[string]bool{}
		for _, s := range ValidTransitions[current] {
			set[s] = true
		}
		return set
	}

	for _, current := range statuses {
		allowed := allowedSet(current)
		for _, next := range statuses {
			if allowed[next] {
				continue
			}
			assert.False(t, CanTransition(current, next), "%s -> %s should be denied", current, next)
		}
	}
}

func TestCanTransitionUnknownCurrent(t *testing.T) {
	assert.False(t, CanTransition("Completed", StatusRequested))
	assert.False(t, CanTransition("NoSuchStatus", StatusCompleted))
	assert.False(t, CanTransition("", StatusRequested))
}

func TestNCRPipeline(t *testing.T) {
	path := []string{
		StatusRequested, StatusNCRInTransit, StatusNCRHubReceived,
		StatusNCRQCCompleted, StatusNCRDocumented, StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]))
	}

	// early exit at the hub gate
	assert.True(t, CanTransition(StatusNCRInTransit, StatusDirectReturn))
	assert.True(t, CanTransition(StatusDirectReturn, StatusCompleted))

	// QC cannot be skipped in the NCR flow
	assert.False(t, CanTransition(StatusNCRHubReceived, StatusNCRDocumented))
}

func TestCollectionPipelineSkipsQC(t *testing.T) {
	path := []string{
		StatusRequested, StatusCOLJobAccepted, StatusCOLBranchReceived,
		StatusCOLConsolidated, StatusCOLInTransit, StatusCOLHubReceived,
		StatusCOLDocumented, StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}

	assert.True(t, CanTransition(StatusCOLConsolidated, StatusDirectReturn))
	// collection items go straight from hub receipt to documents
	assert.False(t, CanTransition(StatusCOLHubReceived, StatusNCRQCCompleted))
}

func TestLegacyPipeline(t *testing.T) {
	path := []string{
		StatusJobAccepted, StatusBranchReceived, StatusReadyForLogistics,
		StatusInTransitToHub, StatusHubReceived, StatusDocsCompleted, StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
	assert.True(t, CanTransition(StatusReadyForLogistics, StatusReturnToSupplier))
}

func TestFieldSettlementShortCircuit(t *testing.T) {
	// a case can be settled on site before it ever moves toward the hub
	assert.True(t, CanTransition(StatusRequested, StatusDirectReturn))
	assert.True(t, CanTransition(StatusCOLJobAccepted, StatusDirectReturn))
	assert.True(t, CanTransition(StatusDirectReturn, StatusCompleted))

	// but not once the goods are already at the hub
	assert.False(t, CanTransition(StatusNCRHubReceived, StatusDirectReturn))
	assert.False(t, CanTransition(StatusCOLHubReceived, StatusDirectReturn))
}

func TestAllowedNext(t *testing.T) {
	assert.ElementsMatch(t, []string{StatusNCRHubReceived, StatusDirectReturn}, AllowedNext(StatusNCRInTransit))
	assert.Nil(t, AllowedNext(StatusCompleted))
}
