package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

func agentStep(title string) Step {
	return Step{Kind: KindAgent, Title: title}
}

func TestAddStepAfter_Approval(t *testing.T) {
	tests := []struct {
		name string
		tier types.Tier
		role string
	}{
		{"solopreneur default role", types.TierSolopreneur, "Owner"},
		{"startup default role", types.TierStartup, "Manager"},
		{"sme default role", types.TierSME, "Team Lead"},
		{"enterprise default role", types.TierEnterprise, "Compliance Lead"},
		{"unknown tier falls back", types.Tier("trial"), "Manager"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pipeline{agentStep("draft"), agentStep("publish")}
			out := AddStepAfter(p, 0, KindApproval, tt.tier)

			require.Len(t, out, 3)
			assert.Equal(t, KindApproval, out[1].Kind)
			assert.Equal(t, tt.role, out[1].ApproverRole)
			assert.False(t, out[1].AutoInserted)

			// Input must be untouched.
			assert.Len(t, p, 2)
		})
	}
}

func TestAddStepAfter_Defaults(t *testing.T) {
	p := Pipeline{agentStep("a")}

	out := AddStepAfter(p, 0, KindDelay, types.TierSME)
	require.Len(t, out, 2)
	assert.Equal(t, 60, out[1].DelayMinutes)

	out = AddStepAfter(p, 0, KindBranch, types.TierSME)
	require.Len(t, out, 2)
	require.NotNil(t, out[1].Condition)
	assert.Equal(t, 2, out[1].OnTrueNext)
	assert.Equal(t, 3, out[1].OnFalseNext)
}

func TestAddStepAfter_ClampsIndex(t *testing.T) {
	p := Pipeline{agentStep("a")}

	out := AddStepAfter(p, 99, KindNotify, types.TierStartup)
	require.Len(t, out, 2)
	assert.Equal(t, KindNotify, out[1].Kind)

	out = AddStepAfter(p, -5, KindNotify, types.TierStartup)
	require.Len(t, out, 2)
	assert.Equal(t, KindNotify, out[0].Kind)
}

func TestRemoveStep(t *testing.T) {
	p := Pipeline{agentStep("a"), agentStep("b"), agentStep("c")}

	out := RemoveStep(p, 1)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "c", out[1].Title)
	assert.Len(t, p, 3)
}

func TestRemoveStep_NeverEmpties(t *testing.T) {
	p := Pipeline{agentStep("only")}

	out := RemoveStep(p, 0)
	require.Len(t, out, 1)
	assert.Equal(t, p, out)
}

func TestRemoveStep_OutOfRange(t *testing.T) {
	p := Pipeline{agentStep("a"), agentStep("b")}
	assert.Equal(t, p, RemoveStep(p, -1))
	assert.Equal(t, p, RemoveStep(p, 2))
}

func TestMoveStep(t *testing.T) {
	p := Pipeline{agentStep("a"), agentStep("b"), agentStep("c")}

	out := MoveStep(p, 0, 1)
	assert.Equal(t, "b", out[0].Title)
	assert.Equal(t, "a", out[1].Title)

	// Out-of-range targets are no-ops.
	assert.Equal(t, p, MoveStep(p, 0, -1))
	assert.Equal(t, p, MoveStep(p, 2, 1))
	assert.Equal(t, p, MoveStep(p, 5, 1))
}

func TestToggleHumanReview_AutoInsert(t *testing.T) {
	p := Pipeline{agentStep("draft"), {Kind: KindNotify, Channel: "email"}}

	out := ToggleHumanReview(p, 0, true, types.TierEnterprise)
	require.Len(t, out, 3)
	assert.True(t, out[0].MMRRequired)
	assert.Equal(t, KindApproval, out[1].Kind)
	assert.Equal(t, "Compliance Lead", out[1].ApproverRole)
	assert.True(t, out[1].AutoInserted)
}

func TestToggleHumanReview_RoundTrip(t *testing.T) {
	p := Pipeline{agentStep("draft"), {Kind: KindDelay, DelayMinutes: 30}}

	on := ToggleHumanReview(p, 0, true, types.TierSME)
	off := ToggleHumanReview(on, 0, false, types.TierSME)

	assert.Equal(t, p, off)
}

func TestToggleHumanReview_ExistingApprovalKept(t *testing.T) {
	p := Pipeline{
		agentStep("draft"),
		{Kind: KindApproval, ApproverRole: "Legal"},
	}

	on := ToggleHumanReview(p, 0, true, types.TierSME)
	require.Len(t, on, 2)
	assert.True(t, on[0].MMRRequired)

	// Disabling must not remove the operator-added approval.
	off := ToggleHumanReview(on, 0, false, types.TierSME)
	require.Len(t, off, 2)
	assert.Equal(t, "Legal", off[1].ApproverRole)
}

func TestToggleHumanReview_NonAgentNoOp(t *testing.T) {
	p := Pipeline{{Kind: KindDelay, DelayMinutes: 10}}
	assert.Equal(t, p, ToggleHumanReview(p, 0, true, types.TierSME))
	assert.Equal(t, p, ToggleHumanReview(p, 3, true, types.TierSME))
}

func TestAddSecondApprovalAtEnd_DistinctRole(t *testing.T) {
	for _, tier := range types.AllTiers {
		t.Run(tier.String(), func(t *testing.T) {
			p := AddApprovalAtEnd(Pipeline{agentStep("a")}, tier)
			p = AddSecondApprovalAtEnd(p, tier)

			require.Equal(t, 2, p.ApprovalCount())
			first := p[len(p)-2]
			second := p[len(p)-1]
			assert.NotEqual(t, first.ApproverRole, second.ApproverRole)
		})
	}
}

func TestAddDelayAtEnd(t *testing.T) {
	p := AddDelayAtEnd(Pipeline{agentStep("a")}, 45)
	require.Len(t, p, 2)
	assert.Equal(t, KindDelay, p[1].Kind)
	assert.Equal(t, 45, p[1].DelayMinutes)
}
