package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// compliantPipeline returns a pipeline passing every rule for the tier.
func compliantPipeline(tier types.Tier) pipeline.Pipeline {
	p := pipeline.Pipeline{
		{Kind: pipeline.KindAgent, Title: "Draft"},
		{Kind: pipeline.KindApproval, ApproverRole: tier.DefaultApproverRole()},
		{Kind: pipeline.KindDelay, DelayMinutes: 90},
	}
	if tier == types.TierEnterprise {
		p = pipeline.AddSecondApprovalAtEnd(p, tier)
	}
	return p
}

func TestValidate_CompliantAllTiers(t *testing.T) {
	for _, tier := range types.AllTiers {
		t.Run(tier.String(), func(t *testing.T) {
			snap := Snapshot{
				Description: "Lead nurture flow",
				Threshold:   1,
				Pipeline:    compliantPipeline(tier),
			}
			assert.Empty(t, Validate(snap, tier))
			assert.True(t, Compliant(snap, tier))
		})
	}
}

func TestValidate_SMEScenario(t *testing.T) {
	// Pipeline with a 45m delay and no approval, empty description. The 45m
	// delay clears the 30m SME floor, so exactly two issues remain.
	snap := Snapshot{
		Pipeline: pipeline.Pipeline{
			{Kind: pipeline.KindAgent, Title: "Draft"},
			{Kind: pipeline.KindDelay, DelayMinutes: 45},
		},
	}

	issues := Validate(snap, types.TierSME)
	assert.Equal(t, []string{IssueMissingApproval, IssueDescriptionMissing}, issues)
}

func TestValidate_NilPipeline(t *testing.T) {
	issues := Validate(Snapshot{Description: "x"}, types.TierSME)
	assert.Contains(t, issues, IssueMissingApproval)
	assert.Contains(t, issues, IssueMissingSLADelay(30))
}

func TestValidate_ApproverRoleRule(t *testing.T) {
	tests := []struct {
		name     string
		pipeline pipeline.Pipeline
		flagged  bool
	}{
		{
			name: "blank role flagged",
			pipeline: pipeline.Pipeline{
				{Kind: pipeline.KindApproval, ApproverRole: ""},
			},
			flagged: true,
		},
		{
			name: "whitespace role flagged",
			pipeline: pipeline.Pipeline{
				{Kind: pipeline.KindApproval, ApproverRole: "   "},
			},
			flagged: true,
		},
		{
			name: "any blank role among several flagged",
			pipeline: pipeline.Pipeline{
				{Kind: pipeline.KindApproval, ApproverRole: "Manager"},
				{Kind: pipeline.KindApproval, ApproverRole: ""},
			},
			flagged: true,
		},
		{
			name: "all roles present",
			pipeline: pipeline.Pipeline{
				{Kind: pipeline.KindApproval, ApproverRole: "Manager"},
				{Kind: pipeline.KindApproval, ApproverRole: "Owner"},
			},
			flagged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(Snapshot{Description: "x", Pipeline: tt.pipeline}, types.TierSME)
			if tt.flagged {
				assert.Contains(t, issues, IssueApproverRoleMissing)
			} else {
				assert.NotContains(t, issues, IssueApproverRoleMissing)
			}
		})
	}
}

func TestValidate_SLAFloorByTier(t *testing.T) {
	base := pipeline.Pipeline{
		{Kind: pipeline.KindApproval, ApproverRole: "Manager"},
		{Kind: pipeline.KindApproval, ApproverRole: "Owner"},
	}

	tests := []struct {
		name    string
		tier    types.Tier
		delay   int
		flagged string
	}{
		{"enterprise needs 60m", types.TierEnterprise, 45, IssueMissingSLADelay(60)},
		{"enterprise 60m passes", types.TierEnterprise, 60, ""},
		{"sme needs 30m", types.TierSME, 29, IssueMissingSLADelay(30)},
		{"sme 30m passes", types.TierSME, 30, ""},
		{"startup any positive delay passes", types.TierStartup, 1, ""},
		{"startup zero delay flagged", types.TierStartup, 0, IssueMissingHandoffDelay},
		{"solopreneur zero delay flagged", types.TierSolopreneur, 0, IssueMissingHandoffDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base.Clone()
			p = append(p, pipeline.Step{Kind: pipeline.KindDelay, DelayMinutes: tt.delay})
			issues := Validate(Snapshot{Description: "x", Threshold: 2, Pipeline: p}, tt.tier)
			if tt.flagged == "" {
				assert.Empty(t, issues)
			} else {
				assert.Equal(t, []string{tt.flagged}, issues)
			}
		})
	}
}

func TestValidate_EnterpriseMultiApprover(t *testing.T) {
	single := pipeline.Pipeline{
		{Kind: pipeline.KindApproval, ApproverRole: "Compliance Lead"},
		{Kind: pipeline.KindDelay, DelayMinutes: 60},
	}

	snap := Snapshot{Description: "x", Threshold: 1, Pipeline: single}
	issues := Validate(snap, types.TierEnterprise)
	assert.Equal(t, []string{IssueEnterpriseApprovals}, issues)

	// Raising the threshold alone clears it.
	snap.Threshold = 2
	assert.Empty(t, Validate(snap, types.TierEnterprise))

	// A second approval step alone clears it too.
	snap.Threshold = 1
	snap.Pipeline = pipeline.AddSecondApprovalAtEnd(single, types.TierEnterprise)
	assert.Empty(t, Validate(snap, types.TierEnterprise))

	// Lower tiers never apply the rule.
	snap.Pipeline = single
	assert.Empty(t, Validate(snap, types.TierSME))
}

func TestValidate_EachFixClearsExactlyOneIssue(t *testing.T) {
	// Start from a fully non-compliant enterprise workflow and verify each
	// single repair removes exactly its own issue.
	broken := Snapshot{
		Threshold: 1,
		Pipeline: pipeline.Pipeline{
			{Kind: pipeline.KindAgent, Title: "Draft"},
		},
	}

	baseline := Validate(broken, types.TierEnterprise)
	require.Equal(t, []string{
		IssueMissingApproval,
		IssueMissingSLADelay(60),
		IssueDescriptionMissing,
		IssueEnterpriseApprovals,
	}, baseline)

	t.Run("add approval", func(t *testing.T) {
		snap := broken
		snap.Pipeline = pipeline.AddApprovalAtEnd(broken.Pipeline, types.TierEnterprise)
		issues := Validate(snap, types.TierEnterprise)
		assert.NotContains(t, issues, IssueMissingApproval)
		assert.Len(t, issues, len(baseline)-1)
	})

	t.Run("add delay", func(t *testing.T) {
		snap := broken
		snap.Pipeline = pipeline.AddDelayAtEnd(broken.Pipeline, 60)
		issues := Validate(snap, types.TierEnterprise)
		assert.NotContains(t, issues, IssueMissingSLADelay(60))
		assert.Len(t, issues, len(baseline)-1)
	})

	t.Run("fill description", func(t *testing.T) {
		snap := broken
		snap.Description = "Quarterly outreach"
		issues := Validate(snap, types.TierEnterprise)
		assert.NotContains(t, issues, IssueDescriptionMissing)
		assert.Len(t, issues, len(baseline)-1)
	})

	t.Run("raise threshold", func(t *testing.T) {
		snap := broken
		snap.Threshold = 2
		issues := Validate(snap, types.TierEnterprise)
		assert.NotContains(t, issues, IssueEnterpriseApprovals)
		assert.Len(t, issues, len(baseline)-1)
	})
}

func TestSaveBlocked(t *testing.T) {
	issues := []string{IssueMissingApproval}

	assert.True(t, SaveBlocked(types.TierEnterprise, issues))
	assert.True(t, SaveBlocked(types.TierSME, issues))
	assert.True(t, SaveBlocked(types.TierStartup, issues))
	assert.False(t, SaveBlocked(types.TierSolopreneur, issues))

	for _, tier := range types.AllTiers {
		assert.False(t, SaveBlocked(tier, nil))
	}
}

func TestSuggestFix(t *testing.T) {
	tests := []struct {
		issue string
		tier  types.Tier
		fix   QuickFix
	}{
		{IssueMissingApproval, types.TierSME, QuickFixAddApproval},
		{IssueApproverRoleMissing, types.TierSME, QuickFixFillApproverRole},
		{IssueMissingSLADelay(30), types.TierSME, QuickFixAddDelay},
		{IssueMissingHandoffDelay, types.TierStartup, QuickFixAddDelay},
		{IssueDescriptionMissing, types.TierSME, QuickFixFillDescription},
		{IssueEnterpriseApprovals, types.TierEnterprise, QuickFixAddSecondApproval},
	}

	for _, tt := range tests {
		t.Run(tt.issue, func(t *testing.T) {
			fix, ok := SuggestFix(tt.issue, tt.tier)
			require.True(t, ok)
			assert.Equal(t, tt.fix, fix)
		})
	}

	_, ok := SuggestFix("Unknown issue", types.TierSME)
	assert.False(t, ok)
}
