package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

func TestDefaultTemplates_Counts(t *testing.T) {
	templates := DefaultTemplates(time.Now())
	require.Len(t, templates, TotalSeedTemplates)
	assert.Equal(t, 120, TotalSeedTemplates)

	byBucket := map[types.Tier]map[Pattern]int{}
	for _, tpl := range templates {
		if byBucket[tpl.Tier] == nil {
			byBucket[tpl.Tier] = map[Pattern]int{}
		}
		byBucket[tpl.Tier][tpl.Pattern]++
	}

	require.Len(t, byBucket, 4)
	for tier, patterns := range byBucket {
		for _, pattern := range AllPatterns {
			assert.Equalf(t, TemplatesPerBucket, patterns[pattern],
				"tier %s pattern %s", tier, pattern)
		}
	}
}

func TestDefaultTemplates_AllValid(t *testing.T) {
	for _, tpl := range DefaultTemplates(time.Now()) {
		tpl := tpl
		require.NoErrorf(t, tpl.Validate(), "template %s", tpl.Name)
		assert.True(t, tpl.IsActive)
		assert.False(t, tpl.ID.IsZero())
	}
}

func TestDefaultTemplates_ConsensusThresholds(t *testing.T) {
	for _, tpl := range DefaultTemplates(time.Now()) {
		if tpl.Pattern != PatternConsensus {
			continue
		}

		assert.Greater(t, tpl.ConsensusThreshold, 0.0)
		assert.LessOrEqual(t, tpl.ConsensusThreshold, 1.0)

		switch tpl.Tier {
		case types.TierEnterprise:
			assert.GreaterOrEqual(t, tpl.ConsensusThreshold, 0.80)
			assert.LessOrEqual(t, tpl.ConsensusThreshold, 0.85)
		default:
			assert.GreaterOrEqual(t, tpl.ConsensusThreshold, 0.60)
			assert.LessOrEqual(t, tpl.ConsensusThreshold, 0.75)
		}
	}
}

func TestDefaultTemplates_ChainTransforms(t *testing.T) {
	for _, tpl := range DefaultTemplates(time.Now()) {
		if tpl.Pattern != PatternChain {
			continue
		}

		require.NotEmpty(t, tpl.InitialInput)
		// First step consumes the initial input directly; later steps declare
		// which upstream field they forward.
		assert.Empty(t, tpl.Chain[0].InputTransform)
		for _, step := range tpl.Chain[1:] {
			assert.Contains(t, []string{"summary", "action"}, step.InputTransform)
		}
	}
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(tpl *Template) { tpl.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "invalid tier",
			mutate:  func(tpl *Template) { tpl.Tier = "platinum" },
			wantErr: "invalid tier",
		},
		{
			name:    "invalid pattern",
			mutate:  func(tpl *Template) { tpl.Pattern = "broadcast" },
			wantErr: "invalid pattern",
		},
		{
			name: "threshold above one",
			mutate: func(tpl *Template) {
				tpl.Pattern = PatternConsensus
				tpl.ConsensusAgents = []string{"data_analysis"}
				tpl.ConsensusThreshold = 1.2
			},
			wantErr: "outside (0, 1]",
		},
		{
			name: "threshold zero",
			mutate: func(tpl *Template) {
				tpl.Pattern = PatternConsensus
				tpl.ConsensusAgents = []string{"data_analysis"}
				tpl.ConsensusThreshold = 0
			},
			wantErr: "outside (0, 1]",
		},
		{
			name:    "parallel without agents",
			mutate:  func(tpl *Template) { tpl.Agents = nil },
			wantErr: "at least one agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := Template{
				ID:      types.NewID(),
				Name:    "Test",
				Tier:    types.TierSME,
				Pattern: PatternParallel,
				Agents:  []AgentRef{{AgentKey: "data_analysis", Mode: "analyze"}},
			}
			tt.mutate(&tpl)

			err := tpl.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
