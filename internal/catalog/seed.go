package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// TemplatesPerBucket is the number of templates seeded per tier for each
// pattern.
const TemplatesPerBucket = 10

// TotalSeedTemplates is the full seed catalog size: ten templates per tier
// per pattern.
const TotalSeedTemplates = TemplatesPerBucket * 4 * 3

// themes are the business-automation scenarios each tier bucket covers, one
// template per theme per pattern.
var themes = []string{
	"Content Refresh",
	"Lead Scoring",
	"Customer Onboarding",
	"Churn Watch",
	"Campaign Launch",
	"Invoice Chase",
	"Social Listening",
	"Competitor Scan",
	"Support Triage",
	"Quarterly Review",
}

// agentPool is the rotation of agent keys assigned to seed templates.
var agentPool = []string{
	"content_creation",
	"sales_intelligence",
	"customer_support",
	"financial_analysis",
	"marketing_automation",
	"data_analysis",
	"strategic_planning",
	"compliance_risk",
	"operations_optimization",
	"hr_recruitment",
}

var modes = []string{"analyze", "draft", "summarize", "execute"}

// consensusThresholds returns the pair of agreement thresholds a tier's
// consensus templates alternate between. Higher tiers demand stricter
// agreement: enterprise templates use 0.80–0.85 while lower tiers range
// 0.60–0.75. This is a catalog convention, not an enforced invariant.
func consensusThresholds(tier types.Tier) [2]float64 {
	switch tier {
	case types.TierStartup:
		return [2]float64{0.65, 0.70}
	case types.TierSME:
		return [2]float64{0.70, 0.75}
	case types.TierEnterprise:
		return [2]float64{0.80, 0.85}
	default:
		return [2]float64{0.60, 0.65}
	}
}

// TierOrder fixes the seeding order of tier buckets.
var TierOrder = []types.Tier{
	types.TierSolopreneur,
	types.TierStartup,
	types.TierSME,
	types.TierEnterprise,
}

// DefaultTemplates builds the full seed catalog: for each tier, ten parallel,
// ten chain, and ten consensus templates. The catalog is deterministic apart
// from IDs and timestamps.
func DefaultTemplates(now time.Time) []Template {
	out := make([]Template, 0, TotalSeedTemplates)
	for _, tier := range TierOrder {
		for i, theme := range themes {
			out = append(out, parallelTemplate(tier, theme, i, now))
		}
		for i, theme := range themes {
			out = append(out, chainTemplate(tier, theme, i, now))
		}
		for i, theme := range themes {
			out = append(out, consensusTemplate(tier, theme, i, now))
		}
	}
	return out
}

func agentAt(i int) string {
	return agentPool[i%len(agentPool)]
}

func modeAt(i int) string {
	return modes[i%len(modes)]
}

func templateName(pattern Pattern, tier types.Tier, theme string) string {
	caser := strings.ToUpper(pattern.String()[:1]) + pattern.String()[1:]
	return fmt.Sprintf("%s %s (%s)", caser, theme, tier)
}

func parallelTemplate(tier types.Tier, theme string, i int, now time.Time) Template {
	return Template{
		ID:          types.NewID(),
		Name:        templateName(PatternParallel, tier, theme),
		Description: fmt.Sprintf("Runs %s agents side by side for %s; results are collected independently.", tier, strings.ToLower(theme)),
		Tier:        tier,
		Pattern:     PatternParallel,
		IsActive:    true,
		CreatedAt:   now,
		Agents: []AgentRef{
			{AgentKey: agentAt(i), Mode: modeAt(i)},
			{AgentKey: agentAt(i + 3), Mode: modeAt(i + 1)},
			{AgentKey: agentAt(i + 6), Mode: modeAt(i + 2)},
		},
	}
}

func chainTemplate(tier types.Tier, theme string, i int, now time.Time) Template {
	return Template{
		ID:           types.NewID(),
		Name:         templateName(PatternChain, tier, theme),
		Description:  fmt.Sprintf("Hands %s output down an ordered agent chain, each step transforming the last.", strings.ToLower(theme)),
		Tier:         tier,
		Pattern:      PatternChain,
		IsActive:     true,
		CreatedAt:    now,
		InitialInput: fmt.Sprintf("Kick off the %s review for this business.", strings.ToLower(theme)),
		Chain: []ChainStep{
			{AgentKey: agentAt(i), Mode: modeAt(i)},
			{AgentKey: agentAt(i + 4), Mode: modeAt(i + 1), InputTransform: "summary"},
			{AgentKey: agentAt(i + 8), Mode: modeAt(i + 2), InputTransform: "action"},
		},
	}
}

func consensusTemplate(tier types.Tier, theme string, i int, now time.Time) Template {
	threshold := consensusThresholds(tier)[i%2]
	return Template{
		ID:                 types.NewID(),
		Name:               templateName(PatternConsensus, tier, theme),
		Description:        fmt.Sprintf("Polls independent agents on %s and resolves once agreement clears the threshold.", strings.ToLower(theme)),
		Tier:               tier,
		Pattern:            PatternConsensus,
		IsActive:           true,
		CreatedAt:          now,
		ConsensusAgents:    []string{agentAt(i), agentAt(i + 2), agentAt(i + 5), agentAt(i + 7)},
		Question:           fmt.Sprintf("Should we proceed with the %s initiative this cycle?", strings.ToLower(theme)),
		ConsensusThreshold: threshold,
	}
}
