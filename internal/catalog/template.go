// Package catalog defines the orchestration template model and the seed
// catalog: 120 templates across the three orchestration patterns (parallel,
// chain, consensus), ten per tier for each pattern. The catalog records the
// shapes only; the execution engine that runs them is external.
package catalog

import (
	"fmt"
	"time"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Pattern identifies the orchestration shape of a template.
type Pattern string

const (
	// PatternParallel runs a set of agent+mode tasks independently; order is
	// irrelevant and entries carry no data dependency on each other.
	PatternParallel Pattern = "parallel"

	// PatternChain runs ordered agent steps where each step's output feeds
	// the next, selected by the step's input transform.
	PatternChain Pattern = "chain"

	// PatternConsensus asks a set of agents the same question and reconciles
	// their answers against an agreement threshold.
	PatternConsensus Pattern = "consensus"
)

// AllPatterns lists every orchestration pattern.
var AllPatterns = []Pattern{PatternParallel, PatternChain, PatternConsensus}

// String returns the string representation of the pattern.
func (p Pattern) String() string {
	return string(p)
}

// IsValid checks if the Pattern is a valid value.
func (p Pattern) IsValid() bool {
	switch p {
	case PatternParallel, PatternChain, PatternConsensus:
		return true
	default:
		return false
	}
}

// AgentRef names an agent and the mode it runs in within a parallel template.
type AgentRef struct {
	AgentKey string `json:"agent_key" yaml:"agent_key"`
	Mode     string `json:"mode" yaml:"mode"`
}

// ChainStep is one ordered step of a chain template. InputTransform is a
// free-form tag ("summary" or "action") interpreted by the external execution
// engine to select which upstream output field to forward; the catalog only
// records it.
type ChainStep struct {
	AgentKey       string `json:"agent_key" yaml:"agent_key"`
	Mode           string `json:"mode" yaml:"mode"`
	InputTransform string `json:"input_transform,omitempty" yaml:"input_transform,omitempty"`
}

// Template is an orchestration template. Only the fields for its Pattern are
// populated. IsActive acts as a soft-enable flag; Tier tags the template for
// catalog filtering and recommendation, never for governance enforcement.
type Template struct {
	ID          types.ID   `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tier        types.Tier `json:"tier"`
	Pattern     Pattern    `json:"pattern"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`

	// Parallel fields
	Agents []AgentRef `json:"agents,omitempty"`

	// Chain fields
	Chain        []ChainStep `json:"chain,omitempty"`
	InitialInput string      `json:"initial_input,omitempty"`

	// Consensus fields. ConsensusThreshold lies in (0, 1]; agreement must
	// meet or exceed it for the template to resolve as decided.
	ConsensusAgents    []string `json:"consensus_agents,omitempty"`
	Question           string   `json:"question,omitempty"`
	ConsensusThreshold float64  `json:"consensus_threshold,omitempty"`
}

// Validate checks the template's structural invariants for its pattern.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if !t.Tier.IsValid() {
		return fmt.Errorf("invalid tier %q", t.Tier)
	}
	if !t.Pattern.IsValid() {
		return fmt.Errorf("invalid pattern %q", t.Pattern)
	}

	switch t.Pattern {
	case PatternParallel:
		if len(t.Agents) == 0 {
			return fmt.Errorf("parallel template requires at least one agent")
		}
	case PatternChain:
		if len(t.Chain) == 0 {
			return fmt.Errorf("chain template requires at least one step")
		}
	case PatternConsensus:
		if len(t.ConsensusAgents) == 0 {
			return fmt.Errorf("consensus template requires at least one agent")
		}
		if t.ConsensusThreshold <= 0 || t.ConsensusThreshold > 1 {
			return fmt.Errorf("consensus threshold %v outside (0, 1]", t.ConsensusThreshold)
		}
	}
	return nil
}
