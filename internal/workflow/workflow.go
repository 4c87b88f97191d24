// Package workflow defines the workflow model owned by a business, the
// per-workflow draft manager used while editing, and the collaborator
// interfaces for simulation, ROI estimation, and compliance scanning.
package workflow

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/governance"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// TriggerType defines how a workflow run is initiated.
type TriggerType string

const (
	TriggerManual   TriggerType = "manual"
	TriggerSchedule TriggerType = "schedule"
	TriggerWebhook  TriggerType = "webhook"
)

// IsValid checks if the TriggerType is a valid value.
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerManual, TriggerSchedule, TriggerWebhook:
		return true
	default:
		return false
	}
}

// Trigger describes how a workflow run starts. Cron is set for schedule
// triggers, EventKey for webhook triggers.
type Trigger struct {
	Type     TriggerType `json:"type" yaml:"type" validate:"required,oneof=manual schedule webhook"`
	Cron     string      `json:"cron,omitempty" yaml:"cron,omitempty"`
	EventKey string      `json:"event_key,omitempty" yaml:"event_key,omitempty"`
}

// ApprovalSettings carries the workflow-level approval configuration.
type ApprovalSettings struct {
	Required  bool `json:"required" yaml:"required"`
	Threshold int  `json:"threshold" yaml:"threshold" validate:"gte=0"`
}

// Workflow is a business-owned automation workflow. The pipeline is replaced
// wholesale on every upsert; there is no partial-step persistence.
type Workflow struct {
	ID          types.ID          `json:"id"`
	BusinessID  types.ID          `json:"business_id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Trigger     Trigger           `json:"trigger"`
	Approval    ApprovalSettings  `json:"approval"`
	Pipeline    pipeline.Pipeline `json:"pipeline"`
	Template    bool              `json:"template"`
	Tags        []string          `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the workflow's structural invariants before persistence.
// Governance compliance is checked separately via GovernanceSnapshot; this
// only rejects workflows the store cannot represent.
func (w *Workflow) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("workflow validation failed: %w", err)
	}
	if len(w.Pipeline) == 0 {
		return fmt.Errorf("workflow pipeline must contain at least one step")
	}
	for i, s := range w.Pipeline {
		if !s.Kind.IsValid() {
			return fmt.Errorf("pipeline step %d has unknown kind %q", i, s.Kind)
		}
	}
	if w.Trigger.Type == TriggerSchedule && w.Trigger.Cron == "" {
		return fmt.Errorf("schedule trigger requires a cron expression")
	}
	if w.Trigger.Type == TriggerWebhook && w.Trigger.EventKey == "" {
		return fmt.Errorf("webhook trigger requires an event key")
	}
	return nil
}

// GovernanceSnapshot projects the workflow into the view the governance
// validator inspects.
func (w *Workflow) GovernanceSnapshot() governance.Snapshot {
	return governance.Snapshot{
		Description: w.Description,
		Threshold:   w.Approval.Threshold,
		Pipeline:    w.Pipeline,
	}
}

// Issues returns the governance issues for the workflow under the tier.
func (w *Workflow) Issues(tier types.Tier) []string {
	return governance.Validate(w.GovernanceSnapshot(), tier)
}

// NewDefault returns a tier-appropriate starter workflow for the business:
// an agent step, an approval step with the tier default role, and a delay
// meeting the tier's SLA floor.
func NewDefault(businessID types.ID, tier types.Tier) *Workflow {
	delay := tier.MinDelayMinutes()
	if delay == 0 {
		delay = 15
	}

	p := pipeline.Pipeline{
		{Kind: pipeline.KindAgent, Title: "Draft output", AgentPrompt: "Produce the first draft for review."},
		{Kind: pipeline.KindApproval, ApproverRole: tier.DefaultApproverRole()},
		{Kind: pipeline.KindDelay, DelayMinutes: delay},
	}
	if tier == types.TierEnterprise {
		p = pipeline.AddSecondApprovalAtEnd(p, tier)
	}

	now := time.Now()
	return &Workflow{
		ID:          types.NewID(),
		BusinessID:  businessID,
		Name:        "New Workflow",
		Description: "Starter workflow seeded from tier defaults.",
		Trigger:     Trigger{Type: TriggerManual},
		Approval:    ApprovalSettings{Required: true, Threshold: tier.MinApprovers()},
		Pipeline:    p,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
