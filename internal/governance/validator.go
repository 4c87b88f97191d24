// Package governance implements the tier governance validator: pure
// functions that inspect a workflow snapshot against its tier's policy and
// return the list of violations. An empty list means the workflow is
// compliant. Validation never fails with an error; absent or malformed
// fields count as violations, not faults.
package governance

import (
	"fmt"
	"strings"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Issue strings surfaced to callers for display and save gating.
const (
	IssueMissingApproval     = "Missing approval step"
	IssueApproverRoleMissing = "Approver role missing"
	IssueDescriptionMissing  = "Description missing"
	IssueEnterpriseApprovals = "Approval threshold < 2 or fewer than 2 approvals"

	// IssueMissingHandoffDelay is the handoff-health variant of the SLA rule
	// for solopreneur/startup: any positive delay satisfies it.
	IssueMissingHandoffDelay = "Missing SLA delay"
)

// IssueMissingSLADelay formats the SLA floor violation for governed tiers.
func IssueMissingSLADelay(minutes int) string {
	return fmt.Sprintf("Missing SLA delay (≥ %dm)", minutes)
}

// Snapshot is the workflow view the validator inspects. Tier and business
// context are always explicit arguments; the validator reads no ambient
// state.
type Snapshot struct {
	Description string
	// Threshold is the workflow's approval threshold setting.
	Threshold int
	Pipeline  pipeline.Pipeline
}

// Validate returns the ordered list of governance issues for the snapshot
// under the given tier. Governed tiers (sme, enterprise) apply the numeric
// SLA floor and, for enterprise, the multi-approver rule. Solopreneur and
// startup apply the looser handoff-health checks: same approval, role, and
// description rules, but any positive delay satisfies the SLA rule.
//
// A nil pipeline is treated as empty and fails the approval-presence rule.
func Validate(snap Snapshot, tier types.Tier) []string {
	issues := []string{}
	p := snap.Pipeline

	// Rule 1: at least one approval step.
	if !p.HasApproval() {
		issues = append(issues, IssueMissingApproval)
	}

	// Rule 2: every approval step carries a non-blank approver role.
	for _, s := range p {
		if s.Kind == pipeline.KindApproval && strings.TrimSpace(s.ApproverRole) == "" {
			issues = append(issues, IssueApproverRoleMissing)
			break
		}
	}

	// Rule 3: SLA delay. Governed tiers require the tier floor; the rest
	// require any positive delay.
	if tier.Governed() {
		minDelay := tier.MinDelayMinutes()
		if !p.HasDelayAtLeast(minDelay) {
			issues = append(issues, IssueMissingSLADelay(minDelay))
		}
	} else if !p.HasPositiveDelay() {
		issues = append(issues, IssueMissingHandoffDelay)
	}

	// Rule 4: non-blank description.
	if strings.TrimSpace(snap.Description) == "" {
		issues = append(issues, IssueDescriptionMissing)
	}

	// Rule 5: enterprise multi-approver. Satisfied by either a threshold of
	// two or two approval steps.
	if tier == types.TierEnterprise {
		if snap.Threshold < 2 && p.ApprovalCount() < 2 {
			issues = append(issues, IssueEnterpriseApprovals)
		}
	}

	return issues
}

// Compliant reports whether the snapshot passes every applicable rule for
// the tier.
func Compliant(snap Snapshot, tier types.Tier) bool {
	return len(Validate(snap, tier)) == 0
}
