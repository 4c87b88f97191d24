package governance

import (
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// SaveBlocked reports whether outstanding issues block persisting the
// workflow for the given tier. Governed tiers (sme, enterprise) are blocked
// by governance issues, startup by handoff issues, and solopreneur is never
// blocked: its issues are advisory only.
func SaveBlocked(tier types.Tier, issues []string) bool {
	if len(issues) == 0 {
		return false
	}
	return tier != types.TierSolopreneur
}

// QuickFix identifies the editing operation that clears a single issue.
// Callers map these onto pipeline edit primitives.
type QuickFix string

const (
	QuickFixAddApproval       QuickFix = "add_approval"
	QuickFixFillApproverRole  QuickFix = "fill_approver_role"
	QuickFixAddDelay          QuickFix = "add_delay"
	QuickFixFillDescription   QuickFix = "fill_description"
	QuickFixAddSecondApproval QuickFix = "add_second_approval"
)

// SuggestFix maps an issue string to its quick-fix action. The second return
// is false for issues with no structural fix.
func SuggestFix(issue string, tier types.Tier) (QuickFix, bool) {
	switch issue {
	case IssueMissingApproval:
		return QuickFixAddApproval, true
	case IssueApproverRoleMissing:
		return QuickFixFillApproverRole, true
	case IssueMissingHandoffDelay, IssueMissingSLADelay(tier.MinDelayMinutes()):
		return QuickFixAddDelay, true
	case IssueDescriptionMissing:
		return QuickFixFillDescription, true
	case IssueEnterpriseApprovals:
		return QuickFixAddSecondApproval, true
	default:
		return "", false
	}
}
