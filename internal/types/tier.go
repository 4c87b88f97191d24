package types

import (
	"encoding/json"
	"fmt"
)

// Tier represents a business subscription tier. Tiers are totally ordered by
// governance strictness: solopreneur < startup < sme < enterprise.
type Tier string

const (
	TierSolopreneur Tier = "solopreneur"
	TierStartup     Tier = "startup"
	TierSME         Tier = "sme"
	TierEnterprise  Tier = "enterprise"
)

// AllTiers lists every tier in ascending governance strictness.
var AllTiers = []Tier{TierSolopreneur, TierStartup, TierSME, TierEnterprise}

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierSolopreneur, TierStartup, TierSME, TierEnterprise:
		return true
	default:
		return false
	}
}

// rank maps tiers onto their strictness ordering. Unknown tiers rank below
// solopreneur so comparisons against them are always "less strict".
func (t Tier) rank() int {
	switch t {
	case TierSolopreneur:
		return 1
	case TierStartup:
		return 2
	case TierSME:
		return 3
	case TierEnterprise:
		return 4
	default:
		return 0
	}
}

// StricterThan reports whether t carries stricter governance than other.
func (t Tier) StricterThan(other Tier) bool {
	return t.rank() > other.rank()
}

// Governed reports whether the tier is subject to the strict governance rule
// set (numeric SLA floor, enterprise multi-approver). The lower tiers use the
// looser handoff-health checks instead.
func (t Tier) Governed() bool {
	return t == TierSME || t == TierEnterprise
}

// MinDelayMinutes returns the minimum SLA delay floor in minutes for governed
// tiers. Ungoverned tiers return 0; their handoff check only requires any
// positive delay.
func (t Tier) MinDelayMinutes() int {
	switch t {
	case TierEnterprise:
		return 60
	case TierSME:
		return 30
	default:
		return 0
	}
}

// DefaultApproverRole returns the default approver role label assigned to
// newly created approval steps for this tier. Unknown tiers fall back to
// "Manager".
func (t Tier) DefaultApproverRole() string {
	switch t {
	case TierSolopreneur:
		return "Owner"
	case TierStartup:
		return "Manager"
	case TierSME:
		return "Team Lead"
	case TierEnterprise:
		return "Compliance Lead"
	default:
		return "Manager"
	}
}

// MinApprovers returns the minimum number of distinct approvals (via steps or
// threshold) the tier requires.
func (t Tier) MinApprovers() int {
	if t == TierEnterprise {
		return 2
	}
	return 1
}

// MarshalJSON implements json.Marshaler.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	tier := Tier(str)
	if !tier.IsValid() {
		return fmt.Errorf("invalid tier: %s", str)
	}

	*t = tier
	return nil
}
