package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Legacy pipeline payloads (exported from the previous web client) are
// loosely shaped: steps may carry "type" instead of "kind", camelCase field
// names, and approval settings nested under a "config" object. NormalizeJSON
// maps those shapes onto the canonical Step union at the system boundary.
// Canonically-shaped input passes through unchanged.

// NormalizeJSON decodes a JSON array of step objects, accepting both the
// canonical shape and legacy aliases, and returns a normalized pipeline.
// A nil or empty payload yields an empty pipeline, not an error.
func NormalizeJSON(data []byte) (Pipeline, error) {
	if len(data) == 0 {
		return Pipeline{}, nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline payload: %w", err)
	}

	out := make(Pipeline, 0, len(raw))
	for i, obj := range raw {
		step, err := normalizeStep(obj)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		out = append(out, step)
	}
	return out, nil
}

func normalizeStep(obj map[string]any) (Step, error) {
	kind := stringField(obj, "kind")
	if kind == "" {
		kind = stringField(obj, "type")
	}
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.IsValid() {
		return Step{}, fmt.Errorf("unknown step kind %q", kind)
	}

	// Legacy payloads nest per-step settings under "config".
	config, _ := obj["config"].(map[string]any)

	step := Step{Kind: k}
	switch k {
	case KindAgent:
		step.Title = firstString(obj, config, "title")
		step.AgentPrompt = firstString(obj, config, "agent_prompt", "agentPrompt")
		step.MMRRequired = firstBool(obj, config, "mmr_required", "mmrRequired")
	case KindApproval:
		step.ApproverRole = firstString(obj, config, "approver_role", "approverRole")
		step.AutoInserted = firstBool(obj, config, "auto_inserted", "autoInserted")
	case KindDelay:
		step.DelayMinutes = firstInt(obj, config, "delay_minutes", "delayMinutes")
	case KindBranch:
		step.OnTrueNext = firstInt(obj, config, "on_true_next", "onTrueNext")
		step.OnFalseNext = firstInt(obj, config, "on_false_next", "onFalseNext")
		if cond := mapField(obj, config, "condition"); cond != nil {
			step.Condition = &BranchCondition{
				Metric: stringField(cond, "metric"),
				Op:     stringField(cond, "op"),
			}
			if v, ok := numberField(cond, "value"); ok {
				step.Condition.Value = v
			}
		}
	case KindNotify:
		step.Channel = firstString(obj, config, "channel")
	case KindCollect:
		step.Source = firstString(obj, config, "source")
	}
	return step, nil
}

// ValidateBranchTargets returns a warning for every branch step whose
// OnTrueNext/OnFalseNext positions fall outside the pipeline. Branch targets
// are raw positions and are not renumbered by edits, so stale targets are a
// data-quality warning, not a governance issue.
func ValidateBranchTargets(p Pipeline) []string {
	var warnings []string
	for i, s := range p {
		if s.Kind != KindBranch {
			continue
		}
		if s.OnTrueNext < 0 || s.OnTrueNext >= len(p) {
			warnings = append(warnings, fmt.Sprintf("branch step %d: on_true_next %d out of range", i, s.OnTrueNext))
		}
		if s.OnFalseNext < 0 || s.OnFalseNext >= len(p) {
			warnings = append(warnings, fmt.Sprintf("branch step %d: on_false_next %d out of range", i, s.OnFalseNext))
		}
	}
	return warnings
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func mapField(obj, config map[string]any, key string) map[string]any {
	if obj != nil {
		if v, ok := obj[key].(map[string]any); ok {
			return v
		}
	}
	if config != nil {
		if v, ok := config[key].(map[string]any); ok {
			return v
		}
	}
	return nil
}

func numberField(obj map[string]any, key string) (float64, bool) {
	if obj == nil {
		return 0, false
	}
	switch v := obj[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// firstString returns the first non-empty string among the given keys,
// checking the step object before its legacy config block.
func firstString(obj, config map[string]any, keys ...string) string {
	for _, source := range []map[string]any{obj, config} {
		for _, key := range keys {
			if v := stringField(source, key); v != "" {
				return v
			}
		}
	}
	return ""
}

func firstBool(obj, config map[string]any, keys ...string) bool {
	for _, source := range []map[string]any{obj, config} {
		if source == nil {
			continue
		}
		for _, key := range keys {
			if v, ok := source[key].(bool); ok {
				return v
			}
		}
	}
	return false
}

func firstInt(obj, config map[string]any, keys ...string) int {
	for _, source := range []map[string]any{obj, config} {
		for _, key := range keys {
			if v, ok := numberField(source, key); ok {
				return int(v)
			}
		}
	}
	return 0
}
