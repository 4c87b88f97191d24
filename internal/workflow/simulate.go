package workflow

import (
	"context"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// SimulatedStep describes one pipeline step in a simulation result.
type SimulatedStep struct {
	Index      int           `json:"index"`
	Kind       pipeline.Kind `json:"kind"`
	Label      string        `json:"label"`
	DurationMs int64         `json:"duration_ms"`
}

// SimulationResult is the shape returned by workflow simulation: the step
// breakdown and the total estimated duration.
type SimulationResult struct {
	Steps               []SimulatedStep `json:"steps"`
	EstimatedDurationMs int64           `json:"estimated_duration_ms"`
}

// Simulator estimates a workflow's execution shape without running it.
// Production deployments back this with the remote execution engine.
type Simulator interface {
	Simulate(ctx context.Context, workflowID types.ID) (*SimulationResult, error)
}

// RoiEstimate is the shape returned by ROI estimation.
type RoiEstimate struct {
	EstimatedRoi float64 `json:"estimated_roi"`
	SuccessRate  float64 `json:"success_rate"`
}

// RoiEstimator estimates workflow return on investment. The estimation model
// is external to this module.
type RoiEstimator interface {
	EstimateRoi(ctx context.Context, workflowID types.ID) (*RoiEstimate, error)
}

// ComplianceFinding is one finding from a marketing compliance scan.
type ComplianceFinding struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ComplianceChecker scans content for marketing compliance problems. The
// scan itself runs externally; this module only consumes findings.
type ComplianceChecker interface {
	CheckMarketingCompliance(ctx context.Context, businessID types.ID, subjectType, subjectID, content string) ([]ComplianceFinding, error)
}

// Per-step duration estimates in milliseconds for the local simulator.
// Delay steps contribute their configured wall-clock delay.
const (
	agentStepMs    = 1500
	approvalStepMs = 500
	branchStepMs   = 50
	notifyStepMs   = 200
	collectStepMs  = 800
)

// EstimatePipeline walks the pipeline linearly and sums per-step duration
// estimates. It models shape only: branches are costed as a single step, not
// resolved, and agent estimates are flat. Use a remote Simulator for real
// engine timings.
func EstimatePipeline(p pipeline.Pipeline) *SimulationResult {
	result := &SimulationResult{Steps: make([]SimulatedStep, 0, len(p))}
	for i, s := range p {
		var ms int64
		var label string
		switch s.Kind {
		case pipeline.KindAgent:
			ms, label = agentStepMs, s.Title
		case pipeline.KindApproval:
			ms, label = approvalStepMs, s.ApproverRole
		case pipeline.KindDelay:
			ms = int64(s.DelayMinutes) * 60_000
			label = "delay"
		case pipeline.KindBranch:
			ms, label = branchStepMs, "branch"
		case pipeline.KindNotify:
			ms, label = notifyStepMs, s.Channel
		case pipeline.KindCollect:
			ms, label = collectStepMs, s.Source
		}

		result.Steps = append(result.Steps, SimulatedStep{
			Index:      i,
			Kind:       s.Kind,
			Label:      label,
			DurationMs: ms,
		})
		result.EstimatedDurationMs += ms
	}
	return result
}

// WorkflowSource resolves a workflow by ID, typically backed by the store.
type WorkflowSource interface {
	GetByID(ctx context.Context, id types.ID) (*Workflow, error)
}

// LocalSimulator implements Simulator with the in-process pipeline walk.
type LocalSimulator struct {
	source WorkflowSource
}

// NewLocalSimulator creates a LocalSimulator reading workflows from source.
func NewLocalSimulator(source WorkflowSource) *LocalSimulator {
	return &LocalSimulator{source: source}
}

// Simulate loads the workflow and estimates its pipeline.
func (s *LocalSimulator) Simulate(ctx context.Context, workflowID types.ID) (*SimulationResult, error) {
	w, err := s.source.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	return EstimatePipeline(w.Pipeline), nil
}
