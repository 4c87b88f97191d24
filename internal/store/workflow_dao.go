package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/workflow"
)

// Page describes offset pagination for list operations.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPageLimit caps list results when the caller passes no limit.
const DefaultPageLimit = 50

// WorkflowPage is one page of workflow list results.
type WorkflowPage struct {
	Items   []*workflow.Workflow `json:"items"`
	Total   int                  `json:"total"`
	HasMore bool                 `json:"has_more"`
}

// WorkflowDAO provides database operations for workflows.
type WorkflowDAO interface {
	// Upsert creates or fully replaces a workflow, including its entire
	// pipeline. There is no partial-step persistence.
	Upsert(ctx context.Context, w *workflow.Workflow) (types.ID, error)

	// GetByID retrieves a workflow by ID.
	GetByID(ctx context.Context, id types.ID) (*workflow.Workflow, error)

	// List returns workflows owned by the business, newest first, optionally
	// filtered by a search term over name and description.
	List(ctx context.Context, businessID types.ID, page Page, search string) (*WorkflowPage, error)

	// Delete deletes a workflow.
	Delete(ctx context.Context, id types.ID) error
}

// workflowDAO implements WorkflowDAO.
type workflowDAO struct {
	db     *DB
	tracer trace.Tracer
}

// NewWorkflowDAO creates a new workflow DAO.
func NewWorkflowDAO(db *DB) WorkflowDAO {
	return &workflowDAO{
		db:     db,
		tracer: otel.Tracer("pikar.store.workflow"),
	}
}

// Upsert creates or fully replaces a workflow.
func (d *workflowDAO) Upsert(ctx context.Context, w *workflow.Workflow) (types.ID, error) {
	ctx, span := d.tracer.Start(ctx, "workflow.upsert")
	defer span.End()

	if err := w.Validate(); err != nil {
		return "", types.WrapError(types.WORKFLOW_INVALID, "workflow rejected", err)
	}
	if w.ID.IsZero() {
		w.ID = types.NewID()
	}
	span.SetAttributes(
		attribute.String("workflow.id", w.ID.String()),
		attribute.String("business.id", w.BusinessID.String()),
		attribute.Int("pipeline.steps", len(w.Pipeline)),
	)

	pipelineJSON, err := json.Marshal(w.Pipeline)
	if err != nil {
		return "", types.WrapError(types.WORKFLOW_UPSERT_FAILED, "failed to marshal pipeline", err)
	}
	tagsJSON, err := json.Marshal(w.Tags)
	if err != nil {
		return "", types.WrapError(types.WORKFLOW_UPSERT_FAILED, "failed to marshal tags", err)
	}
	if w.Tags == nil {
		tagsJSON = []byte("[]")
	}

	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	query := `
		INSERT INTO workflows (
			id, business_id, name, description,
			trigger_type, trigger_cron, trigger_event_key,
			approval_required, approval_threshold,
			pipeline, is_template, tags, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			business_id = excluded.business_id,
			name = excluded.name,
			description = excluded.description,
			trigger_type = excluded.trigger_type,
			trigger_cron = excluded.trigger_cron,
			trigger_event_key = excluded.trigger_event_key,
			approval_required = excluded.approval_required,
			approval_threshold = excluded.approval_threshold,
			pipeline = excluded.pipeline,
			is_template = excluded.is_template,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`

	_, err = d.db.ExecContext(ctx, query,
		w.ID, w.BusinessID, w.Name, w.Description,
		string(w.Trigger.Type), w.Trigger.Cron, w.Trigger.EventKey,
		boolToInt(w.Approval.Required), w.Approval.Threshold,
		string(pipelineJSON), boolToInt(w.Template), string(tagsJSON),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return "", types.WrapError(types.WORKFLOW_UPSERT_FAILED, "failed to upsert workflow", err)
	}
	return w.ID, nil
}

// GetByID retrieves a workflow by ID.
func (d *workflowDAO) GetByID(ctx context.Context, id types.ID) (*workflow.Workflow, error) {
	ctx, span := d.tracer.Start(ctx, "workflow.get")
	defer span.End()
	span.SetAttributes(attribute.String("workflow.id", id.String()))

	query := `
		SELECT id, business_id, name, description,
			trigger_type, trigger_cron, trigger_event_key,
			approval_required, approval_threshold,
			pipeline, is_template, tags, created_at, updated_at
		FROM workflows WHERE id = ?
	`

	w, err := scanWorkflow(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewError(types.WORKFLOW_NOT_FOUND, fmt.Sprintf("workflow %s not found", id))
	}
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to load workflow", err)
	}
	return w, nil
}

// List returns workflows owned by the business, newest first.
func (d *workflowDAO) List(ctx context.Context, businessID types.ID, page Page, search string) (*WorkflowPage, error) {
	ctx, span := d.tracer.Start(ctx, "workflow.list")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID.String()))

	if page.Limit <= 0 {
		page.Limit = DefaultPageLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	where := "WHERE business_id = ?"
	args := []any{businessID}
	if search != "" {
		where += " AND (name LIKE ? OR description LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM workflows " + where
	if err := d.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to count workflows", err)
	}

	query := `
		SELECT id, business_id, name, description,
			trigger_type, trigger_cron, trigger_event_key,
			approval_required, approval_threshold,
			pipeline, is_template, tags, created_at, updated_at
		FROM workflows ` + where + `
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?
	`
	rows, err := d.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to list workflows", err)
	}
	defer rows.Close()

	result := &WorkflowPage{Total: total}
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan workflow", err)
		}
		result.Items = append(result.Items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to iterate workflows", err)
	}

	result.HasMore = page.Offset+len(result.Items) < total
	return result, nil
}

// Delete deletes a workflow.
func (d *workflowDAO) Delete(ctx context.Context, id types.ID) error {
	ctx, span := d.tracer.Start(ctx, "workflow.delete")
	defer span.End()

	res, err := d.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = ?", id)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to delete workflow", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to check delete result", err)
	}
	if affected == 0 {
		return types.NewError(types.WORKFLOW_NOT_FOUND, fmt.Sprintf("workflow %s not found", id))
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(s scanner) (*workflow.Workflow, error) {
	var w workflow.Workflow
	var triggerType, pipelineJSON, tagsJSON string
	var approvalRequired, isTemplate int

	err := s.Scan(
		&w.ID, &w.BusinessID, &w.Name, &w.Description,
		&triggerType, &w.Trigger.Cron, &w.Trigger.EventKey,
		&approvalRequired, &w.Approval.Threshold,
		&pipelineJSON, &isTemplate, &tagsJSON, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Trigger.Type = workflow.TriggerType(triggerType)
	w.Approval.Required = approvalRequired != 0
	w.Template = isTemplate != 0

	// Persisted pipelines can predate the canonical step shape; normalize at
	// the read boundary.
	p, err := pipeline.NormalizeJSON([]byte(pipelineJSON))
	if err != nil {
		return nil, types.WrapError(types.WORKFLOW_DECODE_FAILED, "failed to decode pipeline", err)
	}
	w.Pipeline = p

	if err := json.Unmarshal([]byte(tagsJSON), &w.Tags); err != nil {
		return nil, types.WrapError(types.WORKFLOW_DECODE_FAILED, "failed to decode tags", err)
	}
	return &w, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
