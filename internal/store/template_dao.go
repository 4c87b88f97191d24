package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/catalog"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// templatePayload is the JSON column holding the pattern-specific fields of
// a template.
type templatePayload struct {
	Agents             []catalog.AgentRef  `json:"agents,omitempty"`
	Chain              []catalog.ChainStep `json:"chain,omitempty"`
	InitialInput       string              `json:"initial_input,omitempty"`
	ConsensusAgents    []string            `json:"consensus_agents,omitempty"`
	Question           string              `json:"question,omitempty"`
	ConsensusThreshold float64             `json:"consensus_threshold,omitempty"`
}

// TemplateFilter narrows template listing. Zero values match everything.
type TemplateFilter struct {
	Tier       types.Tier
	Pattern    catalog.Pattern
	ActiveOnly bool
}

// TemplateDAO provides database operations for orchestration templates.
type TemplateDAO interface {
	// InsertBatch inserts templates inside a single transaction.
	InsertBatch(ctx context.Context, templates []catalog.Template) error

	// Count returns the total number of stored templates.
	Count(ctx context.Context) (int, error)

	// List returns templates matching the filter, ordered by tier then name.
	List(ctx context.Context, filter TemplateFilter) ([]catalog.Template, error)
}

// templateDAO implements TemplateDAO.
type templateDAO struct {
	db     *DB
	tracer trace.Tracer
}

// NewTemplateDAO creates a new template DAO.
func NewTemplateDAO(db *DB) TemplateDAO {
	return &templateDAO{
		db:     db,
		tracer: otel.Tracer("pikar.store.template"),
	}
}

// InsertBatch inserts templates inside a single transaction.
func (d *templateDAO) InsertBatch(ctx context.Context, templates []catalog.Template) error {
	ctx, span := d.tracer.Start(ctx, "template.insert_batch")
	defer span.End()
	span.SetAttributes(attribute.Int("template.count", len(templates)))

	return d.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO orchestration_templates
				(id, name, description, tier, pattern, is_active, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, tpl := range templates {
			if err := tpl.Validate(); err != nil {
				return types.WrapError(types.CATALOG_SEED_FAILED, "invalid template", err)
			}

			payload, err := json.Marshal(templatePayload{
				Agents:             tpl.Agents,
				Chain:              tpl.Chain,
				InitialInput:       tpl.InitialInput,
				ConsensusAgents:    tpl.ConsensusAgents,
				Question:           tpl.Question,
				ConsensusThreshold: tpl.ConsensusThreshold,
			})
			if err != nil {
				return err
			}

			_, err = stmt.ExecContext(ctx,
				tpl.ID, tpl.Name, tpl.Description, string(tpl.Tier), string(tpl.Pattern),
				boolToInt(tpl.IsActive), string(payload), tpl.CreatedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the total number of stored templates.
func (d *templateDAO) Count(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orchestration_templates").Scan(&count)
	if err != nil {
		return 0, types.WrapError(types.STORE_QUERY_FAILED, "failed to count templates", err)
	}
	return count, nil
}

// List returns templates matching the filter, ordered by tier then name.
func (d *templateDAO) List(ctx context.Context, filter TemplateFilter) ([]catalog.Template, error) {
	ctx, span := d.tracer.Start(ctx, "template.list")
	defer span.End()

	query := `
		SELECT id, name, description, tier, pattern, is_active, payload, created_at
		FROM orchestration_templates WHERE 1=1
	`
	var args []any
	if filter.Tier != "" {
		query += " AND tier = ?"
		args = append(args, string(filter.Tier))
	}
	if filter.Pattern != "" {
		query += " AND pattern = ?"
		args = append(args, string(filter.Pattern))
	}
	if filter.ActiveOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY tier, name"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, types.WrapError(types.CATALOG_LIST_FAILED, "failed to list templates", err)
	}
	defer rows.Close()

	var out []catalog.Template
	for rows.Next() {
		var tpl catalog.Template
		var tier, pattern, payloadJSON string
		var isActive int

		err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tier, &pattern,
			&isActive, &payloadJSON, &tpl.CreatedAt)
		if err != nil {
			return nil, types.WrapError(types.CATALOG_LIST_FAILED, "failed to scan template", err)
		}

		tpl.Tier = types.Tier(tier)
		tpl.Pattern = catalog.Pattern(pattern)
		tpl.IsActive = isActive != 0

		var payload templatePayload
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			return nil, types.WrapError(types.CATALOG_LIST_FAILED, "failed to decode template payload", err)
		}
		tpl.Agents = payload.Agents
		tpl.Chain = payload.Chain
		tpl.InitialInput = payload.InitialInput
		tpl.ConsensusAgents = payload.ConsensusAgents
		tpl.Question = payload.Question
		tpl.ConsensusThreshold = payload.ConsensusThreshold

		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.CATALOG_LIST_FAILED, "failed to iterate templates", err)
	}
	return out, nil
}
