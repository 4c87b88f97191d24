package workflow

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Definition is the YAML authoring format for workflows. It mirrors the
// Workflow model minus server-assigned fields (IDs, timestamps), so
// definitions can be checked into version control and imported per business.
type Definition struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Trigger     Trigger           `yaml:"trigger"`
	Approval    ApprovalSettings  `yaml:"approval,omitempty"`
	Pipeline    pipeline.Pipeline `yaml:"pipeline"`
	Template    bool              `yaml:"template,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
}

// ParseDefinition decodes a workflow definition from YAML.
func ParseDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse workflow definition: %w", err)
	}

	if def.Name == "" {
		return nil, fmt.Errorf("workflow definition requires a name")
	}
	if len(def.Pipeline) == 0 {
		return nil, fmt.Errorf("workflow definition requires at least one pipeline step")
	}
	for i, s := range def.Pipeline {
		if !s.Kind.IsValid() {
			return nil, fmt.Errorf("pipeline step %d has unknown kind %q", i, s.Kind)
		}
	}
	if def.Trigger.Type == "" {
		def.Trigger.Type = TriggerManual
	}
	if !def.Trigger.Type.IsValid() {
		return nil, fmt.Errorf("unknown trigger type %q", def.Trigger.Type)
	}

	return &def, nil
}

// LoadDefinition reads and parses a workflow definition file.
func LoadDefinition(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workflow definition: %w", err)
	}
	defer f.Close()
	return ParseDefinition(f)
}

// ToWorkflow materializes the definition into a workflow owned by the
// business, assigning a fresh ID and timestamps.
func (d *Definition) ToWorkflow(businessID types.ID) *Workflow {
	now := time.Now()
	return &Workflow{
		ID:          types.NewID(),
		BusinessID:  businessID,
		Name:        d.Name,
		Description: d.Description,
		Trigger:     d.Trigger,
		Approval:    d.Approval,
		Pipeline:    d.Pipeline.Clone(),
		Template:    d.Template,
		Tags:        append([]string(nil), d.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExportDefinition writes the workflow as a YAML definition, dropping
// server-assigned fields.
func ExportDefinition(w *Workflow, out io.Writer) error {
	def := Definition{
		Name:        w.Name,
		Description: w.Description,
		Trigger:     w.Trigger,
		Approval:    w.Approval,
		Pipeline:    w.Pipeline,
		Template:    w.Template,
		Tags:        w.Tags,
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("failed to encode workflow definition: %w", err)
	}
	return enc.Close()
}
