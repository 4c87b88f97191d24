package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/governance"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/store"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/workflow"
)

var (
	businessFlag string
	tierFlag     string
	searchFlag   string
	offsetFlag   int
	limitFlag    int
	outputFlag   string
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage business workflows",
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows for a business",
	RunE:  runWorkflowList,
}

var workflowValidateCmd = &cobra.Command{
	Use:   "validate <definition.yaml>",
	Short: "Check a workflow definition against a tier's governance policy",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowValidate,
}

var workflowImportCmd = &cobra.Command{
	Use:   "import <definition.yaml>",
	Short: "Import a workflow definition for a business",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowImport,
}

var workflowExportCmd = &cobra.Command{
	Use:   "export <workflow-id>",
	Short: "Export a workflow as a YAML definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowExport,
}

var workflowSimulateCmd = &cobra.Command{
	Use:   "simulate <workflow-id>",
	Short: "Estimate a workflow's execution shape without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowSimulate,
}

func parseBusinessFlag() (types.ID, error) {
	if businessFlag == "" {
		return "", fmt.Errorf("--business is required")
	}
	id, err := types.ParseID(businessFlag)
	if err != nil {
		return "", fmt.Errorf("invalid --business: %w", err)
	}
	return id, nil
}

func parseTierFlag() (types.Tier, error) {
	tier := types.Tier(strings.ToLower(tierFlag))
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid --tier %q (want solopreneur|startup|sme|enterprise)", tierFlag)
	}
	return tier, nil
}

func runWorkflowList(cmd *cobra.Command, args []string) error {
	businessID, err := parseBusinessFlag()
	if err != nil {
		return err
	}

	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	dao := store.NewWorkflowDAO(db)
	page, err := dao.List(cmd.Context(), businessID, store.Page{Offset: offsetFlag, Limit: limitFlag}, searchFlag)
	if err != nil {
		return err
	}

	if len(page.Items) == 0 {
		cmd.Println("No workflows found.")
		return nil
	}

	for _, w := range page.Items {
		cmd.Printf("%s  %-30s  steps=%d  trigger=%s\n",
			w.ID, w.Name, len(w.Pipeline), w.Trigger.Type)
	}
	cmd.Printf("\n%d of %d workflows", len(page.Items), page.Total)
	if page.HasMore {
		cmd.Printf(" (more available, use --offset %d)", offsetFlag+len(page.Items))
	}
	cmd.Println()
	return nil
}

func runWorkflowValidate(cmd *cobra.Command, args []string) error {
	tier, err := parseTierFlag()
	if err != nil {
		return err
	}

	def, err := workflow.LoadDefinition(args[0])
	if err != nil {
		return err
	}

	snap := governance.Snapshot{
		Description: def.Description,
		Threshold:   def.Approval.Threshold,
		Pipeline:    def.Pipeline,
	}
	issues := governance.Validate(snap, tier)
	if len(issues) == 0 {
		cmd.Printf("%s is compliant for tier %s\n", def.Name, tier)
		return nil
	}

	cmd.Printf("%s has %d governance issue(s) for tier %s:\n", def.Name, len(issues), tier)
	for _, issue := range issues {
		cmd.Printf("  - %s", issue)
		if fix, ok := governance.SuggestFix(issue, tier); ok {
			cmd.Printf("  (quick fix: %s)", fix)
		}
		cmd.Println()
	}
	if governance.SaveBlocked(tier, issues) {
		return fmt.Errorf("saving is blocked for tier %s until issues are resolved", tier)
	}
	cmd.Println("Issues are advisory for this tier; saving is not blocked.")
	return nil
}

func runWorkflowImport(cmd *cobra.Command, args []string) error {
	businessID, err := parseBusinessFlag()
	if err != nil {
		return err
	}
	tier, err := parseTierFlag()
	if err != nil {
		return err
	}

	def, err := workflow.LoadDefinition(args[0])
	if err != nil {
		return err
	}
	w := def.ToWorkflow(businessID)

	issues := w.Issues(tier)
	if governance.SaveBlocked(tier, issues) {
		cmd.Printf("%d governance issue(s) block this import for tier %s:\n", len(issues), tier)
		for _, issue := range issues {
			cmd.Printf("  - %s\n", issue)
		}
		return fmt.Errorf("workflow not imported")
	}

	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := store.NewWorkflowDAO(db).Upsert(cmd.Context(), w)
	if err != nil {
		return err
	}

	logger.Info("workflow imported", "workflow_id", id, "business_id", businessID)
	cmd.Printf("Imported %s as %s\n", w.Name, id)
	if len(issues) > 0 {
		cmd.Printf("Note: %d advisory issue(s) remain.\n", len(issues))
	}
	return nil
}

func runWorkflowExport(cmd *cobra.Command, args []string) error {
	id, err := types.ParseID(args[0])
	if err != nil {
		return fmt.Errorf("invalid workflow id: %w", err)
	}

	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := store.NewWorkflowDAO(db).GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFlag != "" {
		f, err := os.Create(outputFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return workflow.ExportDefinition(w, out)
}

func runWorkflowSimulate(cmd *cobra.Command, args []string) error {
	id, err := types.ParseID(args[0])
	if err != nil {
		return fmt.Errorf("invalid workflow id: %w", err)
	}

	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	sim := workflow.NewLocalSimulator(store.NewWorkflowDAO(db))
	result, err := sim.Simulate(cmd.Context(), id)
	if err != nil {
		return err
	}

	for _, step := range result.Steps {
		cmd.Printf("%2d  %-9s  %-24s  %dms\n", step.Index, step.Kind, step.Label, step.DurationMs)
	}
	cmd.Printf("\nEstimated duration: %dms\n", result.EstimatedDurationMs)
	return nil
}

func init() {
	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowValidateCmd)
	workflowCmd.AddCommand(workflowImportCmd)
	workflowCmd.AddCommand(workflowExportCmd)
	workflowCmd.AddCommand(workflowSimulateCmd)

	workflowListCmd.Flags().StringVar(&businessFlag, "business", "", "Business ID (required)")
	workflowListCmd.Flags().StringVar(&searchFlag, "search", "", "Filter by name or description")
	workflowListCmd.Flags().IntVar(&offsetFlag, "offset", 0, "Pagination offset")
	workflowListCmd.Flags().IntVar(&limitFlag, "limit", 0, "Page size (default 50)")

	workflowValidateCmd.Flags().StringVar(&tierFlag, "tier", "sme", "Business tier")

	workflowImportCmd.Flags().StringVar(&businessFlag, "business", "", "Business ID (required)")
	workflowImportCmd.Flags().StringVar(&tierFlag, "tier", "sme", "Business tier")

	workflowExportCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to file instead of stdout")
}
