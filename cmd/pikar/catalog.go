package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/catalog"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/store"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

var (
	catalogTierFlag    string
	catalogPatternFlag string
	catalogActiveFlag  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the orchestration template catalog",
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the orchestration template catalog (idempotent)",
	RunE:  runCatalogSeed,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orchestration templates",
	RunE:  runCatalogList,
}

func runCatalogSeed(cmd *cobra.Command, args []string) error {
	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	seeder := store.NewSeeder(store.NewTemplateDAO(db), logger)
	result, err := seeder.SeedOrchestrations(cmd.Context())
	if err != nil {
		return err
	}

	if result.AlreadySeeded {
		cmd.Println("Catalog already seeded; nothing to do.")
		return nil
	}
	cmd.Printf("Seeded %d orchestration templates.\n", result.TotalSeeded)
	return nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	filter := store.TemplateFilter{ActiveOnly: catalogActiveFlag}

	if catalogTierFlag != "" {
		tier := types.Tier(strings.ToLower(catalogTierFlag))
		if !tier.IsValid() {
			return fmt.Errorf("invalid --tier %q", catalogTierFlag)
		}
		filter.Tier = tier
	}
	if catalogPatternFlag != "" {
		pattern := catalog.Pattern(strings.ToLower(catalogPatternFlag))
		if !pattern.IsValid() {
			return fmt.Errorf("invalid --pattern %q (want parallel|chain|consensus)", catalogPatternFlag)
		}
		filter.Pattern = pattern
	}

	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	templates, err := store.NewTemplateDAO(db).List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if len(templates) == 0 {
		cmd.Println("No templates found. Run 'pikar catalog seed' first.")
		return nil
	}

	for _, tpl := range templates {
		extra := ""
		if tpl.Pattern == catalog.PatternConsensus {
			extra = fmt.Sprintf("  threshold=%.2f", tpl.ConsensusThreshold)
		}
		cmd.Printf("%-11s  %-9s  %s%s\n", tpl.Tier, tpl.Pattern, tpl.Name, extra)
	}
	cmd.Printf("\n%d templates\n", len(templates))
	return nil
}

func init() {
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogListCmd)

	catalogListCmd.Flags().StringVar(&catalogTierFlag, "tier", "", "Filter by tier")
	catalogListCmd.Flags().StringVar(&catalogPatternFlag, "pattern", "", "Filter by pattern")
	catalogListCmd.Flags().BoolVar(&catalogActiveFlag, "active", false, "Only active templates")
}
