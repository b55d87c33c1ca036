package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"launchquote/internal/app"
	"launchquote/internal/config"
	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
)

type demoLead struct {
	name, email, phone string
	input              pricing.Input
	source             lead.Source
	consultIn          time.Duration
}

var demoLeads = []demoLead{
	{
		name:   "Juan Dela Cruz",
		email:  "juan@example.com",
		phone:  "09171234567",
		input:  pricing.Input{TierID: "pro", AddOnIDs: []string{"logo", "gallery"}, BillingCycle: pricing.BillingAnnual, IsRush: true},
		source: lead.SourceAvailNow,
	},
	{
		name:   "Maria Santos",
		email:  "maria@example.com",
		phone:  "09281234567",
		input:  pricing.Input{TierID: "standard", AddOnIDs: []string{"bookingCalendar"}},
		source: lead.SourceAPI,
	},
	{
		name:      "Ana Reyes",
		email:     "ana@example.com",
		phone:     "09391234567",
		input:     pricing.Input{TierID: "enterprise"},
		source:    lead.SourceConsultation,
		consultIn: 72 * time.Hour,
	},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the leads schema",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lggr, err := logger.New(cfg.LogLevel, cfg.AppEnv)
			if err != nil {
				return err
			}
			defer func() { _ = lggr.Sync() }()

			a, err := app.New(cfg, lggr)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			lggr.Infow("Running AutoMigrate")
			if err := a.Migrate(); err != nil {
				return err
			}
			if !seed {
				return nil
			}
			if cfg.IsProd() {
				return fmt.Errorf("refusing to seed demo leads in %s", cfg.AppEnv)
			}
			return seedDemoLeads(cmd.Context(), a, lggr)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Insert demo leads after migrating")
	return cmd
}

func seedDemoLeads(ctx context.Context, a *app.App, lggr logger.Logger) error {
	for _, d := range demoLeads {
		in := d.input
		in.FullName = d.name
		pkg, err := a.Calculator.Calculate(in)
		if err != nil {
			return fmt.Errorf("price %s: %w", d.name, err)
		}

		var consult *time.Time
		if d.consultIn > 0 {
			t := time.Now().Add(d.consultIn).Truncate(time.Hour).UTC()
			consult = &t
		}

		saved, err := a.Leads.Record(ctx, lead.RecordInput{
			FullName:              d.name,
			Email:                 d.email,
			ContactNumber:         d.phone,
			Package:               pkg,
			ConsultationTimestamp: consult,
			Source:                d.source,
		})
		if err != nil {
			return err
		}
		lggr.Infow("Demo lead created", "public_id", saved.PublicID, "tier", saved.Tier, "total", saved.TotalCost)
	}
	return nil
}
