// Package main provides a one-shot slip generator for the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/jackpot-builder/internal/cache"
	"github.com/yourusername/jackpot-builder/internal/datasource"
	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/models"
	"github.com/yourusername/jackpot-builder/internal/repository"
	"github.com/yourusername/jackpot-builder/internal/service"
)

var (
	week      int
	strategy  string
	riskLevel int
	wildcards bool
	csvPath   string
	seed      int64
	verbose   bool
)

func init() {
	rootCmd.Flags().IntVarP(&week, "week", "w", 0, "ISO week to build the slate for (default: current week)")
	rootCmd.Flags().StringVarP(&strategy, "strategy", "s", "balanced", "Prediction strategy: balanced, conservative or aggressive")
	rootCmd.Flags().IntVarP(&riskLevel, "risk", "r", 5, "Risk level 1-10")
	rootCmd.Flags().BoolVar(&wildcards, "wildcards", true, "Allow wildcard re-rolls")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Write the slip to this CSV file")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log generation details")
}

var rootCmd = &cobra.Command{
	Use:   "slipgen",
	Short: "Generate a jackpot prediction slip from synthetic fixtures",
	Long:  `Builds a synthetic fixture slate for the requested week, generates a strategy-constrained prediction slip and prints it. Nothing is persisted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSlipgen()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSlipgen() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if week == 0 {
		_, week = time.Now().UTC().ISOWeek()
	}

	appLog := logrus.New()
	appLog.SetOutput(io.Discard)
	if verbose {
		appLog.SetOutput(os.Stderr)
		appLog.SetLevel(logrus.DebugLevel)
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	quiet := log.New(io.Discard, "", 0)
	svc := service.NewSlipService(
		repository.NewMemoryRepositories(),
		datasource.NewChain([]datasource.FixtureSource{datasource.NewSyntheticSource(quiet)}, quiet),
		generator.New(rng, appLog),
		cache.NewSlipCache(time.Minute, 10),
		service.SlipDefaults{Strategy: models.StrategyBalanced, RiskLevel: 5, Stake: decimal.NewFromInt(1)},
		appLog,
	)

	jackpot, err := svc.BuildJackpot(ctx, fmt.Sprintf("Week %d Jackpot", week), week)
	if err != nil {
		return fmt.Errorf("failed to build jackpot: %w", err)
	}

	records, err := svc.GeneratePredictions(ctx, jackpot.ID, generator.Options{
		Strategy:         models.Strategy(strategy),
		RiskLevel:        riskLevel,
		IncludeWildcards: wildcards,
	})
	if err != nil {
		return fmt.Errorf("failed to generate slip: %w", err)
	}

	fixtures, err := svc.GetFixtures(ctx, jackpot.ID)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	printReport(jackpot, fixtures, records)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()

		if err := svc.ExportCSV(ctx, jackpot.ID, f); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		fmt.Printf("\nSlip written to %s\n", csvPath)
	}

	return nil
}

func printReport(jackpot *models.Jackpot, fixtures []*models.Fixture, records []models.PredictionRecord) {
	byFixture := make(map[string]*models.PredictionRecord, len(records))
	for i := range records {
		byFixture[records[i].FixtureID.String()] = &records[i]
	}

	counts := map[models.Outcome]int{}
	wildcardCount := 0

	fmt.Printf("=== %s (week %d) ===\n", jackpot.Name, jackpot.Week)
	fmt.Printf("Deadline: %s\n\n", jackpot.Deadline.Format("Mon 02 Jan 15:04 MST"))
	for _, f := range fixtures {
		r := byFixture[f.ID.String()]
		if r == nil {
			continue
		}
		counts[r.Outcome]++
		marker := " "
		if r.Wildcard {
			marker = "*"
			wildcardCount++
		}
		fmt.Printf("%2d. %-48s %s%s  %d%%  %s\n", f.Position, f.Label(), marker, r.Outcome, r.Confidence, r.Reasoning)
	}

	fmt.Printf("\nSpread: %d home / %d draw / %d away", counts[models.OutcomeHome], counts[models.OutcomeDraw], counts[models.OutcomeAway])
	if wildcardCount > 0 {
		fmt.Printf(", %d wildcard picks (*)", wildcardCount)
	}
	fmt.Println()
}
