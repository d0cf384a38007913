// Command riskform walks a health-risk assessment in the terminal: pick a
// predictor, answer its form, submit it for scoring, and optionally save
// the PDF report. With -static (or RISKFORM_STATIC_MODE=true) everything
// runs locally against the bundled catalog with synthesized results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/riskform/go-riskform"
	"github.com/riskform/go-riskform/pkg/client"
	"github.com/riskform/go-riskform/pkg/tui"
)

func main() {
	predictorID := flag.String("predictor", "", "predictor ID to run (prompts when empty)")
	static := flag.Bool("static", false, "run in demo mode without a scoring service")
	output := flag.String("output", "", "where to save the report PDF (defaults to the server's filename)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	_ = godotenv.Load()
	cfg, err := client.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read environment")
	}
	if *static {
		cfg.StaticMode = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(cfg, client.WithLogger(log))
	session := riskform.NewSession(c)
	driver := tui.NewSurveyDriver()

	if err := run(ctx, session, driver, *predictorID, *output, c.Static()); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		log.Fatal().Err(err).Msg("assessment failed")
	}
}

func run(ctx context.Context, session *riskform.Session, driver tui.PromptDriver, predictorID, output string, static bool) error {
	if predictorID == "" {
		id, err := pickPredictor(ctx, session, driver)
		if err != nil {
			return err
		}
		predictorID = id
	}

	if err := session.Start(ctx, predictorID); err != nil {
		return err
	}

	walker := tui.NewWalker(tui.WithDriver(driver))
	result, err := submitLoop(ctx, session, walker, driver)
	if err != nil {
		return err
	}

	printResult(result)

	if static {
		return nil
	}
	save, err := driver.Confirm(ctx, tui.ConfirmConfig{
		Message: "Download the PDF report?",
		Default: false,
	})
	if err != nil || !save {
		return err
	}
	return saveReport(ctx, session, output)
}

func pickPredictor(ctx context.Context, session *riskform.Session, driver tui.PromptDriver) (string, error) {
	refs, err := session.Predictors(ctx)
	if err != nil {
		return "", err
	}
	if len(refs) == 0 {
		return "", errors.New("no predictors available")
	}

	options := make([]string, len(refs))
	for i, ref := range refs {
		options[i] = ref.Name
	}
	idx, err := driver.Select(ctx, tui.SelectConfig{
		Message:  "Which assessment would you like to run?",
		Options:  options,
		PageSize: 12,
	})
	if err != nil {
		return "", err
	}
	return refs[idx].ID, nil
}

// submitLoop walks the form and submits it, re-walking on validation
// errors until the form is clean or the user aborts.
func submitLoop(ctx context.Context, session *riskform.Session, walker *tui.Walker, driver tui.PromptDriver) (client.Result, error) {
	for {
		if err := walker.Walk(ctx, session.State()); err != nil {
			return client.Result{}, err
		}

		result, err := session.Submit(ctx)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, riskform.ErrValidationFailed) {
			return client.Result{}, err
		}

		var msgs []string
		for name, msg := range session.Errors() {
			msgs = append(msgs, fmt.Sprintf("  %s: %s", name, msg))
		}
		_ = driver.Info(ctx, "Please fix the following before submitting:\n"+strings.Join(msgs, "\n"))
	}
}

func printResult(result client.Result) {
	fmt.Println()
	fmt.Printf("Risk level:  %s\n", result.RiskLevel)
	fmt.Printf("Risk score:  %.1f%%\n", result.RiskScore*100)
	fmt.Printf("Confidence:  %.1f%%\n", result.Confidence*100)
	if result.Explanation != "" {
		fmt.Printf("\n%s\n", result.Explanation)
	}
	if len(result.RiskFactors) > 0 {
		fmt.Println("\nRisk factors:")
		for _, f := range result.RiskFactors {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(result.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range result.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
	if result.Analysis != nil && len(result.Analysis.ContributingFactors) > 0 {
		fmt.Println("\nContributing factors:")
		for _, f := range result.Analysis.ContributingFactors {
			fmt.Printf("  - %s (%s): %s\n", f.Factor, f.Impact, f.Description)
		}
	}
}

func saveReport(ctx context.Context, session *riskform.Session, output string) error {
	pdf, filename, err := session.DownloadReport(ctx)
	if err != nil {
		return err
	}
	if output != "" {
		filename = output
	}
	if err := os.WriteFile(filename, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Printf("Report saved to %s\n", filename)
	return nil
}
