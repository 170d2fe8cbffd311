package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hurou927/marygen/internal/scaffold"
	"github.com/hurou927/marygen/internal/translate"
)

var (
	sourceLang string
	destLang   string
	noRoute    bool
	dryRun     bool
)

var makeCmd = &cobra.Command{
	Use:   "make <model> [viewName]",
	Short: "Generate a CRUD page for a model",
	Long: `Checks that MaryUI and Livewire Volt are installed, introspects the model's table,
writes <viewName>.blade.php (never overwriting) and appends a Volt route.
Labels and messages are machine-translated when --dest-lang is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		opts := scaffold.Options{
			Model:      args[0],
			SourceLang: sourceLang,
			DestLang:   destLang,
			NoRoute:    noRoute,
			DryRun:     dryRun,
		}
		if len(args) > 1 {
			opts.ViewName = args[1]
		}
		var tr translate.Translator
		if destLang != "" {
			tr = translate.NewGoogle(cfg.Translate.Endpoint, sourceLang, destLang, cfg.Translate.Timeout)
		}

		res, err := scaffold.New(cfg, openIntrospector, tr, logger).Generate(ctx, opts)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Fprint(os.Stdout, res.Content)
			return nil
		}

		green := color.New(color.FgGreen)
		green.Fprintf(os.Stderr, "Done! %s generated.\n", res.ViewPath)
		switch {
		case noRoute:
		case res.RouteAdded:
			green.Fprintf(os.Stderr, "Route added to %s\n", cfg.RoutesFile)
			green.Fprintf(os.Stderr, "Visit %s\n", res.URL)
		default:
			fmt.Fprintf(os.Stderr, "Route already present in %s\n", cfg.RoutesFile)
			green.Fprintf(os.Stderr, "Visit %s\n", res.URL)
		}
		return nil
	},
}

func init() {
	makeCmd.Flags().StringVar(&sourceLang, "source-lang", "", "source language of the labels (requires --dest-lang)")
	makeCmd.Flags().StringVar(&destLang, "dest-lang", "", "translate labels and messages into this language")
	makeCmd.Flags().BoolVar(&noRoute, "no-route", false, "do not touch the routes file")
	makeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the page instead of writing it")
	rootCmd.AddCommand(makeCmd)
}
