package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/marygen/internal/scaffold"
)

var columnsFormat string

var columnsCmd = &cobra.Command{
	Use:   "columns <model>",
	Short: "Show how a model's columns map to form widgets",
	Long:  `Connects to the database, introspects the model's table and prints the widget, property type and icon chosen for every column.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var write func(io.Writer, *scaffold.Report) error
		switch columnsFormat {
		case "text":
			write = scaffold.WriteText
		case "yaml":
			write = scaffold.WriteYAML
		default:
			return fmt.Errorf("unknown format: %s (supported: text, yaml)", columnsFormat)
		}

		report, err := scaffold.New(cfg, openIntrospector, nil, logger).Columns(ctx, args[0])
		if err != nil {
			return err
		}
		return write(os.Stdout, report)
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsFormat, "format", "text", "output format: text or yaml")
	rootCmd.AddCommand(columnsCmd)
}
