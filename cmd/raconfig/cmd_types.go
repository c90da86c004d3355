package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/raconfig/java"
	"github.com/dhamidi/raconfig/scanner"
)

func newTypesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "types [dir]",
		Short: "Write the parsed type graph as a YAML type table",
		Long: `Parse the project sources and write their class models as a type
table. Other projects can list the table under "types" to resolve classes
they only have as binaries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setProjectDir(args)
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return runTypes(cmd.Context(), w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runTypes(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Types = nil

	d := scanner.NewDeployer(cfg)
	if err := d.Start(ctx); err != nil {
		return err
	}
	defer d.Stop(ctx)

	graph, err := d.LoadGraph(ctx)
	if err != nil {
		return err
	}
	return java.WriteTypes(w, graph.Classes())
}
