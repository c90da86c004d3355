package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/raconfig/configprop"
	"github.com/dhamidi/raconfig/scanner"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [dir]",
		Short: "Show the role of every class declaring config properties",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setProjectDir(args)
			return runClassify(cmd.Context(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runClassify(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := scanner.NewDeployer(cfg)
	if err := d.Start(ctx); err != nil {
		return err
	}
	defer d.Stop(ctx)

	graph, err := d.LoadGraph(ctx)
	if err != nil {
		return err
	}
	desc, err := d.LoadDescriptor()
	if err != nil {
		return err
	}

	counts := map[string]int{}
	var order []string
	for _, el := range scanner.Elements(graph) {
		if counts[el.Class.Name] == 0 {
			order = append(order, el.Class.Name)
		}
		counts[el.Class.Name]++
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tROLE\tPROPERTIES")
	for _, name := range order {
		class, _ := graph.Class(name)
		fmt.Fprintf(tw, "%s\t%s\t%d\n", name, configprop.Classify(graph, class, desc), counts[name])
	}
	return tw.Flush()
}
