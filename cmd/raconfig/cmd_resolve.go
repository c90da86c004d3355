package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/raconfig/bootstrap"
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/scanner"
)

func newResolveCmd() *cobra.Command {
	var format string
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Merge annotated config properties into the deployment descriptor",
		Long: `Parse the project sources, apply the connector annotations to the
deployment descriptor and attach every @ConfigProperty to the entity it
configures. The merged descriptor is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setProjectDir(args)
			return runResolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), format, keepGoing)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xml", "output format: xml, json or yaml")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "write the descriptor even when some properties failed validation")

	return cmd
}

func runResolve(ctx context.Context, w, errw io.Writer, format string, keepGoing bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deployer := scanner.NewDeployer(cfg)
	services := bootstrap.NewRegistry()
	services.Register("deployer", deployer)
	rt := bootstrap.New(deployer, services)
	if err := rt.Start(ctx); err != nil {
		return err
	}
	defer rt.Dispose(ctx)

	d, err := bootstrap.ServiceAs[*scanner.Deployer](rt, "deployer")
	if err != nil {
		return err
	}
	dep, err := d.Deploy(ctx)
	if err != nil {
		return err
	}

	for _, f := range dep.Result.Failures {
		fmt.Fprintf(errw, "FAIL %s: %s\n", f.Element, f.Reason)
	}
	for _, el := range dep.Result.Deferred {
		fmt.Fprintf(errw, "SKIP %s\n", el)
	}
	if len(dep.Result.Failures) > 0 && !keepGoing {
		return fmt.Errorf("%d config properties failed validation", len(dep.Result.Failures))
	}

	return writeDescriptor(w, format, dep.Descriptor)
}

func writeDescriptor(w io.Writer, format string, desc *connector.Descriptor) error {
	switch format {
	case "xml":
		return connector.EncodeRAXML(w, desc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}
