package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cassiomorais/connector-service/internal/connectors/gen"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "connectorgen",
		Short:        "Generate connector prerequisites from a flow declaration",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(generateCmd())

	return rootCmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render zz_generated.prerequisites.go for one connector",
		Long: `Reads a connector.yaml declaration and writes the connector's
RouterData pairing, per-flow bridge aliases, struct and constructor.

With --check nothing is written; the command fails when the output file
is stale.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringP("declaration", "d", "connector.yaml", "Flow declaration file")
	cmd.Flags().StringP("output", "o", "", "Output file (default: zz_generated.prerequisites.go next to the declaration)")
	cmd.Flags().Bool("check", false, "Fail if the output file is out of date instead of writing it")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	declPath, _ := cmd.Flags().GetString("declaration")
	output, _ := cmd.Flags().GetString("output")
	check, _ := cmd.Flags().GetBool("check")

	if output == "" {
		output = filepath.Join(filepath.Dir(declPath), "zz_generated.prerequisites.go")
	}

	decl, err := gen.LoadDeclaration(declPath)
	if err != nil {
		return err
	}
	src, err := gen.Generate(decl, filepath.Base(declPath))
	if err != nil {
		return err
	}

	if check {
		current, err := os.ReadFile(output)
		if err != nil {
			return fmt.Errorf("read %s: %w", output, err)
		}
		if !bytes.Equal(current, src) {
			return fmt.Errorf("%s is out of date with %s", output, declPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", output)
		return nil
	}

	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d flows)\n", output, len(decl.Flows))
	return nil
}
