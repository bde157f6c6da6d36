// Command gdinspect is a thin illustrative CLI over the library: it wires
// together fsys, validate, format, and incremental exactly as a host
// application would, with none of the orchestration logic living here.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/gdlang/format"
	"github.com/viant/gdlang/fsys"
	"github.com/viant/gdlang/gdlog"
	"github.com/viant/gdlang/incremental"
	"github.com/viant/gdlang/project"
	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/validate"
)

var rootCmd = &cobra.Command{
	Use:   "gdinspect",
	Short: "Parse, validate, format, and analyze GDScript source",
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Run the validation pipeline over one script and print its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Run the rule-based formatter over one script and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormat,
}

var writeFlag bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [project-root]",
	Short: "Discover every script under a project root and report its call-site registry size",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	formatCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "write the formatted result back to the file instead of printing it")
	rootCmd.AddCommand(validateCmd, formatCmd, analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	fs := fsys.NewAFS(nil)
	source, err := fs.ReadAllText(ctx, args[0])
	if err != nil {
		return err
	}
	result, err := validate.ValidateCode(source, validate.DefaultOptions(), runtime.NopProvider{})
	if err != nil {
		return err
	}
	for _, d := range result.Errors {
		fmt.Println(d.String())
	}
	for _, d := range result.Warnings {
		fmt.Println(d.String())
	}
	for _, d := range result.Hints {
		fmt.Println(d.String())
	}
	if !result.OK() {
		os.Exit(1)
	}
	return nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	fs := fsys.NewAFS(nil)
	source, err := fs.ReadAllText(ctx, args[0])
	if err != nil {
		return err
	}
	out, err := format.FormatDefault(source)
	if err != nil {
		return err
	}
	if writeFlag {
		return fs.WriteAllText(ctx, args[0], out)
	}
	fmt.Print(out)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log, err := gdlog.NewDevelopment()
	if err != nil {
		return err
	}
	fs := fsys.NewAFS(nil)
	proj := project.New(args[0], fs, nil)
	pipeline := incremental.NewPipeline(proj, runtime.NopProvider{}, log)
	pipeline.Scheduler.Degree = -1

	changes, err := pipeline.DetectChanges(ctx)
	if err != nil {
		return err
	}
	affected, err := pipeline.AnalyzeChanged(ctx, changes)
	if err != nil {
		return err
	}
	fmt.Printf("analyzed %d file(s), %d call-site target(s) registered\n",
		len(affected), len(pipeline.Models.CallSites.Snapshot()))
	return nil
}
