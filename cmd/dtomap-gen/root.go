package main

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dtomap/internal/analyze"
	"dtomap/internal/gen"
)

type options struct {
	output   string
	filename string
	dtoPkg   string
	dryRun   bool
	dump     bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "dtomap-gen [packages]",
		Short:        "Generate DTO registrations for //dtomap:register structs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			log := zap.NewNop()
			if opts.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("creating logger: %w", err)
				}
				defer func() { _ = l.Sync() }()

				log = l
			}

			return run(cmd, log, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Directory to write generated files to (default: each package's directory)")
	f.StringVar(&opts.filename, "filename", gen.DefaultGeneratorConfig().Filename, "Name of the generated file")
	f.StringVar(&opts.dtoPkg, "dto-import", gen.DefaultGeneratorConfig().DTOImport, "Import path of the dto runtime package")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Print generated code instead of writing files")
	f.BoolVar(&opts.dump, "dump", false, "Print the analyzed DTO model and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable development logging")

	return cmd
}

func run(cmd *cobra.Command, log *zap.Logger, opts options, patterns []string) error {
	analyzer := analyze.NewAnalyzer(analyze.WithLogger(log), analyze.IgnoreFile(opts.filename))

	pkgs, err := analyzer.Load(patterns...)

	for _, w := range analyzer.Diagnostics().Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	if err != nil {
		return err
	}

	if opts.dump {
		spew.Fdump(cmd.OutOrStdout(), pkgs)
		return nil
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Filename:  opts.filename,
		DTOImport: opts.dtoPkg,
		OutputDir: opts.output,
	})

	files, err := generator.GenerateAll(pkgs)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		log.Info("no DTOs found", zap.Strings("patterns", patterns))
		return nil
	}

	if opts.dryRun {
		for _, file := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", filepath.Join(file.Dir, file.Filename), file.Content)
		}

		return nil
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, file := range files {
		log.Info("generated", zap.String("file", filepath.Join(file.Dir, file.Filename)))
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(file.Dir, file.Filename))
	}

	return nil
}
