package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/toyz/headertool/internal/cli"
	"github.com/toyz/headertool/internal/utils"
)

// Globals are the flags shared by every command. They may also be set from
// a configuration file or HEADERTOOL_* environment variables.
type Globals struct {
	Config          string   `help:"Configuration file (.json, .yaml or .toml)" type:"path"`
	Extensions      []string `help:"Header extensions to scan" default:".h,.hpp" sep:","`
	GeneratedMarker string   `help:"Skip paths containing this marker" default:".generated"`
	Force           bool     `help:"Regenerate headers whose outputs are up to date"`
	StrictBraces    bool     `help:"Ignore braces inside string literals and comments"`
	KeepGoing       bool     `help:"Skip a header with an unparseable class instead of aborting"`
	RequireBody     bool     `help:"Treat a class without GENERATED_BODY() as a fatal error"`
	MetadataIndent  int      `help:"Indentation of the .gen document" default:"2"`
	Verbose         bool     `short:"v" help:"Enable verbose output and detailed error reporting"`
	Quiet           bool     `short:"q" help:"Only show errors"`
	Debug           bool     `help:"Show debug output"`
}

// Diagnostics builds the output system selected by the verbosity flags
func (g *Globals) Diagnostics() *utils.DiagnosticSystem {
	switch {
	case g.Quiet:
		return utils.NewQuietDiagnostics()
	case g.Debug:
		return utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	case g.Verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}

// RunConfig assembles the generation configuration for one input and
// output directory
func (g *Globals) RunConfig(inputDir, outputDir string) cli.Config {
	return cli.Config{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		Extensions:      g.Extensions,
		GeneratedMarker: g.GeneratedMarker,
		Force:           g.Force,
		StrictBraces:    g.StrictBraces,
		KeepGoing:       g.KeepGoing,
		RequireBody:     g.RequireBody,
		MetadataIndent:  g.MetadataIndent,
		Verbose:         g.Verbose || g.Debug,
	}
}

// CLI is the command line of headertool
type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Scan headers and write X.generated.h and X.gen for each (default)"`
	Watch    WatchCmd    `cmd:"" help:"Generate, then regenerate whenever a header changes"`
	Clean    CleanCmd    `cmd:"" help:"Delete generated files from the output directory"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration files"`
}

// GenerateCmd runs one generation pass
type GenerateCmd struct {
	Input  string `arg:"" name:"input-dir" help:"Directory scanned recursively for annotated headers" type:"path"`
	Output string `arg:"" name:"output-dir" help:"Directory receiving the generated files" type:"path"`
}

func (c *GenerateCmd) Run(globals *Globals, diagnostics *utils.DiagnosticSystem) error {
	config := globals.RunConfig(c.Input, c.Output)
	generator := cli.NewGeneratorWithDiagnostics(config.Verbose, diagnostics)

	diagnostics.Section("headertool")
	if err := generator.Run(config); err != nil {
		generator.Reporter().ReportError(err)
		return err
	}

	generator.ReportSuccess()
	return nil
}

// WatchCmd keeps regenerating until interrupted
type WatchCmd struct {
	Input    string        `arg:"" name:"input-dir" help:"Directory scanned recursively for annotated headers" type:"path"`
	Output   string        `arg:"" name:"output-dir" help:"Directory receiving the generated files" type:"path"`
	Debounce time.Duration `help:"Quiet period before regenerating" default:"200ms"`
}

func (c *WatchCmd) Run(globals *Globals, diagnostics *utils.DiagnosticSystem) error {
	config := globals.RunConfig(c.Input, c.Output)
	generator := cli.NewGeneratorWithDiagnostics(config.Verbose, diagnostics)

	regenerate := func() {
		if err := generator.Run(config); err != nil {
			generator.Reporter().ReportError(err)
			return
		}
		generator.ReportSuccess()
	}

	diagnostics.Section("headertool watch")
	if err := config.WithDefaults().Validate(); err != nil {
		generator.Reporter().ReportError(err)
		return err
	}
	regenerate()

	watcher, err := cli.NewWatcher(config, diagnostics, c.Debounce, func(changed []string) {
		for _, file := range changed {
			diagnostics.Verbose("Changed: %s", file)
		}
		regenerate()
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	diagnostics.Info("Watching %s for header changes (Ctrl+C to stop)", config.InputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	diagnostics.Info("Stopping watcher")
	return watcher.Stop()
}

// CleanCmd removes generated files
type CleanCmd struct {
	Output string `arg:"" name:"output-dir" help:"Directory holding the generated files" type:"path"`
}

func (c *CleanCmd) Run(diagnostics *utils.DiagnosticSystem) error {
	removed, err := cli.NewCleaner().CleanGeneratedFiles(c.Output)
	for _, file := range removed {
		diagnostics.Verbose("Removed %s", file)
	}
	if err != nil {
		return err
	}

	diagnostics.Success("Removed %d generated file(s) from %s", len(removed), c.Output)
	return nil
}

// ConfigCmd groups config-related subcommands
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Generate a configuration file holding the defaults"`
}

// ConfigInitCmd scaffolds a configuration file
type ConfigInitCmd struct {
	Options cli.ConfigInit `embed:""`
}

func (c *ConfigInitCmd) Run(diagnostics *utils.DiagnosticSystem) error {
	dest, err := c.Options.Run()
	if err != nil {
		return err
	}

	diagnostics.Success("Wrote %s", dest)
	return nil
}

// newParser builds the kong parser. Configuration files are loaded in
// priority order; flags and environment variables override them.
func newParser(root *CLI, userConfig string, options ...kong.Option) (*kong.Kong, error) {
	jsonPaths, yamlPaths, tomlPaths := cli.ConfigCandidatePaths(userConfig)

	options = append([]kong.Option{
		kong.Name("headertool"),
		kong.Description("Scans C++ headers for CLASS(), PROPERTY() and FUNCTION() markers and generates reflection glue."),
		kong.UsageOnError(),
		kong.DefaultEnvars("HEADERTOOL"),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}, options...)

	return kong.New(root, options...)
}

func main() {
	var root CLI
	parser, err := newParser(&root, cli.FindUserConfig(os.Args[1:]))
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	diagnostics := root.Diagnostics()
	ctx.Bind(&root.Globals, diagnostics)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
