package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/config"
	"github.com/apresai/vidblueprint/internal/observability"
	"github.com/apresai/vidblueprint/internal/pipeline"
	"github.com/apresai/vidblueprint/internal/progress"
	"github.com/apresai/vidblueprint/internal/render"
)

var Version = "dev"

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "vidblueprint",
	Short:             "Turn a one-line story idea into a 15-minute kids' video production blueprint",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	Args:              cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return cmd.Help()
		}
		flagTUI = true
		return runGenerate(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vidblueprint %s\n", Version)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [idea...]",
	Short: "Generate a production blueprint from a story idea",
	Long: `Generate a production blueprint from a story idea.

The idea can be given as arguments, or with --input as a text or markdown
file, a PDF or a URL. With no idea at all the built-in superhero family
story is used. Without --output the blueprint is written to stdout.`,
	RunE: runGenerate,
}

var validateCmd = &cobra.Command{
	Use:   "validate <blueprint-file>",
	Short: "Check a saved JSON or YAML blueprint for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List recognized story themes and their trigger keywords",
	RunE:  runThemes,
}

var (
	flagConfig  string
	flagInput   string
	flagOutput  string
	flagFormat  string
	flagPublish bool
	flagVerbose bool
	flagTUI     bool
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(themesCmd)

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	generateCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Idea source: text, markdown or PDF file, or URL")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (.json, .yaml, .md); - for stdout")
	generateCmd.Flags().StringVarP(&flagFormat, "format", "F", "", "Output format: "+strings.Join(render.FormatNames(), ", "))
	generateCmd.Flags().BoolVarP(&flagPublish, "publish", "P", false, "Publish the blueprint to the catalog")
	generateCmd.Flags().BoolVarP(&flagTUI, "tui", "t", false, "Interactive setup wizard")
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = *loaded
	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	logger = observability.InitLogger(level)
	slog.SetDefault(logger)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagTUI {
		if err := runInteractiveSetup(); err != nil {
			return err
		}
	}

	if flagInput != "" && len(args) > 0 {
		return fmt.Errorf("give the idea either as arguments or with --input, not both")
	}
	input := flagInput
	if input == "" {
		input = strings.Join(args, " ")
	}

	format, err := resolveFormat(cmd.Flags().Changed("format") || flagTUI, flagFormat, flagOutput, cfg.Output.Format)
	if err != nil {
		return err
	}
	output := resolveOutput(flagOutput, cfg.Output.Dir)

	opts := pipeline.Options{
		Input:  input,
		Output: output,
		Format: format,
		Stdout: cmd.OutOrStdout(),
		Logger: logger,
	}

	if flagPublish {
		cat, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		opts.Publish = true
		opts.Publisher = cat
	}

	// The bar goes to stderr so stdout stays clean for the document.
	if !flagVerbose && output != "" {
		r := progress.NewBarRenderer(os.Stderr)
		defer r.Finish()
		opts.OnProgress = r.Handle
	}

	res, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if output == "" && res.Record != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Published %s  |  %s\n", res.Record.BlueprintID, res.Record.URL)
	}
	return nil
}

// resolveFormat picks the output format: an explicit flag wins, then the
// output file extension, then the configured default.
func resolveFormat(explicit bool, flagVal, output, configured string) (render.Format, error) {
	if explicit && flagVal != "" {
		return render.ParseFormat(flagVal)
	}
	if output != "" && output != "-" && filepath.Ext(output) != "" {
		return render.FormatForPath(output), nil
	}
	return render.ParseFormat(configured)
}

// resolveOutput places bare file names in the configured output directory.
// "-" means stdout.
func resolveOutput(output, dir string) string {
	if output == "" || output == "-" {
		return ""
	}
	if dir != "" && dir != "." && filepath.Base(output) == output {
		return filepath.Join(dir, output)
	}
	return output
}

func runValidate(cmd *cobra.Command, args []string) error {
	bp, err := render.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := blueprint.Validate(*bp); err != nil {
		var verr *blueprint.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "  x %s\n", p)
			}
		}
		return err
	}
	fmt.Fprintf(out, "%s: ok (%d scenes, %s, %d mid-rolls)\n",
		args[0], bp.SceneCount(), bp.Runtime, len(bp.Monetization.MidRollMoments))
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	keywords := blueprint.ThemeKeywords()

	fmt.Fprintln(out, "\nRecognized themes (highest priority first):")
	fmt.Fprintf(out, "  %s\n", strings.Repeat("─", 50))
	for _, t := range blueprint.ThemeOrder() {
		fmt.Fprintf(out, "  %-12s %s\n", t, strings.Join(keywords[t], ", "))
	}
	fmt.Fprintln(out)
	return nil
}
