package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/config"
	"github.com/apresai/vidblueprint/internal/render"
)

var (
	flagListLimit   int
	flagListCursor  string
	flagFetchOutput string
	flagFetchFormat string
)

var publishCmd = &cobra.Command{
	Use:   "publish <blueprint-file>",
	Short: "Publish a saved blueprint to the catalog",
	Long:  "Validate a saved JSON or YAML blueprint, upload it to S3 and index it in DynamoDB. Requires S3_BUCKET and DYNAMODB_TABLE (or the catalog section of the config file).",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublish,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published blueprints, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <blueprint-id>",
	Short: "Download a published blueprint",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <blueprint-id>",
	Short: "Remove a published blueprint and its index record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(deleteCmd)

	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 20, "Maximum number of results (1-100)")
	listCmd.Flags().StringVar(&flagListCursor, "cursor", "", "Pagination cursor from a previous list")

	fetchCmd.Flags().StringVarP(&flagFetchOutput, "output", "o", "", "Output file; stdout when empty")
	fetchCmd.Flags().StringVarP(&flagFetchFormat, "format", "F", "", "Output format: "+strings.Join(render.FormatNames(), ", "))
}

// catalogAPI is the part of the catalog the commands use.
type catalogAPI interface {
	Publish(ctx context.Context, bp *blueprint.Blueprint) (*catalog.Record, error)
	List(ctx context.Context, limit int, cursor string) ([]catalog.Record, string, error)
	Fetch(ctx context.Context, id string) (*blueprint.Blueprint, *catalog.Record, error)
	Delete(ctx context.Context, id string) error
}

// openCatalog is replaced in tests.
var openCatalog = func(ctx context.Context) (catalogAPI, error) {
	if !cfg.Catalog.Enabled() {
		return nil, fmt.Errorf("catalog is not configured: set S3_BUCKET and DYNAMODB_TABLE or the catalog section in %s", config.DefaultPath)
	}
	return catalog.NewFromConfig(ctx, catalog.Options{
		TableName:  cfg.Catalog.TableName,
		Bucket:     cfg.Catalog.Bucket,
		CDNBaseURL: cfg.Catalog.CDNBaseURL,
		Region:     cfg.Catalog.Region,
	}, logger)
}

func runPublish(cmd *cobra.Command, args []string) error {
	path := args[0]
	bp, err := render.Load(path)
	if err != nil {
		return err
	}
	if err := blueprint.Validate(*bp); err != nil {
		return fmt.Errorf("refusing to publish %s: %w", path, err)
	}

	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	rec, err := cat.Publish(cmd.Context(), bp)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Published %s (%d scenes, %s)\n", rec.BlueprintID, rec.SceneCount, rec.Runtime)
	if rec.URL != "" {
		fmt.Fprintf(out, "  URL: %s\n", rec.URL)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	recs, next, err := cat.List(cmd.Context(), flagListLimit, flagListCursor)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No blueprints published yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-26s %-20s %-24s %s\n", "ID", "CREATED", "THEMES", "IDEA")
	fmt.Fprintf(out, "  %s\n", strings.Repeat("─", 90))
	for _, r := range recs {
		fmt.Fprintf(out, "  %-26s %-20s %-24s %s\n", r.BlueprintID, r.CreatedAt, strings.Join(r.Themes, ","), truncate(r.Idea, 60))
	}
	if next != "" {
		fmt.Fprintf(out, "\n  More results: --cursor %s\n", next)
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	bp, _, err := cat.Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	format, err := resolveFormat(flagFetchFormat != "", flagFetchFormat, flagFetchOutput, cfg.Output.Format)
	if err != nil {
		return err
	}
	if flagFetchOutput == "" || flagFetchOutput == "-" {
		return render.Encode(cmd.OutOrStdout(), bp, format)
	}
	data, err := render.Marshal(bp, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagFetchOutput, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", flagFetchOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Blueprint %s saved to %s\n", args[0], flagFetchOutput)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if err := cat.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
