package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/wexinc/lazymvn/internal/errors"
)

// searchCmd represents the search command.
var searchCmd = &cobra.Command{
	Use:   "search <phrase>...",
	Short: "Search the registry for artifacts",
	Long: `Search the configured registry and print the matching artifacts with
their latest version, best match first.

Examples:
  lazymvn search kafka
  lazymvn search jackson databind --rows 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addSearchFlags(searchCmd)
}

func addSearchFlags(c *cobra.Command) {
	c.Flags().Int("rows", 0, "Maximum number of results (default: registry.rows)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	headlessLogging(cmd, cfg)

	client := newRegistryClient(cfg)
	if rows, _ := cmd.Flags().GetInt("rows"); rows > 0 {
		client.Rows = rows
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Registry.Timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	phrase := strings.Join(args, " ")
	candidates, err := client.Search(ctx, phrase)
	if err != nil {
		return registryError(err, "search", cfg.Registry.Timeout)
	}
	if len(candidates) == 0 {
		fmt.Fprintf(out, "No artifacts match %q\n", phrase)
		return nil
	}
	for _, c := range candidates {
		fmt.Fprintf(out, "%s %s\n", c.Key(), c.LatestVersion)
	}
	return nil
}

// registryError reports an expired deadline the same way the editor does.
func registryError(err error, operation string, limit time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.RequestTimeout(operation, limit)
	}
	return err
}
