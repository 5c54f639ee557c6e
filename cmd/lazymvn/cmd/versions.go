package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wexinc/lazymvn/internal/config"
	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/pom"
)

// versionsCmd represents the versions command.
var versionsCmd = &cobra.Command{
	Use:   "versions <group:artifact>",
	Short: "List the published versions of an artifact",
	Long: `List the versions of an artifact published to the registry, newest first.

When the artifact is a dependency of the pom, its current version is marked
with "*".

Examples:
  lazymvn versions org.apache.kafka:kafka-clients
  lazymvn versions junit:junit --latest`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
	addVersionsFlags(versionsCmd)
}

func addVersionsFlags(c *cobra.Command) {
	c.Flags().Bool("latest", false, "Print only the newest version")
}

func runVersions(cmd *cobra.Command, args []string) error {
	key, err := pom.ParseKey(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	headlessLogging(cmd, cfg)

	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Registry.Timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	versions, err := newRegistryClient(cfg).Versions(ctx, key)
	if err != nil {
		return registryError(err, "versions", cfg.Registry.Timeout)
	}
	if len(versions) == 0 {
		fmt.Fprintf(out, "No versions of %s found\n", key)
		return nil
	}

	if latest, _ := cmd.Flags().GetBool("latest"); latest {
		fmt.Fprintln(out, versions[0].Version)
		return nil
	}

	current := currentVersion(cmd, cfg, key)
	for _, v := range versions {
		marker := " "
		if current != "" && v.Version == current {
			marker = "*"
		}
		line := marker + " " + v.Version
		if !v.PublishedAt.IsZero() {
			line += "  " + v.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// currentVersion returns the version of key in the pom, or "" when there is
// no readable pom or the artifact is not a dependency.
func currentVersion(cmd *cobra.Command, cfg *config.Config, key pom.Key) string {
	doc, err := openDocument(cmd, cfg)
	if err != nil {
		logging.Debug("no pom to compare versions against", "error", err)
		return ""
	}
	deps, err := doc.Dependencies()
	if err != nil {
		return ""
	}
	for _, d := range deps {
		if d.Key() == key {
			return d.Version
		}
	}
	return ""
}
