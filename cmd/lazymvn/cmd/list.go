package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the dependencies of the pom",
	Long: `Print the entries of the pom's <dependencies> section in file order,
one "group:artifact version" line each. Dependencies without a version
(managed by a parent or BOM) are shown as "(managed)".

Examples:
  lazymvn list
  lazymvn list --json
  lazymvn list --file modules/core/pom.xml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	addListFlags(listCmd)
}

func addListFlags(c *cobra.Command) {
	c.Flags().Bool("json", false, "Print the list as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	headlessLogging(cmd, cfg)

	doc, err := openDocument(cmd, cfg)
	if err != nil {
		return err
	}
	deps, err := documentDependencies(doc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(deps)
	}

	for _, d := range deps {
		v := d.Version
		if v == "" {
			v = "(managed)"
		}
		name := d.Key().String()
		if d.Classifier != "" {
			name += ":" + d.Classifier
		}
		fmt.Fprintf(out, "%s %s\n", name, v)
	}
	return nil
}
