package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wexinc/lazymvn/internal/config"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with every setting at its default value.

The file goes to the path given by --config, or ` + config.DefaultConfigPath + ` in the
current directory. Use --force to overwrite an existing file.

Examples:
  lazymvn init
  lazymvn init --config ~/.config/lazymvn.yaml --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	addInitFlags(initCmd)
}

func addInitFlags(c *cobra.Command) {
	c.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// runInit is the main entry point for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(config.NewConfig(), path); err != nil {
		return err
	}
	cmd.Printf("Created %s\n", path)
	cmd.Println("Edit it to point lazymvn at another registry or pom.")
	return nil
}
