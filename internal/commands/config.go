package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/focus/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := resolveConfigPath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		cfg, err := config.Load(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		out, err := config.Marshal(cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Printf("# %s does not exist, showing defaults ('focus config init' writes them)\n", path)
		} else {
			fmt.Printf("# %s\n", path)
		}
		fmt.Print(string(out))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		path, err := resolveConfigPath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("Error: %s already exists (use --force to overwrite)\n", path)
			return
		}

		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := config.Save(path, config.Default(home)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Wrote %s\n", path)
	},
}

// resolveConfigPath returns the --config value or the default location
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
