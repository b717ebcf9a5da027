package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub000/internal/config"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [init|show]",
		Short: "View or edit configuration",
		Long: `Configuration management.

With no argument, displays the current config and allows interactive
editing, creating the file with defaults first if it does not exist.
"init" writes a default config file and exits; "show" only prints.

Example:
  tourboard config
  tourboard config show`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runConfigInteractive()
			}
			configPath := config.DefaultConfigPath()
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			switch args[0] {
			case "init":
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Printf("Wrote %s\n", configPath)
				return nil
			case "show":
				fmt.Printf("Config file: %s\n\n", configPath)
				printConfig(cfg)
				return nil
			default:
				return fmt.Errorf("unknown subcommand %q, want init or show", args[0])
			}
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Day.Start = promptValue(reader, "Day start", cfg.Day.Start)
	cfg.Day.End = promptValue(reader, "Day end", cfg.Day.End)
	cfg.Day.SlotMinutes = promptInt(reader, "Board row minutes", cfg.Day.SlotMinutes)
	cfg.Day.SnapMinutes = promptInt(reader, "Drop snap minutes", cfg.Day.SnapMinutes)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[day]")
	fmt.Printf("  start        = %s\n", cfg.Day.Start)
	fmt.Printf("  end          = %s\n", cfg.Day.End)
	fmt.Printf("  slot_minutes = %d\n", cfg.Day.SlotMinutes)
	fmt.Printf("  snap_minutes = %d\n", cfg.Day.SnapMinutes)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme        = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  %q is not a positive number\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
