package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const (
	exitFatal         = 1
	exitArchiveFailed = 2
)

var (
	settingsPath    string
	sourceDirectory string
	outputDirectory string
	failFast        bool
	sanitizeBodies  bool
	normalizeText   bool
	debugMode       bool
	debugEnabled    bool
)

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "iweb-comments [source-dir]",
	Short: "Export archived iWeb blog comments as HTML snippets",
	Long: `Walks an iWeb Domain.sites2 store, reads every blog page archive and
writes one <page name>.html file with the page's comments.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings(cmd, args)

		renderer := NewRenderer(settings)
		results, err := renderer.Run(settings.SourceDirectory)
		if err != nil {
			log.Printf("Rendering aborted: %v", err)
			os.Exit(exitFatal)
		}

		succeeded, failed := Summarize(results)
		log.Printf("Rendered %d pages, %d failed", succeeded, failed)
		if failed > 0 {
			log.Printf("Failed archives:\n%v", FailedErrors(results))
			os.Exit(exitArchiveFailed)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list [source-dir]",
	Short: "Print every page and its comments as Markdown",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings(cmd, args)

		if err := NewLister(cmd.OutOrStdout()).List(settings.SourceDirectory); err != nil {
			log.Fatalf("Listing failed: %v", err)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default settings file to " + defaultConfigDir,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := ensureConfigExists()
		if err != nil {
			log.Fatalf("Failed to write settings: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	},
}

// mustLoadSettings builds overrides from the flags that were set and loads settings
func mustLoadSettings(cmd *cobra.Command, args []string) *Settings {
	if debugMode {
		SetDebugMode(true)
	}

	overrides := &ConfigOverrides{}
	if cmd.Flags().Changed("settings") {
		overrides.SettingsPath = &settingsPath
	}
	if len(args) > 0 {
		sourceDirectory = args[0]
		overrides.SourceDirectory = &sourceDirectory
	} else if cmd.Flags().Changed("source") {
		overrides.SourceDirectory = &sourceDirectory
	}
	if cmd.Flags().Changed("output") {
		overrides.OutputDirectory = &outputDirectory
	}
	if cmd.Flags().Changed("fail-fast") {
		overrides.FailFast = &failFast
	}
	if cmd.Flags().Changed("sanitize") {
		overrides.SanitizeBodies = &sanitizeBodies
	}
	if cmd.Flags().Changed("normalize") {
		overrides.NormalizeText = &normalizeText
	}

	settings, err := LoadSettings(overrides)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	debugLog("settings: %+v", *settings)
	return settings
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings YAML file")
	rootCmd.PersistentFlags().StringVar(&sourceDirectory, "source", "", "iWeb Domain.sites2 directory")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&outputDirectory, "output", "", "Directory the HTML files are written to")
	rootCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first archive that fails")
	rootCmd.Flags().BoolVar(&sanitizeBodies, "sanitize", false, "Sanitize comment bodies")
	rootCmd.Flags().BoolVar(&normalizeText, "normalize", false, "Compose decomposed accents in author names before encoding")

	rootCmd.AddCommand(listCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(exitFatal)
	}
}
