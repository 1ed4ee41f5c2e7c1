package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure service URLs, timeouts, diversity thresholds and
client-credentials authentication.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported setting keys",
	RunE:  runSettingsKeys,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key. Durations use Go syntax (30s, 1m30s),
lists are comma separated.

When the value of auth.client_secret is omitted it is read from the
terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Prompt for the service URLs and the per-call timeout. Press enter to keep a value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Services]")
	cmd.Printf("  Text service: %s\n", orUnset(settings.Services.TextServiceURL))
	cmd.Printf("  Illustrator:  %s\n", orUnset(settings.Services.IllustratorURL))
	cmd.Printf("  Analytics:    %s\n", orUnset(settings.Services.AnalyticsURL))
	cmd.Printf("  Catalog:      %s\n", orUnset(settings.Services.CatalogBaseURL()))
	cmd.Printf("  Timeout:      %s\n", settings.Services.Timeout)
	cmd.Printf("  Max retries:  %d\n", settings.Services.MaxRetries)
	cmd.Println()

	cmd.Println("[Routing]")
	cmd.Printf("  Inter-slide delay: %s\n", settings.Routing.InterSlideDelay)
	cmd.Printf("  Skip hero slides:  %t\n", settings.Routing.SkipHeroGeneration)
	if settings.Routing.Seed == 0 {
		cmd.Println("  Seed:              (time based)")
	} else {
		cmd.Printf("  Seed:              %d\n", settings.Routing.Seed)
	}
	cmd.Println()

	cmd.Println("[Diversity]")
	cmd.Printf("  Max variant run:        %d\n", settings.Diversity.MaxVariantRun)
	cmd.Printf("  Max classification run: %d\n", settings.Diversity.MaxClassificationRun)
	cmd.Println()

	cmd.Println("[Auth]")
	if settings.Auth.IsConfigured() {
		cmd.Printf("  Token URL:     %s\n", settings.Auth.TokenURL)
		cmd.Printf("  Client ID:     %s\n", settings.Auth.ClientID)
		cmd.Printf("  Client secret: %s\n", maskSecret(settings.Auth.ClientSecret))
		if len(settings.Auth.Scopes) > 0 {
			cmd.Printf("  Scopes:        %s\n", strings.Join(settings.Auth.Scopes, ", "))
		}
	} else {
		cmd.Println("  (not configured)")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'deckroute settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == services.KeyClientSecret:
		cmd.Print("Enter client secret: ")
		value = readPassword(cmd)
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if key == services.KeyClientSecret {
		cmd.Printf("Set %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("deckroute Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	prompts := []struct {
		key     string
		label   string
		current string
	}{
		{services.KeyTextServiceURL, "Text service URL", settings.Services.TextServiceURL},
		{services.KeyIllustratorURL, "Illustrator service URL", settings.Services.IllustratorURL},
		{services.KeyAnalyticsURL, "Analytics service URL", settings.Services.AnalyticsURL},
		{services.KeyCatalogURL, "Variant catalog URL (empty uses the text service)", settings.Services.CatalogURL},
		{services.KeyTimeout, "Per-call timeout", settings.Services.Timeout.String()},
	}
	for _, p := range prompts {
		cmd.Printf("%s [%s]: ", p.label, p.current)
		input := readLine(reader)
		if input == "" || input == p.current {
			continue
		}
		if err := settingsService.Set(p.key, input); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.key, err)
		}
	}

	cmd.Println()
	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo from a terminal and falls back to a
// plain line read otherwise.
func readPassword(cmd *cobra.Command) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(cmd.InOrStdin()))
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// settingsSummary is the one-line service status printed before routing.
func settingsSummary(s *domain.AppSettings) string {
	configured := 0
	for _, u := range []string{s.Services.TextServiceURL, s.Services.IllustratorURL, s.Services.AnalyticsURL} {
		if u != "" {
			configured++
		}
	}
	return fmt.Sprintf("%d/3 services configured, timeout %s", configured, s.Services.Timeout)
}
