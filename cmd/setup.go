package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"vidpilot/internal/sheet"
	"vidpilot/internal/state"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for vidpilot",
	Long:  `Configure the product sheet, API keys and the webhook, then write them to .env.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎥 Vidpilot Setup"))

	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureSheet(cmd.Context(), env); err != nil {
		return err
	}
	if err := configureVideoKeys(env); err != nil {
		return err
	}
	if err := configureOptionalKeys(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureSheet(ctx context.Context, env map[string]string) error {
	var sheetID, apiKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google Sheet ID").
				Description("The ID from the sheet URL, between /d/ and /edit").
				Value(&sheetID).
				Validate(required("Sheet ID")),
			huh.NewInput().
				Title("Google Sheets API Key").
				Description("Leave empty to use application default credentials").
				Value(&apiKey),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	env["SHEET_ID"] = strings.TrimSpace(sheetID)
	if key := strings.TrimSpace(apiKey); key != "" {
		env["GOOGLE_SHEETS_API_KEY"] = key
	}

	return verifySheetAccess(ctx, env["SHEET_ID"], env["GOOGLE_SHEETS_API_KEY"])
}

// verifySheetAccess fetches the first data row so a typo in the sheet ID
// surfaces now instead of during the first scheduled run.
func verifySheetAccess(ctx context.Context, sheetID, apiKey string) error {
	if apiKey == "" {
		fmt.Println(infoStyle.Render("Skipping sheet check, no API key provided"))
		return nil
	}

	var checkErr error
	_ = spinner.New().
		Title("Checking sheet access").
		Action(func() {
			provider, err := sheet.NewSheetsProvider(ctx, sheetID, "A:Z", option.WithAPIKey(apiKey))
			if err != nil {
				checkErr = err
				return
			}
			_, checkErr = provider.Fetch(ctx, state.BaseRow)
		}).
		Run()

	switch {
	case checkErr == nil:
		fmt.Println(successStyle.Render("✓ Sheet reachable"))
	case errors.Is(checkErr, sheet.ErrRowNotFound):
		fmt.Println(warnStyle.Render("Sheet reachable but has no data rows yet"))
	default:
		fmt.Println(warnStyle.Render(fmt.Sprintf("Sheet check failed: %v", checkErr)))
	}
	return nil
}

func configureVideoKeys(env map[string]string) error {
	var clientID, clientSecret, socialKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pictory Client ID").
				Description("Leave empty to simulate video rendering").
				Value(&clientID),
			huh.NewInput().
				Title("Pictory Client Secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret),
			huh.NewInput().
				Title("SocialPilot API Key").
				Description("Leave empty to simulate posting").
				EchoMode(huh.EchoModePassword).
				Value(&socialKey),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	setIfPresent(env, "PICTORY_CLIENT_ID", clientID)
	setIfPresent(env, "PICTORY_CLIENT_SECRET", clientSecret)
	setIfPresent(env, "SOCIALPILOT_API_KEY", socialKey)
	return nil
}

func configureOptionalKeys(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Configure optional integrations?").
		Description("Groq script polish, webhook notifications, GCS archive").
		Value(&setup).
		Run(); err != nil {
		return err
	}
	if !setup {
		return nil
	}

	var groqKey, webhookURL, bucket, project string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Groq API Key").
				Description("https://console.groq.com/keys").
				Value(&groqKey),
			huh.NewInput().
				Title("Webhook URL").
				Description("Zapier or similar, receives a summary after every run").
				Value(&webhookURL),
			huh.NewInput().
				Title("GCS Bucket").
				Description("Bucket for run summaries (optional)").
				Value(&bucket),
			huh.NewInput().
				Title("Google Cloud Project").
				Description("Enables Secret Manager key lookup").
				Value(&project),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	setIfPresent(env, "GROQ_API_KEY", groqKey)
	setIfPresent(env, "ZAPIER_WEBHOOK_URL", webhookURL)
	setIfPresent(env, "GCS_BUCKET", bucket)
	setIfPresent(env, "GOOGLE_CLOUD_PROJECT", project)
	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"SHEET_ID",
		"GOOGLE_SHEETS_API_KEY",
		"PICTORY_CLIENT_ID",
		"PICTORY_CLIENT_SECRET",
		"SOCIALPILOT_API_KEY",
		"GROQ_API_KEY",
		"ZAPIER_WEBHOOK_URL",
		"GCS_BUCKET",
		"GOOGLE_CLOUD_PROJECT",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Check the cursor: vidpilot cursor show")
	fmt.Println("  2. Process one row:  vidpilot once")
	fmt.Println("  3. Schedule it:      vidpilot run --interval 24h")
}

func setIfPresent(env map[string]string, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		env[key] = v
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
