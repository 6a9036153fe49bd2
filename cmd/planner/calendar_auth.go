package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"ai-task-planner/pkg/gcalendar"
)

func newCalendarAuthCmd(opts *rootOptions) *cobra.Command {
	var credsPath, tokenPath string

	cmd := &cobra.Command{
		Use:   "calendar-auth",
		Short: "Authorize Google Calendar access and save the OAuth token",
		Long: `Run once with OAuth desktop app credentials. Open the printed URL, sign in,
paste the authorization code back; the token is saved for the API server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over config; the config is optional here.
			if credsPath == "" || tokenPath == "" {
				if cfg, _, err := opts.load(); err == nil {
					if credsPath == "" {
						credsPath = cfg.GoogleCalendar.CredentialsPath
					}
					if tokenPath == "" {
						tokenPath = cfg.GoogleCalendar.TokenPath
					}
				}
			}
			if credsPath == "" {
				return fmt.Errorf("--credentials is required")
			}
			if tokenPath == "" {
				tokenPath = gcalendar.DefaultTokenPath
			}

			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("read credentials %q: %w", credsPath, err)
			}
			oauthCfg, err := gcalendar.OAuthConfigFromJSON(data)
			if err != nil {
				return fmt.Errorf("%w (is %q an OAuth desktop app credentials file?)", err, credsPath)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "BƯỚC 1: Mở URL sau trong trình duyệt và đăng nhập Google Account:")
			fmt.Fprintln(w)
			fmt.Fprintln(w, oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			fmt.Fprintln(w)
			fmt.Fprint(w, "BƯỚC 2: Dán authorization code từ trình duyệt vào đây rồi Enter: ")

			var code string
			if _, err := fmt.Fscan(cmd.InOrStdin(), &code); err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}

			tok, err := oauthCfg.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
				return err
			}

			fmt.Fprintf(w, "\nĐã lưu token tại: %s\n", tokenPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&credsPath, "credentials", "", "OAuth credentials file (default: google_calendar.credentials_path)")
	cmd.Flags().StringVar(&tokenPath, "token", "", "where to save the token (default: google_calendar.token_path)")
	return cmd
}
