package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsmith/workspace-mcp/internal/google"
	"github.com/docsmith/workspace-mcp/internal/mcp/oauth_library"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth [account]",
		Short: "Authorize a Google account",
		Long: `Run the Google OAuth flow for an account and store the resulting token
locally. The token is then used by the MCP server for that account.

Requires GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET to be set.

Visit the printed URL in a browser, grant access, and paste the
authorization code back into the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := "default"
			if len(args) == 1 {
				account = args[0]
			}
			return runAuth(cmd.Context(), account)
		},
	}
	return cmd
}

func runAuth(ctx context.Context, account string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if google.HasTokenForAccount(account) {
		fmt.Printf("Account %q is already authorized. Continuing will replace the stored token.\n\n", account)
	}

	authURL, err := google.GetAuthURLForAccount(account)
	if err != nil {
		return fmt.Errorf("failed to build authorization URL: %w", err)
	}

	fmt.Printf("Visit this URL in your browser to authorize account %q:\n\n  %s\n\n", account, authURL)
	fmt.Print("Enter the authorization code (or paste the full redirect URL): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code, err := oauth_library.ExtractAuthCode(input)
	if err != nil {
		if oauth_library.IsSilentAuthError(err) {
			return fmt.Errorf("authorization needs user interaction, visit the URL again and complete the consent screen: %w", err)
		}
		return err
	}

	if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	fmt.Printf("Token saved for account %q.\n", account)
	return nil
}
