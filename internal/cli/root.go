// Package cli is the terminal client for the booking API. It owns the
// single session store instance; commands receive it by reference and
// never reach for ambient state.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/swiftbus/api/internal/client"
	"github.com/swiftbus/api/internal/session"
)

var (
	apiURL    string
	tokenPath string
)

const defaultAPIURL = "http://localhost:5000"

var rootCmd = &cobra.Command{
	Use:   "swiftbus",
	Short: "Book bus tickets from the terminal",
	Long: `swiftbus is a terminal client for the SwiftBus booking API:
log in, review bookings and pay for pending ones.

Environment Variables:
  API_URL     Backend API URL (default: http://localhost:5000)
  TOKEN_PATH  Where the login token is stored`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token-path", "", "Token slot path (overrides TOKEN_PATH)")
}

func getAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

func getTokenPath() string {
	if tokenPath != "" {
		return tokenPath
	}
	if envPath := os.Getenv("TOKEN_PATH"); envPath != "" {
		return envPath
	}
	return session.DefaultTokenPath()
}

// newSession builds the api client and the session store around the
// persisted token slot. The token source keeps authenticated calls in
// step with login/logout.
func newSession() (*session.Store, *client.Client) {
	tokens := session.NewFileStore(getTokenPath())

	var store *session.Store
	api := client.New(
		client.WithBaseURL(getAPIURL()),
		client.WithTokenSource(func() string {
			return store.Token()
		}),
	)
	store = session.NewStore(tokens, api)
	return store, api
}
