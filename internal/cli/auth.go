package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and persist the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, api := newSession()
		defer store.Close()

		ans, err := api.Login(cmd.Context(), args[0], loginPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		store.Login(ans.Token, ans.Username)
		fmt.Printf("Logged in as %s\n", ans.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := newSession()
		defer store.Close()

		store.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := newSession()
		defer store.Close()

		store.Hydrate(cmd.Context())
		username, ok := store.Username()
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Println(username)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
