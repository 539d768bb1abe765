package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookingsCursor string

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your bookings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, api := newSession()
		defer store.Close()

		store.Hydrate(cmd.Context())
		if !store.IsAuthenticated() {
			return fmt.Errorf("not logged in")
		}

		ans, err := api.ListBookings(cmd.Context(), bookingsCursor)
		if err != nil {
			return fmt.Errorf("listing bookings: %w", err)
		}

		if len(ans.Bookings) == 0 {
			fmt.Println("No bookings")
			return nil
		}
		for _, b := range ans.Bookings {
			fmt.Printf("%s  %s -> %s  %s  %s  Rs.%d\n",
				b.ID, b.Trip.Source, b.Trip.Destination,
				b.Trip.JourneyDate.Format("2006-01-02"), b.Status, b.TotalAmount)
		}
		if ans.Cursor != "" {
			fmt.Printf("More: --cursor %s\n", ans.Cursor)
		}
		return nil
	},
}

func init() {
	bookingsCmd.Flags().StringVar(&bookingsCursor, "cursor", "", "Pagination cursor from a previous page")
	rootCmd.AddCommand(bookingsCmd)
}
