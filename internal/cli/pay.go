package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/checkout"
)

var payFlags struct {
	method     string
	cardNumber string
	cardName   string
	cardExpiry string
	cardCVV    string
	saveCard   bool
	upiID      string
	bank       string
}

var payCmd = &cobra.Command{
	Use:   "pay <booking-id>",
	Short: "Pay for a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, api := newSession()
		defer store.Close()

		store.Hydrate(cmd.Context())
		if !store.IsAuthenticated() {
			return fmt.Errorf("not logged in")
		}

		booking, err := api.GetBooking(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching booking: %w", err)
		}

		details := &models.BookingDetails{
			BusName:       booking.Trip.BusName,
			BusType:       booking.Trip.BusType,
			Source:        booking.Trip.Source,
			Destination:   booking.Trip.Destination,
			JourneyDate:   booking.Trip.JourneyDate,
			DepartureTime: booking.Trip.DepartureTime,
			ArrivalTime:   booking.Trip.ArrivalTime,
			Passengers:    booking.Passengers,
			SelectedSeats: seatsOf(booking.Passengers),
			Fare:          booking.Trip.Fare,
			TotalAmount:   booking.TotalAmount,
		}

		ctrl, err := checkout.NewController(booking.ID, details, store.Profile(), api)
		if err != nil {
			return err
		}

		ctrl.SetMethod(models.PaymentMethod(payFlags.method))
		ctrl.SetCardNumber(payFlags.cardNumber)
		ctrl.SetCardName(payFlags.cardName)
		ctrl.SetCardExpiry(payFlags.cardExpiry)
		ctrl.SetCardCVV(payFlags.cardCVV)
		ctrl.SetSaveCard(payFlags.saveCard)
		ctrl.SetUPIID(payFlags.upiID)
		ctrl.SetBank(payFlags.bank)

		if err := ctrl.Pay(cmd.Context()); err != nil {
			if errors.Is(err, models.ErrPaymentInvalid) {
				printFieldErrors(ctrl.Errors())
				return err
			}
			return err
		}

		receipt := ctrl.Receipt()
		fmt.Println("Payment successful!")
		fmt.Printf("Reference: %s\nAmount: Rs.%d\n", receipt.Reference, receipt.Amount)
		return nil
	},
}

func seatsOf(passengers []models.Passenger) []string {
	seats := make([]string, 0, len(passengers))
	for _, p := range passengers {
		seats = append(seats, p.SeatNumber)
	}
	return seats
}

func printFieldErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Printf("  %s: %s\n", field, errs[field])
	}
}

func init() {
	payCmd.Flags().StringVar(&payFlags.method, "method", string(models.MethodCreditCard), "Payment method: credit_card, upi or net_banking")
	payCmd.Flags().StringVar(&payFlags.cardNumber, "card-number", "", "Card number")
	payCmd.Flags().StringVar(&payFlags.cardName, "card-name", "", "Name on card")
	payCmd.Flags().StringVar(&payFlags.cardExpiry, "expiry", "", "Card expiry (MM/YY)")
	payCmd.Flags().StringVar(&payFlags.cardCVV, "cvv", "", "Card CVV")
	payCmd.Flags().BoolVar(&payFlags.saveCard, "save-card", false, "Save this card for future payments")
	payCmd.Flags().StringVar(&payFlags.upiID, "upi", "", "UPI ID (e.g., name@upi)")
	payCmd.Flags().StringVar(&payFlags.bank, "bank", "", "Net banking bank: hdfc, sbi, icici, axis or kotak")
	rootCmd.AddCommand(payCmd)
}
