// Package checkout holds the payment form state for a single checkout
// visit: method selection, field validation, input formatting and the
// guarded handoff to the payment collaborator.
package checkout

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
)

// Banks offered under net banking.
var Banks = []string{"hdfc", "sbi", "icici", "axis", "kotak"}

type Form struct {
	Method     models.PaymentMethod
	CardNumber string
	CardName   string
	CardExpiry string
	CardCVV    string
	SaveCard   bool
	UPIID      string
	Bank       string
}

// Contact is prefilled once from the session identity at construction.
// Later edits to the session do not propagate here.
type Contact struct {
	Name  string
	Email string
	Phone string
}

type Summary struct {
	SeatCount  int
	BaseFare   int64
	Tax        int64
	BookingFee int64
	Total      int64
}

type Controller struct {
	mu        sync.Mutex
	bookingID uuid.UUID
	details   *models.BookingDetails
	form      Form
	contact   Contact
	errors    map[string]string
	inFlight  bool
	confirmed bool
	receipt   *models.PaymentReceipt
	payments  ports.PaymentAPI
}

// NewController refuses to operate on a booking context without
// passengers; the caller must redirect home on ErrNoPassengers.
func NewController(bookingID uuid.UUID, details *models.BookingDetails, profile *models.Profile, payments ports.PaymentAPI) (*Controller, error) {
	if details == nil || len(details.Passengers) == 0 {
		return nil, models.ErrNoPassengers
	}

	c := &Controller{
		bookingID: bookingID,
		details:   details,
		form:      Form{Method: models.MethodCreditCard},
		errors:    map[string]string{},
		payments:  payments,
	}
	if profile != nil {
		c.contact = Contact{
			Name:  profile.Username,
			Email: profile.Email,
			Phone: profile.Phone,
		}
	}
	return c, nil
}

var (
	nonDigit    = regexp.MustCompile(`\D`)
	whitespace  = regexp.MustCompile(`\s`)
	digitRun    = regexp.MustCompile(`\d{4,16}`)
	cardPattern = regexp.MustCompile(`^\d{16}$`)
	expPattern  = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern  = regexp.MustCompile(`^\d{3,4}$`)
	upiPattern  = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
)

// Validate maps the current form state to field errors. The result
// replaces any previous mapping wholesale; only the selected method's
// fields are checked.
func Validate(f Form) map[string]string {
	errs := make(map[string]string)

	switch f.Method {
	case models.MethodCreditCard:
		if strings.TrimSpace(f.CardNumber) == "" {
			errs["cardNumber"] = "Card number is required"
		} else if !cardPattern.MatchString(whitespace.ReplaceAllString(f.CardNumber, "")) {
			errs["cardNumber"] = "Card number must be 16 digits"
		}

		if strings.TrimSpace(f.CardName) == "" {
			errs["cardName"] = "Name on card is required"
		}

		if strings.TrimSpace(f.CardExpiry) == "" {
			errs["cardExpiry"] = "Expiry date is required"
		} else if !expPattern.MatchString(f.CardExpiry) {
			errs["cardExpiry"] = "Expiry date must be in MM/YY format"
		}

		if strings.TrimSpace(f.CardCVV) == "" {
			errs["cardCvv"] = "CVV is required"
		} else if !cvvPattern.MatchString(f.CardCVV) {
			errs["cardCvv"] = "CVV must be 3 or 4 digits"
		}
	case models.MethodUPI:
		if strings.TrimSpace(f.UPIID) == "" {
			errs["upiId"] = "UPI ID is required"
		} else if !upiPattern.MatchString(f.UPIID) {
			errs["upiId"] = "Enter a valid UPI ID (e.g., name@upi)"
		}
	case models.MethodNetBanking:
		if f.Bank == "" {
			errs["bank"] = "Please select a bank"
		}
	}

	return errs
}

// FormatCardNumber regroups the first 4-16 digit run into blocks of
// four. Input without such a run passes through unchanged.
func FormatCardNumber(value string) string {
	v := nonDigit.ReplaceAllString(value, "")
	match := digitRun.FindString(v)
	if match == "" {
		return value
	}

	var parts []string
	for i := 0; i < len(match); i += 4 {
		end := i + 4
		if end > len(match) {
			end = len(match)
		}
		parts = append(parts, match[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry inserts the slash after the second digit and caps the
// result at MM/YY.
func FormatExpiry(value string) string {
	v := nonDigit.ReplaceAllString(value, "")
	if len(v) > 2 {
		if len(v) > 4 {
			v = v[:4]
		}
		return v[:2] + "/" + v[2:]
	}
	return v
}

// SanitizeCVV strips non-digits and caps the field at four digits.
func SanitizeCVV(value string) string {
	v := nonDigit.ReplaceAllString(value, "")
	if len(v) > 4 {
		v = v[:4]
	}
	return v
}

func (c *Controller) SetMethod(m models.PaymentMethod) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Method = m
}

func (c *Controller) SetCardNumber(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CardNumber = FormatCardNumber(value)
}

func (c *Controller) SetCardName(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CardName = value
}

func (c *Controller) SetCardExpiry(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CardExpiry = FormatExpiry(value)
}

func (c *Controller) SetCardCVV(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CardCVV = SanitizeCVV(value)
}

func (c *Controller) SetSaveCard(save bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.SaveCard = save
}

func (c *Controller) SetUPIID(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.UPIID = value
}

func (c *Controller) SetBank(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Bank = value
}

// Pay validates the form and, when it is clean, hands the charge to the
// payment collaborator. A validation failure returns ErrPaymentInvalid
// with the details left in Errors; a collaborator failure is logged and
// returned with the form kept intact for a manual retry.
func (c *Controller) Pay(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return models.ErrPaymentInFlight
	}
	errs := Validate(c.form)
	c.errors = errs
	if len(errs) > 0 {
		c.mu.Unlock()
		return models.ErrPaymentInvalid
	}
	c.inFlight = true
	req := &models.PaymentRequest{
		BookingID: c.bookingID,
		Method:    c.form.Method,
	}
	c.mu.Unlock()

	receipt, err := c.payments.Checkout(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		log.Printf("checkout: payment error: %v", err)
		return fmt.Errorf("processing payment: %w", err)
	}
	c.confirmed = true
	c.receipt = receipt
	return nil
}

// Errors returns a copy of the field error mapping from the last
// validation pass.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether a payment is currently outstanding; the
// presentation layer disables the pay action while it is true.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller) Confirmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed
}

func (c *Controller) Receipt() *models.PaymentReceipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) Contact() Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contact
}

func (c *Controller) Details() *models.BookingDetails {
	return c.details
}

func (c *Controller) Summary() Summary {
	seats := len(c.details.SelectedSeats)
	return Summary{
		SeatCount: seats,
		BaseFare:  c.details.Fare * int64(seats),
		Total:     c.details.TotalAmount,
	}
}
