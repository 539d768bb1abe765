package checkout_test

import (
	"context"
	"testing"
	"time"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/checkout"
	"github.com/swiftbus/api/internal/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validDetails() *models.BookingDetails {
	return &models.BookingDetails{
		BusName:       "Shatabdi Express",
		BusType:       "AC Sleeper",
		Source:        "Mumbai",
		Destination:   "Pune",
		JourneyDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		DepartureTime: "21:30",
		ArrivalTime:   "05:15",
		Passengers: []models.Passenger{
			{Name: "Asha", Age: 34, Gender: "female", SeatNumber: "A1"},
			{Name: "Ravi", Age: 36, Gender: "male", SeatNumber: "A2"},
		},
		SelectedSeats: []string{"A1", "A2"},
		Fare:          450,
		TotalAmount:   900,
	}
}

func newController(t *testing.T, payments *mocks.MockPaymentAPI) *checkout.Controller {
	t.Helper()
	ctrl, err := checkout.NewController(uuid.New(), validDetails(), &models.Profile{
		Username: "asha",
		Email:    "asha@example.com",
		Phone:    "+919876543210",
	}, payments)
	require.NoError(t, err)
	return ctrl
}

func TestNewControllerRejectsEmptyPassengers(t *testing.T) {
	payments := new(mocks.MockPaymentAPI)

	_, err := checkout.NewController(uuid.New(), &models.BookingDetails{}, nil, payments)
	assert.ErrorIs(t, err, models.ErrNoPassengers)

	_, err = checkout.NewController(uuid.New(), nil, nil, payments)
	assert.ErrorIs(t, err, models.ErrNoPassengers)
}

func TestContactPrefill(t *testing.T) {
	ctrl := newController(t, new(mocks.MockPaymentAPI))

	contact := ctrl.Contact()
	assert.Equal(t, "asha", contact.Name)
	assert.Equal(t, "asha@example.com", contact.Email)
	assert.Equal(t, "+919876543210", contact.Phone)
}

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw digits", "4111111111111111", "4111 1111 1111 1111"},
		{"already formatted is idempotent", "1234 5678 9012 3456", "1234 5678 9012 3456"},
		{"partial entry", "411111", "4111 11"},
		{"strips letters", "4111-1111 abcd 1111", "4111 1111 1111"},
		{"too short passes through", "123", "123"},
		{"empty passes through", "", ""},
		{"letters only pass through", "abcd", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkout.FormatCardNumber(tt.input))
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw digits", "1225", "12/25"},
		{"partial month", "1", "1"},
		{"two digits stay bare", "12", "12"},
		{"three digits gain the slash", "122", "12/2"},
		{"extra digits truncated", "122534", "12/25"},
		{"non digits stripped", "12/25", "12/25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkout.FormatExpiry(tt.input))
		})
	}
}

func TestSanitizeCVV(t *testing.T) {
	assert.Equal(t, "123", checkout.SanitizeCVV("123"))
	assert.Equal(t, "123", checkout.SanitizeCVV("1a2b3c"))
	assert.Equal(t, "1234", checkout.SanitizeCVV("123456"))
	assert.Equal(t, "", checkout.SanitizeCVV("abc"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		form       checkout.Form
		wantFields []string
	}{
		{
			name: "valid card",
			form: checkout.Form{
				Method:     models.MethodCreditCard,
				CardNumber: "4111111111111111",
				CardName:   "A",
				CardExpiry: "12/25",
				CardCVV:    "123",
			},
			wantFields: nil,
		},
		{
			name: "valid formatted card number",
			form: checkout.Form{
				Method:     models.MethodCreditCard,
				CardNumber: "4111 1111 1111 1111",
				CardName:   "Asha Rao",
				CardExpiry: "01/27",
				CardCVV:    "1234",
			},
			wantFields: nil,
		},
		{
			name: "short card number only flags cardNumber",
			form: checkout.Form{
				Method:     models.MethodCreditCard,
				CardNumber: "123",
				CardName:   "Asha Rao",
				CardExpiry: "12/25",
				CardCVV:    "123",
			},
			wantFields: []string{"cardNumber"},
		},
		{
			name:       "empty card form flags every field",
			form:       checkout.Form{Method: models.MethodCreditCard},
			wantFields: []string{"cardNumber", "cardName", "cardExpiry", "cardCvv"},
		},
		{
			name: "bad expiry format",
			form: checkout.Form{
				Method:     models.MethodCreditCard,
				CardNumber: "4111111111111111",
				CardName:   "Asha Rao",
				CardExpiry: "1225",
				CardCVV:    "123",
			},
			wantFields: []string{"cardExpiry"},
		},
		{
			name: "cvv too long",
			form: checkout.Form{
				Method:     models.MethodCreditCard,
				CardNumber: "4111111111111111",
				CardName:   "Asha Rao",
				CardExpiry: "12/25",
				CardCVV:    "12345",
			},
			wantFields: []string{"cardCvv"},
		},
		{
			name:       "valid upi id",
			form:       checkout.Form{Method: models.MethodUPI, UPIID: "name@upi"},
			wantFields: nil,
		},
		{
			name:       "upi id without at-sign",
			form:       checkout.Form{Method: models.MethodUPI, UPIID: "invalid"},
			wantFields: []string{"upiId"},
		},
		{
			name:       "upi id missing",
			form:       checkout.Form{Method: models.MethodUPI},
			wantFields: []string{"upiId"},
		},
		{
			name:       "net banking without bank",
			form:       checkout.Form{Method: models.MethodNetBanking},
			wantFields: []string{"bank"},
		},
		{
			name:       "net banking with bank",
			form:       checkout.Form{Method: models.MethodNetBanking, Bank: "hdfc"},
			wantFields: nil,
		},
		{
			name: "upi method ignores populated card fields",
			form: checkout.Form{
				Method:     models.MethodUPI,
				UPIID:      "name@upi",
				CardNumber: "123",
				CardCVV:    "9",
			},
			wantFields: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := checkout.Validate(tt.form)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestPayBlockedByValidation(t *testing.T) {
	payments := new(mocks.MockPaymentAPI)
	ctrl := newController(t, payments)

	ctrl.SetMethod(models.MethodNetBanking)

	err := ctrl.Pay(context.Background())
	assert.ErrorIs(t, err, models.ErrPaymentInvalid)
	assert.Contains(t, ctrl.Errors(), "bank")
	assert.False(t, ctrl.Confirmed())
	payments.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}

func TestPaySuccess(t *testing.T) {
	payments := new(mocks.MockPaymentAPI)
	payments.On("Checkout", mock.Anything, mock.AnythingOfType("*models.PaymentRequest")).
		Return(&models.PaymentReceipt{
			Reference: "ref-1",
			Status:    models.StatusConfirmed,
			Amount:    900,
		}, nil)

	ctrl := newController(t, payments)
	ctrl.SetMethod(models.MethodUPI)
	ctrl.SetUPIID("asha@upi")

	err := ctrl.Pay(context.Background())
	require.NoError(t, err)

	assert.True(t, ctrl.Confirmed())
	assert.False(t, ctrl.Submitting())
	assert.Empty(t, ctrl.Errors())
	require.NotNil(t, ctrl.Receipt())
	assert.Equal(t, "ref-1", ctrl.Receipt().Reference)
	payments.AssertExpectations(t)
}

func TestPayFailureKeepsForm(t *testing.T) {
	payments := new(mocks.MockPaymentAPI)
	payments.On("Checkout", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	ctrl := newController(t, payments)
	ctrl.SetMethod(models.MethodUPI)
	ctrl.SetUPIID("asha@upi")

	err := ctrl.Pay(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrPaymentInvalid)

	// form stays populated for a manual retry
	assert.Equal(t, "asha@upi", ctrl.Form().UPIID)
	assert.False(t, ctrl.Confirmed())
	assert.False(t, ctrl.Submitting())
	assert.Empty(t, ctrl.Errors())
}

func TestPayRejectsConcurrentSubmission(t *testing.T) {
	payments := new(mocks.MockPaymentAPI)
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	var ctrl *checkout.Controller
	payments.On("Checkout", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-release
		}).
		Return(&models.PaymentReceipt{Reference: "ref-1"}, nil)

	ctrl = newController(t, payments)
	ctrl.SetMethod(models.MethodUPI)
	ctrl.SetUPIID("asha@upi")

	go func() {
		firstDone <- ctrl.Pay(context.Background())
	}()

	assert.Eventually(t, ctrl.Submitting, time.Second, time.Millisecond)

	err := ctrl.Pay(context.Background())
	assert.ErrorIs(t, err, models.ErrPaymentInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.True(t, ctrl.Confirmed())
}

func TestSettersApplyFormatting(t *testing.T) {
	ctrl := newController(t, new(mocks.MockPaymentAPI))

	ctrl.SetCardNumber("4111111111111111")
	ctrl.SetCardExpiry("1225")
	ctrl.SetCardCVV("12x3")

	form := ctrl.Form()
	assert.Equal(t, "4111 1111 1111 1111", form.CardNumber)
	assert.Equal(t, "12/25", form.CardExpiry)
	assert.Equal(t, "123", form.CardCVV)
}

func TestSummary(t *testing.T) {
	ctrl := newController(t, new(mocks.MockPaymentAPI))

	summary := ctrl.Summary()
	assert.Equal(t, 2, summary.SeatCount)
	assert.Equal(t, int64(900), summary.BaseFare)
	assert.Equal(t, int64(0), summary.Tax)
	assert.Equal(t, int64(0), summary.BookingFee)
	assert.Equal(t, int64(900), summary.Total)
}
