package api

import (
	"errors"
	"net/http"
	"strconv"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
	"github.com/swiftbus/api/internal/utils"
	"github.com/swiftbus/api/internal/validator"
)

func BookingHandler(service ports.BookingService, auth ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createBooking(service, auth, w, r)
		case http.MethodGet:
			listBookings(service, auth, w, r)
		}
	}
}

// PaymentHandler is the mock gateway endpoint: it validates the request
// shape, then confirms the booking as if the charge succeeded.
func PaymentHandler(service ports.BookingService, auth ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ae := authenticate(r, auth); ae != nil {
			utils.RenderResponse(r, w, ae.StatusCode, *ae)
			return
		}

		var request models.PaymentRequest
		if err := utils.JsonDecodeBody(r, &request); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(request); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		receipt, err := service.CapturePayment(r.Context(), &request)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, receipt)
	}
}

func createBooking(service ports.BookingService, auth ports.AuthService, w http.ResponseWriter, r *http.Request) {
	user, ae := authenticate(r, auth)
	if ae != nil {
		utils.RenderResponse(r, w, ae.StatusCode, *ae)
		return
	}

	var bookingRequest models.BookingRequest
	if err := utils.JsonDecodeBody(r, &bookingRequest); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}

	v := validator.NewCustomValidator()
	if err := v.Validate(bookingRequest); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}

	ans, err := service.CreateBooking(r.Context(), user.ID, &bookingRequest)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, ans)
}

func listBookings(service ports.BookingService, auth ports.AuthService, w http.ResponseWriter, r *http.Request) {
	user, ae := authenticate(r, auth)
	if ae != nil {
		utils.RenderResponse(r, w, ae.StatusCode, *ae)
		return
	}

	if id := r.URL.Query().Get("uuid"); id != "" {
		booking, err := service.GetBooking(r.Context(), user.ID, id)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, booking)
		return
	}

	req := models.GetBookingsRequest{
		UserID: user.ID,
		Cursor: r.URL.Query().Get("cursor"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			ae := utils.NewBadRequest("invalid limit")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		req.Limit = n
	}

	ans, err := service.AllBookings(r.Context(), req)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, ans)
}

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrInvalidUUID),
		errors.Is(err, models.ErrNoPassengers),
		errors.Is(err, models.ErrSeatCountMismatch),
		errors.Is(err, models.ErrSeatAssignment):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidToken):
		ae.StatusCode = http.StatusUnauthorized
	case errors.Is(err, models.ErrMissingTrip),
		errors.Is(err, models.ErrBookingNotFound):
		ae.StatusCode = http.StatusNotFound
	case errors.Is(err, models.ErrUsernameTaken),
		errors.Is(err, models.ErrSeatsUnavailable),
		errors.Is(err, models.ErrBookingNotPending):
		ae.StatusCode = http.StatusConflict
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}
