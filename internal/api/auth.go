package api

import (
	"net/http"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
	"github.com/swiftbus/api/internal/utils"
	"github.com/swiftbus/api/internal/validator"
)

func RegisterHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.RegisterRequest
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

		user, err := service.Register(r.Context(), &request)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, models.Profile{
			Username: user.Username,
			Email:    user.Email,
			Phone:    user.Phone,
		})
	}
}

func LoginHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.LoginRequest
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

		ans, err := service.Login(r.Context(), &request)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

// CurrentUserHandler resolves the bearer token into the profile used
// to hydrate client sessions.
func CurrentUserHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ae := authenticate(r, service)
		if ae != nil {
			utils.RenderResponse(r, w, ae.StatusCode, *ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, models.Profile{
			Username: user.Username,
			Email:    user.Email,
			Phone:    user.Phone,
		})
	}
}

func authenticate(r *http.Request, service ports.AuthService) (*models.User, *utils.ApiError) {
	token := utils.BearerToken(r)
	if token == "" {
		ae := utils.NewUnauthorized("missing bearer token")
		return nil, &ae
	}
	user, err := service.UserFromToken(r.Context(), token)
	if err != nil {
		ae := utils.NewUnauthorized(models.ErrInvalidToken.Error())
		return nil, &ae
	}
	return user, nil
}
