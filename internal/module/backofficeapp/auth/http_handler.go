package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	internalMiddleware "github.com/EzraHwang/BTSBackoffice/internal/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	publicMiddleware "github.com/EzraHwang/BTSBackoffice/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/pkg/response"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type HTTPHandler struct {
	Validate    *validator.Validate
	AuthUseCase AuthUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *internalMiddleware.AdminSession, validate *validator.Validate, authUseCase AuthUseCase) {
	handler := &HTTPHandler{
		Validate:    validate,
		AuthUseCase: authUseCase,
	}

	router.HandleFunc("/bts-backoffice/v1/backofficeapp/auth/login", publicMiddleware.SetRouteChain(handler.Login)).Methods(http.MethodPost)
	router.HandleFunc("/bts-backoffice/v1/backofficeapp/auth/logout", publicMiddleware.SetRouteChain(handler.Logout, adminSession.Verify)).Methods(http.MethodPost)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf(strings.Join(errMessages, ", "))
}

func (handler HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.AuthUseCase.Login(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "login successful",
		Data:    resp,
		Meta:    nil,
	})
}

func (handler HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := handler.AuthUseCase.Logout(ctx); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "logout successful",
		Data:    nil,
		Meta:    nil,
	})
}
