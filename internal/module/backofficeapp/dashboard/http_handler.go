package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	internalMiddleware "github.com/EzraHwang/BTSBackoffice/internal/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	publicMiddleware "github.com/EzraHwang/BTSBackoffice/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/pkg/response"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type HTTPHandler struct {
	Validate         *validator.Validate
	DashboardUseCase DashboardUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *internalMiddleware.AdminSession, validate *validator.Validate, dashboardUseCase DashboardUseCase) {
	handler := &HTTPHandler{
		Validate:         validate,
		DashboardUseCase: dashboardUseCase,
	}

	router.HandleFunc("/bts-backoffice/v1/backofficeapp/dashboard", publicMiddleware.SetRouteChain(handler.GetDashboard, adminSession.Verify)).Methods(http.MethodGet)
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

func (handler HTTPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()

	req := GetDashboardRequest{}
	req.Range = qs.Get("range")
	if req.Range == "" {
		req.Range = RangeToday
	}

	if v := qs.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
				Status:  status.BAD_REQUEST,
				Message: fmt.Sprintf("invalid 'start_date' with value '%s'", v),
			})

			return
		}
		req.StartDate = &t
	}

	if v := qs.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
				Status:  status.BAD_REQUEST,
				Message: fmt.Sprintf("invalid 'end_date' with value '%s'", v),
			})

			return
		}
		req.EndDate = &t
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.DashboardUseCase.GetDashboard(ctx, req)
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
		Message: "dashboard data for the requested range",
		Data:    resp,
		Meta:    nil,
	})
}
