package dashboard

import "time"

type GetDashboardRequest struct {
	Range     string     `validate:"required"`
	StartDate *time.Time `validate:"omitempty"`
	EndDate   *time.Time `validate:"omitempty"`
}
