package dashboard

import "time"

type GetDashboardResponse struct {
	TotalTicketsSold           int                      `json:"total_tickets_sold"`
	TotalUsers                 int                      `json:"total_users"`
	TotalPurchasingUsers       int                      `json:"total_purchasing_users"`
	DailyTickets               []DailyTicketResponse    `json:"daily_tickets"`
	TicketTypes                []TicketTypeResponse     `json:"ticket_types"`
	HourlyPurchaseDistribution []HourlyPurchaseResponse `json:"hourly_purchase_distribution"`
	PopularStations            []StationResponse        `json:"popular_stations"`
	SelectedRange              string                   `json:"selected_range"`
	LastSync                   time.Time                `json:"last_sync"`
}

type DailyTicketResponse struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type TicketTypeResponse struct {
	Type       string  `json:"type"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Users      int     `json:"users"`
	Percentage float64 `json:"percentage"`
}

type HourlyPurchaseResponse struct {
	Hour          int    `json:"hour"`
	PurchaseCount int    `json:"purchase_count"`
	UserCount     int    `json:"user_count"`
	TimeLabel     string `json:"time_label"`
}

type StationResponse struct {
	StationName string `json:"station_name"`
	Route       string `json:"route"`
	TicketCount int    `json:"ticket_count"`
	UserCount   int    `json:"user_count"`
}

func (r *GetDashboardResponse) PopulateFromEntity(stats DashboardStats, selectedRange string, lastSync time.Time) {
	r.TotalTicketsSold = stats.TotalTicketsSold
	r.TotalUsers = stats.TotalUsers
	r.TotalPurchasingUsers = stats.TotalPurchasingUsers
	r.SelectedRange = selectedRange
	r.LastSync = lastSync

	r.DailyTickets = make([]DailyTicketResponse, len(stats.DailyTickets))
	for k, v := range stats.DailyTickets {
		r.DailyTickets[k] = DailyTicketResponse{
			Date:  v.Date,
			Value: v.Value,
		}
	}

	r.TicketTypes = make([]TicketTypeResponse, len(stats.TicketTypes))
	for k, v := range stats.TicketTypes {
		r.TicketTypes[k] = TicketTypeResponse{
			Type:       v.Type,
			Label:      v.Label,
			Count:      v.Count,
			Users:      v.Users,
			Percentage: v.Percentage,
		}
	}

	r.HourlyPurchaseDistribution = make([]HourlyPurchaseResponse, len(stats.HourlyPurchaseDistribution))
	for k, v := range stats.HourlyPurchaseDistribution {
		r.HourlyPurchaseDistribution[k] = HourlyPurchaseResponse{
			Hour:          v.Hour,
			PurchaseCount: v.PurchaseCount,
			UserCount:     v.UserCount,
			TimeLabel:     v.TimeLabel,
		}
	}

	r.PopularStations = make([]StationResponse, len(stats.PopularStations))
	for k, v := range stats.PopularStations {
		r.PopularStations[k] = StationResponse{
			StationName: v.StationName,
			Route:       v.Route,
			TicketCount: v.TicketCount,
			UserCount:   v.UserCount,
		}
	}
}
