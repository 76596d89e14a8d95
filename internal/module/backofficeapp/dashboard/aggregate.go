package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// aggregateOrderData reduces raw provider records into the dashboard facets.
// It is a pure function of its inputs.
func aggregateOrderData(orderInfos []OrderInfo, dateRange DateRange, labels map[string]string) DashboardStats {
	totalTickets := 0
	users := make(map[string]struct{})
	byEmail := make(map[string]int)

	for _, o := range orderInfos {
		totalTickets += o.Quantity()
		users[o.RecipientEmail] = struct{}{}
		byEmail[o.RecipientEmail]++
	}

	return DashboardStats{
		TotalTicketsSold:           totalTickets,
		TotalUsers:                 len(users),
		TotalPurchasingUsers:       len(byEmail),
		DailyTickets:               aggregateDaily(orderInfos, dateRange),
		TicketTypes:                aggregateTicketTypes(orderInfos, totalTickets, labels),
		HourlyPurchaseDistribution: aggregateHourly(orderInfos),
		PopularStations:            aggregateStations(orderInfos),
	}
}

// aggregateDaily walks every calendar day of the range, Start through End
// inclusive, summing the tickets created on that day. Days without orders
// produce a zero entry so the series has no gaps.
func aggregateDaily(orderInfos []OrderInfo, dateRange DateRange) []DailyTicket {
	daily := make([]DailyTicket, 0)

	for date := dateRange.Start; !date.After(dateRange.End); date = date.AddDate(0, 0, 1) {
		value := 0
		for _, o := range orderInfos {
			if sameDate(o.CreatedAt, date) {
				value += o.Quantity()
			}
		}

		daily = append(daily, DailyTicket{
			Date:  date.Format("2006-01-02"),
			Value: value,
		})
	}

	return daily
}

func aggregateTicketTypes(orderInfos []OrderInfo, totalTickets int, labels map[string]string) []TicketTypeAnalytics {
	// Group in first-encounter order so the output is deterministic.
	var types []string
	groups := make(map[string][]OrderInfo)

	for _, o := range orderInfos {
		if _, ok := groups[o.Type]; !ok {
			types = append(types, o.Type)
		}
		groups[o.Type] = append(groups[o.Type], o)
	}

	analytics := make([]TicketTypeAnalytics, 0, len(types))
	for _, t := range types {
		count := 0
		groupUsers := make(map[string]struct{})
		for _, o := range groups[t] {
			count += o.Quantity()
			groupUsers[o.RecipientEmail] = struct{}{}
		}

		percentage := 0.0
		if totalTickets > 0 {
			percentage = roundToTwoDecimals(float64(count) / float64(totalTickets) * 100)
		}

		label, ok := labels[t]
		if !ok {
			label = t
		}

		analytics = append(analytics, TicketTypeAnalytics{
			Type:       t,
			Label:      label,
			Count:      count,
			Users:      len(groupUsers),
			Percentage: percentage,
		})
	}

	return analytics
}

// aggregateHourly buckets purchases by the hour-of-day component of the
// record's creation timestamp. Only hours with at least one record appear,
// sorted ascending.
func aggregateHourly(orderInfos []OrderInfo) []HourlyPurchase {
	groups := make(map[int][]OrderInfo)
	for _, o := range orderInfos {
		hour := o.CreatedAt.Hour()
		groups[hour] = append(groups[hour], o)
	}

	hours := make([]int, 0, len(groups))
	for hour := range groups {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	hourly := make([]HourlyPurchase, 0, len(hours))
	for _, hour := range hours {
		count := 0
		hourUsers := make(map[string]struct{})
		for _, o := range groups[hour] {
			count += o.Quantity()
			hourUsers[o.RecipientEmail] = struct{}{}
		}

		hourly = append(hourly, HourlyPurchase{
			Hour:          hour,
			PurchaseCount: count,
			UserCount:     len(hourUsers),
			TimeLabel:     hourLabel(hour),
		})
	}

	return hourly
}

// aggregateStations ranks train routes by ticket count and keeps the top
// ten. Train records missing either endpoint are excluded.
func aggregateStations(orderInfos []OrderInfo) []StationAnalytics {
	type routeKey struct {
		from string
		to   string
	}

	var routes []routeKey
	groups := make(map[routeKey][]OrderInfo)

	for _, o := range orderInfos {
		if o.Type != TicketTypeTrain || o.From == "" || o.To == "" {
			continue
		}

		key := routeKey{from: o.From, to: o.To}
		if _, ok := groups[key]; !ok {
			routes = append(routes, key)
		}
		groups[key] = append(groups[key], o)
	}

	stations := make([]StationAnalytics, 0, len(routes))
	for _, key := range routes {
		count := 0
		routeUsers := make(map[string]struct{})
		for _, o := range groups[key] {
			count += o.Quantity()
			routeUsers[o.RecipientEmail] = struct{}{}
		}

		stations = append(stations, StationAnalytics{
			StationName: key.from,
			Route:       fmt.Sprintf("%s → %s", key.from, key.to),
			TicketCount: count,
			UserCount:   len(routeUsers),
		})
	}

	sort.SliceStable(stations, func(i, j int) bool {
		return stations[i].TicketCount > stations[j].TicketCount
	})

	if len(stations) > 10 {
		stations = stations[:10]
	}

	return stations
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
