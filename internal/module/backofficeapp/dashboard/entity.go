package dashboard

import "time"

const (
	TicketTypeAll      string = "All"
	TicketTypeTrain    string = "Train"
	TicketTypeEntrance string = "Entrance"
	TicketTypePackage  string = "Package"
)

// TicketTypeLabels maps a provider ticket type to its dashboard label. The
// table is handed to the aggregator explicitly so tests can run with
// alternate label sets; unknown types pass through unlabeled.
var TicketTypeLabels = map[string]string{
	TicketTypeTrain:    "Train ticket",
	TicketTypeEntrance: "Entrance ticket",
	TicketTypePackage:  "Package",
}

// OrderInfo is one purchased ticket as returned by the order-data provider.
// Passenger fields beyond the buyer email, type, creation time and the train
// endpoints are carried through but not used by aggregation.
type OrderInfo struct {
	RowNumber      int64     `json:"row_number"`
	PaymentRefno   string    `json:"PaymentRefno"`
	RecipientEmail string    `json:"RecipientEmail"`
	IP             string    `json:"Ip"`
	TicketID       string    `json:"TicketId"`
	FamilyName     string    `json:"FamilyName"`
	GivenName      string    `json:"GivenName"`
	IsAdult        bool      `json:"IsAdult"`
	Session        string    `json:"Session"`
	ArrivalTime    string    `json:"ArrivalTime"`
	Prize          float64   `json:"Prize"`
	Type           string    `json:"Type"`
	BundleName     string    `json:"BundleName"`
	EntranceName   string    `json:"EntranceName"`
	From           string    `json:"From"`
	To             string    `json:"To"`
	Phone          string    `json:"Phone"`
	PassportNumber string    `json:"PassportNumber"`
	Birthday       string    `json:"Birthday"`
	Gender         string    `json:"Gender"`
	Status         string    `json:"Status"`
	TicketURL      string    `json:"TicketUrl"`
	BossEmailID    string    `json:"BossEmailId"`
	CreatedAt      time.Time `json:"CreatedAt"`
	LastUpdateAt   time.Time `json:"LastUpdateAt"`
}

// Quantity returns the ticket count this record contributes. Each provider
// row is exactly one ticket.
func (o OrderInfo) Quantity() int {
	return 1
}

// DateRange holds the resolved date bounds of a dashboard query in the
// reference time zone. Invariant: Start is never after End. The daily series
// covers every calendar day from Start through End inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DashboardStats is the complete aggregation result for one range. It is
// built once per request and treated as immutable afterwards; cached copies
// are shared read-only.
type DashboardStats struct {
	TotalTicketsSold           int
	TotalUsers                 int
	TotalPurchasingUsers       int
	DailyTickets               []DailyTicket
	TicketTypes                []TicketTypeAnalytics
	HourlyPurchaseDistribution []HourlyPurchase
	PopularStations            []StationAnalytics

	// Synthetic marks fallback-generated data. It is never cached and is
	// not exposed to API callers.
	Synthetic bool
}

type DailyTicket struct {
	Date  string
	Value int
}

type TicketTypeAnalytics struct {
	Type       string
	Label      string
	Count      int
	Users      int
	Percentage float64
}

type HourlyPurchase struct {
	Hour          int
	PurchaseCount int
	UserCount     int
	TimeLabel     string
}

type StationAnalytics struct {
	StationName string
	Route       string
	TicketCount int
	UserCount   int
}
