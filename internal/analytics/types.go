package analytics

import "github.com/shopspring/decimal"

// EventData is the denormalized bag attached to every event. All fields are
// optional; amounts are in reais.
type EventData struct {
	CustomerName  string   `json:"customerName,omitempty"`
	CustomerEmail string   `json:"customerEmail,omitempty"`
	CustomerCPF   string   `json:"customerCpf,omitempty"`
	CustomerPhone string   `json:"customerPhone,omitempty"`
	TicketPlate   string   `json:"ticketPlate,omitempty"`
	TicketArticle string   `json:"ticketArticle,omitempty"`
	ErrorMessage  string   `json:"errorMessage,omitempty"`
	BillingID     string   `json:"billingId,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	IsFree        bool     `json:"isFree,omitempty"`
}

// Stats is the aggregated admin dashboard view.
type Stats struct {
	TotalResources int `json:"totalResources"`
	TotalPayments  int `json:"totalPayments"`
	TotalErrors    int `json:"totalErrors"`
	TotalAbandoned int `json:"totalAbandoned"`

	ResourcesLast24h int `json:"resourcesLast24h"`
	PaymentsLast24h  int `json:"paymentsLast24h"`
	ErrorsLast24h    int `json:"errorsLast24h"`

	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	SuccessRate  string          `json:"successRate"`

	IsFreeGenerationEnabled bool `json:"isFreeGenerationEnabled"`
	FreeGenerationLimit     int  `json:"freeGenerationLimit"`
	FreeGenerationsUsed     int  `json:"freeGenerationsUsed"`
}
