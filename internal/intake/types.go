package intake

import (
	"encoding/json"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	"github.com/autorecurso/autorecurso-backend/pkg/genai"
)

// PersonalInfo is the requester form. The driver sub-record applies when the
// vehicle owner was not driving at the time of the infraction.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	CPF      string `json:"cpf"`
	RG       string `json:"rg"`
	CNH      string `json:"cnh"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	Profession  string `json:"profession,omitempty"`
	CivilStatus string `json:"civilStatus,omitempty"`

	IsDifferentDriver bool   `json:"isDifferentDriver,omitempty"`
	DriverFullName    string `json:"driverFullName,omitempty"`
	DriverCPF         string `json:"driverCpf,omitempty"`
	DriverRG          string `json:"driverRg,omitempty"`
	DriverCNH         string `json:"driverCnh,omitempty"`
}

// PersonalInfoPatch is a partial form update; nil fields are left untouched.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName"`
	CPF      *string `json:"cpf"`
	RG       *string `json:"rg"`
	CNH      *string `json:"cnh"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`

	Profession  *string `json:"profession"`
	CivilStatus *string `json:"civilStatus"`

	IsDifferentDriver *bool   `json:"isDifferentDriver"`
	DriverFullName    *string `json:"driverFullName"`
	DriverCPF         *string `json:"driverCpf"`
	DriverRG          *string `json:"driverRg"`
	DriverCNH         *string `json:"driverCnh"`
}

// SessionState is the full session view returned to clients, including what a
// browser needs to hydrate after the payment redirect.
type SessionState struct {
	ID                 string                `json:"id"`
	Step               enums.AppStep         `json:"step"`
	Ticket             *genai.TicketAnalysis `json:"ticket,omitempty"`
	SelectedStrategyID string                `json:"selectedStrategyId,omitempty"`
	UserReason         string                `json:"userReason,omitempty"`
	PersonalInfo       PersonalInfo          `json:"personalInfo"`
	BillingID          string                `json:"billingId,omitempty"`
	FinalDocument      string                `json:"finalDocument,omitempty"`
}

// CheckoutResult reports how StartCheckout resolved: a free generation ran to
// completion, or a hosted checkout awaits payment.
type CheckoutResult struct {
	Free        bool         `json:"free"`
	CheckoutURL string       `json:"checkoutUrl,omitempty"`
	Session     SessionState `json:"session"`
}

func stateFromModel(row models.IntakeSession) SessionState {
	state := SessionState{
		ID:                 row.ID,
		Step:               row.Step,
		SelectedStrategyID: row.SelectedStrategyID,
		UserReason:         row.UserReason,
		BillingID:          row.BillingID,
		FinalDocument:      row.FinalDocument,
	}

	// Malformed payload columns degrade to empty values rather than failing.
	if len(row.TicketInfo) > 0 {
		var ticket genai.TicketAnalysis
		if err := json.Unmarshal(row.TicketInfo, &ticket); err == nil {
			state.Ticket = &ticket
		}
	}
	if len(row.PersonalInfo) > 0 {
		var personal PersonalInfo
		if err := json.Unmarshal(row.PersonalInfo, &personal); err == nil {
			state.PersonalInfo = personal
		}
	}

	return state
}
