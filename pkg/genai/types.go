package genai

// DefenseStrategy is one argument line proposed by the vision analysis.
type DefenseStrategy struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PersonalInfo is the owner data extracted from a document photo. Fields the
// model cannot read come back as empty strings.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	CPF      string `json:"cpf"`
	RG       string `json:"rg"`
	CNH      string `json:"cnh"`
	Address  string `json:"address"`
}

// TicketAnalysis is the structured reading of a traffic ticket photo.
type TicketAnalysis struct {
	ViolationType         string            `json:"violationType"`
	Article               string            `json:"article"`
	Location              string            `json:"location"`
	Date                  string            `json:"date"`
	VehiclePlate          string            `json:"vehiclePlate"`
	Authority             string            `json:"authority"`
	ExtractedPersonalInfo *PersonalInfo     `json:"extractedPersonalInfo,omitempty"`
	Strategies            []DefenseStrategy `json:"strategies"`
}

// AppealParams carries everything the document generation prompt needs.
type AppealParams struct {
	Ticket     TicketAnalysis
	Strategy   DefenseStrategy
	UserReason string
	Personal   AppealPersonal
	City       string
	DateLine   string
}

// AppealPersonal is the full requester record for the document header.
type AppealPersonal struct {
	FullName          string
	CPF               string
	RG                string
	CNH               string
	Address           string
	IsDifferentDriver bool
	DriverFullName    string
	DriverCPF         string
	DriverRG          string
	DriverCNH         string
	Profession        string
	CivilStatus       string
}
