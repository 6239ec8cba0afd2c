package intake

import (
	"strings"

	"github.com/autorecurso/autorecurso-backend/pkg/genai"
)

// placeholderDenylist holds the strings vision models return instead of
// leaving a field empty. Matching is case-insensitive on substrings.
var placeholderDenylist = []string{
	"não visível",
	"não informado",
	"n/a",
	"indisponível",
	"desconhecido",
	"não extraído",
}

// CleanExtractedValue drops AI placeholder strings, returning "" when the
// value is one of them.
func CleanExtractedValue(value string) string {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	for _, placeholder := range placeholderDenylist {
		if strings.Contains(lower, placeholder) {
			return ""
		}
	}
	return trimmed
}

// MergeExtracted fills empty personal fields from a document extraction.
// Values already entered by the user are never overwritten, and placeholder
// strings never land in the form.
func MergeExtracted(current PersonalInfo, extracted *genai.PersonalInfo) PersonalInfo {
	if extracted == nil {
		return current
	}

	fill := func(target *string, value string) {
		if *target == "" {
			if cleaned := CleanExtractedValue(value); cleaned != "" {
				*target = cleaned
			}
		}
	}

	fill(&current.FullName, extracted.FullName)
	fill(&current.CPF, extracted.CPF)
	fill(&current.RG, extracted.RG)
	fill(&current.CNH, extracted.CNH)
	fill(&current.Address, extracted.Address)

	return current
}

// ValidateCPF checks the two verification digits of a Brazilian CPF. Input
// may carry the usual punctuation; sequences of a single repeated digit are
// rejected even when their checksum holds.
func ValidateCPF(cpf string) bool {
	digits := make([]int, 0, 11)
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}

	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	sum := 0
	for i := 1; i <= 9; i++ {
		sum += digits[i-1] * (11 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	if rest != digits[9] {
		return false
	}

	sum = 0
	for i := 1; i <= 10; i++ {
		sum += digits[i-1] * (12 - i)
	}
	rest = (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest == digits[10]
}

// validateForm checks every field checkout requires. It returns the missing
// or invalid field names.
func validateForm(info PersonalInfo) []string {
	var problems []string

	if strings.TrimSpace(info.FullName) == "" {
		problems = append(problems, "fullName")
	}
	if !ValidateCPF(info.CPF) {
		problems = append(problems, "cpf")
	}
	if strings.TrimSpace(info.RG) == "" {
		problems = append(problems, "rg")
	}
	if strings.TrimSpace(info.CNH) == "" {
		problems = append(problems, "cnh")
	}
	if strings.TrimSpace(info.Address) == "" {
		problems = append(problems, "address")
	}
	if strings.TrimSpace(info.Email) == "" {
		problems = append(problems, "email")
	}
	if strings.TrimSpace(info.Phone) == "" {
		problems = append(problems, "phone")
	}

	if info.IsDifferentDriver {
		if strings.TrimSpace(info.DriverFullName) == "" {
			problems = append(problems, "driverFullName")
		}
		if !ValidateCPF(info.DriverCPF) {
			problems = append(problems, "driverCpf")
		}
		if strings.TrimSpace(info.DriverRG) == "" {
			problems = append(problems, "driverRg")
		}
		if strings.TrimSpace(info.DriverCNH) == "" {
			problems = append(problems, "driverCnh")
		}
	}

	return problems
}

// requiredForGeneration checks only the fields the document itself needs.
func requiredForGeneration(info PersonalInfo) []string {
	var problems []string
	for field, value := range map[string]string{
		"fullName": info.FullName,
		"cpf":      info.CPF,
		"rg":       info.RG,
		"cnh":      info.CNH,
		"address":  info.Address,
	} {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, field)
		}
	}
	return problems
}

// cityFromAddress pulls the city for the document's closing line: the text
// after the last hyphen, else after the last comma, else a generic fallback.
func cityFromAddress(address string) string {
	if idx := strings.LastIndex(address, "-"); idx >= 0 && idx < len(address)-1 {
		if city := strings.TrimSpace(address[idx+1:]); city != "" {
			return city
		}
	}
	if idx := strings.LastIndex(address, ","); idx >= 0 && idx < len(address)-1 {
		if city := strings.TrimSpace(address[idx+1:]); city != "" {
			return city
		}
	}
	return "Cidade"
}

var portugueseMonths = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}
