package enums

import "fmt"

// ProfessionalSource records which channel a professional came from.
type ProfessionalSource string

const (
	ProfessionalSourceDirect   ProfessionalSource = "direct"
	ProfessionalSourcePartner  ProfessionalSource = "partner"
	ProfessionalSourceInternal ProfessionalSource = "internal"
)

var validProfessionalSources = []ProfessionalSource{
	ProfessionalSourceDirect,
	ProfessionalSourcePartner,
	ProfessionalSourceInternal,
}

// String implements fmt.Stringer.
func (s ProfessionalSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProfessionalSource.
func (s ProfessionalSource) IsValid() bool {
	for _, candidate := range validProfessionalSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProfessionalSource converts raw input into a ProfessionalSource.
func ParseProfessionalSource(value string) (ProfessionalSource, error) {
	for _, candidate := range validProfessionalSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid professional source %q", value)
}
