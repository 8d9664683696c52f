package lang

import "strings"

// Gender is the grammatical gender of a speaker or the requested voice
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender maps free-form input onto a Gender. Anything that is not
// recognisably male is treated as female, the service-wide default.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "man":
		return Male
	default:
		return Female
	}
}

func (g Gender) String() string {
	return string(g)
}
