package jikan

import "strings"

// Bounds for years accepted by season lookups
const (
	MinSeasonYear = 1000
	MaxSeasonYear = 9999
)

// enum is satisfied by every closed parameter set in this package
type enum interface {
	IsValid() bool
	String() string
}

func validatePage(page int) error {
	if page < 1 {
		return invalid("page", page, "must be 1 or greater")
	}
	return nil
}

func validateYear(year int) error {
	if year < MinSeasonYear || year > MaxSeasonYear {
		return invalid("year", year, "must be between 1000 and 9999")
	}
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return invalid("username", username, "must not be empty or whitespace")
	}
	return nil
}

func validateEnum(param string, value enum) error {
	if !value.IsValid() {
		return invalid(param, value, "not a declared value")
	}
	return nil
}

// firstError returns the first non-nil error in checks
func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
