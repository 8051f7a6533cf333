package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// MonthOf returns the "YYYY-MM" prefix of an ISO date string, "" when the
// string is too short to carry one.
func MonthOf(dateStr string) string {
	if len(dateStr) < 7 {
		return ""
	}
	return dateStr[:7]
}
