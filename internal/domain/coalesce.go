package domain

import "github.com/alexanderramin/wanderplan/internal/timeutil"

func clockOr(s string, fallback int) int {
	min, err := timeutil.ParseClock(s)
	if err != nil {
		return fallback
	}
	return min
}
