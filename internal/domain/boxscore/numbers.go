package boxscore

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MadeAttempts is a parsed "made/attempts" composite such as "13/21".
type MadeAttempts struct {
	Made     int
	Attempts int
}

// ParseInt reads an integer stat. Absent, empty or non-numeric values are 0.
// Fractions are truncated toward zero.
func ParseInt(raw json.RawMessage) int {
	return intFromText(scalarText(raw))
}

// ParseFloat reads a fractional stat such as sacks. Anything unreadable is 0.
func ParseFloat(raw json.RawMessage) float64 {
	return floatFromText(scalarText(raw))
}

// ParseMadeAttempts splits a composite on "/". Anything other than two
// integers around a single slash yields {0, 0}.
func ParseMadeAttempts(raw json.RawMessage) MadeAttempts {
	return madeAttemptsFromText(scalarText(raw))
}

func madeAttemptsFromText(s string) MadeAttempts {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MadeAttempts{}
	}
	made, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return MadeAttempts{}
	}
	attempts, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return MadeAttempts{}
	}
	return MadeAttempts{Made: made, Attempts: attempts}
}

func intFromText(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f := floatFromText(s)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func floatFromText(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
