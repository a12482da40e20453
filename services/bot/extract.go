package bot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Free-text extractors for the booking flow. Both operate on the whole
// message, so "tomorrow at 11am" yields a date and a time in one pass.

var (
	slashDatePattern   = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
	ordinalDayPattern  = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)`)
	bareNumberPattern  = regexp.MustCompile(`(\d{1,2})\s*(am|pm|o'clock|oclock|:)?`)
	clockTimePattern   = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`)
	meridiemPattern    = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	oclockTimePattern  = regexp.MustCompile(`(\d{1,2})\s*(?:o'clock|oclock)`)
)

// ExtractDate pulls a calendar date out of a message. It understands "today",
// "tomorrow", day-of-month forms like "15th" or bare "15", and "15/01".
// Returns the date as YYYY-MM-DD; ok is false when no date is present.
func ExtractDate(message string, now time.Time) (string, bool) {
	lower := strings.ToLower(message)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if strings.Contains(lower, "today") {
		return today.Format("2006-01-02"), true
	}
	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1).Format("2006-01-02"), true
	}

	if m := slashDatePattern.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
			if candidate.Before(today) {
				candidate = candidate.AddDate(1, 0, 0)
			}
			return candidate.Format("2006-01-02"), true
		}
	}

	if m := ordinalDayPattern.FindStringSubmatch(lower); m != nil {
		if date, ok := dayOfMonth(m[1], today); ok {
			return date, true
		}
	}

	// Bare numbers are ambiguous with times; drop clock expressions first so
	// the minutes of "10:30" are not read as a day, then skip any remaining
	// number with a time suffix ("5 pm").
	stripped := clockTimePattern.ReplaceAllString(lower, "")
	for _, m := range bareNumberPattern.FindAllStringSubmatch(stripped, -1) {
		if m[2] != "" {
			continue
		}
		if date, ok := dayOfMonth(m[1], today); ok {
			return date, true
		}
	}

	return "", false
}

func dayOfMonth(raw string, today time.Time) (string, bool) {
	day, _ := strconv.Atoi(raw)
	if day < 1 || day > 31 {
		return "", false
	}
	candidate := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, today.Location())
	if candidate.Before(today) {
		return "", false
	}
	return candidate.Format("2006-01-02"), true
}

// ExtractTime pulls a time of day out of a message. It understands "5 PM",
// "5pm", "17:00", "10:30 AM", and "5 o'clock". Returns the time as HH:MM in
// 24-hour form; ok is false when no time is present.
func ExtractTime(message string) (string, bool) {
	lower := strings.ToLower(message)

	if m := clockTimePattern.FindStringSubmatch(lower); m != nil {
		if hhmm, ok := buildTime(m[1], m[2], m[3]); ok {
			return hhmm, true
		}
	}
	if m := meridiemPattern.FindStringSubmatch(lower); m != nil {
		if hhmm, ok := buildTime(m[1], "", m[2]); ok {
			return hhmm, true
		}
	}
	if m := oclockTimePattern.FindStringSubmatch(lower); m != nil {
		if hhmm, ok := buildTime(m[1], "", ""); ok {
			return hhmm, true
		}
	}
	return "", false
}

func buildTime(hourRaw, minuteRaw, period string) (string, bool) {
	hours, _ := strconv.Atoi(hourRaw)
	minutes := 0
	if minuteRaw != "" {
		minutes, _ = strconv.Atoi(minuteRaw)
	}

	switch period {
	case "pm":
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", false
	}
	return fmtTwoDigits(hours) + ":" + fmtTwoDigits(minutes), true
}

func fmtTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
