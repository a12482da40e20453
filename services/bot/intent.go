package bot

import "strings"

// GreetingReply is sent for messages that carry no booking intent.
const GreetingReply = "Hi! 👋 Welcome. You can book an appointment by telling me which service you'd like, e.g. \"book a haircut\". Type \"cancel\" anytime to start over."

var bookingKeywords = []string{"book", "appointment", "schedule"}

// IsBookingIntent reports whether a message expresses booking intent, either
// through a booking keyword or by naming a known service. Stateless: the same
// input always classifies the same way.
func IsBookingIntent(message string, serviceNames []string) bool {
	lower := strings.ToLower(message)
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, name := range serviceNames {
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
