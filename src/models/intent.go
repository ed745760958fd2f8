package models

import "strings"

// Intent is the closed set of conversation intents the router knows about.
// Anything else parses to IntentUnknown, which is never eligible for the
// student model.
type Intent string

const (
	IntentBooking   Intent = "booking"
	IntentFAQ       Intent = "faq"
	IntentMenu      Intent = "menu"
	IntentPricing   Intent = "pricing"
	IntentComplaint Intent = "complaint"
	IntentGeneral   Intent = "general"
	IntentUnknown   Intent = "unknown"
)

func (i Intent) String() string {
	return string(i)
}

// KnownIntents returns every intent that may carry student traffic.
func KnownIntents() []Intent {
	return []Intent{
		IntentBooking,
		IntentFAQ,
		IntentMenu,
		IntentPricing,
		IntentComplaint,
		IntentGeneral,
	}
}

// ParseIntent maps a raw intent label to the closed enumeration.
// Unrecognized labels map to IntentUnknown rather than passing through,
// so a typo in an upstream classifier cannot silently enable traffic.
func ParseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentBooking:
		return IntentBooking
	case IntentFAQ:
		return IntentFAQ
	case IntentMenu:
		return IntentMenu
	case IntentPricing:
		return IntentPricing
	case IntentComplaint:
		return IntentComplaint
	case IntentGeneral, "":
		return IntentGeneral
	default:
		return IntentUnknown
	}
}
