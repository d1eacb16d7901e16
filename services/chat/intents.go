package chat

import (
	"context"
	"regexp"
	"strings"
)

// Intent is the coarse meaning of a free-text message.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentSchedule       Intent = "schedule"
	IntentServices       Intent = "services"
	IntentCancel         Intent = "cancel"
	IntentGratitude      Intent = "gratitude"
	IntentHelp           Intent = "help"
	IntentAffirmative    Intent = "affirmative"
	IntentPayment        Intent = "payment"
	IntentNegative       Intent = "negative"
	IntentUncertain      Intent = "uncertain"
	IntentUrgent         Intent = "urgent"
	IntentTimePreference Intent = "time_preference"
	IntentGeneral        Intent = "general"
)

// Intents lists every intent a classifier may return.
var Intents = []Intent{
	IntentGreeting, IntentSchedule, IntentServices, IntentCancel, IntentGratitude,
	IntentHelp, IntentAffirmative, IntentPayment, IntentNegative, IntentUncertain,
	IntentUrgent, IntentTimePreference, IntentGeneral,
}

// ParseIntent maps a label back onto the closed set.
func ParseIntent(s string) (Intent, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, in := range Intents {
		if string(in) == s {
			return in, true
		}
	}
	return "", false
}

// Classifier turns user text into an Intent. Implementations never fail;
// unknown text is IntentGeneral.
type Classifier interface {
	Classify(ctx context.Context, text string) Intent
}

// IntentRule pairs an intent with the pattern that selects it.
type IntentRule struct {
	Intent  Intent
	Pattern *regexp.Regexp
}

// DefaultIntentRules is evaluated top to bottom against lowercased input.
var DefaultIntentRules = []IntentRule{
	{IntentCancel, regexp.MustCompile(`\b(cancel|start over|reset|never ?mind)\b`)},
	{IntentSchedule, regexp.MustCompile(`\b(schedul\w*|book\w*|appointment|meet(ing)?|consult(ation)?|calendar)\b`)},
	{IntentServices, regexp.MustCompile(`\b(services?|what do you (offer|do))\b`)},
	{IntentPayment, regexp.MustCompile(`\b(pay|payment|checkout)\b`)},
	{IntentGreeting, regexp.MustCompile(`^(hi|hello|hey|good (morning|afternoon|evening))\b`)},
	{IntentUncertain, regexp.MustCompile(`\b(maybe|not sure|i don'?t know|let me think|hmm+)\b`)},
	{IntentAffirmative, regexp.MustCompile(`\b(yes|yeah|yep|sure|ok|okay|confirm|correct|sounds good|let'?s do it)\b`)},
	{IntentNegative, regexp.MustCompile(`\b(no|nope|not really|incorrect|wrong)\b`)},
	{IntentGratitude, regexp.MustCompile(`\b(thanks|thank you|appreciate|awesome|perfect)\b`)},
	{IntentHelp, regexp.MustCompile(`\b(help|what can you do|how does this work|confused)\b`)},
	{IntentUrgent, regexp.MustCompile(`\b(urgent|asap|soon|quickly|emergency)\b`)},
	{IntentTimePreference, regexp.MustCompile(`\b(morning|afternoon|evening|am|pm)\b`)},
}

// PatternClassifier matches input against an ordered rule table; the first
// matching rule wins.
type PatternClassifier struct {
	rules []IntentRule
}

func NewPatternClassifier(rules []IntentRule) *PatternClassifier {
	if rules == nil {
		rules = DefaultIntentRules
	}
	return &PatternClassifier{rules: rules}
}

func (p *PatternClassifier) Classify(_ context.Context, text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range p.rules {
		if r.Pattern.MatchString(lower) {
			return r.Intent
		}
	}
	return IntentGeneral
}

// mentions reports whether text matches the default rule of any of intents,
// ignoring rule order.
func mentions(text string, intents ...Intent) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range DefaultIntentRules {
		for _, in := range intents {
			if r.Intent == in && r.Pattern.MatchString(lower) {
				return true
			}
		}
	}
	return false
}
