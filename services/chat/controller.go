package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"poppi/models"
	"poppi/services/availability"
)

var welcomeOptions = []string{"Yes, let's schedule", "Tell me about services"}

// Reply is the outcome of one user turn.
type Reply struct {
	Messages    []models.ChatMessage
	State       models.ConversationState
	RedirectURL string
}

// Snapshot is the serialisable state of a conversation.
type Snapshot struct {
	State        models.ConversationState `json:"state"`
	Draft        models.BookingDraft      `json:"draft"`
	OfferedTimes []string                 `json:"offeredTimes,omitempty"`
	Messages     []models.ChatMessage     `json:"messages"`
	IDs          IDState                  `json:"ids"`
}

type Option func(*Controller)

func WithClassifier(cl Classifier) Option {
	return func(c *Controller) { c.classifier = cl }
}

func WithRedirector(r Redirector) Option {
	return func(c *Controller) { c.redirector = r }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithIDSeed(seed int64) Option {
	return func(c *Controller) { c.ids = NewIDState(seed) }
}

// WithKnownUser prefills the draft for a signed-in visitor. An email that
// fails validation is dropped.
func WithKnownUser(name, email string) Option {
	return func(c *Controller) {
		if name = strings.TrimSpace(name); name != "" {
			c.draft.Name = name
		}
		if email = strings.TrimSpace(email); ValidEmail(email) {
			c.draft.Email = email
		}
	}
}

// Controller drives the booking dialogue for one visitor. It accepts one
// input at a time.
type Controller struct {
	profile    Profile
	lookup     AvailabilityLookup
	checkout   CheckoutStarter
	redirector Redirector
	classifier Classifier
	now        func() time.Time
	logger     *zap.Logger

	busy atomic.Bool

	mu           sync.Mutex
	state        models.ConversationState
	draft        models.BookingDraft
	offeredTimes []string
	messages     []models.ChatMessage
	ids          IDState

	// per turn
	pending     []models.ChatMessage
	redirectURL string
}

func NewController(profile Profile, lookup AvailabilityLookup, checkout CheckoutStarter, opts ...Option) *Controller {
	c := &Controller{
		profile:    profile,
		lookup:     lookup,
		checkout:   checkout,
		classifier: NewPatternClassifier(nil),
		now:        time.Now,
		logger:     zap.NewNop(),
		state:      models.StateStart,
		ids:        NewIDState(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.draft.Name != "" {
		c.say(fmt.Sprintf("Hi %s! I'm %s, your scheduling assistant. Ready to book a consultation?", c.draft.Name, profile.Name), welcomeOptions...)
	} else {
		c.say(fmt.Sprintf("Hi there! I'm %s, your scheduling assistant. Ready to book a consultation?", profile.Name), welcomeOptions...)
	}
	c.pending = nil
	return c
}

// Handle processes one user input. Blank input is ignored. A call made while
// another is still running returns ErrBusy and changes nothing.
func (c *Controller) Handle(ctx context.Context, input string) (Reply, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Reply{}, ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(input)
	if text == "" {
		return Reply{State: c.state}, nil
	}

	c.pending = nil
	c.redirectURL = ""
	c.record(models.SenderUser, text, nil)

	intent := c.classifier.Classify(ctx, text)
	from := c.state

	if intent == IntentCancel && c.cancellable(text) {
		c.cancel()
	} else {
		switch c.state {
		case models.StateStart:
			c.handleStart(text, intent)
		case models.StateCollectingName:
			c.handleName(text)
		case models.StateCollectingEmail:
			c.handleEmail(text)
		case models.StateSelectingDay:
			c.handleDay(ctx, text)
		case models.StateSelectingTime:
			c.handleTime(text)
		case models.StateConfirming:
			c.handleConfirm(ctx, text, intent)
		case models.StateDone:
			c.handleDone(intent)
		}
	}

	c.logger.Debug("chat turn",
		zap.String("from", string(from)),
		zap.String("to", string(c.state)),
		zap.String("intent", string(intent)),
	)

	reply := Reply{Messages: c.pending, State: c.state, RedirectURL: c.redirectURL}
	c.pending = nil
	return reply, nil
}

func (c *Controller) handleStart(text string, intent Intent) {
	switch intent {
	case IntentSchedule:
		c.beginBooking()
		return
	case IntentServices:
		c.say(fmt.Sprintf("We offer %s. Which interests you?", strings.Join(c.profile.Services, ", ")), c.profile.Services...)
		return
	}

	if svc, ok := matchOption(text, c.profile.Services); ok {
		c.say(fmt.Sprintf("%s is a great topic for a consultation. Want to book one?", svc), welcomeOptions...)
		return
	}

	switch intent {
	case IntentGreeting:
		c.say("Hi there! Ready to book a consultation?", welcomeOptions...)
	case IntentAffirmative, IntentHelp:
		c.say("I can book you a consultation or tell you about our services. What would you like to do?", welcomeOptions...)
	case IntentNegative:
		c.say("No problem. I'm here if you need anything else.")
	default:
		c.say("I'll connect you with our team. Anything else I can help with?", "Yes", "No thanks")
	}
}

// beginBooking asks for the first field the draft is still missing.
func (c *Controller) beginBooking() {
	switch {
	case c.draft.Name == "":
		c.say("Great! What's your name?")
		c.state = models.StateCollectingName
	case c.draft.Email == "":
		c.say(fmt.Sprintf("Great, %s! What's your email address?", c.draft.Name))
		c.state = models.StateCollectingEmail
	default:
		c.promptDays()
	}
}

func (c *Controller) handleName(text string) {
	name := ExtractName(text)
	c.draft.Name = name
	c.say(fmt.Sprintf("Nice to meet you, %s! What's your email address?", name))
	c.state = models.StateCollectingEmail
}

func (c *Controller) handleEmail(text string) {
	email, ok := ExtractEmail(text)
	if !ok {
		c.say("Please enter a valid email address (e.g., you@example.com)")
		return
	}
	c.draft.Email = email
	c.promptDays()
}

func (c *Controller) promptDays() {
	c.say(
		fmt.Sprintf("I'm available %s from %s. Which day works best?", strings.Join(c.profile.AvailableDays, ", "), c.profile.HoursLabel()),
		c.dayOptions()...,
	)
	c.state = models.StateSelectingDay
}

func (c *Controller) handleDay(ctx context.Context, text string) {
	if strings.EqualFold(text, "other") {
		c.say("What day would you prefer?", c.profile.AvailableDays...)
		return
	}

	candidate := text
	if len(candidate) > 4 && strings.EqualFold(candidate[:4], "try ") {
		candidate = strings.TrimSpace(candidate[4:])
	}
	day, ok := matchOption(candidate, c.profile.AvailableDays)
	if !ok {
		c.say(fmt.Sprintf("Sorry, I'm only available %s. Which day works best?", strings.Join(c.profile.AvailableDays, ", ")), c.dayOptions()...)
		return
	}

	date, err := availability.NextDateForWeekday(day, c.now().UTC())
	if err != nil {
		c.logger.Warn("configured day is not a weekday", zap.String("day", day))
		c.say("Sorry, I can't look that day up. Please pick another day.", c.dayOptions()...)
		return
	}

	slots, err := c.fetchSlots(ctx, date)
	if errors.Is(err, availability.ErrCalendarNotConfigured) {
		c.logger.Error("availability lookup impossible, calendar not configured", zap.Error(err))
		c.say("Sorry, scheduling is unavailable right now. Please check back later.")
		return
	}
	if err != nil {
		c.logger.Warn("availability lookup failed",
			zap.String("day", day),
			zap.String("date", availability.FormatDay(date)),
			zap.Error(err),
		)
		c.say("Oops, something went wrong fetching times. Please try again.", "Try "+day, "Other")
		return
	}

	if len(slots) == 0 {
		c.say(fmt.Sprintf("No available times on %s during business hours. Try another day:", day), c.retryOptions()...)
		return
	}

	c.draft.SelectedDay = day
	c.offeredTimes = slots
	c.say(fmt.Sprintf("Available times on %s (%s):", day, c.profile.HoursLabel()), slots...)
	c.state = models.StateSelectingTime
}

func (c *Controller) fetchSlots(ctx context.Context, date time.Time) ([]string, error) {
	if c.lookup == nil {
		return nil, errors.New("no availability source configured")
	}
	resp, err := c.lookup.Lookup(ctx, date)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	labels := make([]string, 0, len(resp.AvailableSlots))
	for _, s := range resp.AvailableSlots {
		if s.DisplayTime != "" {
			labels = append(labels, s.DisplayTime)
		}
	}
	return labels, nil
}

func (c *Controller) handleTime(text string) {
	label, ok := matchOption(text, c.offeredTimes)
	if !ok {
		c.say("Please choose one of the available times.", c.offeredTimes...)
		return
	}
	c.draft.SelectedTime = label
	c.say(
		fmt.Sprintf("Confirm %s consultation on %s at %s?", c.profile.Name, c.draft.SelectedDay, label),
		c.payOption(),
	)
	c.state = models.StateConfirming
}

// confirmsPayment accepts any input carrying a payment or affirmative token,
// even when another intent ranks first. Negative or hesitant input never pays.
func confirmsPayment(text string, intent Intent) bool {
	if mentions(text, IntentNegative, IntentUncertain) {
		return false
	}
	if intent == IntentPayment || intent == IntentAffirmative {
		return true
	}
	return mentions(text, IntentPayment, IntentAffirmative)
}

func (c *Controller) handleConfirm(ctx context.Context, text string, intent Intent) {
	if !confirmsPayment(text, intent) {
		c.say(fmt.Sprintf("Please confirm your %s payment to finalize.", c.profile.FeeLabel()), c.payOption())
		return
	}
	if !c.draft.Complete() {
		c.say("Missing booking information. Let's start over.", welcomeOptions...)
		c.resetBooking()
		c.state = models.StateStart
		return
	}

	req := models.CheckoutRequest{
		Name:  c.draft.Name,
		Email: c.draft.Email,
		Slot:  c.draft.SlotDescription(),
	}
	var session *models.CheckoutSession
	var err error
	if c.checkout == nil {
		err = errors.New("no checkout provider configured")
	} else {
		session, err = c.checkout.CreateCheckoutSession(ctx, req)
	}
	if err == nil && (session == nil || session.URL == "") {
		err = ErrMissingRedirect
	}
	if err != nil {
		c.logger.Warn("checkout session failed", zap.String("slot", req.Slot), zap.Error(err))
		if errors.Is(err, ErrMissingRedirect) {
			c.say("Payment setup failed. Please try again or contact support.", c.payOption())
		} else {
			c.say("Sorry, we couldn't reach the payment service. Please try again in a moment.", c.payOption())
		}
		return
	}

	c.say("Redirecting to payment...")
	c.redirectURL = session.URL
	if c.redirector != nil {
		c.redirector.Redirect(session.URL)
	}
	c.logger.Info("booking handed off to payment", zap.String("slot", req.Slot))
	c.resetBooking()
	c.state = models.StateDone
}

func (c *Controller) handleDone(intent Intent) {
	switch intent {
	case IntentSchedule:
		c.beginBooking()
	case IntentAffirmative:
		c.say("What would you like to do?", welcomeOptions...)
		c.state = models.StateStart
	case IntentNegative, IntentGratitude:
		c.say(fmt.Sprintf("Thanks for booking with %s. See you soon!", c.profile.Name))
	default:
		c.say("Your booking is confirmed! Anything else I can help with?", "Yes", "No thanks")
	}
}

// cancellable reports whether a cancel intent should abort the booking. An
// email address that merely contains a cancel word is still an email.
func (c *Controller) cancellable(text string) bool {
	switch c.state {
	case models.StateStart, models.StateDone:
		return false
	case models.StateCollectingEmail:
		_, isEmail := ExtractEmail(text)
		return !isEmail
	}
	return true
}

func (c *Controller) cancel() {
	c.resetBooking()
	c.state = models.StateStart
	c.say("No problem, I've cleared that booking. Want to start again?", welcomeOptions...)
}

func (c *Controller) resetBooking() {
	c.draft.Reset()
	c.offeredTimes = nil
}

func (c *Controller) dayOptions() []string {
	return append(append([]string(nil), c.profile.AvailableDays...), "Other")
}

func (c *Controller) retryOptions() []string {
	opts := make([]string, 0, len(c.profile.AvailableDays)+1)
	for _, d := range c.profile.AvailableDays {
		opts = append(opts, "Try "+d)
	}
	return append(opts, "Other")
}

func (c *Controller) payOption() string {
	return fmt.Sprintf("Pay %s to Confirm", c.profile.FeeLabel())
}

func (c *Controller) say(text string, options ...string) {
	c.pending = append(c.pending, c.record(models.SenderBot, text, options))
}

func (c *Controller) record(sender models.Sender, text string, options []string) models.ChatMessage {
	var id string
	id, c.ids = NextMessageID(c.ids, c.now())
	msg := models.ChatMessage{ID: id, Text: text, Sender: sender}
	if len(options) > 0 {
		msg.Options = append([]string(nil), options...)
	}
	c.messages = append(c.messages, msg)
	return msg
}

// State returns the current conversation state.
func (c *Controller) State() models.ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the booking draft.
func (c *Controller) Draft() models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Messages returns a copy of the conversation log.
func (c *Controller) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:        c.state,
		Draft:        c.draft,
		OfferedTimes: append([]string(nil), c.offeredTimes...),
		Messages:     append([]models.ChatMessage(nil), c.messages...),
		IDs:          c.ids,
	}
}

// Restore replaces the conversation with a previously taken snapshot.
func (c *Controller) Restore(s Snapshot) error {
	state, ok := models.ParseConversationState(string(s.State))
	if !ok {
		return fmt.Errorf("restore conversation: unknown state %q", s.State)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.draft = s.Draft
	c.offeredTimes = append([]string(nil), s.OfferedTimes...)
	c.messages = append([]models.ChatMessage(nil), s.Messages...)
	c.ids = s.IDs
	return nil
}
