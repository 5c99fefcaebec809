package conversation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/clinova/intake/internal/bookings"
	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/internal/observability/metrics"
	"github.com/clinova/intake/internal/symptoms"
	"github.com/clinova/intake/pkg/logging"
)

// stateHandler processes one turn for a session in a given state. Handlers
// receive the session by value and return the updated copy alongside the
// reply; they never advance state on rejected input.
type stateHandler func(ctx context.Context, sess Session, msg string) (Reply, Session)

// Engine is the conversation state machine. Each inbound message is checked
// against the global overrides first, then dispatched through the
// transition table for the session's current state.
type Engine struct {
	sessions  SessionStore
	analyzer  *symptoms.Analyzer
	booking   *bookings.Service
	directory doctors.Directory
	metrics   *metrics.ConversationMetrics
	logger    *logging.Logger
	now       func() time.Time

	handlers map[State]stateHandler
}

// NewEngine wires the state machine. The metrics argument may be nil.
func NewEngine(
	sessions SessionStore,
	analyzer *symptoms.Analyzer,
	booking *bookings.Service,
	directory doctors.Directory,
	convMetrics *metrics.ConversationMetrics,
	logger *logging.Logger,
) *Engine {
	if sessions == nil {
		panic("conversation: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		sessions:  sessions,
		analyzer:  analyzer,
		booking:   booking,
		directory: directory,
		metrics:   convMetrics,
		logger:    logger,
		now:       time.Now,
	}
	e.handlers = map[State]stateHandler{
		StateGreeting:          e.handleGreeting,
		StateWaitingCode:       e.handleCode,
		StateWaitingName:       e.handleName,
		StateWaitingBloodGroup: e.handleBloodGroup,
		StateWaitingAge:        e.handleAge,
		StateWaitingGender:     e.handleGender,
		StateWaitingContact:    e.handleContact,
		StateWaitingSymptoms:   e.handleSymptoms,
		StateWaitingDoctor:     e.handleDoctorSelection,
		StateWaitingDate:       e.handleDateSelection,
		StateWaitingTime:       e.handleTimeSelection,
	}
	return e
}

// HandleMessage processes one turn for the session and persists the updated
// session state.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, message string) (Reply, error) {
	msg := strings.TrimSpace(message)

	sess, ok, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		sess = NewSession(sessionID)
	}

	reply, sess := e.dispatch(ctx, sess, msg)

	e.metrics.ObserveTurn(string(sess.State))
	sess.History = append(sess.History, Turn{User: msg, Bot: reply.Message, Timestamp: e.now().UTC()})

	if err := e.sessions.Put(ctx, sess); err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// dispatch applies the global overrides, then routes to the state handler.
func (e *Engine) dispatch(ctx context.Context, sess Session, msg string) (Reply, Session) {
	switch lower := strings.ToLower(msg); {
	case lower == "reset_to_menu":
		return menuReply(backToMenuMessage), sess.reset()

	case lower == "menu" || lower == "main menu" || lower == "back" || lower == "start over":
		sess = sess.reset()
		return e.handleGreeting(ctx, sess, "menu")

	case lower == "end":
		// One-shot confirmation prompt; the actual reset is a separate
		// follow-up action, so state is untouched here.
		return Reply{
			Message: "Are you sure you want to go back to the main menu? This will end your current session.",
			Type:    ReplyEndConfirmation,
		}, sess
	}

	handler, ok := e.handlers[sess.State]
	if !ok {
		handler = e.handleGreeting
	}
	return handler(ctx, sess, msg)
}

// parseSelection validates a 1-based ordinal index against an offered list
// of length n.
func parseSelection(msg string, n int) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(msg))
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx, true
}
