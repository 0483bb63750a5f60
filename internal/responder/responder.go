// Package responder holds the keyword responder: it decides whether an
// inbound message is inspected, matches it against the keyword table and
// either replies with a card or hands the message to command dispatch.
package responder

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"bumpbot/internal/access"
	"bumpbot/internal/events"
	"bumpbot/internal/keywords"
)

// Outcome is what HandleMessage did with a message.
type Outcome int

const (
	Ignored Outcome = iota
	Replied
	Dispatched
)

func (o Outcome) String() string {
	switch o {
	case Replied:
		return "replied"
	case Dispatched:
		return "dispatched"
	default:
		return "ignored"
	}
}

// Replier sends a keyword response as a reply to the message in ev.
type Replier interface {
	ReplyWithCard(ev events.MessageEvent, resp keywords.Response) error
}

// Dispatcher receives messages that matched no keyword.
type Dispatcher interface {
	Dispatch(ev events.MessageEvent) bool
}

// LoadFunc produces a fresh keyword table.
type LoadFunc func() (*keywords.Table, error)

// Snapshot is the state a single message is handled against. Snapshots are
// immutable; reload publishes a new one.
type Snapshot struct {
	Policy   access.Policy
	Keywords *keywords.Table
}

// Responder is safe for concurrent use.
type Responder struct {
	current    atomic.Pointer[Snapshot]
	load       LoadFunc
	replier    Replier
	dispatcher Dispatcher
	logger     *log.Logger
}

// New creates a responder with an initial keyword table.
func New(policy access.Policy, table *keywords.Table, load LoadFunc, replier Replier, logger *log.Logger) *Responder {
	if table == nil {
		table = keywords.Empty()
	}
	r := &Responder{
		load:    load,
		replier: replier,
		logger:  logger,
	}
	r.current.Store(&Snapshot{Policy: policy, Keywords: table})
	return r
}

// SetDispatcher wires command dispatch. The dispatcher usually needs the
// responder itself (for reload), hence the two-step construction.
func (r *Responder) SetDispatcher(d Dispatcher) {
	r.dispatcher = d
}

// Snapshot returns the current state.
func (r *Responder) Snapshot() *Snapshot {
	return r.current.Load()
}

// Policy returns the access policy.
func (r *Responder) Policy() access.Policy {
	return r.current.Load().Policy
}

// HandleMessage runs the gate pipeline for one message.
func (r *Responder) HandleMessage(ev events.MessageEvent) Outcome {
	snap := r.current.Load()

	if ev.FromSelf {
		return Ignored
	}
	if !snap.Policy.ChannelMonitored(ev.ChannelID) {
		return Ignored
	}
	if !ev.IsMember {
		r.logger.Debugf("Ignoring message %s: author %s is not a guild member", ev.MessageID, ev.AuthorID)
		return Ignored
	}
	if !snap.Policy.MemberAllowed(ev.Roles) {
		r.logger.Debugf("Ignoring message %s: author %s lacks a required role", ev.MessageID, ev.AuthorID)
		return Ignored
	}

	rule, ok := snap.Keywords.Match(ev.Content)
	if !ok {
		if r.dispatcher != nil {
			r.dispatcher.Dispatch(ev)
		}
		return Dispatched
	}

	r.logger.Infof("Keyword %q triggered by %s in channel %s", rule.Trigger, ev.AuthorID, ev.ChannelID)
	if err := r.replier.ReplyWithCard(ev, rule.Response); err != nil {
		r.logger.Errorf("Error sending keyword reply for %q: %v", rule.Trigger, err)
	}
	return Replied
}

// Reload loads the keyword table again and publishes it. On error, or if
// loading panics, the current table stays in place.
func (r *Responder) Reload() (count int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while loading keywords: %v", p)
		}
	}()

	table, err := r.load()
	if err != nil {
		return 0, err
	}
	if table == nil {
		table = keywords.Empty()
	}

	for {
		old := r.current.Load()
		next := &Snapshot{Policy: old.Policy, Keywords: table}
		if r.current.CompareAndSwap(old, next) {
			break
		}
	}
	return table.Len(), nil
}
