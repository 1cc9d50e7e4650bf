// Package menu drives the numbered console menus: each screen maps choice
// numbers to handlers, and Run loops reading choices until a handler ends
// the session.
package menu

import (
	"errors"
	"fmt"
	"io"

	"github.com/pokedexgo/pokedex/internal/world"
	"go.uber.org/zap"
)

// State is the screen a session is on.
type State int

const (
	StateMain  State = iota
	StateOwner       // inside one owner's catalog
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "Main"
	case StateOwner:
		return "Owner"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ErrUnknownChoice is returned by Dispatch for a number no handler claims.
var ErrUnknownChoice = errors.New("unknown menu choice")

// ErrHandlerPanic wraps a recovered handler panic.
var ErrHandlerPanic = errors.New("menu handler panic")

// Session is the per-run menu state handlers read and modify.
type Session struct {
	State State
	Owner world.OwnerID // valid in StateOwner
	Done  bool
}

// Enter switches the session to an owner's screen.
func (s *Session) Enter(id world.OwnerID) {
	s.State = StateOwner
	s.Owner = id
}

// Leave returns to the main screen.
func (s *Session) Leave() {
	s.State = StateMain
	s.Owner = 0
}

// HandlerFunc runs one menu choice. Returning an error from input (io.EOF)
// ends the loop; user-facing failures are printed by the handler itself.
type HandlerFunc func(sess *Session) error

// HeaderFunc renders a screen's title block.
type HeaderFunc func(sess *Session) string

// Prompter is the input side Run needs.
type Prompter interface {
	ReadInt(prompt string) (int, error)
}

type handlerEntry struct {
	label string
	fn    HandlerFunc
}

type screen struct {
	header  HeaderFunc
	invalid string
	choices []int
	entries map[int]*handlerEntry
}

// Registry maps (state, choice) to handlers.
type Registry struct {
	screens map[State]*screen
	log     *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		screens: make(map[State]*screen),
		log:     log,
	}
}

func (reg *Registry) screen(state State) *screen {
	sc, ok := reg.screens[state]
	if !ok {
		sc = &screen{entries: make(map[int]*handlerEntry)}
		reg.screens[state] = sc
	}
	return sc
}

// Screen sets the header and the message printed for unknown choices.
func (reg *Registry) Screen(state State, header HeaderFunc, invalid string) {
	sc := reg.screen(state)
	sc.header = header
	sc.invalid = invalid
}

// Register maps a choice number on a screen to a labelled handler. Choices
// are listed in registration order.
func (reg *Registry) Register(state State, choice int, label string, fn HandlerFunc) {
	sc := reg.screen(state)
	if _, dup := sc.entries[choice]; !dup {
		sc.choices = append(sc.choices, choice)
	}
	sc.entries[choice] = &handlerEntry{label: label, fn: fn}
}

// Render writes the header and numbered choices for the session's screen.
func (reg *Registry) Render(w io.Writer, sess *Session) {
	sc, ok := reg.screens[sess.State]
	if !ok {
		return
	}
	if sc.header != nil {
		fmt.Fprint(w, sc.header(sess))
	}
	for _, c := range sc.choices {
		fmt.Fprintf(w, "%d. %s\n", c, sc.entries[c].label)
	}
}

// Dispatch runs the handler for choice on the session's current screen.
func (reg *Registry) Dispatch(sess *Session, choice int) error {
	reg.log.Debug("menu choice",
		zap.Int("choice", choice),
		zap.String("state", sess.State.String()),
	)
	sc, ok := reg.screens[sess.State]
	if !ok {
		return fmt.Errorf("choice %d in state %s: %w", choice, sess.State, ErrUnknownChoice)
	}
	entry, ok := sc.entries[choice]
	if !ok {
		return fmt.Errorf("choice %d in state %s: %w", choice, sess.State, ErrUnknownChoice)
	}
	return reg.safeCall(entry.fn, sess, choice)
}

// safeCall executes a handler with panic recovery so one failing choice
// does not end the whole run.
func (reg *Registry) safeCall(fn HandlerFunc, sess *Session, choice int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("menu handler panic recovered",
				zap.Int("choice", choice),
				zap.String("state", sess.State.String()),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("choice %d: %v: %w", choice, rec, ErrHandlerPanic)
		}
	}()
	return fn(sess)
}

// Run renders the current screen, reads a choice and dispatches it until a
// handler marks the session done or input fails. Reaching end of input is
// a normal exit.
func (reg *Registry) Run(sess *Session, in Prompter, out io.Writer) error {
	for !sess.Done {
		reg.Render(out, sess)
		choice, err := in.ReadInt("Your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		err = reg.Dispatch(sess, choice)
		switch {
		case err == nil, errors.Is(err, ErrHandlerPanic):
		case errors.Is(err, ErrUnknownChoice):
			if sc := reg.screens[sess.State]; sc != nil {
				fmt.Fprint(out, sc.invalid)
			}
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
	return nil
}
