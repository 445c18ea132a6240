// Package view switches between named page views.
//
// Each view is a [Component] with an Attach/Detach pair. The [Switcher]
// keeps exactly one view attached: Show detaches the active view before
// attaching the next, so a component never holds resources while hidden.
package view

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/errors"
)

// Component is a view's lifecycle.
type Component interface {
	Attach(ctx context.Context) error
	Detach()
}

// Funcs adapts a pair of functions to Component. Nil functions are no-ops.
type Funcs struct {
	OnAttach func(ctx context.Context) error
	OnDetach func()
}

func (f Funcs) Attach(ctx context.Context) error {
	if f.OnAttach == nil {
		return nil
	}
	return f.OnAttach(ctx)
}

func (f Funcs) Detach() {
	if f.OnDetach != nil {
		f.OnDetach()
	}
}

// Redrawer is satisfied by *clock.Clock.
type Redrawer interface {
	Redraw()
}

// Clock returns the component for the clock view: attaching asks the clock
// to redraw now that its surface is visible.
func Clock(r Redrawer) Component {
	return Funcs{OnAttach: func(context.Context) error {
		r.Redraw()
		return nil
	}}
}

// Switcher is safe for concurrent use.
type Switcher struct {
	mu     sync.Mutex
	views  map[string]Component
	order  []string
	active string
	logger *log.Logger
}

// NewSwitcher creates an empty switcher.
func NewSwitcher(logger *log.Logger) *Switcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Switcher{views: make(map[string]Component), logger: logger.WithPrefix("view")}
}

// Register adds a named view. Registering a name again replaces it.
func (s *Switcher) Register(name string, c Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[name]; !ok {
		s.order = append(s.order, name)
	}
	s.views[name] = c
}

// Names returns registered view names in registration order.
func (s *Switcher) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Active returns the attached view's name, or "" if none.
func (s *Switcher) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Show makes name the active view. Showing the active view again
// re-attaches it. If Attach fails no view is active.
func (s *Switcher) Show(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.views[name]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "view %q not found", name)
	}
	if cur, ok := s.views[s.active]; ok {
		cur.Detach()
		s.logger.Debug("detached view", "name", s.active)
	}
	s.active = ""

	if err := next.Attach(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "attach view %q", name)
	}
	s.active = name
	s.logger.Debug("attached view", "name", name)
	return nil
}

// Close detaches the active view.
func (s *Switcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.views[s.active]; ok {
		cur.Detach()
	}
	s.active = ""
	return nil
}
