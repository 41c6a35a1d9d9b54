package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	actionNext   = "Next"
	actionSubmit = "Submit"
	actionBack   = "Back"
	actionHome   = "Home"

	nameFilteredMessage = "Only letters and spaces are allowed; other characters were dropped."
	ageNumberMessage    = "Enter your age as a whole number."
	keepSecretHelp      = "Leave blank to keep the current value."
)

// Session runs the wizard in a terminal: the landing screen, one screen per
// step, and the final submission.
type Session struct {
	driver            PromptDriver
	out               io.Writer
	catalog           *catalog.Catalog
	theme             Theme
	logger            zerolog.Logger
	controllerOptions []wizard.Option
}

// New constructs a session with the survey driver and the embedded catalog
// unless options say otherwise.
func New(options ...Option) (*Session, error) {
	s := &Session{
		theme:  DefaultTheme,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		s.catalog = cat
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s, nil
}

// Run shows the landing screen and walks the wizard until the record is
// submitted, returning a copy of it. Choosing Home discards the answers and
// returns to the landing screen. Declining to start returns ErrAborted.
func (s *Session) Run(ctx context.Context) (wizard.FormData, error) {
	if s.driver == nil {
		return wizard.FormData{}, ErrNoDriver
	}
	for {
		start, err := s.landing(ctx)
		if err != nil {
			return wizard.FormData{}, err
		}
		if !start {
			return wizard.FormData{}, ErrAborted
		}

		data, submitted, err := s.walk(ctx)
		if err != nil {
			return wizard.FormData{}, err
		}
		if submitted {
			return data, nil
		}
		s.logger.Debug().Msg("returned to landing")
	}
}

func (s *Session) landing(ctx context.Context) (bool, error) {
	if err := s.draw(ctx, render.NewLandingView(s.catalog)); err != nil {
		return false, err
	}
	return s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.catalog.Landing.CTA + "?",
		Default: true,
	})
}

func (s *Session) walk(ctx context.Context) (wizard.FormData, bool, error) {
	home := false
	options := []wizard.Option{
		wizard.WithMessages(s.catalog.MessageSet()),
		wizard.WithLogger(s.logger),
		wizard.WithRouter(wizard.RouterFunc(func(path string) {
			home = path == wizard.PathHome
		})),
	}
	c := wizard.New(append(options, s.controllerOptions...)...)

	for {
		if err := s.draw(ctx, render.NewWizardView(c, s.catalog)); err != nil {
			return wizard.FormData{}, false, err
		}
		if err := s.promptStep(ctx, c); err != nil {
			return wizard.FormData{}, false, err
		}

		action, err := s.chooseAction(ctx, c)
		if err != nil {
			return wizard.FormData{}, false, err
		}

		switch action {
		case actionNext:
			if !c.NextStep() {
				s.reportErrors(ctx, c)
			}
		case actionBack:
			c.PrevStep()
		case actionSubmit:
			ok, err := c.Submit(ctx)
			if err != nil {
				return wizard.FormData{}, false, err
			}
			if !ok {
				s.reportErrors(ctx, c)
				continue
			}
			s.say(ctx, s.theme.SuccessPrefix+c.SuccessMessage())
			return c.Data(), true, nil
		case actionHome:
			c.GoToHome()
			if home {
				return wizard.FormData{}, false, nil
			}
		}
	}
}

func (s *Session) draw(ctx context.Context, view render.View) error {
	out, err := TextRenderer{Theme: s.theme}.Render(ctx, view, render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, s.theme.InfoPrefix+strings.TrimRight(string(out), "\n"))
}

func (s *Session) promptStep(ctx context.Context, c *wizard.Controller) error {
	step, _ := s.catalog.Step(c.Step())
	for _, field := range step.Fields {
		if err := s.promptField(ctx, c, field); err != nil {
			return err
		}
	}
	return nil
}

// promptField asks until the value passes the field's live check. Step gate
// rules (required fields) are enforced by Next and Submit.
func (s *Session) promptField(ctx context.Context, c *wizard.Controller, field catalog.Field) error {
	f := field.Field
	for {
		raw, err := s.ask(ctx, c, field)
		if err != nil {
			return err
		}

		if f.Secret() && raw == "" && c.Data().Value(f) != "" {
			return nil
		}
		if f == wizard.FieldName && wizard.SanitizeName(raw) != raw {
			s.sayError(ctx, nameFilteredMessage)
		}

		if err := c.Set(f, raw); err != nil {
			if errors.Is(err, wizard.ErrInvalidAge) {
				s.sayError(ctx, ageNumberMessage)
				continue
			}
			return err
		}
		if msg := c.Error(f); msg != "" {
			s.sayError(ctx, msg)
			continue
		}
		return nil
	}
}

func (s *Session) ask(ctx context.Context, c *wizard.Controller, field catalog.Field) (string, error) {
	current := c.Data().Value(field.Field)

	switch field.Input {
	case catalog.InputSelect:
		labels := make([]string, len(field.Options))
		selected := -1
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == current {
				selected = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: selected,
			Help:         field.Help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil

	case catalog.InputPassword:
		help := field.Help
		if current != "" {
			help = strings.TrimSpace(help + " " + keepSecretHelp)
		}
		return s.driver.Password(ctx, InputConfig{Message: field.Label, Help: help})

	default:
		return s.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: current,
			Help:    field.Help,
		})
	}
}

func (s *Session) chooseAction(ctx context.Context, c *wizard.Controller) (string, error) {
	actions := []string{actionNext}
	if c.Step() == wizard.LastStep {
		actions[0] = actionSubmit
	}
	if c.Step() > wizard.FirstStep {
		actions = append(actions, actionBack)
	}
	actions = append(actions, actionHome)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "What next?",
		Options:      actions,
		DefaultIndex: 0,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: action index %d out of range", idx)
	}
	return actions[idx], nil
}

func (s *Session) reportErrors(ctx context.Context, c *wizard.Controller) {
	for _, f := range wizard.StepFor(c.Step()).Fields {
		msg := c.Error(f)
		if msg == "" {
			continue
		}
		label := string(f)
		if field, ok := s.catalog.Field(f); ok {
			label = field.Label
		}
		s.sayError(ctx, label+": "+msg)
	}
}

func (s *Session) say(ctx context.Context, msg string) {
	if err := s.driver.Info(ctx, msg); err != nil {
		s.logger.Warn().Err(err).Msg("print message")
	}
}

func (s *Session) sayError(ctx context.Context, msg string) {
	s.say(ctx, s.theme.ErrorPrefix+msg)
}
