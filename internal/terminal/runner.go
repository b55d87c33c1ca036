package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/submission"
	"launchquote/internal/domain/wizard"
	"launchquote/internal/pkg/logger"
	"launchquote/internal/quotemail"
)

var actionLabels = map[wizard.Action]string{
	wizard.ActionNext:      "Looks good, continue",
	wizard.ActionAvail:     "Avail now",
	wizard.ActionSchedule:  "Schedule a free consultation",
	wizard.ActionBack:      "Go back",
	wizard.ActionStartOver: "Start over",
}

// reviewOrder lists forward actions before back and start over.
var reviewOrder = []wizard.Action{
	wizard.ActionNext,
	wizard.ActionAvail,
	wizard.ActionSchedule,
	wizard.ActionBack,
	wizard.ActionStartOver,
}

const pickAnotherDate = "Pick another date"

// Option configures a Runner.
type Option func(*Runner)

// WithLocation renders consultation slots in loc.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) { r.loc = loc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// Runner walks a wizard session with a PromptDriver until it reaches a
// confirmation step.
type Runner struct {
	driver    PromptDriver
	submitter wizard.Submitter
	lggr      logger.Logger
	loc       *time.Location
	now       func() time.Time
}

func NewRunner(driver PromptDriver, submitter wizard.Submitter, lggr logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		driver:    driver,
		submitter: submitter,
		lggr:      lggr.Named("terminal"),
		loc:       time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives sess to a confirmation step and returns the submission record.
func (r *Runner) Run(ctx context.Context, sess *wizard.Session) (*wizard.SubmissionRecord, error) {
	sess.SetClock(r.now)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := sess.Current()
		var err error
		switch step.Kind {
		case wizard.KindIntro:
			err = r.intro(ctx, sess, step)
		case wizard.KindInput:
			err = r.input(ctx, sess, step)
		case wizard.KindSingleChoice:
			err = r.tier(ctx, sess, step)
		case wizard.KindMultiChoice:
			err = r.addOns(ctx, sess, step)
		case wizard.KindOptions:
			err = r.billing(ctx, sess, step)
		case wizard.KindSummary, wizard.KindResults:
			err = r.review(ctx, sess)
		case wizard.KindScheduling:
			err = r.schedule(ctx, sess, step)
		case wizard.KindConfirmation:
			return sess.Submission(), r.finish(ctx, sess)
		default:
			err = fmt.Errorf("terminal: unsupported step kind %q", step.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
}

// dispatch applies action and performs the submission it asks for.
func (r *Runner) dispatch(ctx context.Context, sess *wizard.Session, action wizard.Action) error {
	effect, err := sess.Dispatch(action)
	if err != nil {
		return err
	}
	if !effect.Submit {
		return nil
	}

	req, err := sess.SubmissionRequest(lead.SourceTerminal)
	if err != nil {
		return err
	}
	out := r.submitter.Submit(ctx, req)
	if out.Status != submission.StatusCompleted {
		r.lggr.Warnw("Terminal submission incomplete", "status", out.Status, "err", out.Err)
	}
	sess.RecordOutcome(out, r.now())
	return nil
}

func (r *Runner) intro(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	if err := r.driver.Info(ctx, RenderHeading(step.Title, step.Subtitle)); err != nil {
		return err
	}
	return r.dispatch(ctx, sess, wizard.ActionNext)
}

func (r *Runner) input(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	value, err := r.driver.Input(ctx, InputConfig{
		Message: sess.Prompt(),
		Default: sess.Form().Value(step.Field),
		Help:    step.Placeholder,
	})
	if err != nil {
		return err
	}
	if err := sess.SetField(step.Field, value); err != nil {
		return err
	}

	err = r.dispatch(ctx, sess, wizard.ActionNext)
	if errors.Is(err, wizard.ErrValidation) {
		return r.driver.Info(ctx, errorStyle.Render(sess.Errors()[step.Field]))
	}
	return err
}

func (r *Runner) tier(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	current := sess.Form().Tier
	labels := make([]string, len(step.Options))
	selected := 0
	for i, opt := range step.Options {
		labels[i] = opt.Description + ": " + opt.Label
		if opt.Value == current {
			selected = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: sess.Prompt(), Options: labels, DefaultIndex: selected})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(step.Options) {
		return nil
	}
	if err := sess.SetField(wizard.FieldTier, step.Options[idx].Value); err != nil {
		return err
	}
	return r.dispatch(ctx, sess, wizard.ActionNext)
}

func (r *Runner) addOns(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	form := sess.Form()
	labels := make([]string, len(step.Options))
	var defaults []int
	for i, opt := range step.Options {
		labels[i] = fmt.Sprintf("%s (+%s)", opt.Label, quotemail.Peso(opt.Price))
		if form.HasAddOn(opt.Value) {
			defaults = append(defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  sess.Prompt(),
		Options:  labels,
		Defaults: defaults,
		Help:     step.Subtitle,
		PageSize: len(labels),
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]bool, len(picked))
	for _, i := range picked {
		chosen[i] = true
	}
	for i, opt := range step.Options {
		if err := sess.ToggleAddOn(opt.Value, chosen[i]); err != nil {
			return err
		}
	}
	return r.dispatch(ctx, sess, wizard.ActionNext)
}

func (r *Runner) billing(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	form := sess.Form()
	labels := make([]string, len(step.Options))
	selected := 0
	for i, opt := range step.Options {
		labels[i] = opt.Label
		if opt.Value == string(form.BillingCycle) {
			selected = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      sess.Prompt(),
		Options:      labels,
		DefaultIndex: selected,
		Help:         step.Subtitle,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(step.Options) {
		if err := sess.SetField(wizard.FieldBillingCycle, step.Options[idx].Value); err != nil {
			return err
		}
	}

	rush, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Add rush delivery?", Default: form.IsRush})
	if err != nil {
		return err
	}
	if err := sess.SetField(wizard.FieldIsRush, strconv.FormatBool(rush)); err != nil {
		return err
	}
	return r.dispatch(ctx, sess, wizard.ActionNext)
}

// review shows the package and offers the step's actions.
func (r *Runner) review(ctx context.Context, sess *wizard.Session) error {
	view := sess.View()
	out := RenderHeading(view.Step.Title, view.Step.Message)
	if view.Package != nil {
		out += "\n" + RenderSummary(view.Package)
	}
	if err := r.driver.Info(ctx, out); err != nil {
		return err
	}

	available := make(map[wizard.Action]bool, len(view.Actions))
	for _, a := range view.Actions {
		available[a] = true
	}
	quoteBased := view.Package != nil && view.Package.QuoteBased

	var actions []wizard.Action
	var labels []string
	for _, a := range reviewOrder {
		if !available[a] || (a == wizard.ActionNext && quoteBased) {
			continue
		}
		actions = append(actions, a)
		labels = append(labels, actionLabels[a])
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "What would you like to do?", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(actions) {
		return nil
	}
	return r.dispatch(ctx, sess, actions[idx])
}

func (r *Runner) schedule(ctx context.Context, sess *wizard.Session, step wizard.Step) error {
	if err := r.driver.Info(ctx, RenderHeading(step.Title, step.Subtitle)); err != nil {
		return err
	}

	def := sess.Form().ConsultationDate
	if def == "" {
		def = r.now().In(r.loc).AddDate(0, 0, 1).Format(time.DateOnly)
	}
	date, err := r.driver.Input(ctx, InputConfig{
		Message: "Consultation date (YYYY-MM-DD)",
		Default: def,
		Help:    "Leave blank to go back.",
	})
	if err != nil {
		return err
	}
	if date == "" {
		return r.dispatch(ctx, sess, wizard.ActionBack)
	}
	if err := sess.SetField(wizard.FieldConsultationDate, date); err != nil {
		if errors.Is(err, wizard.ErrInvalidDate) {
			return r.driver.Info(ctx, errorStyle.Render("Please enter a date like 2025-03-10."))
		}
		return err
	}

	slots, err := wizard.AvailableSlots(date, r.now(), r.loc)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return r.driver.Info(ctx, warnStyle.Render("No times left on that date. Please pick another day."))
	}

	labels := make([]string, 0, len(slots)+1)
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	labels = append(labels, pickAnotherDate)

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Choose a time", Options: labels, PageSize: 10})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(slots) {
		return nil
	}
	if err := sess.SetField(wizard.FieldConsultationTime, slots[idx].Value.Format(time.RFC3339)); err != nil {
		return err
	}
	return r.dispatch(ctx, sess, wizard.ActionConfirm)
}

func (r *Runner) finish(ctx context.Context, sess *wizard.Session) error {
	view := sess.View()
	if err := r.driver.Info(ctx, RenderHeading(view.Step.Title, view.Step.Message)); err != nil {
		return err
	}

	rec := view.Submission
	if rec == nil {
		return nil
	}
	var status string
	switch submission.Status(rec.Status) {
	case submission.StatusCompleted:
		status = okStyle.Render("Your details were saved and a confirmation email is on its way.")
	case submission.StatusLeadSavedEmailFailed:
		status = warnStyle.Render("Your details were saved, but we could not send the confirmation email.")
	default:
		status = errorStyle.Render("We could not save your details: " + rec.Error)
	}
	return r.driver.Info(ctx, status)
}
