package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/lifecycle"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/planner"
	"github.com/sandeepkv93/tasklog/internal/progress"
	"github.com/sandeepkv93/tasklog/internal/storage"
)

var ErrNoPlanner = errors.New("records: plan generator not configured")

// Draft is the user input for a new record. Empty dates default to today,
// and an empty end date defaults to the start date.
type Draft struct {
	Title     string
	StartDate string
	EndDate   string
	Plan      []model.PlanStep
	Tags      []string
}

type Service struct {
	repo    storage.Repository
	clock   datemath.Clock
	logger  *log.Logger
	planner planner.Generator
	gen     Generation
	newID   func() string
}

type Option func(*Service)

func WithClock(c datemath.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithPlanner(g planner.Generator) Option {
	return func(s *Service) { s.planner = g }
}

func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		clock:  datemath.SystemClock{},
		logger: log.New(io.Discard, "", 0),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Generation() *Generation {
	return &s.gen
}

func (s *Service) Clock() datemath.Clock {
	return s.clock
}

// Load returns the active records newest first, with states re-derived
// against the current time. Changed states are written back.
func (s *Service) Load(ctx context.Context) ([]model.Record, error) {
	items, err := s.decodeTable(ctx, storage.TableRecord)
	if err != nil {
		return nil, err
	}
	refreshed, err := s.Refresh(ctx, items)
	if err != nil {
		s.logger.Printf("warn: persist refreshed states: %v", err)
	}
	slices.Reverse(refreshed)
	return refreshed, nil
}

// LoadArchive returns archived records in storage order.
func (s *Service) LoadArchive(ctx context.Context) ([]model.Record, error) {
	return s.decodeTable(ctx, storage.TableArchive)
}

// LoadAll returns archived records followed by active ones.
func (s *Service) LoadAll(ctx context.Context) ([]model.Record, error) {
	archived, err := s.LoadArchive(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return append(archived, active...), nil
}

// Refresh re-derives every state and persists only the records that
// changed. The returned slice always carries the derived states.
func (s *Service) Refresh(ctx context.Context, items []model.Record) ([]model.Record, error) {
	out, changed := lifecycle.Refresh(items, s.clock.Now())
	var errs []error
	for _, i := range changed {
		if err := s.put(ctx, storage.TableRecord, out[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

func (s *Service) Get(ctx context.Context, id string) (model.Record, error) {
	return s.get(ctx, storage.TableRecord, id)
}

func (s *Service) Create(ctx context.Context, d Draft) (model.Record, error) {
	now := s.clock.Now()
	today := datemath.Today(now)
	r := model.Record{
		UUID:      s.newID(),
		Title:     strings.TrimSpace(d.Title),
		StartDate: strings.TrimSpace(d.StartDate),
		EndDate:   strings.TrimSpace(d.EndDate),
		Plan:      append([]model.PlanStep(nil), d.Plan...),
		Tags:      append([]string(nil), d.Tags...),
	}
	if r.StartDate == "" {
		r.StartDate = today
	}
	if r.EndDate == "" {
		r.EndDate = r.StartDate
	}
	if _, err := datemath.ParseDate(r.StartDate); err != nil {
		return model.Record{}, err
	}
	if _, err := datemath.ParseDate(r.EndDate); err != nil {
		return model.Record{}, err
	}
	r = lifecycle.CorrectDates(r)
	r.State = lifecycle.InitialState(r.StartDate, r.EndDate, now)
	if err := r.Validate(); err != nil {
		return model.Record{}, err
	}

	data, err := model.Encode(r)
	if err != nil {
		return model.Record{}, err
	}
	if err := s.repo.Insert(ctx, storage.TableRecord, r.UUID, data); err != nil {
		return model.Record{}, fmt.Errorf("insert record %s: %w", r.UUID, err)
	}
	return r, nil
}

// Save persists an edited record after applying the date correction rule
// and re-deriving its state.
func (s *Service) Save(ctx context.Context, r model.Record) (model.Record, error) {
	r = lifecycle.CorrectDates(r.Clone())
	if next, ok := lifecycle.Derive(r.StartDate, r.EndDate, r.State, s.clock.Now()); ok {
		r.State = next
	}
	if err := r.Validate(); err != nil {
		return model.Record{}, err
	}
	if err := s.put(ctx, storage.TableRecord, r); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

// SetState applies an explicit user state change.
func (s *Service) SetState(ctx context.Context, id string, state model.RecordState) (model.Record, error) {
	if !state.IsValid() {
		return model.Record{}, fmt.Errorf("%w: %q", model.ErrInvalidState, state)
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return model.Record{}, err
	}
	r = lifecycle.ApplyUserState(r, state, s.clock.Now())
	if err := s.put(ctx, storage.TableRecord, r); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, storage.TableRecord, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// Archive moves an active record into the archive table under the same id.
func (s *Service) Archive(ctx context.Context, id string) error {
	if err := s.repo.Transfer(ctx, storage.TableRecord, storage.TableArchive, id); err != nil {
		return fmt.Errorf("archive record %s: %w", id, err)
	}
	return nil
}

// Recover moves an archived record back into the active table and
// re-derives its state.
func (s *Service) Recover(ctx context.Context, id string) (model.Record, error) {
	if err := s.repo.Transfer(ctx, storage.TableArchive, storage.TableRecord, id); err != nil {
		return model.Record{}, fmt.Errorf("recover record %s: %w", id, err)
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return model.Record{}, err
	}
	if next, ok := lifecycle.Derive(r.StartDate, r.EndDate, r.State, s.clock.Now()); ok {
		r.State = next
		if err := s.put(ctx, storage.TableRecord, r); err != nil {
			return model.Record{}, err
		}
	}
	return r, nil
}

func (s *Service) RemoveArchived(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, storage.TableArchive, id); err != nil {
		return fmt.Errorf("remove archived record %s: %w", id, err)
	}
	return nil
}

// GeneratePlan asks the configured generator for a checklist and replaces
// the record's plan with it. On failure the record is left unchanged.
func (s *Service) GeneratePlan(ctx context.Context, id, locale string) (model.Record, error) {
	if s.planner == nil {
		return model.Record{}, ErrNoPlanner
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return model.Record{}, err
	}
	req := planner.Request{
		Days:   progress.RemainingDays(r.StartDate, r.EndDate) + 1,
		Task:   r.Title,
		Locale: locale,
	}
	steps, err := s.planner.Generate(ctx, req)
	if err != nil {
		return model.Record{}, fmt.Errorf("generate plan for %s: %w", id, err)
	}
	if len(steps) == 0 {
		return model.Record{}, planner.ErrEmptyPlan
	}
	r = ReplacePlan(r, steps)
	if err := s.put(ctx, storage.TableRecord, r); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

func (s *Service) get(ctx context.Context, table storage.Table, id string) (model.Record, error) {
	entry, err := s.repo.Select(ctx, table, id)
	if err != nil {
		return model.Record{}, fmt.Errorf("select %s %s: %w", table, id, err)
	}
	return model.Decode(entry.Data)
}

func (s *Service) put(ctx context.Context, table storage.Table, r model.Record) error {
	data, err := model.Encode(r)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, table, r.UUID, data); err != nil {
		return fmt.Errorf("update %s %s: %w", table, r.UUID, err)
	}
	return nil
}

// decodeTable loads a table, dropping rows that fail to decode.
func (s *Service) decodeTable(ctx context.Context, table storage.Table) ([]model.Record, error) {
	entries, err := s.repo.SelectAll(ctx, table, storage.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("select all %s: %w", table, err)
	}
	out := make([]model.Record, 0, len(entries))
	for _, e := range entries {
		r, err := model.Decode(e.Data)
		if err != nil {
			s.logger.Printf("warn: skip %s row %s: %v", table, e.ID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
