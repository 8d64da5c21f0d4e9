// Package service runs address form sessions: each session owns one
// selection, replays it into a resolver on every request and persists what
// the resolver emits.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cleanhome/internal/address/metrics"
	"cleanhome/internal/address/models"
	"cleanhome/internal/address/resolver"
	dErrors "cleanhome/pkg/domain-errors"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/requestcontext"
)

// DefaultSessionTTL bounds how long an idle form session is kept.
const DefaultSessionTTL = 30 * time.Minute

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks cleanhome/internal/address/service Store

// Store persists form sessions.
type Store interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

// Catalog combines the lookups the resolver needs with the membership checks
// used when validating a submit.
type Catalog interface {
	resolver.Catalog
	HasSubRegion(regionID, subRegionID string) bool
	HasSubSubRegion(regionID, subRegionID, subSubRegionID string) bool
}

// Service orchestrates address form sessions.
type Service struct {
	store   Store
	catalog Catalog
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithSessionTTL overrides DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the service. store and catalog are required.
func New(store Store, catalog Catalog, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("address session store is required")
	}
	if catalog == nil {
		return nil, errors.New("address catalog is required")
	}
	s := &Service{
		store:   store,
		catalog: catalog,
		ttl:     DefaultSessionTTL,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer("cleanhome/internal/address/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create starts a form session seeded with initial. The initial value comes
// from the owning form and is trusted as-is.
func (s *Service) Create(ctx context.Context, initial models.Selection) (*models.SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "address.Create")
	defer span.End()
	defer s.observe("create", time.Now())

	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:        uuid.New(),
		Selection: initial,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create address session")
	}
	span.SetAttributes(attribute.String("session_id", session.ID.String()))

	if s.metrics != nil {
		s.metrics.IncrementSessionsCreated()
	}
	s.logger.InfoContext(ctx, "address session created",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID,
	)
	return s.view(session, s.resolverFor(session)), nil
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "address.Get", trace.WithAttributes(attribute.String("session_id", id.String())))
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session, s.resolverFor(session)), nil
}

// ApplyTransition applies one user edit with cascade clearing and persists
// the emitted selection.
func (s *Service) ApplyTransition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "address.ApplyTransition", trace.WithAttributes(
		attribute.String("session_id", id.String()),
		attribute.String("kind", string(t.Kind)),
	))
	defer span.End()
	defer s.observe("transition", time.Now())

	if !t.Kind.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unsupported transition %q", t.Kind))
	}

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	r := resolver.New(s.catalog, session.Selection, func(sel models.Selection) {
		session.Selection = sel
	})
	if err := r.ApplyUserTransition(t); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementTransitions(string(t.Kind))
	}
	s.logger.DebugContext(ctx, "address transition applied",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"kind", t.Kind,
	)
	return s.view(session, r), nil
}

// Sync replaces the session's selection with a value pushed by the owning
// form. The value is stored verbatim, without cascade clearing.
func (s *Service) Sync(ctx context.Context, id uuid.UUID, sel models.Selection) (*models.SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "address.Sync", trace.WithAttributes(attribute.String("session_id", id.String())))
	defer span.End()
	defer s.observe("sync", time.Now())

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	r := s.resolverFor(session)
	r.ApplyExternalSync(sel)
	session.Selection = r.Selection()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementExternalSyncs()
	}
	return s.view(session, r), nil
}

// Submit validates the selection, returns its formatted address and discards
// the session.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "address.Submit", trace.WithAttributes(attribute.String("session_id", id.String())))
	defer span.End()
	defer s.observe("submit", time.Now())

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Validate(session.Selection); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementSubmitsRejected()
		}
		s.logger.InfoContext(ctx, "address submit rejected",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"reason", err.Error(),
		)
		return nil, err
	}

	address := s.resolverFor(session).FormatAddress()
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to discard address session")
	}

	if s.metrics != nil {
		s.metrics.IncrementSessionsSubmitted()
	}
	s.logger.InfoContext(ctx, "address submitted",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"city", session.Selection.RegionID,
		"district", session.Selection.SubRegionID,
	)
	return &models.Submission{Selection: session.Selection, Address: address}, nil
}

// Discard drops a session without submitting it.
func (s *Service) Discard(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "address session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to discard address session")
	}
	return nil
}

// Format renders a stateless preview for sel; "" while incomplete.
func (s *Service) Format(sel models.Selection) string {
	return resolver.New(s.catalog, sel, nil).FormatAddress()
}

// Validate checks that sel is complete and that its keys exist in the catalog.
func (s *Service) Validate(sel models.Selection) error {
	var missing []string
	if sel.RegionID == "" {
		missing = append(missing, "city")
	}
	if sel.SubRegionID == "" {
		missing = append(missing, "district")
	}
	if sel.SubSubRegionID == "" {
		missing = append(missing, "ward")
	}
	if strings.TrimSpace(sel.HouseNumber) == "" {
		missing = append(missing, "houseNumber")
	}
	if strings.TrimSpace(sel.Street) == "" {
		missing = append(missing, "street")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required address fields: "+strings.Join(missing, ", "))
	}

	if !s.catalog.HasSubSubRegion(sel.RegionID, sel.SubRegionID, sel.SubSubRegionID) {
		return dErrors.New(dErrors.CodeValidation, "selected city, district and ward do not match")
	}
	return nil
}

// PurgeExpired removes expired sessions from stores that need sweeping.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	n, err := s.store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired address sessions: %w", err)
	}
	if n > 0 {
		if s.metrics != nil {
			s.metrics.AddSessionsPurged(n)
		}
		s.logger.InfoContext(ctx, "expired address sessions purged", "count", n)
	}
	return n, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "address session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load address session")
	}
	return session, nil
}

// save slides the session expiry forward and persists it.
func (s *Service) save(ctx context.Context, session *models.Session) error {
	now := requestcontext.Now(ctx)
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)
	if err := s.store.Save(ctx, session); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "address session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save address session")
	}
	return nil
}

func (s *Service) resolverFor(session *models.Session) *resolver.Resolver {
	return resolver.New(s.catalog, session.Selection, nil)
}

func (s *Service) view(session *models.Session, r *resolver.Resolver) *models.SessionView {
	return &models.SessionView{
		ID:        session.ID,
		Selection: session.Selection,
		Cities:    r.Regions(),
		Districts: r.SubRegions(),
		Wards:     r.SubSubRegions(),
		Preview:   r.FormatAddress(),
		Complete:  r.IsComplete(),
		ExpiresAt: session.ExpiresAt,
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}
