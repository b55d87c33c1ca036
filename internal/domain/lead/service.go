package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
)

// Service handles lead business logic
type Service struct {
	repo Repository
	calc *pricing.Calculator
	lggr logger.Logger
}

// NewService creates lead service
func NewService(repo Repository, calc *pricing.Calculator, lggr logger.Logger) *Service {
	return &Service{repo: repo, calc: calc, lggr: lggr.Named("lead")}
}

// Submit prices a public submission against the catalog and records it.
func (s *Service) Submit(ctx context.Context, req *SubmitLeadRequest, ip, userAgent string) (*Lead, error) {
	pkg, err := s.calc.Calculate(pricing.Input{
		FullName:     req.FullName,
		TierID:       req.Tier.String(),
		AddOnIDs:     req.AddOns,
		BillingCycle: pricing.BillingCycle(req.BillingCycle),
		IsRush:       req.IsRush,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownTier) {
			return nil, ErrUnknownTier
		}
		return nil, err
	}

	return s.Record(ctx, RecordInput{
		FullName:              req.FullName,
		Email:                 req.Email,
		ContactNumber:         req.ContactNumber,
		Package:               pkg,
		ConsultationTimestamp: req.ConsultationTimestamp,
		Source:                SourceAPI,
		IPAddress:             ip,
		UserAgent:             userAgent,
	})
}

// Record persists one lead. The wizard and the terminal runner call it
// through the submission gateway.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Lead, error) {
	if in.Package == nil {
		return nil, fmt.Errorf("%w: missing package", ErrInsertFailed)
	}
	source := in.Source
	if source == "" {
		source = SourceAPI
	}

	lead := &Lead{
		PublicID:              uuid.NewString(),
		FullName:              strings.TrimSpace(in.FullName),
		Email:                 strings.TrimSpace(in.Email),
		ContactNumber:         strings.TrimSpace(in.ContactNumber),
		Tier:                  in.Package.Tier.ID,
		AddOns:                in.Package.AddOnIDs(),
		BillingCycle:          string(in.Package.BillingCycle),
		IsRush:                in.Package.IsRush,
		TotalCost:             in.Package.TotalCost,
		MonthlyFee:            in.Package.MonthlyFee,
		ReferralCode:          in.Package.ReferralCode,
		ConsultationTimestamp: in.ConsultationTimestamp,
		Source:                source,
		IPAddress:             in.IPAddress,
		UserAgent:             in.UserAgent,
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	s.lggr.Infow("Lead recorded", "public_id", lead.PublicID, "tier", lead.Tier, "source", lead.Source)
	return lead, nil
}

// GetByPublicID returns lead by its public id
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Lead, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, ErrLeadNotFound
	}
	return s.repo.GetByPublicID(ctx, publicID)
}

// List returns leads with optional filters
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Lead, int64, error) {
	return s.repo.List(ctx, filter)
}

// Stats returns lead statistics
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	byTier, err := s.repo.CountByTier(ctx)
	if err != nil {
		return nil, err
	}
	stats := &StatsResponse{ByTier: byTier}
	for _, n := range byTier {
		stats.Total += n
	}
	return stats, nil
}
