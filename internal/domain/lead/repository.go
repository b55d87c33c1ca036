package lead

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"launchquote/internal/pkg/logger"
)

type gormRepository struct {
	db   *gorm.DB
	lggr logger.Logger
}

// NewRepository creates a gorm-backed lead repository
func NewRepository(db *gorm.DB, lggr logger.Logger) Repository {
	return &gormRepository{db: db, lggr: lggr.Named("lead.repository")}
}

// Create inserts a new lead
func (r *gormRepository) Create(ctx context.Context, lead *Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		r.lggr.Errorw("Lead insert failed", append(dbErrorFields(err), "email", lead.Email, "tier", lead.Tier)...)
		return err
	}
	return nil
}

// GetByPublicID returns ErrLeadNotFound when no row matches.
func (r *gormRepository) GetByPublicID(ctx context.Context, publicID string) (*Lead, error) {
	var lead Lead
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads newest first along with the unpaginated total.
func (r *gormRepository) List(ctx context.Context, filter ListFilter) ([]Lead, int64, error) {
	query := r.db.WithContext(ctx).Model(&Lead{})
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []Lead
	page := query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := page.Find(&leads).Error; err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// CountByTier returns lead counts by tier
func (r *gormRepository) CountByTier(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Tier  string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Select("tier, COUNT(*) AS count").
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Tier] = row.Count
	}
	return counts, nil
}

// dbErrorFields exposes PostgreSQL error details as log fields.
func dbErrorFields(err error) []any {
	fields := []any{"err", err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields = append(fields,
			"pg_code", pgErr.Code,
			"pg_constraint", pgErr.ConstraintName,
			"pg_table", pgErr.TableName,
		)
	}
	return fields
}
