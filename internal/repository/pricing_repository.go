package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/repository/models"
	"quiz-funnel/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxPricingRepository implements domain.PricingRepository using sqlx.
type sqlxPricingRepository struct {
	db *sqlx.DB
}

// NewSQLXPricingRepository creates a new instance of sqlxPricingRepository.
func NewSQLXPricingRepository(db *sqlx.DB) domain.PricingRepository {
	return &sqlxPricingRepository{db: db}
}

func toDomainPriceRow(m *models.PriceRow) *domain.PriceRow {
	if m == nil {
		return nil
	}
	return &domain.PriceRow{
		ID:          m.ID,
		OfferID:     m.OfferID,
		Tier:        domain.PricingTier(m.Tier),
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		Interval:    m.BillingInterval,
	}
}

// GetPriceRow returns the price row for an offer at a tier, nil when absent.
func (r *sqlxPricingRepository) GetPriceRow(ctx context.Context, offerID string, tier domain.PricingTier) (*domain.PriceRow, error) {
	var m models.PriceRow
	query := `SELECT
		id "id",
		offer_id "offer_id",
		tier "tier",
		amount_cents "amount_cents",
		currency "currency",
		billing_interval "billing_interval"
	FROM pricing_tiers
	WHERE offer_id = :1
	AND tier = :2`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, offerID, string(tier))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get price row for offer %s tier %s: %w", offerID, tier, err)
	}
	return toDomainPriceRow(&m), nil
}

// SavePriceRow persists a new price row.
func (r *sqlxPricingRepository) SavePriceRow(ctx context.Context, row *domain.PriceRow) error {
	if row == nil {
		return fmt.Errorf("cannot save nil price row")
	}
	if row.ID == "" {
		row.ID = util.NewULID()
	}

	query := `INSERT INTO pricing_tiers (
		id, offer_id, tier, amount_cents, currency, billing_interval
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		row.ID,
		row.OfferID,
		string(row.Tier),
		row.AmountCents,
		row.Currency,
		row.Interval,
	)
	if err != nil {
		return fmt.Errorf("failed to save price row: %w", err)
	}
	return nil
}

// sqlxSubscriptionRepository implements domain.SubscriptionRepository using sqlx.
type sqlxSubscriptionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubscriptionRepository creates a new instance of sqlxSubscriptionRepository.
func NewSQLXSubscriptionRepository(db *sqlx.DB) domain.SubscriptionRepository {
	return &sqlxSubscriptionRepository{db: db}
}

// CreateSubscription persists a new subscription row.
func (r *sqlxSubscriptionRepository) CreateSubscription(ctx context.Context, subscription *domain.Subscription) error {
	if subscription == nil {
		return fmt.Errorf("cannot create nil subscription")
	}
	if subscription.ID == "" {
		subscription.ID = util.NewULID()
	}
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now()
	}

	query := `INSERT INTO subscriptions (
		id, session_id, offer_id, tier, amount_cents, currency, status, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		subscription.ID,
		subscription.SessionID,
		subscription.OfferID,
		string(subscription.Tier),
		subscription.AmountCents,
		subscription.Currency,
		subscription.Status,
		subscription.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}
