package service

import (
	"context"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/logger"

	"go.uber.org/zap"
)

// CheckoutService creates subscriptions and records checkout signals. The
// pricing tier arrives from the client-held tier state; the price row is
// looked up independently here, the tier never carries an amount.
type CheckoutService interface {
	CreateSubscription(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// RecordCheckoutCanceled stores the checkout-cancellation signal in the
	// session's funnel metadata.
	RecordCheckoutCanceled(ctx context.Context, sessionID string) error
}

// checkoutService implements CheckoutService
type checkoutService struct {
	pricingRepo      domain.PricingRepository
	subscriptionRepo domain.SubscriptionRepository
	sessionRepo      domain.SessionRepository
	txManager        domain.TransactionManager
}

// NewCheckoutService creates a new instance of checkoutService
func NewCheckoutService(
	pricingRepo domain.PricingRepository,
	subscriptionRepo domain.SubscriptionRepository,
	sessionRepo domain.SessionRepository,
	txManager domain.TransactionManager,
) CheckoutService {
	return &checkoutService{
		pricingRepo:      pricingRepo,
		subscriptionRepo: subscriptionRepo,
		sessionRepo:      sessionRepo,
		txManager:        txManager,
	}
}

// CreateSubscription implements CheckoutService
func (s *checkoutService) CreateSubscription(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !domain.ValidPricingTier(req.Tier) {
		return nil, domain.NewInvalidTierError(req.Tier)
	}
	tier := domain.PricingTier(req.Tier)

	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	price, err := s.pricingRepo.GetPriceRow(ctx, req.OfferID, tier)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up price", err)
	}
	if price == nil {
		return nil, domain.NewOfferNotFoundError(req.OfferID)
	}

	subscription := &domain.Subscription{
		SessionID:   sessionID,
		OfferID:     req.OfferID,
		Tier:        tier,
		AmountCents: price.AmountCents,
		Currency:    price.Currency,
		Status:      domain.SubscriptionStatusPending,
	}

	// Subscription row and the funnel-metadata echo of the chosen tier are
	// written together or not at all.
	merged := domain.MergeFunnelMetadata(session.Metadata, domain.FunnelMetadata{
		"checkout_tier":     string(tier),
		"checkout_offer_id": req.OfferID,
	})
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.CreateSubscription(txCtx, subscription); err != nil {
			return err
		}
		return s.sessionRepo.UpdateFunnelMetadata(txCtx, sessionID, merged)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create subscription", err)
	}

	logger.Get().Info("Subscription created",
		zap.String("sessionID", sessionID),
		zap.String("offerID", req.OfferID),
		zap.String("tier", string(tier)),
		zap.Int64("amountCents", price.AmountCents))

	return &dto.CheckoutResponse{
		SubscriptionID: subscription.ID,
		OfferID:        subscription.OfferID,
		Tier:           string(subscription.Tier),
		AmountCents:    subscription.AmountCents,
		Currency:       subscription.Currency,
		Status:         subscription.Status,
	}, nil
}

// RecordCheckoutCanceled implements CheckoutService
func (s *checkoutService) RecordCheckoutCanceled(ctx context.Context, sessionID string) error {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return domain.NewSessionNotFoundError(sessionID)
	}

	merged := domain.MergeFunnelMetadata(session.Metadata, domain.FunnelMetadata{
		domain.MetadataKeyCheckoutCanceled: true,
	})
	if err := s.sessionRepo.UpdateFunnelMetadata(ctx, sessionID, merged); err != nil {
		return err
	}

	logger.Get().Info("Checkout cancellation recorded", zap.String("sessionID", sessionID))
	return nil
}
