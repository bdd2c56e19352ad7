package domain

// PricingTier is one of three discount levels offered during checkout.
type PricingTier string

const (
	TierFirstDiscount PricingTier = "FIRST_DISCOUNT"
	TierMaxDiscount   PricingTier = "MAX_DISCOUNT"
	TierFullPrice     PricingTier = "FULL_PRICE"
)

// ValidPricingTier reports whether the string names a known tier.
func ValidPricingTier(tier string) bool {
	switch PricingTier(tier) {
	case TierFirstDiscount, TierMaxDiscount, TierFullPrice:
		return true
	}
	return false
}

// PricingTierState tracks which discount tier applies to a shopper. The state
// is held client-side during checkout; transitions are pure so they can be
// replayed anywhere.
//
// Precedence invariant: once a checkout cancellation moves the state to
// MAX_DISCOUNT, no later timer expiry can downgrade it to FULL_PRICE.
type PricingTierState struct {
	Tier             PricingTier `json:"tier"`
	TimerExpired     bool        `json:"timer_expired"`
	CheckoutCanceled bool        `json:"checkout_canceled"`
}

// NewPricingTierState returns the initial state.
func NewPricingTierState() PricingTierState {
	return PricingTierState{Tier: TierFirstDiscount}
}

// HandleCheckoutCanceled applies the checkout-cancellation event. The state
// moves to MAX_DISCOUNT unconditionally and the cancellation flag is
// permanent for the session.
func (s PricingTierState) HandleCheckoutCanceled() PricingTierState {
	s.Tier = TierMaxDiscount
	s.CheckoutCanceled = true
	return s
}

// HandleTimerExpired applies the countdown-expiry event. The state moves to
// FULL_PRICE only when no checkout cancellation happened earlier; a prior
// cancellation locks in MAX_DISCOUNT.
func (s PricingTierState) HandleTimerExpired() PricingTierState {
	s.TimerExpired = true
	if !s.CheckoutCanceled {
		s.Tier = TierFullPrice
	}
	return s
}
