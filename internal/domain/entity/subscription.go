package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// Tier is a user's subscription level
type Tier string

// Subscription tiers
const (
	TierNone    Tier = "none"
	TierBasic   Tier = "basic"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// UnlimitedProducts marks a tier without a product cap
const UnlimitedProducts = -1

// planPrices holds the fixed monthly price of each purchasable plan, in cents
var planPrices = map[Tier]int64{
	TierBasic:   400,
	TierPro:     1200,
	TierPremium: 2400,
}

// productLimits caps how many products a user on each tier may own
var productLimits = map[Tier]int{
	TierNone:    0,
	TierBasic:   1,
	TierPro:     5,
	TierPremium: UnlimitedProducts,
}

// ParseTier converts user input into a known tier
func ParseTier(value string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(value)))
	switch tier {
	case TierNone, TierBasic, TierPro, TierPremium:
		return tier, nil
	default:
		return "", errs.ErrInvalidPlan
	}
}

// ParsePlan converts user input into a purchasable plan (none is not for sale)
func ParsePlan(value string) (Tier, error) {
	tier, err := ParseTier(value)
	if err != nil {
		return "", err
	}
	if _, ok := planPrices[tier]; !ok {
		return "", errs.ErrInvalidPlan
	}
	return tier, nil
}

// IsPaid reports whether the tier is basic, pro or premium
func (t Tier) IsPaid() bool {
	_, ok := planPrices[t]
	return ok
}

// Price returns the plan price in cents
func (t Tier) Price() (int64, error) {
	price, ok := planPrices[t]
	if !ok {
		return 0, errs.ErrInvalidPlan
	}
	return price, nil
}

// ProductLimit returns the maximum number of products, or UnlimitedProducts
func (t Tier) ProductLimit() int {
	limit, ok := productLimits[t]
	if !ok {
		return 0
	}
	return limit
}

// AllowsAnotherProduct reports whether a user owning existing products may create one more
func (t Tier) AllowsAnotherProduct(existing int64) bool {
	limit := t.ProductLimit()
	if limit == UnlimitedProducts {
		return true
	}
	return existing < int64(limit)
}

// DisplayName returns the capitalised plan name used in ledger descriptions
func (t Tier) DisplayName() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}
