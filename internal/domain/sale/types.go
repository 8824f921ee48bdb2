package sale

import (
	"strings"
	"time"
)

// PackageTier is the template package purchased at checkout.
type PackageTier string

const (
	TierBasic      PackageTier = "basic"
	TierPro        PackageTier = "pro"
	TierEnterprise PackageTier = "enterprise"
)

func (t PackageTier) IsValid() bool {
	switch t {
	case TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

func (t PackageTier) String() string {
	return string(t)
}

// KeyPrefix is the first 3 letters of the uppercased tier, used as the
// license key prefix (BAS / PRO / ENT).
func (t PackageTier) KeyPrefix() string {
	s := t.String()
	if len(s) < 3 {
		return "TPL"
	}
	return strings.ToUpper(s[:3])
}

// RequiresRepoAccess reports whether the tier includes GitHub repository
// access. Basic never does.
func (t PackageTier) RequiresRepoAccess() bool {
	return t == TierPro || t == TierEnterprise
}

type SupportTier string

const (
	SupportEmail         SupportTier = "email"
	SupportPriorityEmail SupportTier = "priority_email"
	SupportDedicated     SupportTier = "phone_email_dedicated"
)

func (t PackageTier) SupportTier() SupportTier {
	switch t {
	case TierPro:
		return SupportPriorityEmail
	case TierEnterprise:
		return SupportDedicated
	default:
		return SupportEmail
	}
}

// AccessExpiresAt returns when download access lapses. Enterprise access is
// lifetime (nil).
func (t PackageTier) AccessExpiresAt(now time.Time) *time.Time {
	var d time.Duration
	switch t {
	case TierBasic:
		d = 30 * 24 * time.Hour
	case TierPro:
		d = 90 * 24 * time.Hour
	default:
		return nil
	}
	at := now.Add(d)
	return &at
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

// FulfillmentState is the explicit state column replacing the ad hoc
// metadata flags of older builds. The flags are still mirrored into the
// metadata map for stores shared with unmigrated rows.
type FulfillmentState string

const (
	StateUnfulfilled FulfillmentState = "unfulfilled"
	StateFulfilling  FulfillmentState = "fulfilling"
	StateFulfilled   FulfillmentState = "fulfilled"
)
