/*
Package feetier derives the platform fee from a worker's reputation.

The policy is pure: it reads nothing from contract storage and always
returns the same fee for the same score and completed-job count, so it can
be used both inside the Marketplace contract and by off-chain code
estimating payouts.
*/
package feetier

// Fee tier thresholds and rates. Score is a 1-5 star average scaled by 100,
// fees are in basis points of the bounty.
const (
	// PlatinumScore and PlatinumJobs gate the zero-fee tier.
	PlatinumScore = 450
	PlatinumJobs  = 5
	PlatinumBps   = 0

	// GoldScore and GoldJobs gate the reduced-fee tier.
	GoldScore = 400
	GoldJobs  = 3
	GoldBps   = 250

	// BaseBps is the default rate, including brand-new workers.
	BaseBps = 500

	// MaxBps caps any configurable fee at 100%.
	MaxBps = 10000
)

// FeeBps maps a worker's reputation score and completed-job count to the
// platform fee in basis points. Tiers are evaluated strictest-first, the
// first match wins.
func FeeBps(score, jobCount int) int {
	if score >= PlatinumScore && jobCount >= PlatinumJobs {
		return PlatinumBps
	}
	if score >= GoldScore && jobCount >= GoldJobs {
		return GoldBps
	}
	return BaseBps
}
