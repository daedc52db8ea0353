package council

import "github.com/trebuchet-org/council/internal/domain/models"

// RequiredVotes is the number of cast votes that approves a motion under req
// in a council of n representatives.
//
// Majority is n/2 with floor division, so an even council approves at exactly
// half. FixedPercent divides before multiplying and therefore needs at least
// 100 members before it asks for any votes at all.
func RequiredVotes(req models.ApprovalRequirement, n uint64) uint64 {
	switch req.Policy {
	case models.PolicyFixedCount:
		return req.Threshold
	case models.PolicyFixedPercent:
		return (n / 100) * req.Threshold
	default:
		return n / 2
	}
}

// Approves reports whether v cast votes satisfy req for n representatives
func Approves(req models.ApprovalRequirement, n, v uint64) bool {
	return v >= RequiredVotes(req, n)
}
