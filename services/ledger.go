package services

import (
	"context"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

// ============================================================================
// LEDGER AGGREGATION
// ============================================================================
// Contribution totals are computed over persisted records, never cached.
// Only records created strictly after a goal's creation timestamp count
// toward that goal, so leftovers from a previous goal of the same type are
// ignored.

// contributionTotal sums the signed amounts of a member's records of the
// given type. A non-nil since restricts the sum to records created strictly
// after that instant.
func contributionTotal(ctx context.Context, st storage.RecordStore, rt models.RecordType, memberID string, since *time.Time) (int, error) {
	records, err := st.RecordsByTypeAndMember(ctx, rt, memberID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range records {
		if since != nil && !r.CreatedAt.After(*since) {
			continue
		}
		total += r.Amount
	}
	return total, nil
}

// contributionRecords returns the member's records of the given type created
// strictly after since, for the goal detail views.
func contributionRecords(ctx context.Context, st storage.RecordStore, rt models.RecordType, memberID string, since time.Time) ([]models.Record, error) {
	records, err := st.RecordsByTypeAndMember(ctx, rt, memberID)
	if err != nil {
		return nil, err
	}
	var filtered []models.Record
	for _, r := range records {
		if r.CreatedAt.After(since) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// percentOf computes floor(100*current/target) with truncating integer
// division. A zero or negative target yields 0 rather than dividing by zero.
func percentOf(current, target int) int {
	if target <= 0 {
		return 0
	}
	return 100 * current / target
}

// leftOf may go negative once a goal is over-funded; over-funding signals
// immediate completion.
func leftOf(current, target int) int {
	if target <= 0 {
		return 0
	}
	return target - current
}
