package services

import (
	"context"
	"testing"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/google/uuid"
)

func seedRecord(f *fakeStore, memberID string, rt models.RecordType, amount int, createdAt time.Time) {
	f.records = append(f.records, &models.Record{
		ID:         uuid.New().String(),
		MemberID:   memberID,
		RecordType: rt,
		RecordDate: createdAt,
		Amount:     amount,
		CreatedAt:  createdAt,
	})
}

func TestContributionTotalScopedToEpoch(t *testing.T) {
	f := newFakeStore()
	f.addMember("m1", "alice")

	epoch := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedRecord(f, "m1", models.RecordTypeChallenge, 5000, epoch.Add(-time.Hour))
	seedRecord(f, "m1", models.RecordTypeChallenge, 5000, epoch) // not strictly after
	seedRecord(f, "m1", models.RecordTypeChallenge, 4000, epoch.Add(time.Hour))
	seedRecord(f, "m1", models.RecordTypeChallenge, 7000, epoch.Add(2*time.Hour))
	seedRecord(f, "m1", models.RecordTypeGroup, 9000, epoch.Add(time.Hour))
	seedRecord(f, "m2", models.RecordTypeChallenge, 9000, epoch.Add(time.Hour))

	total, err := contributionTotal(context.Background(), f, models.RecordTypeChallenge, "m1", &epoch)
	if err != nil {
		t.Fatalf("contribution total: %v", err)
	}
	if total != 11000 {
		t.Fatalf("expected 11000, got %d", total)
	}
}

func TestContributionTotalUnscoped(t *testing.T) {
	f := newFakeStore()
	f.addMember("m1", "alice")

	now := time.Now()
	seedRecord(f, "m1", models.RecordTypeGroup, 3000, now.Add(-48*time.Hour))
	seedRecord(f, "m1", models.RecordTypeGroup, -1000, now)

	total, err := contributionTotal(context.Background(), f, models.RecordTypeGroup, "m1", nil)
	if err != nil {
		t.Fatalf("contribution total: %v", err)
	}
	if total != 2000 {
		t.Fatalf("expected 2000, got %d", total)
	}
}

func TestPercentOfTruncates(t *testing.T) {
	cases := []struct {
		current, target, want int
	}{
		{0, 10000, 0},
		{4000, 10000, 40},
		{9999, 10000, 99},
		{10000, 10000, 100},
		{15000, 10000, 150},
		{1, 3, 33},
		{5000, 0, 0},
		{5000, -1, 0},
	}
	for _, c := range cases {
		if got := percentOf(c.current, c.target); got != c.want {
			t.Errorf("percentOf(%d, %d) = %d, want %d", c.current, c.target, got, c.want)
		}
	}
}

func TestLeftOfGoesNegativeWhenOverfunded(t *testing.T) {
	if got := leftOf(12000, 10000); got != -2000 {
		t.Fatalf("expected -2000, got %d", got)
	}
	if got := leftOf(4000, 10000); got != 6000 {
		t.Fatalf("expected 6000, got %d", got)
	}
	if got := leftOf(4000, 0); got != 0 {
		t.Fatalf("expected 0 for zero target, got %d", got)
	}
}
