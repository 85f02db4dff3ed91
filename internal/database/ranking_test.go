package database

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

// seedRankingFixture creates works with like counts [5,5,3,3,3,1] in creation
// order, which must rank as [1,1,3,3,3,6].
func seedRankingFixture(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	db := openTestDB(t)
	ch := seedChallenge(t, db, 10, time.Now().Add(24*time.Hour))

	base := time.Now().Add(-time.Hour)
	for i, likes := range []int{5, 5, 3, 3, 3, 1} {
		seedWork(t, db, ch.ID, likes, base.Add(time.Duration(i)*time.Minute))
	}
	return db, ch.ID
}

func TestChallengeRankingStandardCompetition(t *testing.T) {
	db, chID := seedRankingFixture(t)

	total, ranked, err := ChallengeRanking(db, chID, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 6 {
		t.Fatalf("want total 6, got %d", total)
	}

	wantRanks := []int{1, 1, 3, 3, 3, 6}
	if len(ranked) != len(wantRanks) {
		t.Fatalf("want %d rows, got %d", len(wantRanks), len(ranked))
	}
	for i, want := range wantRanks {
		if ranked[i].Rank != want {
			t.Errorf("row %d: want rank %d, got %d", i, want, ranked[i].Rank)
		}
	}

	// Ties keep creation order.
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if cur.LikeCount == prev.LikeCount && cur.Work.CreatedAt.Before(prev.Work.CreatedAt) {
			t.Errorf("tie at rows %d/%d not ordered by creation time", i-1, i)
		}
	}
}

// A page's ranks must match the corresponding slice of the full list.
func TestChallengeRankingPagination(t *testing.T) {
	db, chID := seedRankingFixture(t)

	_, full, err := ChallengeRanking(db, chID, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	total, page, err := ChallengeRanking(db, chID, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if total != 6 {
		t.Fatalf("want total 6, got %d", total)
	}
	if len(page) != 3 {
		t.Fatalf("want 3 rows on page 2, got %d", len(page))
	}
	for i, row := range page {
		want := full[3+i]
		if row.ID != want.ID || row.Rank != want.Rank {
			t.Errorf("page row %d: want work %s rank %d, got work %s rank %d",
				i, want.ID, want.Rank, row.ID, row.Rank)
		}
	}
}

func TestChallengeRankingEmpty(t *testing.T) {
	db := openTestDB(t)
	ch := seedChallenge(t, db, 10, time.Now().Add(24*time.Hour))

	total, ranked, err := ChallengeRanking(db, ch.ID, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(ranked) != 0 {
		t.Fatalf("want (0, []), got (%d, %d rows)", total, len(ranked))
	}
}
