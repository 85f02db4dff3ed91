package database

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/docthru/docthru/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestAddRemoveLike(t *testing.T) {
	db := openTestDB(t)
	ch := seedChallenge(t, db, 10, time.Now().Add(24*time.Hour))
	work := seedWork(t, db, ch.ID, 0, time.Now())

	t.Run("work not found", func(t *testing.T) {
		user := seedUser(t, db, models.RoleNormal)
		if err := AddLike(db, uuid.NewString(), user.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("like then unlike keeps the counter consistent", func(t *testing.T) {
		user := seedUser(t, db, models.RoleNormal)

		if err := AddLike(db, work.ID, user.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
		assertCounterMatchesRows(t, db, work.ID)

		if err := RemoveLike(db, work.ID, user.ID); err != nil {
			t.Fatalf("unlike: %v", err)
		}
		assertCounterMatchesRows(t, db, work.ID)
	})

	t.Run("double like is a conflict", func(t *testing.T) {
		user := seedUser(t, db, models.RoleNormal)
		if err := AddLike(db, work.ID, user.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
		if err := AddLike(db, work.ID, user.ID); !errors.Is(err, ErrConflict) {
			t.Fatalf("want ErrConflict, got %v", err)
		}
		assertCounterMatchesRows(t, db, work.ID)
	})

	t.Run("unlike without a like is a conflict", func(t *testing.T) {
		user := seedUser(t, db, models.RoleNormal)
		if err := RemoveLike(db, work.ID, user.ID); !errors.Is(err, ErrConflict) {
			t.Fatalf("want ErrConflict, got %v", err)
		}
	})
}

// Ledger consistency under concurrency: after any settled mix of likes and
// unlikes, like_count equals the number of Like rows.
func TestLikeCounterConcurrent(t *testing.T) {
	db := openTestDB(t)
	ch := seedChallenge(t, db, 10, time.Now().Add(24*time.Hour))
	work := seedWork(t, db, ch.ID, 0, time.Now())

	const likers = 8
	users := make([]*models.User, likers)
	for i := range users {
		users[i] = seedUser(t, db, models.RoleNormal)
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if err := AddLike(db, work.ID, userID); err != nil {
				t.Errorf("concurrent like: %v", err)
			}
		}(u.ID)
	}
	wg.Wait()

	got, err := GetWork(db, work.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LikeCount != likers {
		t.Fatalf("want like_count %d, got %d", likers, got.LikeCount)
	}
	assertCounterMatchesRows(t, db, work.ID)

	// Half of them take it back, concurrently.
	for _, u := range users[:likers/2] {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if err := RemoveLike(db, work.ID, userID); err != nil {
				t.Errorf("concurrent unlike: %v", err)
			}
		}(u.ID)
	}
	wg.Wait()

	got, err = GetWork(db, work.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LikeCount != likers/2 {
		t.Fatalf("want like_count %d after unlikes, got %d", likers/2, got.LikeCount)
	}
	assertCounterMatchesRows(t, db, work.ID)
}

func assertCounterMatchesRows(t *testing.T, db *gorm.DB, workID string) {
	t.Helper()
	var rows int64
	if err := db.Model(&models.Like{}).Where("work_id = ?", workID).Count(&rows).Error; err != nil {
		t.Fatal(err)
	}
	work, err := GetWork(db, workID)
	if err != nil {
		t.Fatal(err)
	}
	if int64(work.LikeCount) != rows {
		t.Fatalf("counter drift: like_count=%d, rows=%d", work.LikeCount, rows)
	}
}
