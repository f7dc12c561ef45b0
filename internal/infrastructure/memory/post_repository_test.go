package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

func seededRepo(t *testing.T) *PostRepository {
	t.Helper()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := NewPostRepository().WithClock(func() time.Time { return at })

	seqs := []int{3, 1, 2}
	posts := []domain.MobilePost{
		{MobileCode: "MPO1", NameEN: "Gamma", DistrictEN: "Wan Chai", OpenHour: "10:00", CloseHour: "18:00", DayOfWeekCode: 2},
		{MobileCode: "MPO2", NameEN: "Alpha", DistrictEN: "Central", OpenHour: "09:00", CloseHour: "17:00", DayOfWeekCode: 1},
		{MobileCode: "MPO3", NameEN: "Beta", DistrictEN: "Central", OpenHour: "08:00", CloseHour: "12:00", DayOfWeekCode: 1},
	}
	for i := range posts {
		posts[i].Seq = &seqs[i]
		if err := repo.Insert(context.Background(), &posts[i]); err != nil {
			t.Fatalf("seed insert %d: %v", i, err)
		}
	}
	return repo
}

func names(posts []domain.MobilePost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.NameEN
	}
	return out
}

func TestFindCombinesFilterSortAndWindow(t *testing.T) {
	repo := seededRepo(t)
	day := 1

	posts, total, err := repo.Find(context.Background(),
		application.Filter{DayOfWeek: &day},
		application.SortSpec{Key: application.SortByName, Lang: domain.LangEN},
		application.Paging{Page: 1, Limit: 1},
	)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want filtered count 2", total)
	}
	if diff := cmp.Diff([]string{"Alpha"}, names(posts)); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}

	posts, _, err = repo.Find(context.Background(),
		application.Filter{DayOfWeek: &day},
		application.SortSpec{Key: application.SortByName, Lang: domain.LangEN},
		application.Paging{Page: 2, Limit: 1},
	)
	if err != nil {
		t.Fatalf("Find page 2: %v", err)
	}
	if diff := cmp.Diff([]string{"Beta"}, names(posts)); diff != "" {
		t.Errorf("page 2 mismatch (-want +got):\n%s", diff)
	}
}

func TestFindZeroLimitReturnsEverything(t *testing.T) {
	repo := seededRepo(t)
	posts, total, err := repo.Find(context.Background(), application.Filter{}, application.SortSpec{Key: application.SortByID}, application.Paging{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 3 || len(posts) != 3 {
		t.Errorf("total %d len %d, want 3/3", total, len(posts))
	}
}

func TestInsertAssignsOrderedIDsAndTimestamps(t *testing.T) {
	repo := seededRepo(t)
	posts, _, err := repo.Find(context.Background(), application.Filter{}, application.SortSpec{Key: application.SortByID}, application.Paging{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].ID >= posts[i].ID {
			t.Errorf("ids not insertion-ordered: %q then %q", posts[i-1].ID, posts[i].ID)
		}
	}
	for _, p := range posts {
		if p.ImportedAt.IsZero() || p.UpdatedAt.IsZero() {
			t.Errorf("post %s missing audit timestamps", p.ID)
		}
	}
}

func TestInsertRejectsDuplicateKey(t *testing.T) {
	repo := seededRepo(t)
	seq := 3
	dup := domain.MobilePost{MobileCode: "mpo1", Seq: &seq, NameEN: "Other", DistrictEN: "Other", OpenHour: "09:00", CloseHour: "17:00", DayOfWeekCode: 5}
	if err := repo.Insert(context.Background(), &dup); !apperr.IsCode(err, apperr.CodeDuplicateRecord) {
		t.Fatalf("Insert err = %v, want code 0301", err)
	}
}

func TestUpdateBumpsUpdatedAtOnly(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := at
	repo := NewPostRepository().WithClock(func() time.Time { return clock })

	post := domain.MobilePost{NameEN: "Office", DistrictEN: "Central", OpenHour: "09:00", CloseHour: "17:00", DayOfWeekCode: 1}
	if err := repo.Insert(context.Background(), &post); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	clock = at.Add(time.Hour)
	name := "Renamed"
	updated, err := repo.Update(context.Background(), post.ID, domain.Patch{NameEN: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.NameEN != "Renamed" {
		t.Errorf("NameEN = %q", updated.NameEN)
	}
	if !updated.ImportedAt.Equal(at) {
		t.Errorf("ImportedAt changed on update: %v", updated.ImportedAt)
	}
	if !updated.UpdatedAt.Equal(at.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want bumped", updated.UpdatedAt)
	}
}

func TestNotFoundOperations(t *testing.T) {
	repo := NewPostRepository()
	if _, err := repo.FindByID(context.Background(), "00000001"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("FindByID err = %v, want code 0201", err)
	}
	if _, err := repo.Update(context.Background(), "00000001", domain.Patch{}); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Update err = %v, want code 0201", err)
	}
	if err := repo.Delete(context.Background(), "00000001"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Delete err = %v, want code 0201", err)
	}
}
