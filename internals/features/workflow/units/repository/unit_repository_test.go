package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/databases/testdb"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newStore(t *testing.T) *UnitStore {
	t.Helper()
	return NewUnitStore(testdb.New(t))
}

func mustCreate(t *testing.T, s *UnitStore, in NewUnit) *model.ContentUnitModel {
	t.Helper()
	if in.Content == nil {
		in.Content = map[model.Language]string{model.LangEnglish: "source text"}
	}
	u, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	return u
}

func TestCreateAndFind(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created := mustCreate(t, s, NewUnit{
		ID:       7,
		Kind:     model.KindActivity,
		FromDate: day("2025-01-06"),
		ToDate:   day("2025-01-12"),
		Content:  map[model.Language]string{model.LangEnglish: "Walk after breakfast"},
		Names:    map[model.Language]string{model.LangEnglish: "Morning walk"},
		Actor:    "dev",
	})
	assert.Equal(t, uint(7), created.ContentUnitID)
	assert.Len(t, created.Slots, len(model.AllLanguages))
	assert.Equal(t, model.OverallWorking, created.ContentUnitOverallStatus)

	got, err := s.Find(ctx, model.KindActivity, 7)
	require.NoError(t, err)
	assert.Nil(t, got.ContentUnitAssignedTo)
	assert.Equal(t, model.WorkUnassigned, got.ContentUnitWorkStatus)
	for _, lang := range model.AllLanguages {
		assert.Equal(t, model.StatusPending, got.SlotStatusOf(lang), lang)
	}
	assert.Equal(t, "Morning walk", got.Slot(model.LangEnglish).UnitSlotName)
	require.NotNil(t, got.ContentUnitFromDate)
	assert.Equal(t, "2025-01-06", got.ContentUnitFromDate.UTC().Format("2006-01-02"))

	// kind lain -> tidak ditemukan
	_, err = s.Find(ctx, model.KindDaily, 7)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = s.Find(ctx, model.KindActivity, 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateRejectsNameForDaily(t *testing.T) {
	s := newStore(t)
	_, err := s.Create(context.Background(), NewUnit{
		Kind:    model.KindDaily,
		Content: map[model.Language]string{model.LangEnglish: "x"},
		Names:   map[model.Language]string{model.LangEnglish: "title"},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidField)

	_, err = s.Create(context.Background(), NewUnit{
		Kind:     model.KindTenDay,
		FromDate: day("2025-01-10"),
		ToDate:   day("2025-01-01"),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// Unit 1 diklaim pihak lain tepat sebelum UPDATE klaim dieksekusi
// (setelah kandidat bisa saja sudah dibaca). Recheck assigned_to IS NULL
// harus membiarkan unit itu dan batch hanya berisi yang benar-benar terklaim.
func TestClaimUnassignedSkipsRowClaimedBeforeUpdate(t *testing.T) {
	db := testdb.New(t)
	s := NewUnitStore(db)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		mustCreate(t, s, NewUnit{ID: uint(i), Kind: model.KindDaily})
	}

	fired := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:claim_race", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "content_units" {
			return
		}
		fields, ok := tx.Statement.Dest.(map[string]any)
		if !ok {
			return
		}
		if _, claim := fields["content_unit_assignment_batch"]; !claim {
			return
		}
		fired = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE content_units SET content_unit_assigned_to = 'meera', content_unit_work_status = 'working' WHERE content_unit_id = 1")
		if err != nil {
			_ = tx.AddError(err)
		}
	}))

	units, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: "ravi", Count: 2})
	require.NoError(t, err)
	require.True(t, fired)

	ids := make([]uint, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ContentUnitID)
		require.NotNil(t, u.ContentUnitAssignedTo)
		assert.Equal(t, "ravi", *u.ContentUnitAssignedTo)
	}
	assert.NotContains(t, ids, uint(1))
	assert.NotEmpty(t, ids)

	first, err := s.Find(ctx, model.KindDaily, 1)
	require.NoError(t, err)
	require.NotNil(t, first.ContentUnitAssignedTo)
	assert.Equal(t, "meera", *first.ContentUnitAssignedTo)
	assert.Nil(t, first.ContentUnitAssignmentBatch)

	// batch di DB sama persis dengan hasil yang dikembalikan
	var batched []uint
	require.NoError(t, db.Model(&model.ContentUnitModel{}).
		Where("content_unit_assigned_to = ?", "ravi").
		Order("content_unit_id ASC").
		Pluck("content_unit_id", &batched).Error)
	assert.Equal(t, ids, batched)

	history, err := s.History(ctx, model.KindDaily, 1)
	require.NoError(t, err)
	for _, ev := range history {
		assert.NotEqual(t, model.ActionAssign, ev.UnitEventAction)
	}
}

func TestClaimUnassignedConcurrentIsDisjoint(t *testing.T) {
	s := newStore(t)
	for i := 1; i <= 5; i++ {
		mustCreate(t, s, NewUnit{ID: uint(i), Kind: model.KindDaily})
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = map[string][]uint{}
		errs    []error
	)
	for _, user := range []string{"ravi", "meera"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			units, err := s.ClaimUnassigned(context.Background(), ClaimRequest{
				Kind: model.KindDaily, Username: user, Count: 3, Actor: "sana",
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for _, u := range units {
				results[user] = append(results[user], u.ContentUnitID)
			}
		}(user)
	}
	wg.Wait()
	require.Empty(t, errs)

	seen := map[uint]string{}
	for user, ids := range results {
		for _, id := range ids {
			prev, dup := seen[id]
			assert.False(t, dup, "unit %d claimed by %s and %s", id, prev, user)
			seen[id] = user
		}
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, 5, len(results["ravi"])+len(results["meera"]))

	for id, user := range seen {
		u, err := s.Find(context.Background(), model.KindDaily, id)
		require.NoError(t, err)
		require.NotNil(t, u.ContentUnitAssignedTo)
		assert.Equal(t, user, *u.ContentUnitAssignedTo)
		assert.Equal(t, model.WorkWorking, u.ContentUnitWorkStatus)
		assert.NotNil(t, u.ContentUnitAssignmentBatch)
	}
}

func TestClaimUnassignedEmptyPoolMutatesNothing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindTenDay})

	_, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindTenDay, Username: "ravi", Count: 5})
	require.NoError(t, err)

	before, err := s.History(ctx, model.KindTenDay, 1)
	require.NoError(t, err)

	_, err = s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindTenDay, Username: "meera", Count: 1})
	assert.ErrorIs(t, err, apperror.ErrNoWorkAvailable)

	// pool kind lain juga kosong
	_, err = s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindActivity, Username: "meera", Count: 1})
	assert.ErrorIs(t, err, apperror.ErrNoWorkAvailable)

	u, err := s.Find(ctx, model.KindTenDay, 1)
	require.NoError(t, err)
	assert.Equal(t, "ravi", *u.ContentUnitAssignedTo)

	after, err := s.History(ctx, model.KindTenDay, 1)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestClaimUnassignedValidation(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: "weekly", Username: "ravi", Count: 1})
	assert.ErrorIs(t, err, apperror.ErrInvalidKind)
	_, err = s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: "ravi", Count: 0})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: " ", Count: 1})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestClaimWithLanguageMovesSlotToWorking(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindDaily})
	mustCreate(t, s, NewUnit{ID: 2, Kind: model.KindDaily})

	hi := model.LangHindi
	units, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: "ravi", Count: 1, Language: &hi, Actor: "sana"})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, uint(1), units[0].ContentUnitID)
	assert.Equal(t, model.StatusWorking, units[0].SlotStatusOf(model.LangHindi))
	assert.Equal(t, model.StatusPending, units[0].SlotStatusOf(model.LangMarathi))

	events, err := s.History(ctx, model.KindDaily, 1)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, model.ActionAssign, events[0].UnitEventAction)
	assert.Equal(t, "sana", events[0].UnitEventActor)
	require.NotNil(t, events[0].UnitEventLanguage)
	assert.Equal(t, "hi", *events[0].UnitEventLanguage)
}

func TestFindAssignedTo(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		mustCreate(t, s, NewUnit{ID: uint(i), Kind: model.KindActivity})
	}
	_, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindActivity, Username: "ravi", Count: 2})
	require.NoError(t, err)

	mine, err := s.FindAssignedTo(ctx, model.KindActivity, "ravi", nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// slot hi unit 1 sudah inreview -> keluar dari antrean hi
	inReview := model.StatusInReview
	var upd UnitUpdate
	upd.SetSlot(model.LangHindi, func(su *SlotUpdate) { su.Status = &inReview })
	_, err = s.Update(ctx, model.KindActivity, 1, upd)
	require.NoError(t, err)

	hi := model.LangHindi
	mine, err = s.FindAssignedTo(ctx, model.KindActivity, "ravi", &hi)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(2), mine[0].ContentUnitID)

	others, err := s.FindAssignedTo(ctx, model.KindActivity, "meera", nil)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateFieldsRecomputesOverall(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 3, Kind: model.KindDaily, Content: map[model.Language]string{}})

	u, err := s.UpdateFields(ctx, model.KindDaily, 3, map[string]any{"content.en": "Calm day"}, "dev")
	require.NoError(t, err)
	assert.Equal(t, model.OverallWorking, u.ContentUnitOverallStatus)

	fields := map[string]any{}
	for _, lang := range model.AllLanguages {
		fields["content."+string(lang)] = "text " + string(lang)
	}
	u, err = s.UpdateFields(ctx, model.KindDaily, 3, fields, "dev")
	require.NoError(t, err)
	assert.Equal(t, model.OverallCompleted, u.ContentUnitOverallStatus)

	_, err = s.UpdateFields(ctx, model.KindDaily, 3, map[string]any{"overall_status": "pending"}, "dev")
	assert.ErrorIs(t, err, apperror.ErrInvalidField)

	_, err = s.UpdateFields(ctx, model.KindDaily, 404, map[string]any{"content.en": "x"}, "dev")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReleaseKeepsSlotStatuses(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindDaily})

	hi := model.LangHindi
	_, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: "ravi", Count: 1, Language: &hi})
	require.NoError(t, err)

	u, err := s.Release(ctx, model.KindDaily, 1, "sana")
	require.NoError(t, err)
	assert.Nil(t, u.ContentUnitAssignedTo)
	assert.Nil(t, u.ContentUnitAssignmentBatch)
	assert.Equal(t, model.WorkUnassigned, u.ContentUnitWorkStatus)
	assert.Equal(t, model.StatusWorking, u.SlotStatusOf(model.LangHindi))

	// kembali ke pool
	units, err := s.ClaimUnassigned(ctx, ClaimRequest{Kind: model.KindDaily, Username: "meera", Count: 1})
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 5, Kind: model.KindTenDay, Actor: "dev"})
	_, err := s.UpdateFields(ctx, model.KindTenDay, 5, map[string]any{"sign": "leo"}, "dev")
	require.NoError(t, err)

	events, err := s.History(ctx, model.KindTenDay, 5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.ActionPatch, events[0].UnitEventAction)
	assert.Equal(t, model.ActionCreate, events[1].UnitEventAction)

	_, err = s.History(ctx, model.KindTenDay, 6)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFindByStatusWindow(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindTenDay, FromDate: day("2025-01-01"), ToDate: day("2025-01-10")})
	mustCreate(t, s, NewUnit{ID: 2, Kind: model.KindTenDay, FromDate: day("2025-01-11"), ToDate: day("2025-01-20")})
	mustCreate(t, s, NewUnit{ID: 3, Kind: model.KindTenDay, FromDate: day("2025-01-21"), ToDate: day("2025-01-31")})

	inReview := model.StatusInReview
	for _, id := range []uint{1, 2, 3} {
		var upd UnitUpdate
		upd.SetSlot(model.LangGujarati, func(su *SlotUpdate) { su.Status = &inReview })
		_, err := s.Update(ctx, model.KindTenDay, id, upd)
		require.NoError(t, err)
	}

	all, err := s.FindByStatus(ctx, model.KindTenDay, model.LangGujarati, model.StatusInReview, DateWindow{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	win, err := s.FindByStatus(ctx, model.KindTenDay, model.LangGujarati, model.StatusInReview,
		DateWindow{From: day("2025-01-09"), To: day("2025-01-12")})
	require.NoError(t, err)
	require.Len(t, win, 2)
	assert.Equal(t, uint(1), win[0].ContentUnitID)
	assert.Equal(t, uint(2), win[1].ContentUnitID)

	none, err := s.FindByStatus(ctx, model.KindTenDay, model.LangBengali, model.StatusInReview, DateWindow{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadCandidates(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindDaily, FromDate: day("2025-01-06"),
		Content: map[model.Language]string{model.LangEnglish: "a", model.LangTelugu: "తెలుగు"}})
	mustCreate(t, s, NewUnit{ID: 2, Kind: model.KindDaily, FromDate: day("2025-01-07"),
		Content: map[model.Language]string{model.LangEnglish: "b"}})

	te, err := s.LoadCandidates(ctx, model.KindDaily, model.LangTelugu, nil)
	require.NoError(t, err)
	require.Len(t, te, 1)
	assert.Equal(t, uint(1), te[0].ContentUnitID)

	en, err := s.LoadCandidates(ctx, model.KindDaily, model.LangEnglish, day("2025-01-07"))
	require.NoError(t, err)
	require.Len(t, en, 1)
	assert.Equal(t, uint(2), en[0].ContentUnitID)
}

func TestStats(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustCreate(t, s, NewUnit{ID: 1, Kind: model.KindDaily, Content: map[model.Language]string{}})
	mustCreate(t, s, NewUnit{ID: 2, Kind: model.KindDaily})
	mustCreate(t, s, NewUnit{ID: 3, Kind: model.KindTenDay})

	st, err := s.Stats(ctx, model.KindDaily, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)
	assert.Equal(t, int64(1), st.ByStatus[model.OverallPending])
	assert.Equal(t, int64(1), st.ByStatus[model.OverallWorking])
	assert.Equal(t, int64(0), st.ByStatus[model.OverallCompleted])
	assert.Nil(t, st.LanguageSpecific)

	en := model.LangEnglish
	st, err = s.Stats(ctx, model.KindDaily, &en)
	require.NoError(t, err)
	require.NotNil(t, st.LanguageSpecific)
	assert.Equal(t, int64(2), st.LanguageSpecific.Total)
	assert.Equal(t, int64(1), st.LanguageSpecific.ContentFilled)
	assert.Equal(t, int64(0), st.LanguageSpecific.NameFilled)
	assert.Equal(t, int64(2), st.LanguageSpecific.ByStatus[model.StatusPending])
	assert.Equal(t, int64(0), st.LanguageSpecific.ByStatus[model.StatusApproved])

	rows, err := s.Backlog(ctx)
	require.NoError(t, err)
	var total int64
	for _, r := range rows {
		total += r.Count
	}
	assert.Equal(t, int64(3*len(model.AllLanguages)), total)
}
