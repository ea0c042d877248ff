package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// In-memory repo fakes. The tx argument is ignored: the engine under test
// runs with a pass-through transaction runner.

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*types.GamificationProfile
	saves    int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*types.GamificationProfile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) (*types.GamificationProfile, error) {
	f.profiles[profile.UserID] = profile
	return profile, nil
}

func (f *fakeProfileRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GamificationProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Save(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) error {
	f.saves++
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	delete(f.profiles, userID)
	return nil
}

type fakeTaskStatsRepo struct {
	stats map[uuid.UUID]*types.TaskStatistics
}

func newFakeTaskStatsRepo() *fakeTaskStatsRepo {
	return &fakeTaskStatsRepo{stats: make(map[uuid.UUID]*types.TaskStatistics)}
}

func (f *fakeTaskStatsRepo) Get(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.TaskStatistics, error) {
	s, ok := f.stats[taskID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeTaskStatsRepo) Save(ctx context.Context, tx *gorm.DB, stats *types.TaskStatistics) error {
	cp := *stats
	f.stats[stats.TaskID] = &cp
	return nil
}

type fakeGlobalStatsRepo struct {
	stats map[uuid.UUID]*types.GlobalStatistics
}

func newFakeGlobalStatsRepo() *fakeGlobalStatsRepo {
	return &fakeGlobalStatsRepo{stats: make(map[uuid.UUID]*types.GlobalStatistics)}
}

func (f *fakeGlobalStatsRepo) Create(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) (*types.GlobalStatistics, error) {
	f.stats[stats.UserID] = stats
	return stats, nil
}

func (f *fakeGlobalStatsRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GlobalStatistics, error) {
	s, ok := f.stats[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeGlobalStatsRepo) Save(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) error {
	cp := *stats
	f.stats[stats.UserID] = &cp
	return nil
}

type fakeHistoryRepo struct {
	entries []*types.GamificationHistoryEntry
}

func (f *fakeHistoryRepo) Append(ctx context.Context, tx *gorm.DB, entry *types.GamificationHistoryEntry) error {
	cp := *entry
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeHistoryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.GamificationHistoryEntry, error) {
	var out []*types.GamificationHistoryEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) countByType(eventType types.HistoryEventType) int {
	n := 0
	for _, e := range f.entries {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

type fakeChallengeRepo struct {
	defs []*types.ChallengeDefinition
}

func (f *fakeChallengeRepo) Create(ctx context.Context, tx *gorm.DB, def *types.ChallengeDefinition) (*types.ChallengeDefinition, error) {
	f.defs = append(f.defs, def)
	return def, nil
}

func (f *fakeChallengeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ChallengeDefinition, error) {
	for _, d := range f.defs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeRepo) MatchForUser(ctx context.Context, tx *gorm.DB, creatorUID string, eventType types.ChallengeEventType) ([]*types.ChallengeDefinition, error) {
	var out []*types.ChallengeDefinition
	for _, d := range f.defs {
		if d.Type != eventType {
			continue
		}
		if d.CreatorUID == creatorUID || d.IsActiveSystemChallenge {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) ListVisibleToUser(ctx context.Context, tx *gorm.DB, creatorUID string) ([]*types.ChallengeDefinition, error) {
	var out []*types.ChallengeDefinition
	for _, d := range f.defs {
		if d.CreatorUID == creatorUID || d.IsActiveSystemChallenge {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) ListRecurring(ctx context.Context, tx *gorm.DB) ([]*types.ChallengeDefinition, error) {
	var out []*types.ChallengeDefinition
	for _, d := range f.defs {
		if d.Period != types.ChallengePeriodOnce {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	for i, d := range f.defs {
		if d.ID == id {
			f.defs = append(f.defs[:i], f.defs[i+1:]...)
			return nil
		}
	}
	return nil
}

type progressKey struct {
	userID      uuid.UUID
	challengeID uuid.UUID
}

type fakeProgressRepo struct {
	rows   map[progressKey]*types.ChallengeProgress
	resets []uuid.UUID
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[progressKey]*types.ChallengeProgress)}
}

func (f *fakeProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*types.ChallengeProgress, error) {
	row, ok := f.rows[progressKey{userID, challengeID}]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ChallengeProgress) error {
	cp := *row
	f.rows[progressKey{row.UserID, row.ChallengeDefinitionID}] = &cp
	return nil
}

func (f *fakeProgressRepo) DeleteByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) error {
	delete(f.rows, progressKey{userID, challengeID})
	return nil
}

func (f *fakeProgressRepo) ResetForChallenge(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, periodStart time.Time) error {
	f.resets = append(f.resets, challengeID)
	for k, row := range f.rows {
		if k.challengeID != challengeID || !row.LastUpdated.Before(periodStart) {
			continue
		}
		fresh := *row
		fresh.Progress = newScalarJSON(0)
		fresh.IsCompleted = false
		fresh.CompletedAt = nil
		fresh.LastUpdated = periodStart
		f.rows[k] = &fresh
	}
	return nil
}

type fakeBadgeRepo struct {
	grants map[progressKey]*types.EarnedBadge
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{grants: make(map[progressKey]*types.EarnedBadge)}
}

func (f *fakeBadgeRepo) Grant(ctx context.Context, tx *gorm.DB, badge *types.EarnedBadge) error {
	key := progressKey{badge.UserID, badge.BadgeDefinitionID}
	if _, ok := f.grants[key]; ok {
		return nil
	}
	cp := *badge
	f.grants[key] = &cp
	return nil
}

func (f *fakeBadgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EarnedBadge, error) {
	var out []*types.EarnedBadge
	for k, b := range f.grants {
		if k.userID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	for k := range f.grants {
		if k.userID == userID {
			n++
		}
	}
	return n, nil
}

func newScalarJSON(v int64) datatypes.JSONType[types.Progress] {
	return datatypes.NewJSONType(types.ScalarProgress(v))
}

// testEngine bundles the engine with its fakes for assertions.
type testEngine struct {
	engine      *Engine
	profiles    *fakeProfileRepo
	taskStats   *fakeTaskStatsRepo
	globalStats *fakeGlobalStatsRepo
	history     *fakeHistoryRepo
	challenges  *fakeChallengeRepo
	progress    *fakeProgressRepo
	badges      *fakeBadgeRepo
}

func newTestEngine(t interface{ Fatalf(string, ...any) }) *testEngine {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	te := &testEngine{
		profiles:    newFakeProfileRepo(),
		taskStats:   newFakeTaskStatsRepo(),
		globalStats: newFakeGlobalStatsRepo(),
		history:     &fakeHistoryRepo{},
		challenges:  &fakeChallengeRepo{},
		progress:    newFakeProgressRepo(),
		badges:      newFakeBadgeRepo(),
	}
	applicator := NewRewardApplicator(log, te.badges, te.history)
	tracker := NewChallengeTracker(log, te.challenges, te.progress, te.history, applicator)
	engine := NewEngine(log, nil, DefaultRules(), te.profiles, te.taskStats, te.globalStats, te.history, tracker)
	engine.runTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
	te.engine = engine
	return te
}

func (te *testEngine) addProfile(userID uuid.UUID, now time.Time) *types.GamificationProfile {
	profile := types.NewGamificationProfile(userID, now)
	te.profiles.profiles[userID] = profile
	return profile
}
