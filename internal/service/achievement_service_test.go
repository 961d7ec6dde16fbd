package service

import (
	"context"
	"testing"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAchievementRepo struct {
	byRule map[string]*model.Achievement
	grants map[uuid.UUID]map[uint]bool
	nextID uint
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{
		byRule: make(map[string]*model.Achievement),
		grants: make(map[uuid.UUID]map[uint]bool),
	}
}

func (r *fakeAchievementRepo) GetOrCreate(ctx context.Context, achievement *model.Achievement) (*model.Achievement, error) {
	if existing, ok := r.byRule[achievement.RuleID]; ok {
		copied := *existing
		return &copied, nil
	}
	r.nextID++
	achievement.ID = r.nextID
	copied := *achievement
	r.byRule[achievement.RuleID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeAchievementRepo) Grant(ctx context.Context, userID uuid.UUID, achievementID uint) (bool, error) {
	if r.grants[userID] == nil {
		r.grants[userID] = make(map[uint]bool)
	}
	if r.grants[userID][achievementID] {
		return false, nil
	}
	r.grants[userID][achievementID] = true
	return true, nil
}

func (r *fakeAchievementRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error) {
	var earned []model.UserAchievement
	for _, achievement := range r.byRule {
		if r.grants[userID][achievement.ID] {
			earned = append(earned, model.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				Achievement:   *achievement,
			})
		}
	}
	return earned, nil
}

type fakeCounters struct {
	finished  int64
	reviews   int64
	favorites int64
}

func (c *fakeCounters) CountFinishedBooks(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.finished, nil
}

func (c *fakeCounters) CountReviews(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.reviews, nil
}

func (c *fakeCounters) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.favorites, nil
}

func newAchievementFixture(counters *fakeCounters) (AchievementService, *fakePointsRepo) {
	pointsRepo := newFakePointsRepo()
	pointsSvc := NewPointsService(pointsRepo, nil)
	return NewAchievementService(newFakeAchievementRepo(), counters, pointsSvc, nil), pointsRepo
}

func TestEvaluateGrantsFirstBook(t *testing.T) {
	counters := &fakeCounters{finished: 1}
	svc, pointsRepo := newAchievementFixture(counters)
	userID := uuid.New()

	granted, err := svc.Evaluate(context.Background(), userID, CounterBooksFinished)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Book"}, granted)

	account, err := pointsRepo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10, account.TotalPoints)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	counters := &fakeCounters{finished: 1}
	svc, pointsRepo := newAchievementFixture(counters)
	userID := uuid.New()

	granted, err := svc.Evaluate(context.Background(), userID, CounterBooksFinished)
	require.NoError(t, err)
	require.Len(t, granted, 1)

	granted, err = svc.Evaluate(context.Background(), userID, CounterBooksFinished)
	require.NoError(t, err)
	assert.Empty(t, granted, "second evaluation must not re-grant")

	account, err := pointsRepo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10, account.TotalPoints, "points must not be awarded twice")
}

func TestEvaluateGrantsEveryReachedThreshold(t *testing.T) {
	// A user who jumps straight to 10 finished books collects all three
	// badges at or below the counter in one call.
	counters := &fakeCounters{finished: 10}
	svc, pointsRepo := newAchievementFixture(counters)
	userID := uuid.New()

	granted, err := svc.Evaluate(context.Background(), userID, CounterBooksFinished)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Book", "Bookworm", "Book Enthusiast"}, granted)

	account, err := pointsRepo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 60, account.TotalPoints)
}

func TestEvaluateBelowFirstThreshold(t *testing.T) {
	counters := &fakeCounters{favorites: 4}
	svc, _ := newAchievementFixture(counters)

	granted, err := svc.Evaluate(context.Background(), uuid.New(), CounterFavorites)
	require.NoError(t, err)
	assert.Empty(t, granted)
}

func TestEvaluateSeparateCounters(t *testing.T) {
	counters := &fakeCounters{finished: 1, reviews: 5}
	svc, _ := newAchievementFixture(counters)
	userID := uuid.New()

	granted, err := svc.Evaluate(context.Background(), userID, CounterReviews)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Review", "Reviewer"}, granted)

	granted, err = svc.Evaluate(context.Background(), userID, CounterBooksFinished)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Book"}, granted)
}

func TestRuleTableAscendingPerCounter(t *testing.T) {
	for _, kind := range []CounterKind{CounterBooksFinished, CounterReviews, CounterFavorites} {
		rules := RulesForCounter(kind)
		require.NotEmpty(t, rules)
		for i := 1; i < len(rules); i++ {
			assert.Greater(t, rules[i].Threshold, rules[i-1].Threshold,
				"%s rules must ascend", kind)
		}
	}
}
