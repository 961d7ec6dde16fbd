package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePointsRepo struct {
	accounts  map[uuid.UUID]*model.PointsAccount
	history   []model.PointsHistory
	createSeq int
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{accounts: make(map[uuid.UUID]*model.PointsAccount)}
}

func (r *fakePointsRepo) AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*model.PointsAccount, error) {
	account, ok := r.accounts[userID]
	if !ok {
		r.createSeq++
		account = &model.PointsAccount{
			UserID:    userID,
			Level:     1,
			CreatedAt: time.Unix(int64(r.createSeq), 0),
		}
		r.accounts[userID] = account
	}
	account.TotalPoints += amount
	copied := *account
	return &copied, nil
}

func (r *fakePointsRepo) SetLevel(ctx context.Context, userID uuid.UUID, level int) error {
	if account, ok := r.accounts[userID]; ok && account.Level < level {
		account.Level = level
	}
	return nil
}

func (r *fakePointsRepo) AppendHistory(ctx context.Context, entry *model.PointsHistory) error {
	entry.ID = uint(len(r.history) + 1)
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakePointsRepo) GetAccount(ctx context.Context, userID uuid.UUID) (*model.PointsAccount, error) {
	account, ok := r.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakePointsRepo) HistoryByUser(ctx context.Context, userID uuid.UUID) ([]model.PointsHistory, error) {
	var entries []model.PointsHistory
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].UserID == userID {
			entries = append(entries, r.history[i])
		}
	}
	return entries, nil
}

func (r *fakePointsRepo) TopAccounts(ctx context.Context, limit int) ([]model.PointsAccount, error) {
	var accounts []model.PointsAccount
	for _, account := range r.accounts {
		accounts = append(accounts, *account)
	}
	// Points descending, creation order breaking ties, like the real query.
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].TotalPoints != accounts[j].TotalPoints {
			return accounts[i].TotalPoints > accounts[j].TotalPoints
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{250, 3},
		{1000, 11},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestAwardCreatesAccountAndHistory(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)
	userID := uuid.New()

	account, err := svc.Award(context.Background(), userID, 10, "Finished a book")
	require.NoError(t, err)
	assert.Equal(t, 10, account.TotalPoints)
	assert.Equal(t, 1, account.Level)

	history, err := svc.History(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 10, history[0].Amount)
	assert.Equal(t, "Finished a book", history[0].Description)
}

func TestAwardBumpsLevelAtHundred(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)
	userID := uuid.New()

	_, err := svc.Award(context.Background(), userID, 90, "almost there")
	require.NoError(t, err)

	account, err := svc.Award(context.Background(), userID, 15, "over the line")
	require.NoError(t, err)
	assert.Equal(t, 105, account.TotalPoints)
	assert.Equal(t, 2, account.Level)
}

func TestLevelNeverDecreases(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)
	userID := uuid.New()

	_, err := svc.Award(context.Background(), userID, 150, "big award")
	require.NoError(t, err)

	account, err := svc.Award(context.Background(), userID, -100, "correction")
	require.NoError(t, err)
	assert.Equal(t, 50, account.TotalPoints)
	assert.Equal(t, 2, account.Level, "level must stay at its high-water mark")
}

func TestAccountDefaultsForUnknownUser(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)

	account, err := svc.Account(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, account.TotalPoints)
	assert.Equal(t, 1, account.Level)
}

func TestLeaderboardOrdersByPointsThenCreation(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)

	low := uuid.New()
	firstHigh := uuid.New()
	laterHigh := uuid.New()

	_, err := svc.Award(context.Background(), low, 50, "slow start")
	require.NoError(t, err)
	_, err = svc.Award(context.Background(), firstHigh, 150, "early bird")
	require.NoError(t, err)
	_, err = svc.Award(context.Background(), laterHigh, 150, "latecomer")
	require.NoError(t, err)

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ties go to the older account.
	assert.Equal(t, firstHigh.String(), entries[0].UserID)
	assert.Equal(t, laterHigh.String(), entries[1].UserID)
	assert.Equal(t, low.String(), entries[2].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestLeaderboardLimitValidation(t *testing.T) {
	repo := newFakePointsRepo()
	svc := NewPointsService(repo, nil)

	_, err := svc.Leaderboard(context.Background(), 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.Leaderboard(context.Background(), 101)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
