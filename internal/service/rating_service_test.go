package service

import (
	"context"
	"testing"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingFixture() (RatingService, *fakeBookRepo) {
	bookRepo := newFakeBookRepo()
	books := &fakeBookService{repo: bookRepo}
	svc := NewRatingService(&fakeInteractionRepo{}, books, bookRepo)
	return svc, bookRepo
}

func rateReq(catalogID string, rating int) dto.RateBookRequest {
	return dto.RateBookRequest{
		RegisterBookRequest: dto.RegisterBookRequest{
			CatalogID: catalogID,
			Title:     "Book " + catalogID,
		},
		Rating: rating,
	}
}

func TestRateValidatesRange(t *testing.T) {
	svc, _ := newRatingFixture()

	_, err := svc.Rate(context.Background(), uuid.New(), rateReq("vol-1", 0))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.Rate(context.Background(), uuid.New(), rateReq("vol-1", 6))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRateUpsertsAndAverages(t *testing.T) {
	svc, _ := newRatingFixture()

	_, err := svc.Rate(context.Background(), uuid.New(), rateReq("vol-1", 5))
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), uuid.New(), rateReq("vol-1", 2))
	require.NoError(t, err)

	// A third user changes their mind; only the latest rating counts.
	fickle := uuid.New()
	_, err = svc.Rate(context.Background(), fickle, rateReq("vol-1", 1))
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), fickle, rateReq("vol-1", 3))
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRatings)
	assert.InDelta(t, 3.3, stats.AverageRating, 0.001, "average rounds to one decimal")
}

func TestStatsUnknownBookReadsAsZero(t *testing.T) {
	svc, _ := newRatingFixture()

	stats, err := svc.Stats(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalRatings)
	assert.Zero(t, stats.AverageRating)
}

func TestFavoriteAddEvaluatesAchievements(t *testing.T) {
	interaction := &fakeInteractionRepo{}
	bookRepo := newFakeBookRepo()
	books := &fakeBookService{repo: bookRepo}
	pointsRepo := newFakePointsRepo()
	pointsSvc := NewPointsService(pointsRepo, nil)
	counters := NewActivityCounters(interaction, &fakeReviewRepo{})
	achievementSvc := NewAchievementService(newFakeAchievementRepo(), counters, pointsSvc, nil)
	svc := NewFavoriteService(interaction, books, bookRepo, achievementSvc)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		req := dto.RegisterBookRequest{
			CatalogID: uuid.NewString(),
			Title:     "some book",
		}
		require.NoError(t, svc.Add(context.Background(), userID, req))
	}

	// Five favorites unlocks Collector.
	account, err := pointsRepo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10, account.TotalPoints)

	favorites, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, favorites, 5)
}

func TestFavoriteRemoveUnknown(t *testing.T) {
	interaction := &fakeInteractionRepo{}
	bookRepo := newFakeBookRepo()
	svc := NewFavoriteService(interaction, &fakeBookService{repo: bookRepo}, bookRepo, noopAchievements{})

	err := svc.Remove(context.Background(), uuid.New(), "never-seen")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
