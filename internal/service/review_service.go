package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewTree, error)
	Update(ctx context.Context, userID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewTree, error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
	// Tree expands one review and its full reply subtree.
	Tree(ctx context.Context, reviewID uuid.UUID) (*dto.ReviewTree, error)
	// ListRootsForBook returns only top-level reviews, each with its reply
	// tree expanded inline.
	ListRootsForBook(ctx context.Context, bookID uuid.UUID) ([]*dto.ReviewTree, error)
}

type reviewService struct {
	repo               repository.ReviewRepository
	bookRepo           repository.BookRepository
	achievementService AchievementService
	redisClient        *redis.Client
	reviewCooldown     time.Duration
}

func NewReviewService(repo repository.ReviewRepository, bookRepo repository.BookRepository, achievementService AchievementService, redisClient *redis.Client, reviewCooldown time.Duration) ReviewService {
	return &reviewService{
		repo:               repo,
		bookRepo:           bookRepo,
		achievementService: achievementService,
		redisClient:        redisClient,
		reviewCooldown:     reviewCooldown,
	}
}

func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewTree, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "review", s.reviewCooldown)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, ttlErr := GetRateLimitTTL(ctx, s.redisClient, userID, "review")
		if ttlErr != nil || ttl <= 0 {
			return nil, apperror.ErrRateLimitExceeded
		}
		return nil, apperror.New(http.StatusTooManyRequests,
			fmt.Sprintf("you can post another review in %s", ttl.Round(time.Second)),
			apperror.ErrRateLimitExceeded)
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	review := &model.Review{
		UserID: userID,
		BookID: book.ID,
		Text:   req.Text,
	}

	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		// Replies always live on the parent's book, whatever the request
		// claimed.
		review.BookID = parent.BookID
		review.ParentID = &parent.ID
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if granted, err := s.achievementService.Evaluate(ctx, userID, CounterReviews); err != nil {
		log.Printf("[Review] achievement evaluation failed for user %s: %v", userID, err)
	} else if len(granted) > 0 {
		log.Printf("[Review] user %s earned: %v", userID, granted)
	}

	created, err := s.repo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return leafTree(created), nil
}

func (s *reviewService) Update(ctx context.Context, userID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewTree, error) {
	review, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Text = req.Text
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	return s.Tree(ctx, review.ID)
}

func (s *reviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	review, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	return s.repo.DeleteSubtree(ctx, review.ID)
}

func (s *reviewService) ownedReview(ctx context.Context, userID, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return review, nil
}

func (s *reviewService) Tree(ctx context.Context, reviewID uuid.UUID) (*dto.ReviewTree, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	all, err := s.repo.FindAllByBook(ctx, review.BookID)
	if err != nil {
		return nil, err
	}

	trees := BuildReviewTrees(all)
	if tree, ok := trees[review.ID]; ok {
		return tree, nil
	}
	return leafTree(review), nil
}

func (s *reviewService) ListRootsForBook(ctx context.Context, bookID uuid.UUID) ([]*dto.ReviewTree, error) {
	all, err := s.repo.FindAllByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	trees := BuildReviewTrees(all)
	roots := []*dto.ReviewTree{}
	for _, review := range all {
		if review.ParentID == nil {
			roots = append(roots, trees[review.ID])
		}
	}
	return roots, nil
}

// BuildReviewTrees links a flat creation-ordered slice into reply trees and
// returns every node keyed by id. Parents precede children in the input
// (ids are time-ordered and a parent must exist before its reply), so a
// single pass wires each node under its parent in creation order.
func BuildReviewTrees(reviews []*model.Review) map[uuid.UUID]*dto.ReviewTree {
	nodes := make(map[uuid.UUID]*dto.ReviewTree, len(reviews))
	for _, review := range reviews {
		nodes[review.ID] = leafTree(review)
	}
	for _, review := range reviews {
		if review.ParentID == nil {
			continue
		}
		if parent, ok := nodes[*review.ParentID]; ok {
			parent.Replies = append(parent.Replies, nodes[review.ID])
		}
	}
	return nodes
}

func leafTree(review *model.Review) *dto.ReviewTree {
	var parentID *string
	if review.ParentID != nil {
		id := review.ParentID.String()
		parentID = &id
	}
	return &dto.ReviewTree{
		ID: review.ID.String(),
		Author: dto.ReviewAuthor{
			ID:       review.UserID.String(),
			Username: review.User.Username,
		},
		Text:      review.Text,
		AddedDate: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		ParentID:  parentID,
		Replies:   []*dto.ReviewTree{},
	}
}
