package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	reviews []*model.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	if review.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		review.ID = id
	}
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	for _, review := range r.reviews {
		if review.ID == id {
			copied := *review
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) FindAllByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Review, error) {
	var all []*model.Review
	for _, review := range r.reviews {
		if review.BookID == bookID {
			copied := *review
			all = append(all, &copied)
		}
	}
	return all, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *model.Review) error {
	for _, stored := range r.reviews {
		if stored.ID == review.ID {
			stored.Text = review.Text
			stored.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) DeleteSubtree(ctx context.Context, id uuid.UUID) error {
	var children []*model.Review
	for _, review := range r.reviews {
		if review.ParentID != nil && *review.ParentID == id {
			children = append(children, review)
		}
	}
	for _, child := range children {
		if err := r.DeleteSubtree(ctx, child.ID); err != nil {
			return err
		}
	}
	for i, review := range r.reviews {
		if review.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeReviewRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, review := range r.reviews {
		if review.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeBookRepo struct {
	books map[uuid.UUID]*model.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uuid.UUID]*model.Book)}
}

func (r *fakeBookRepo) GetOrCreateByCatalogID(ctx context.Context, book *model.Book) (*model.Book, error) {
	for _, stored := range r.books {
		if stored.CatalogID == book.CatalogID {
			copied := *stored
			return &copied, nil
		}
	}
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	copied := *book
	r.books[book.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if book, ok := r.books[id]; ok {
		copied := *book
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookRepo) FindByCatalogID(ctx context.Context, catalogID string) (*model.Book, error) {
	for _, book := range r.books {
		if book.CatalogID == catalogID {
			copied := *book
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type noopAchievements struct{}

func (noopAchievements) Evaluate(ctx context.Context, userID uuid.UUID, kind CounterKind) ([]string, error) {
	return nil, nil
}

func (noopAchievements) EarnedByUser(ctx context.Context, userID uuid.UUID) ([]dto.EarnedAchievementResponse, error) {
	return nil, nil
}

type reviewFixture struct {
	svc    ReviewService
	repo   *fakeReviewRepo
	bookID uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	bookRepo := newFakeBookRepo()
	book, err := bookRepo.GetOrCreateByCatalogID(context.Background(), &model.Book{
		CatalogID: "vol-123",
		Title:     "Dune",
	})
	require.NoError(t, err)

	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, bookRepo, noopAchievements{}, nil, 0)
	return &reviewFixture{svc: svc, repo: repo, bookID: book.ID}
}

func (f *reviewFixture) create(t *testing.T, userID uuid.UUID, text, parentID string) *dto.ReviewTree {
	t.Helper()
	tree, err := f.svc.Create(context.Background(), userID, dto.CreateReviewRequest{
		BookID:   f.bookID.String(),
		ParentID: parentID,
		Text:     text,
	})
	require.NoError(t, err)
	return tree
}

func TestCreateRootReview(t *testing.T) {
	f := newReviewFixture(t)
	userID := uuid.New()

	tree := f.create(t, userID, "A classic.", "")

	assert.Equal(t, "A classic.", tree.Text)
	assert.Nil(t, tree.ParentID)
	assert.NotNil(t, tree.Replies, "leaves must serialize replies as []")
	assert.Empty(t, tree.Replies)
}

func TestCreateReplyInheritsParentBook(t *testing.T) {
	f := newReviewFixture(t)
	root := f.create(t, uuid.New(), "root", "")

	replier := uuid.New()
	reply, err := f.svc.Create(context.Background(), replier, dto.CreateReviewRequest{
		// A different (valid) book id on a reply is ignored.
		BookID:   f.bookID.String(),
		ParentID: root.ID,
		Text:     "I agree",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	stored, err := f.repo.FindByID(context.Background(), uuid.MustParse(reply.ID))
	require.NoError(t, err)
	assert.Equal(t, f.bookID, stored.BookID)
}

func TestCreateReviewUnknownBook(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateReviewRequest{
		BookID: uuid.New().String(),
		Text:   "ghost",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateReplyUnknownParent(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateReviewRequest{
		BookID:   f.bookID.String(),
		ParentID: uuid.New().String(),
		Text:     "orphan",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := newReviewFixture(t)
	owner := uuid.New()
	review := f.create(t, owner, "mine", "")

	_, err := f.svc.Update(context.Background(), uuid.New(), uuid.MustParse(review.ID),
		dto.UpdateReviewRequest{Text: "hijacked"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.svc.Update(context.Background(), owner, uuid.MustParse(review.ID),
		dto.UpdateReviewRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestDeleteUnknownReview(t *testing.T) {
	f := newReviewFixture(t)

	err := f.svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCascadesToAllDescendants(t *testing.T) {
	f := newReviewFixture(t)
	owner := uuid.New()

	root := f.create(t, owner, "root", "")
	reply := f.create(t, uuid.New(), "reply", root.ID)
	f.create(t, uuid.New(), "nested reply", reply.ID)
	sibling := f.create(t, uuid.New(), "unrelated root", "")

	require.Len(t, f.repo.reviews, 4)

	err := f.svc.Delete(context.Background(), owner, uuid.MustParse(root.ID))
	require.NoError(t, err)

	require.Len(t, f.repo.reviews, 1, "the whole subtree goes, nothing else")
	assert.Equal(t, sibling.ID, f.repo.reviews[0].ID.String())
}

func TestDeleteReplyOwnershipIndependentOfRoot(t *testing.T) {
	f := newReviewFixture(t)
	rootOwner := uuid.New()
	replyOwner := uuid.New()

	root := f.create(t, rootOwner, "root", "")
	reply := f.create(t, replyOwner, "reply", root.ID)

	// The root's owner cannot delete someone else's reply.
	err := f.svc.Delete(context.Background(), rootOwner, uuid.MustParse(reply.ID))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = f.svc.Delete(context.Background(), replyOwner, uuid.MustParse(reply.ID))
	require.NoError(t, err)
	require.Len(t, f.repo.reviews, 1)
}

func TestTreeNestsRepliesInCreationOrder(t *testing.T) {
	f := newReviewFixture(t)

	root := f.create(t, uuid.New(), "root", "")
	first := f.create(t, uuid.New(), "first reply", root.ID)
	second := f.create(t, uuid.New(), "second reply", root.ID)
	nested := f.create(t, uuid.New(), "nested", first.ID)

	tree, err := f.svc.Tree(context.Background(), uuid.MustParse(root.ID))
	require.NoError(t, err)

	require.Len(t, tree.Replies, 2)
	assert.Equal(t, first.ID, tree.Replies[0].ID)
	assert.Equal(t, second.ID, tree.Replies[1].ID)

	require.Len(t, tree.Replies[0].Replies, 1)
	assert.Equal(t, nested.ID, tree.Replies[0].Replies[0].ID)
	assert.Empty(t, tree.Replies[0].Replies[0].Replies)
	assert.Empty(t, tree.Replies[1].Replies)
}

func TestListRootsForBookExcludesReplies(t *testing.T) {
	f := newReviewFixture(t)

	first := f.create(t, uuid.New(), "first root", "")
	f.create(t, uuid.New(), "a reply", first.ID)
	second := f.create(t, uuid.New(), "second root", "")

	roots, err := f.svc.ListRootsForBook(context.Background(), f.bookID)
	require.NoError(t, err)

	require.Len(t, roots, 2)
	assert.Equal(t, first.ID, roots[0].ID)
	assert.Equal(t, second.ID, roots[1].ID)
	assert.Len(t, roots[0].Replies, 1)
}

func TestListRootsForBookEmpty(t *testing.T) {
	f := newReviewFixture(t)

	roots, err := f.svc.ListRootsForBook(context.Background(), f.bookID)
	require.NoError(t, err)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}
