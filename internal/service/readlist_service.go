package service

import (
	"context"
	"errors"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReadlistService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateReadlistRequest) (*model.Readlist, error)
	// Get is the shareable read surface: no ownership check.
	Get(ctx context.Context, id uuid.UUID) (*model.Readlist, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Readlist, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateReadlistRequest) (*model.Readlist, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddBook(ctx context.Context, userID, id uuid.UUID, req dto.RegisterBookRequest) error
	RemoveBook(ctx context.Context, userID, id, bookID uuid.UUID) error
}

type readlistService struct {
	repo        repository.ReadlistRepository
	bookService BookService
}

func NewReadlistService(repo repository.ReadlistRepository, bookService BookService) ReadlistService {
	return &readlistService{
		repo:        repo,
		bookService: bookService,
	}
}

func (s *readlistService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateReadlistRequest) (*model.Readlist, error) {
	readlist := &model.Readlist{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, readlist); err != nil {
		return nil, err
	}
	return readlist, nil
}

func (s *readlistService) Get(ctx context.Context, id uuid.UUID) (*model.Readlist, error) {
	readlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return readlist, nil
}

func (s *readlistService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Readlist, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *readlistService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateReadlistRequest) (*model.Readlist, error) {
	readlist, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	readlist.Name = req.Name
	readlist.Description = req.Description
	if err := s.repo.Update(ctx, readlist); err != nil {
		return nil, err
	}
	return readlist, nil
}

func (s *readlistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *readlistService) AddBook(ctx context.Context, userID, id uuid.UUID, req dto.RegisterBookRequest) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	book, err := s.bookService.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.AddItem(ctx, id, book.ID)
}

func (s *readlistService) RemoveBook(ctx context.Context, userID, id, bookID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.RemoveItem(ctx, id, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *readlistService) owned(ctx context.Context, userID, id uuid.UUID) (*model.Readlist, error) {
	readlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if readlist.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return readlist, nil
}
