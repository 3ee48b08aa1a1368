package task

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"taskhub/internal/domain"

	"gorm.io/gorm"
)

// TaskRepositoryInterface is storage for tasks, always scoped to an owner.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Search(ctx context.Context, userID int64, query string) ([]domain.Task, error)
	GetByIDForUser(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	DeleteForUser(ctx context.Context, taskID, userID int64) error
}

type Service struct {
	tasks TaskRepositoryInterface
}

func NewService(tasks TaskRepositoryInterface) *Service {
	return &Service{tasks: tasks}
}

// List returns the user's tasks; a non-empty query narrows them with a
// case-insensitive search over title and description.
func (s *Service) List(ctx context.Context, userID int64, query string) ([]domain.Task, error) {
	if strings.TrimSpace(query) != "" {
		return s.tasks.Search(ctx, userID, query)
	}
	return s.tasks.ListByUser(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateTaskRequest) (*domain.Task, error) {
	image, err := decodeImage(req.TaskImage)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		IsCompleted:   req.IsCompleted,
		TaskImage:     image,
		TaskImageType: req.TaskImageType,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update modifies an owned task. Omitted image fields keep the stored image.
func (s *Service) Update(ctx context.Context, taskID, userID int64, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.tasks.GetByIDForUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	t.Title = req.Title
	t.Description = req.Description
	t.IsCompleted = req.IsCompleted

	if req.TaskImage != "" {
		image, err := decodeImage(req.TaskImage)
		if err != nil {
			return nil, err
		}
		t.TaskImage = image
		t.TaskImageType = req.TaskImageType
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, taskID, userID int64) error {
	err := s.tasks.DeleteForUser(ctx, taskID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func decodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode task image: %w", err)
	}
	return data, nil
}
