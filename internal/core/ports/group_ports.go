package ports

import (
	"context"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
)

type GroupRepository interface {
	List(ctx context.Context) ([]domain.Group, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	Create(ctx context.Context, group *domain.Group) error
	Count(ctx context.Context) (int, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GroupService interface {
	GetAllGroups(ctx context.Context) ([]domain.Group, error)
	GetGroupByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	AddGroup(ctx context.Context, name string) (uuid.UUID, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, name string) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	UpdateGroupOrders(ctx context.Context, orders map[uuid.UUID]int) error
	BulkCreateGroups(ctx context.Context, names []string) ([]uuid.UUID, error)
}
