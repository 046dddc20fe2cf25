package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// categoryUSStore is the category surface needed for seeding defaults.
type categoryUSStore interface {
	Create(ctx context.Context, uid string, c *models.Category) error
}

type userService struct {
	users userUSStore
	cats  categoryUSStore
}

func NewUserService(users userUSStore, cats categoryUSStore) *userService {
	return &userService{users: users, cats: cats}
}

// seedCategory is one entry of the per-user default category set.
type seedCategory struct {
	Name  string
	Color string
	Type  string
}

var defaultCategories = []seedCategory{
	{Name: "Salary", Color: "16A34A", Type: models.TypeIncome},
	{Name: "Gift", Color: "9333EA", Type: models.TypeIncome},
	{Name: "Investment", Color: "0891B2", Type: models.TypeIncome},
	{Name: "Food", Color: "DC2626", Type: models.TypeExpense},
	{Name: "Transport", Color: "EA580C", Type: models.TypeExpense},
	{Name: "Housing", Color: "854D0E", Type: models.TypeExpense},
	{Name: "Entertainment", Color: "DB2777", Type: models.TypeExpense},
	{Name: "Health", Color: "059669", Type: models.TypeExpense},
	{Name: "Shopping", Color: "7C3AED", Type: models.TypeExpense},
	{Name: "Other", Color: DefaultCategoryColor, Type: models.TypeExpense},
}

// Register creates the user document and seeds the default category set.
func (s *userService) Register(ctx context.Context, uid, email, first, last string) error {
	log := logger.FromContext(ctx)

	user := &models.User{
		UID:       uid,
		Email:     email,
		FirstName: first,
		LastName:  last,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	for _, seed := range defaultCategories {
		cat := &models.Category{
			CategoryID: uuid.New().String(),
			Name:       seed.Name,
			Color:      seed.Color,
			Type:       seed.Type,
		}
		if err := s.cats.Create(ctx, uid, cat); err != nil {
			log.Error("failed to seed default category", "name", seed.Name, "error", err)
			return err
		}
	}

	log.Info("user registered", "seeded_categories", len(defaultCategories))
	return nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetUser(ctx, uid)
}
