package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

// DefaultCategoryColor is used when a category is created without one.
const DefaultCategoryColor = "6366F1"

const maxCategoryNameLen = 50

var hexColorRE = regexp.MustCompile(`^[0-9A-Fa-f]{3}$|^[0-9A-Fa-f]{6}$`)

// categoryCSStore keeps the service decoupled from the concrete storage.
type categoryCSStore interface {
	Create(ctx context.Context, uid string, c *models.Category) error
	Get(ctx context.Context, uid, categoryID string) (*models.Category, error)
	GetByNameType(ctx context.Context, uid, name, categoryType string) (*models.Category, error)
	List(ctx context.Context, uid, categoryType string) ([]*models.Category, error)
	Update(ctx context.Context, uid string, c *models.Category) error
	Delete(ctx context.Context, uid, categoryID string) error
}

// transactionCSStore is the transaction surface needed for deletability.
type transactionCSStore interface {
	ReferencedCategoryIDs(ctx context.Context, uid string) (map[string]struct{}, error)
}

// categoryGuard mediates mutations that affect existing transactions.
type categoryGuard interface {
	GuardDelete(ctx context.Context, uid string, cat *models.Category) error
	CascadeTypeChange(ctx context.Context, uid string, cat *models.Category, previousType string) (*dto.TransactionUpdateInfo, error)
}

type categoryService struct {
	cats  categoryCSStore
	txs   transactionCSStore
	guard categoryGuard
}

func NewCategoryService(cats categoryCSStore, txs transactionCSStore, guard categoryGuard) *categoryService {
	return &categoryService{cats: cats, txs: txs, guard: guard}
}

func (s *categoryService) Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxCategoryNameLen {
		return nil, errs.NewValidationError("name must be between 1 and 50 characters")
	}
	if !models.ValidType(req.Type) {
		return nil, errs.NewValidationError("type must be either income or expense")
	}
	color, err := normalizeColor(req.Color)
	if err != nil {
		return nil, err
	}

	existing, err := s.cats.GetByNameType(ctx, uid, name, req.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewAlreadyExistsError(fmt.Sprintf("category %q already exists for type %s", name, req.Type))
	}

	cat := &models.Category{
		CategoryID: uuid.New().String(),
		Name:       name,
		Color:      color,
		Type:       req.Type,
	}
	if err := s.cats.Create(ctx, uid, cat); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("category created", "category_id", cat.CategoryID, "type", cat.Type)
	return cat, nil
}

// Update applies a partial update. The uniqueness invariant is re-checked
// only when the name changes to a different value; a type change triggers the
// cascade after the category write commits and the response reports how many
// transactions were actually updated.
func (s *categoryService) Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*dto.UpdateCategoryResponse, error) {
	if req.Name == nil && req.Color == nil && req.Type == nil {
		return nil, errs.NewValidationError("at least one of name, color or type is required")
	}

	cat, err := s.cats.Get(ctx, uid, categoryID)
	if err != nil {
		return nil, err
	}

	newType := cat.Type
	if req.Type != nil {
		if !models.ValidType(*req.Type) {
			return nil, errs.NewValidationError("type must be either income or expense")
		}
		newType = *req.Type
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxCategoryNameLen {
			return nil, errs.NewValidationError("name must be between 1 and 50 characters")
		}
		if name != cat.Name {
			existing, err := s.cats.GetByNameType(ctx, uid, name, newType)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.CategoryID != cat.CategoryID {
				return nil, errs.NewAlreadyExistsError(fmt.Sprintf("category %q already exists for type %s", name, newType))
			}
		}
		cat.Name = name
	}

	if req.Color != nil {
		color, err := normalizeColor(*req.Color)
		if err != nil {
			return nil, err
		}
		cat.Color = color
	}

	previousType := cat.Type
	cat.Type = newType

	if err := s.cats.Update(ctx, uid, cat); err != nil {
		return nil, err
	}

	resp := &dto.UpdateCategoryResponse{Category: *cat}
	if newType != previousType {
		info, err := s.guard.CascadeTypeChange(ctx, uid, cat, previousType)
		if err != nil {
			return nil, err
		}
		resp.TransactionUpdateInfo = info
	}
	return resp, nil
}

// Delete removes the category only when nothing references it; the guard
// rejects otherwise with the full blocking payload.
func (s *categoryService) Delete(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	cat, err := s.cats.Get(ctx, uid, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.GuardDelete(ctx, uid, cat); err != nil {
		return nil, err
	}
	if err := s.cats.Delete(ctx, uid, categoryID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("category deleted", "category_id", categoryID)
	return cat, nil
}

// List returns the owner's categories ordered by name, each annotated with
// isDeletable. The annotation is computed from one set-membership query over
// the owner's transactions, not per category. An unknown type filter is
// treated as absent.
func (s *categoryService) List(ctx context.Context, uid, categoryType string) ([]dto.CategoryResponse, error) {
	if !models.ValidType(categoryType) {
		categoryType = ""
	}

	cats, err := s.cats.List(ctx, uid, categoryType)
	if err != nil {
		return nil, err
	}
	referenced, err := s.txs.ReferencedCategoryIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		_, inUse := referenced[c.CategoryID]
		out = append(out, dto.CategoryResponse{Category: *c, IsDeletable: !inUse})
	}
	return out, nil
}

func normalizeColor(raw string) (string, error) {
	if raw == "" {
		return DefaultCategoryColor, nil
	}
	color := strings.TrimPrefix(raw, "#")
	if !hexColorRE.MatchString(color) {
		return "", errs.NewValidationError("color must be a 3 or 6 digit hex value")
	}
	return color, nil
}
