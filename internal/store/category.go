package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

func (s *categoryStore) Create(ctx context.Context, uid string, c *models.Category) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	_, err := s.collection(uid).Doc(c.CategoryID).Create(ctx, c)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	doc, err := s.collection(uid).Doc(categoryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get category", err)
	}
	var c models.Category
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

// GetByNameType resolves a category by its (name, type) pair. Returns
// (nil, nil) when no such category exists; absence is not an error here
// because callers decide whether it is.
func (s *categoryStore) GetByNameType(ctx context.Context, uid, name, categoryType string) (*models.Category, error) {
	docs, err := s.collection(uid).
		Where("name", "==", name).
		Where("type", "==", categoryType).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to look up category by name and type", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var c models.Category
	if err := docs[0].DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

// GetByName resolves a category by name alone. A name can exist once per
// type; ordering by type makes the pick deterministic ("expense" before
// "income"). Returns (nil, nil) when the name is unknown.
func (s *categoryStore) GetByName(ctx context.Context, uid, name string) (*models.Category, error) {
	docs, err := s.collection(uid).
		Where("name", "==", name).
		OrderBy("type", firestore.Asc).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to look up category by name", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var c models.Category
	if err := docs[0].DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

// List returns the owner's categories ordered by name ascending, optionally
// restricted to one type.
func (s *categoryStore) List(ctx context.Context, uid, categoryType string) ([]*models.Category, error) {
	q := s.collection(uid).Query
	if categoryType != "" {
		q = q.Where("type", "==", categoryType)
	}
	docs, err := q.OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	cats := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		cats = append(cats, &c)
	}
	return cats, nil
}

func (s *categoryStore) Update(ctx context.Context, uid string, c *models.Category) error {
	c.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(c.CategoryID).Set(ctx, c)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update category", err)
	}
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	_, err := s.collection(uid).Doc(categoryID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}
