package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) Create(ctx context.Context, uid string, t *models.Transaction) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	_, err := s.collection(uid).Doc(t.TransactionID).Create(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(t.TransactionID).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	_, err := s.collection(uid).Doc(transactionID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

// List returns all of the owner's transactions in creation order. Filtering
// happens in the service layer so the composed predicate stays a pure
// function; result sets are unpaginated by design.
func (s *transactionStore) List(ctx context.Context, uid string) ([]models.Transaction, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	return docsToTransactions(docs)
}

// ListByCategory returns every transaction referencing the category.
func (s *transactionStore) ListByCategory(ctx context.Context, uid, categoryID string) ([]models.Transaction, error) {
	docs, err := s.collection(uid).
		Where("categoryId", "==", categoryID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions by category", err)
	}
	return docsToTransactions(docs)
}

// ReferencedCategoryIDs returns the set of category ids that appear among the
// owner's transactions, via a single projection query. Callers use it to
// annotate deletability for a whole category list without N queries.
func (s *transactionStore) ReferencedCategoryIDs(ctx context.Context, uid string) (map[string]struct{}, error) {
	docs, err := s.collection(uid).Select("categoryId").Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read referenced categories", err)
	}
	ids := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if id, ok := d.Data()["categoryId"].(string); ok && id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

type cascadeJob struct {
	transactionID string
	job           *firestore.BulkWriterJob
}

// CascadeType sets type on every transaction referencing the category and
// returns the number of rows confirmed written. The write is idempotent, so
// a partial failure is safe to retry; the returned count reflects what was
// actually applied, not what was scheduled.
func (s *transactionStore) CascadeType(ctx context.Context, uid, categoryID, newType string) (int, error) {
	log := logger.FromContext(ctx)

	refs, err := s.collection(uid).
		Where("categoryId", "==", categoryID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errs.NewDatabaseError("read", "failed to find referencing transactions", err)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	now := time.Now()
	jobs := make([]cascadeJob, 0, len(refs))
	for _, d := range refs {
		j, err := bw.Update(d.Ref, []firestore.Update{
			{Path: "type", Value: newType},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return 0, errs.NewDatabaseError("update", "failed to schedule type cascade", err)
		}
		jobs = append(jobs, cascadeJob{transactionID: d.Ref.ID, job: j})
	}
	bw.End()

	updated := 0
	var firstErr error
	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error("type cascade write failed", "transaction_id", entry.transactionID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		updated++
	}
	if firstErr != nil {
		return updated, errs.NewDatabaseError("update", "type cascade partially applied", firstErr)
	}
	return updated, nil
}

// UpsertBatch writes a batch of imported transactions keyed by their ids, so
// re-running an import converges instead of duplicating rows.
func (s *transactionStore) UpsertBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs))
	now := time.Now()

	for _, t := range txs {
		t.UpdatedAt = now
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		job, err := bw.Set(s.collection(uid).Doc(t.TransactionID), t, firestore.MergeAll)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("update", "failed to schedule transaction upsert", err)
		}
		jobs = append(jobs, job)
	}

	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("update", "failed to upsert transactions", err)
		}
	}
	return nil
}

func (s *transactionStore) cursorDoc(uid, bankID string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("plaid_cursors").Doc(bankID)
}

func (s *transactionStore) GetCursor(ctx context.Context, uid, bankID string) (string, error) {
	snap, err := s.cursorDoc(uid, bankID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", errs.NewDatabaseError("read", "failed to read sync cursor", err)
	}
	cursor, _ := snap.Data()["cursor"].(string)
	return cursor, nil
}

func (s *transactionStore) SetCursor(ctx context.Context, uid, bankID, cursor string) error {
	_, err := s.cursorDoc(uid, bankID).Set(ctx, map[string]interface{}{
		"cursor":    cursor,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to store sync cursor", err)
	}
	return nil
}

func docsToTransactions(docs []*firestore.DocumentSnapshot) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}
