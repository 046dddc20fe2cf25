package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/models"
)

type stubPlaidService struct {
	linkToken string

	bankID       string
	exchangeErr  error
	publicToken  string
	institution  string

	banks []*models.Bank

	deletedBankID string

	syncResult dto.PlaidSyncResult
	syncErr    error
	syncBankID *string
	syncCalled bool
}

func (s *stubPlaidService) CreateLinkToken(_ context.Context, uid string) (string, error) {
	return s.linkToken, nil
}

func (s *stubPlaidService) ExchangePublicToken(_ context.Context, _, publicToken, institutionName string) (string, error) {
	s.publicToken = publicToken
	s.institution = institutionName
	return s.bankID, s.exchangeErr
}

func (s *stubPlaidService) ListBanks(_ context.Context, uid string) ([]*models.Bank, error) {
	return s.banks, nil
}

func (s *stubPlaidService) DeleteBank(_ context.Context, _, bankID string) error {
	s.deletedBankID = bankID
	return nil
}

func (s *stubPlaidService) SyncTransactions(_ context.Context, _ string, bankID *string) (dto.PlaidSyncResult, error) {
	s.syncCalled = true
	s.syncBankID = bankID
	return s.syncResult, s.syncErr
}

func TestPlaidCreateLinkToken(t *testing.T) {
	svc := &stubPlaidService{linkToken: "link-token-1"}
	resp := &stubResponseHandler{}
	h := NewPlaidHandlers(&Deps{ResponseHandler: resp, PlaidSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/plaid/link-token", nil), "uid-1")
	h.CreateLinkToken(httptest.NewRecorder(), req)

	if !resp.successCalled || resp.successStatus != http.StatusOK {
		t.Fatalf("expected 200 success, got %+v", resp)
	}
	data, ok := resp.successData.(map[string]string)
	if !ok || data["linkToken"] != "link-token-1" {
		t.Fatalf("unexpected data: %#v", resp.successData)
	}
}

func TestPlaidLinkBank(t *testing.T) {
	svc := &stubPlaidService{bankID: "item-1"}
	resp := &stubResponseHandler{}
	h := NewPlaidHandlers(&Deps{ResponseHandler: resp, PlaidSvc: svc})

	body := `{"publicToken":"public-1","institutionName":"Test Bank"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/plaid/banks", strings.NewReader(body)), "uid-1")
	h.LinkBank(httptest.NewRecorder(), req)

	if !resp.successCalled {
		t.Fatalf("expected a success write, got %+v", resp)
	}
	if svc.publicToken != "public-1" || svc.institution != "Test Bank" {
		t.Fatalf("unexpected exchange args: %+v", svc)
	}
}

func TestPlaidDeleteBank(t *testing.T) {
	svc := &stubPlaidService{}
	resp := &stubResponseHandler{}
	h := NewPlaidHandlers(&Deps{ResponseHandler: resp, PlaidSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/plaid/banks/b1", nil)
	req = withChiParam(withUID(req, "uid-1"), "bankId", "b1")
	h.DeleteBank(httptest.NewRecorder(), req)

	if !resp.successCalled {
		t.Fatalf("expected a success write, got %+v", resp)
	}
	if svc.deletedBankID != "b1" {
		t.Fatalf("deleted bank = %q, want b1", svc.deletedBankID)
	}
}

func TestPlaidSyncEmptyBody(t *testing.T) {
	// Sync accepts an empty body and syncs every linked bank.
	svc := &stubPlaidService{syncResult: dto.PlaidSyncResult{BanksSynced: 2}}
	resp := &stubResponseHandler{}
	h := NewPlaidHandlers(&Deps{ResponseHandler: resp, PlaidSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/plaid/sync", nil), "uid-1")
	h.SyncTransactions(httptest.NewRecorder(), req)

	if !svc.syncCalled {
		t.Fatalf("expected SyncTransactions to be called")
	}
	if svc.syncBankID != nil {
		t.Fatalf("bankID = %v, want nil for all banks", *svc.syncBankID)
	}
	if !resp.successCalled {
		t.Fatalf("expected a success write, got %+v", resp)
	}
}

func TestPlaidSyncSingleBank(t *testing.T) {
	svc := &stubPlaidService{syncResult: dto.PlaidSyncResult{BanksSynced: 1, Cursor: "cursor-1"}}
	resp := &stubResponseHandler{}
	h := NewPlaidHandlers(&Deps{ResponseHandler: resp, PlaidSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/plaid/sync", strings.NewReader(`{"bankId":"b1"}`)), "uid-1")
	h.SyncTransactions(httptest.NewRecorder(), req)

	if svc.syncBankID == nil || *svc.syncBankID != "b1" {
		t.Fatalf("bankID = %v, want b1", svc.syncBankID)
	}
}
