package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	loanDomain "gadai-core/internal/domain/loan"
	paymentDomain "gadai-core/internal/domain/payment"
	"gadai-core/internal/domain/uow"
	"gadai-core/internal/testutil/ledgermock"
	"gadai-core/internal/testutil/loanmock"
	"gadai-core/internal/testutil/paymentmock"
	"gadai-core/internal/testutil/uowmock"
	ledgeruc "gadai-core/internal/usecase/ledger"
	loanuc "gadai-core/internal/usecase/loan"
	paymentuc "gadai-core/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

const (
	tStore    = "11111111111111111111111111111111"
	tCustomer = "22222222222222222222222222222222"
	tActor    = "33333333333333333333333333333333"
)

// memStore backs the loan and payment mocks with real state so the
// handlers can be driven end to end without a database.
type memStore struct {
	mu       sync.Mutex
	nextLoan uint64
	loans    map[string]*loanDomain.Loan
	nextPay  uint64
	pays     map[string]*paymentDomain.Payment
}

func (s *memStore) loanRepo() *loanmock.Repo {
	get := func(loanID string) (*loanDomain.Loan, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		l, ok := s.loans[loanID]
		if !ok {
			return nil, loanDomain.ErrNotFound
		}
		cp := *l
		return &cp, nil
	}
	return &loanmock.Repo{
		CreateFn: func(_ context.Context, l *loanDomain.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.nextLoan++
			l.ID = s.nextLoan
			cp := *l
			s.loans[l.LoanID] = &cp
			return nil
		},
		SaveFn: func(_ context.Context, l *loanDomain.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cp := *l
			s.loans[l.LoanID] = &cp
			return nil
		},
		GetByLoanIDFn:          func(_ context.Context, id string) (*loanDomain.Loan, error) { return get(id) },
		GetByLoanIDForUpdateFn: func(_ context.Context, id string) (*loanDomain.Loan, error) { return get(id) },
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*loanDomain.Loan, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, l := range s.loans {
				if l.ID == id {
					cp := *l
					return &cp, nil
				}
			}
			return nil, loanDomain.ErrNotFound
		},
	}
}

func (s *memStore) paymentRepo() *paymentmock.Repo {
	get := func(paymentID string) (*paymentDomain.Payment, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		p, ok := s.pays[paymentID]
		if !ok {
			return nil, paymentDomain.ErrNotFound
		}
		cp := *p
		return &cp, nil
	}
	return &paymentmock.Repo{
		CreateFn: func(_ context.Context, p *paymentDomain.Payment) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.nextPay++
			p.ID = s.nextPay
			cp := *p
			s.pays[p.PaymentID] = &cp
			return nil
		},
		SaveFn: func(_ context.Context, p *paymentDomain.Payment) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cp := *p
			s.pays[p.PaymentID] = &cp
			return nil
		},
		GetByPaymentIDFn:          func(_ context.Context, id string) (*paymentDomain.Payment, error) { return get(id) },
		GetByPaymentIDForUpdateFn: func(_ context.Context, id string) (*paymentDomain.Payment, error) { return get(id) },
		ListByLoanRefFn: func(_ context.Context, ref uint64) ([]paymentDomain.Payment, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []paymentDomain.Payment
			for _, p := range s.pays {
				if p.LoanRef == ref {
					out = append(out, *p)
				}
			}
			return out, nil
		},
	}
}

type testServer struct {
	e      *echo.Echo
	ledger *ledgermock.InMemory
}

func newTestServer() *testServer {
	st := &memStore{
		loans: map[string]*loanDomain.Loan{},
		pays:  map[string]*paymentDomain.Payment{},
	}
	loans := st.loanRepo()
	pays := st.paymentRepo()
	led := ledgermock.NewInMemory()

	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Payments: pays, Ledger: led})

	ledUC := ledgeruc.NewUsecase(led, tx)
	loanUC := loanuc.NewUsecase(loans, pays, tx)
	payUC := paymentuc.NewUsecase(pays, loans, loanUC, tx)

	cv := NewValidator()
	e := echo.New()
	RegisterRoutes(e,
		NewHandler(),
		NewLedgerHandler(ledUC, cv),
		NewLoanHandler(loanUC, payUC, cv),
		NewPaymentHandler(payUC, cv),
	)
	return &testServer{e: e, ledger: led}
}

func (ts *testServer) do(t *testing.T, method, path, body string, asActor bool) (int, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if asActor {
		req.Header.Set("X-Actor-Id", tActor)
		req.Header.Set("X-Store-Id", tStore)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("bad JSON response (%d): %s", rec.Code, rec.Body.String())
		}
	}
	return rec.Code, out
}

func str(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	v, ok := m[key].(string)
	if !ok {
		t.Fatalf("expected string %q in %+v", key, m)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	code, body := ts.do(t, http.MethodGet, "/health", "", false)
	if code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %+v", code, body)
	}
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer()

	// fund the store drawer
	code, _ := ts.do(t, http.MethodPost, "/stores/"+tStore+"/mutations",
		`{"direction":"credit","category":"cash_deposit","amount":10000000}`, true)
	if code != http.StatusCreated {
		t.Fatalf("fund store: %d", code)
	}
	code, body := ts.do(t, http.MethodGet, "/stores/"+tStore+"/balance", "", false)
	if code != http.StatusOK || str(t, body, "balance") != "10000000" {
		t.Fatalf("balance after deposit: %d %+v", code, body)
	}

	// create + disburse
	code, body = ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"`+tStore+`","customer_id":"`+tCustomer+`","principal_amount":4000000,"due_date":"2026-09-28"}`, true)
	if code != http.StatusCreated {
		t.Fatalf("create loan: %d %+v", code, body)
	}
	if got := str(t, body, "status"); got != "draft" {
		t.Fatalf("new loan status = %s", got)
	}
	if n := str(t, body, "spk_number"); len(n) != 15 || !strings.HasPrefix(n, "SPK") {
		t.Fatalf("unexpected spk_number %q", n)
	}
	loanID := str(t, body, "loan_id")

	code, body = ts.do(t, http.MethodPost, "/loans/"+loanID+"/disburse", "", true)
	if code != http.StatusOK || str(t, body, "status") != "active" {
		t.Fatalf("disburse: %d %+v", code, body)
	}
	code, body = ts.do(t, http.MethodGet, "/stores/"+tStore+"/balance", "", false)
	if code != http.StatusOK || str(t, body, "balance") != "6000000" {
		t.Fatalf("balance after disburse: %d %+v", code, body)
	}

	// partial repayment through the teller channel
	code, body = ts.do(t, http.MethodPost, "/payments",
		`{"loan_id":"`+loanID+`","amount_paid":1500000,"payment_type":"partial_payment","payment_method":"cash"}`, true)
	if code != http.StatusCreated || str(t, body, "status") != "pending" {
		t.Fatalf("create payment: %d %+v", code, body)
	}
	paymentID := str(t, body, "payment_id")
	if n := str(t, body, "number"); len(n) != 17 || !strings.HasPrefix(n, "NKB") {
		t.Fatalf("unexpected nkb number %q", n)
	}

	code, body = ts.do(t, http.MethodPost, "/payments/"+paymentID+"/confirm", "", true)
	if code != http.StatusOK || str(t, body, "status") != "confirmed" {
		t.Fatalf("confirm: %d %+v", code, body)
	}

	code, body = ts.do(t, http.MethodGet, "/loans/"+loanID, "", false)
	if code != http.StatusOK || str(t, body, "remaining_balance") != "2500000" {
		t.Fatalf("loan after confirm: %d %+v", code, body)
	}
	code, body = ts.do(t, http.MethodGet, "/stores/"+tStore+"/balance", "", false)
	if code != http.StatusOK || str(t, body, "balance") != "7500000" {
		t.Fatalf("balance after repayment: %d %+v", code, body)
	}

	code, body = ts.do(t, http.MethodGet, "/loans/"+loanID+"/payments", "", false)
	if code != http.StatusOK {
		t.Fatalf("list payments: %d", code)
	}
	if rows, ok := body["payments"].([]any); !ok || len(rows) != 1 {
		t.Fatalf("expected 1 payment, got %+v", body["payments"])
	}

	// the repayment credit is in the mutation listing
	code, body = ts.do(t, http.MethodGet, "/stores/"+tStore+"/mutations?category=nkb_payment", "", false)
	if code != http.StatusOK {
		t.Fatalf("list mutations: %d", code)
	}
	if rows, ok := body["mutations"].([]any); !ok || len(rows) != 1 {
		t.Fatalf("expected 1 nkb_payment mutation, got %+v", body["mutations"])
	}
}

func TestCreateLoanValidation(t *testing.T) {
	ts := newTestServer()

	// missing actor header
	code, _ := ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"`+tStore+`","customer_id":"`+tCustomer+`","principal_amount":100,"due_date":"2026-09-28"}`, false)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 without actor, got %d", code)
	}

	// bad store id and date
	code, body := ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"nope","customer_id":"`+tCustomer+`","principal_amount":100,"due_date":"28/09/2026"}`, true)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %+v", code, body)
	}
	if _, ok := body["details"].([]any); !ok {
		t.Fatalf("expected field details, got %+v", body)
	}

	// money with too many decimal places
	code, _ = ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"`+tStore+`","customer_id":"`+tCustomer+`","principal_amount":100.123,"due_date":"2026-09-28"}`, true)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for 3dp amount, got %d", code)
	}
}

func TestDomainErrorMapping(t *testing.T) {
	ts := newTestServer()

	// unknown loan
	code, _ := ts.do(t, http.MethodGet, "/loans/"+strings.Repeat("0", 32), "", false)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}

	// draft loan in an empty store: disburse fails on cash, loan stays draft
	code, body := ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"`+tStore+`","customer_id":"`+tCustomer+`","principal_amount":500000,"due_date":"2026-09-28"}`, true)
	if code != http.StatusCreated {
		t.Fatalf("create loan: %d", code)
	}
	loanID := str(t, body, "loan_id")

	code, _ = ts.do(t, http.MethodPost, "/loans/"+loanID+"/disburse", "", true)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for insufficient cash, got %d", code)
	}

	// paying against a draft loan is a state conflict
	code, _ = ts.do(t, http.MethodPost, "/payments",
		`{"loan_id":"`+loanID+`","amount_paid":1000,"payment_type":"partial_payment","payment_method":"cash"}`, true)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for draft loan payment, got %d", code)
	}
}

func TestCustomerInitiatedPayment(t *testing.T) {
	ts := newTestServer()
	loanID := ts.activeLoan(t, "2000000")

	// no actor header: customer channel
	code, body := ts.do(t, http.MethodPost, "/payments",
		`{"loan_id":"`+loanID+`","amount_paid":500000,"payment_type":"partial_payment","payment_method":"qris"}`, false)
	if code != http.StatusCreated {
		t.Fatalf("customer payment: %d %+v", code, body)
	}
	if body["is_customer_initiated"] != true {
		t.Fatalf("expected is_customer_initiated, got %+v", body)
	}
	paymentID := str(t, body, "payment_id")

	// confirming still requires a staff actor
	code, _ = ts.do(t, http.MethodPost, "/payments/"+paymentID+"/confirm", "", false)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 confirming without actor, got %d", code)
	}

	code, _ = ts.do(t, http.MethodPost, "/payments/"+paymentID+"/reject", `{"reason":"unverified transfer"}`, true)
	if code != http.StatusOK {
		t.Fatalf("reject: %d", code)
	}
	// rejected is terminal
	code, _ = ts.do(t, http.MethodPost, "/payments/"+paymentID+"/confirm", "", true)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 confirming rejected payment, got %d", code)
	}
}

func TestExtendAndRedeemRoutes(t *testing.T) {
	ts := newTestServer()
	loanID := ts.activeLoan(t, "3000000")

	code, body := ts.do(t, http.MethodPost, "/loans/"+loanID+"/extend", `{"amount":300000}`, false)
	if code != http.StatusCreated || str(t, body, "payment_type") != "renewal" {
		t.Fatalf("extend: %d %+v", code, body)
	}

	// redeem without an amount defaults to the remaining balance
	code, body = ts.do(t, http.MethodPost, "/loans/"+loanID+"/redeem", "", false)
	if code != http.StatusCreated || str(t, body, "payment_type") != "redemption" {
		t.Fatalf("redeem: %d %+v", code, body)
	}
	if got := str(t, body, "amount_paid"); got != "3000000" {
		t.Fatalf("redeem amount = %s", got)
	}
}

// activeLoan funds the store, creates a loan, and disburses it.
func (ts *testServer) activeLoan(t *testing.T, principal string) string {
	t.Helper()
	code, _ := ts.do(t, http.MethodPost, "/stores/"+tStore+"/mutations",
		`{"direction":"credit","category":"cash_deposit","amount":`+principal+`}`, true)
	if code != http.StatusCreated {
		t.Fatalf("fund store: %d", code)
	}
	code, body := ts.do(t, http.MethodPost, "/loans",
		`{"store_id":"`+tStore+`","customer_id":"`+tCustomer+`","principal_amount":`+principal+`,"due_date":"2026-09-28"}`, true)
	if code != http.StatusCreated {
		t.Fatalf("create loan: %d", code)
	}
	loanID := str(t, body, "loan_id")
	code, _ = ts.do(t, http.MethodPost, "/loans/"+loanID+"/disburse", "", true)
	if code != http.StatusOK {
		t.Fatalf("disburse: %d", code)
	}
	return loanID
}
