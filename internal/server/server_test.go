package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/rolodex/internal/config"
	customerdomain "github.com/smallbiznis/rolodex/internal/customer/domain"
	"github.com/smallbiznis/rolodex/internal/validate"
	"go.uber.org/zap"
)

type fakeCustomerService struct {
	create        func(context.Context, customerdomain.CreateCustomerRequest) (customerdomain.Customer, error)
	list          func(context.Context, customerdomain.ListCustomersRequest) (customerdomain.ListCustomersResponse, error)
	getByID       func(context.Context, int64) (customerdomain.Customer, error)
	update        func(context.Context, int64, customerdomain.UpdateCustomerRequest) (int64, error)
	delete        func(context.Context, int64) (int64, error)
	addAddress    func(context.Context, int64, customerdomain.AddressInput) (customerdomain.Address, error)
	updateAddress func(context.Context, int64, customerdomain.AddressInput) (int64, error)
	deleteAddress func(context.Context, int64) (int64, error)
}

func (f *fakeCustomerService) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	return f.create(ctx, req)
}

func (f *fakeCustomerService) List(ctx context.Context, req customerdomain.ListCustomersRequest) (customerdomain.ListCustomersResponse, error) {
	return f.list(ctx, req)
}

func (f *fakeCustomerService) GetByID(ctx context.Context, id int64) (customerdomain.Customer, error) {
	return f.getByID(ctx, id)
}

func (f *fakeCustomerService) Update(ctx context.Context, id int64, req customerdomain.UpdateCustomerRequest) (int64, error) {
	return f.update(ctx, id, req)
}

func (f *fakeCustomerService) Delete(ctx context.Context, id int64) (int64, error) {
	return f.delete(ctx, id)
}

func (f *fakeCustomerService) AddAddress(ctx context.Context, customerID int64, addr customerdomain.AddressInput) (customerdomain.Address, error) {
	return f.addAddress(ctx, customerID, addr)
}

func (f *fakeCustomerService) UpdateAddress(ctx context.Context, addressID int64, addr customerdomain.AddressInput) (int64, error) {
	return f.updateAddress(ctx, addressID, addr)
}

func (f *fakeCustomerService) DeleteAddress(ctx context.Context, addressID int64) (int64, error) {
	return f.deleteAddress(ctx, addressID)
}

func newTestServer(t *testing.T, svc customerdomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	engine := NewEngine()
	s := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         config.Config{},
		Log:         zap.NewNop(),
		GenID:       node,
		CustomerSvc: svc,
	})
	s.RegisterAPIRoutes()
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
}

func TestCreateCustomerCreated(t *testing.T) {
	svc := &fakeCustomerService{
		create: func(_ context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
			return customerdomain.Customer{
				ID:          7,
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				PhoneNumber: req.PhoneNumber,
			}, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPost, "/api/customers", `{
		"first_name": "Asha",
		"last_name": "Patil",
		"phone_number": "9822000001",
		"addresses": [{"address_details": "12 MG Road", "city": "Pune", "state": "Maharashtra", "pin_code": "411001"}]
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data customerdomain.Customer `json:"data"`
	}
	decodeBody(t, w, &resp)
	if resp.Data.ID != 7 {
		t.Fatalf("expected id 7, got %d", resp.Data.ID)
	}
}

func TestCreateCustomerMalformedBody(t *testing.T) {
	engine := newTestServer(t, &fakeCustomerService{})

	w := doRequest(t, engine, http.MethodPost, "/api/customers", `{"first_name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %s", resp.Error.Type)
	}
}

func TestCreateCustomerFieldError(t *testing.T) {
	svc := &fakeCustomerService{
		create: func(context.Context, customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
			return customerdomain.Customer{}, &validate.FieldError{
				Field:  "phone_number",
				Value:  "12",
				Reason: "must be 10 to 15 digits",
			}
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPost, "/api/customers", `{"phone_number": "12"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if len(resp.Error.Errors) != 1 {
		t.Fatalf("expected one field error, got %+v", resp.Error)
	}
	if resp.Error.Errors[0].Field != "phone_number" || resp.Error.Errors[0].Code != "invalid_phone_number" {
		t.Fatalf("unexpected field error: %+v", resp.Error.Errors[0])
	}
}

func TestCreateCustomerPhoneConflict(t *testing.T) {
	svc := &fakeCustomerService{
		create: func(context.Context, customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
			return customerdomain.Customer{}, customerdomain.ErrPhoneNumberTaken
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPost, "/api/customers", `{"phone_number": "9822000001"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error.Type != "conflict" {
		t.Fatalf("expected conflict, got %s", resp.Error.Type)
	}
}

func TestListCustomersPayloadShape(t *testing.T) {
	var captured customerdomain.ListCustomersRequest
	svc := &fakeCustomerService{
		list: func(_ context.Context, req customerdomain.ListCustomersRequest) (customerdomain.ListCustomersResponse, error) {
			captured = req
			resp := customerdomain.ListCustomersResponse{
				Customers: []customerdomain.CustomerSummary{
					{ID: 1, FirstName: "Asha", LastName: "Patil", PhoneNumber: "9822000001", AddressCount: 2},
				},
			}
			resp.TotalPages = 3
			resp.CurrentPage = 2
			return resp, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodGet,
		"/api/customers?search=asha&city=Pune&sortBy=last_name&order=DESC&page=2&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if captured.Search != "asha" || captured.City != "Pune" {
		t.Fatalf("filters not bound: %+v", captured)
	}
	if captured.SortBy != "last_name" || captured.Order != "DESC" {
		t.Fatalf("sort not bound: %+v", captured)
	}
	if captured.Page.Page != 2 || captured.Page.Limit != 5 {
		t.Fatalf("pagination not bound: %+v", captured.Page)
	}

	var resp struct {
		Data        []customerdomain.CustomerSummary `json:"data"`
		TotalPages  int64                            `json:"totalPages"`
		CurrentPage int                              `json:"currentPage"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Data) != 1 || resp.Data[0].AddressCount != 2 {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.TotalPages != 3 || resp.CurrentPage != 2 {
		t.Fatalf("unexpected page info: %+v", resp)
	}
}

func TestListCustomersDefaults(t *testing.T) {
	var captured customerdomain.ListCustomersRequest
	svc := &fakeCustomerService{
		list: func(_ context.Context, req customerdomain.ListCustomersRequest) (customerdomain.ListCustomersResponse, error) {
			captured = req
			return customerdomain.ListCustomersResponse{Customers: []customerdomain.CustomerSummary{}}, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodGet, "/api/customers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured.SortBy != "id" || captured.Order != "ASC" {
		t.Fatalf("expected default sort, got %+v", captured)
	}
	if captured.Page.Page != 1 || captured.Page.Limit != 10 {
		t.Fatalf("expected default pagination, got %+v", captured.Page)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := &fakeCustomerService{
		getByID: func(context.Context, int64) (customerdomain.Customer, error) {
			return customerdomain.Customer{}, customerdomain.ErrNotFound
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodGet, "/api/customers/4242", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error.Type != "not_found" {
		t.Fatalf("expected not_found, got %s", resp.Error.Type)
	}
}

func TestGetCustomerBadID(t *testing.T) {
	engine := newTestServer(t, &fakeCustomerService{})

	w := doRequest(t, engine, http.MethodGet, "/api/customers/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %s", resp.Error.Type)
	}
	if len(resp.Error.Errors) != 1 || resp.Error.Errors[0].Code != "invalid_id" {
		t.Fatalf("expected invalid_id, got %+v", resp.Error.Errors)
	}
}

func TestUpdateCustomerReportsChanges(t *testing.T) {
	svc := &fakeCustomerService{
		update: func(_ context.Context, id int64, req customerdomain.UpdateCustomerRequest) (int64, error) {
			if id != 7 || req.LastName != "Deshmukh" {
				t.Fatalf("unexpected update args: id=%d req=%+v", id, req)
			}
			return 1, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPut, "/api/customers/7",
		`{"first_name": "Asha", "last_name": "Deshmukh", "phone_number": "9822000001"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Changes int64 `json:"changes"`
	}
	decodeBody(t, w, &resp)
	if resp.Changes != 1 {
		t.Fatalf("expected changes 1, got %d", resp.Changes)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc := &fakeCustomerService{
		delete: func(context.Context, int64) (int64, error) {
			return 0, customerdomain.ErrNotFound
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodDelete, "/api/customers/4242", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddAddressCreated(t *testing.T) {
	svc := &fakeCustomerService{
		addAddress: func(_ context.Context, customerID int64, addr customerdomain.AddressInput) (customerdomain.Address, error) {
			if customerID != 7 || addr.City != "Nagpur" {
				t.Fatalf("unexpected args: id=%d addr=%+v", customerID, addr)
			}
			return customerdomain.Address{ID: 21, CustomerID: customerID}, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPost, "/api/customers/7/addresses",
		`{"address_details": "1 Civil Lines", "city": "Nagpur", "state": "Maharashtra", "pin_code": "440001"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, w, &resp)
	if resp.ID != 21 {
		t.Fatalf("expected id 21, got %d", resp.ID)
	}
}

func TestUpdateAddressNotFound(t *testing.T) {
	svc := &fakeCustomerService{
		updateAddress: func(context.Context, int64, customerdomain.AddressInput) (int64, error) {
			return 0, customerdomain.ErrNotFound
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodPut, "/api/addresses/4242",
		`{"address_details": "1 Civil Lines", "city": "Nagpur", "state": "Maharashtra", "pin_code": "440001"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteAddressReportsChanges(t *testing.T) {
	svc := &fakeCustomerService{
		deleteAddress: func(context.Context, int64) (int64, error) {
			return 1, nil
		},
	}
	engine := newTestServer(t, svc)

	w := doRequest(t, engine, http.MethodDelete, "/api/addresses/21", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Changes int64 `json:"changes"`
	}
	decodeBody(t, w, &resp)
	if resp.Changes != 1 {
		t.Fatalf("expected changes 1, got %d", resp.Changes)
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestServer(t, &fakeCustomerService{})

	w := doRequest(t, engine, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	svc := &fakeCustomerService{
		list: func(context.Context, customerdomain.ListCustomersRequest) (customerdomain.ListCustomersResponse, error) {
			return customerdomain.ListCustomersResponse{}, nil
		},
	}
	engine := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}

	w = doRequest(t, engine, http.MethodGet, "/api/customers", "")
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("expected generated request id")
	}
}
