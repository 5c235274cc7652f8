package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"rfp-desk/internal/api/handlers"
	"rfp-desk/internal/dto"
	"rfp-desk/internal/models"
	"rfp-desk/internal/repository"
	"rfp-desk/internal/service"
	"rfp-desk/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memStore struct {
	mu        sync.Mutex
	rfps      map[uuid.UUID]*models.RFP
	vendors   map[uuid.UUID]*models.Vendor
	proposals []*models.Proposal
}

type memRFPs struct{ *memStore }
type memVendors struct{ *memStore }
type memProposals struct{ *memStore }

func (m memRFPs) Create(_ context.Context, rfp *models.RFP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rfps[rfp.ID] = rfp
	return nil
}

func (m memRFPs) GetByID(_ context.Context, id uuid.UUID) (*models.RFP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rfp, ok := m.rfps[id]; ok {
		return rfp, nil
	}
	return nil, repository.ErrNotFound
}

func (m memRFPs) List(context.Context, uint64) ([]*models.RFP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.RFP
	for _, rfp := range m.rfps {
		out = append(out, rfp)
	}
	return out, nil
}

func (m memRFPs) UpdateStatus(_ context.Context, id uuid.UUID, status models.RFPStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rfp, ok := m.rfps[id]
	if !ok {
		return repository.ErrNotFound
	}
	rfp.Status = status
	return nil
}

func (m memVendors) Create(_ context.Context, v *models.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[v.ID] = v
	return nil
}

func (m memVendors) GetByID(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vendors[id]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func (m memVendors) List(context.Context) ([]*models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Vendor
	for _, v := range m.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (m memProposals) Create(_ context.Context, p *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals = append(m.proposals, p)
	return nil
}

func (m memProposals) ListByRFPID(_ context.Context, rfpID uuid.UUID) ([]*models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Proposal
	for _, p := range m.proposals {
		if p.RFPID == rfpID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestApp(t *testing.T, withStorage bool) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	gw := service.NewUnavailableGateway(logger)
	procurement := service.NewProcurementService(gw, &config.ExtractionConfig{BatchConcurrency: 2, DescriptionPromptLimit: 500}, logger)

	var rfpHandler *handlers.RFPHandler
	if withStorage {
		store := &memStore{rfps: map[uuid.UUID]*models.RFP{}, vendors: map[uuid.UUID]*models.Vendor{}}
		rfpService := service.NewRFPService(procurement, memRFPs{store}, memProposals{store}, memVendors{store}, logger)
		rfpHandler = handlers.NewRFPHandler(rfpService, logger)
	}

	return SetupRouter(RouterConfig{BodyLimit: 1 << 20}, handlers.NewAIHandler(procurement, gw, withStorage, logger), rfpHandler, logger)
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)
	status, body := do(t, app, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var resp dto.HealthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || resp.GatewayAvailable || resp.Storage {
		t.Errorf("health = %+v", resp)
	}
}

func TestParseRFP(t *testing.T) {
	app := newTestApp(t, false)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"valid", dto.ParseRFPRequest{Description: "We need 20 laptops within 2 weeks, budget $50,000"}, http.StatusOK},
		{"blank description", dto.ParseRFPRequest{Description: "   "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/v1/ai/parse-rfp", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", status, tt.wantStatus, body)
			}
			if status != http.StatusOK {
				var resp dto.ErrorResponse
				if err := json.Unmarshal(body, &resp); err != nil || resp.Success || resp.Error == "" {
					t.Errorf("error body = %s", body)
				}
				return
			}

			var resp dto.ParseRFPResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !resp.Success || resp.Source != string(service.SourceHeuristic) {
				t.Errorf("resp = %+v", resp)
			}
			if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 20 {
				t.Errorf("items = %+v", resp.Data.Items)
			}
			if resp.Data.TotalBudget.IntPart() != 50000 {
				t.Errorf("budget = %s, want 50000", resp.Data.TotalBudget)
			}
		})
	}
}

func TestParseResponses(t *testing.T) {
	app := newTestApp(t, false)

	status, _ := do(t, app, http.MethodPost, "/api/v1/ai/parse-responses", dto.ParseResponsesRequest{})
	if status != http.StatusBadRequest {
		t.Errorf("empty emails status = %d, want 400", status)
	}

	req := dto.ParseResponsesRequest{
		Emails: []models.VendorEmail{
			{Subject: "Re: RFP", Body: "Total price $9,000"},
			{Subject: "Re: RFP", Body: "Total price $7,500"},
		},
	}
	status, body := do(t, app, http.MethodPost, "/api/v1/ai/parse-responses", req)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", status, body)
	}

	var resp dto.ParseResponsesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(resp.Data))
	}
	if got := resp.Data[1].ProposalData.TotalPrice.IntPart(); got != 7500 {
		t.Errorf("data[1].totalPrice = %d, want 7500", got)
	}
}

func TestCompareEmpty(t *testing.T) {
	app := newTestApp(t, false)

	status, body := do(t, app, http.MethodPost, "/api/v1/ai/compare", dto.CompareRequest{})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var resp dto.CompareResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.Comparison) != 0 || resp.Data.Recommendation != nil || len(resp.Data.Insights) != 1 {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestWorkflowRoutesNeedStorage(t *testing.T) {
	app := newTestApp(t, false)
	status, _ := do(t, app, http.MethodGet, "/api/v1/rfps", nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without storage", status)
	}
}

func TestRFPWorkflow(t *testing.T) {
	app := newTestApp(t, true)

	status, body := do(t, app, http.MethodPost, "/api/v1/rfps", dto.CreateRFPRequest{
		Title:       "Office laptops",
		Description: "We need 10 laptops within 3 weeks, budget $20,000",
	})
	if status != http.StatusCreated {
		t.Fatalf("create RFP status = %d (%s)", status, body)
	}
	var created dto.DataResponse[dto.RFPResponse]
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rfp := created.Data
	if rfp.StructuredData.DeliveryDays != 21 {
		t.Errorf("deliveryDays = %v, want 21", rfp.StructuredData.DeliveryDays)
	}

	status, body = do(t, app, http.MethodPost, "/api/v1/vendors", dto.CreateVendorRequest{Name: "Acme", Email: "sales@acme.test"})
	if status != http.StatusCreated {
		t.Fatalf("create vendor status = %d (%s)", status, body)
	}
	var vendor dto.DataResponse[dto.VendorResponse]
	if err := json.Unmarshal(body, &vendor); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	status, body = do(t, app, http.MethodPost, "/api/v1/responses", dto.RecordResponseRequest{
		VendorID: vendor.Data.ID,
		Subject:  "Re: " + rfp.OutgoingSubject,
		Body:     "Total price $18,500, delivery in 10 days.",
	})
	if status != http.StatusCreated {
		t.Fatalf("record reply status = %d (%s)", status, body)
	}

	status, body = do(t, app, http.MethodGet, "/api/v1/rfps/"+rfp.ID+"/proposals", nil)
	if status != http.StatusOK {
		t.Fatalf("list proposals status = %d", status)
	}
	var proposals dto.DataResponse[[]dto.ProposalResponse]
	if err := json.Unmarshal(body, &proposals); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(proposals.Data) != 1 || proposals.Data[0].VendorName != "Acme" {
		t.Fatalf("proposals = %+v", proposals.Data)
	}

	status, body = do(t, app, http.MethodGet, "/api/v1/rfps/"+rfp.ID+"/compare", nil)
	if status != http.StatusOK {
		t.Fatalf("compare status = %d", status)
	}
	var compared dto.CompareResponse
	if err := json.Unmarshal(body, &compared); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if compared.Data.Recommendation == nil || compared.Data.Recommendation.BestVendorID != vendor.Data.ID {
		t.Errorf("recommendation = %+v", compared.Data.Recommendation)
	}

	status, body = do(t, app, http.MethodGet, "/api/v1/rfps/"+rfp.ID, nil)
	var fetched dto.DataResponse[dto.RFPResponse]
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status != http.StatusOK || fetched.Data.Status != string(models.RFPStatusInProgress) {
		t.Errorf("get RFP = %d %+v", status, fetched.Data)
	}
}

func TestRFPErrors(t *testing.T) {
	app := newTestApp(t, true)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"unknown RFP", http.MethodGet, "/api/v1/rfps/" + uuid.NewString(), nil, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/v1/rfps/not-a-uuid", nil, http.StatusBadRequest},
		{"compare unknown RFP", http.MethodGet, "/api/v1/rfps/" + uuid.NewString() + "/compare", nil, http.StatusNotFound},
		{"blank description", http.MethodPost, "/api/v1/rfps", dto.CreateRFPRequest{Title: "x"}, http.StatusBadRequest},
		{"vendor without email", http.MethodPost, "/api/v1/vendors", dto.CreateVendorRequest{Name: "Acme"}, http.StatusBadRequest},
		{
			"reply without tag", http.MethodPost, "/api/v1/responses",
			dto.RecordResponseRequest{VendorID: uuid.NewString(), Subject: "Our offer", Body: "Total $100"},
			http.StatusBadRequest,
		},
		{
			"reply for unknown RFP", http.MethodPost, "/api/v1/rfps/" + uuid.NewString() + "/responses",
			dto.RecordResponseRequest{VendorID: uuid.NewString(), Body: "Total $100"},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", status, tt.wantStatus, body)
			}
		})
	}
}
