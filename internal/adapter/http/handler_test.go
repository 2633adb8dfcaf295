package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/neomorfeo/homebase/internal/adapter/fsm"
	adapter "github.com/neomorfeo/homebase/internal/adapter/http"
	"github.com/neomorfeo/homebase/internal/adapter/sqlite"
	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

const testSecret = "test-secret"

// auditPublisher records events straight into the audit log.
type auditPublisher struct {
	log domain.AuditLog
}

func (p auditPublisher) Publish(ctx context.Context, ev domain.WorkflowEvent) error {
	return p.log.Record(ctx, domain.AuditEntry{ID: uuid.NewString(), WorkflowEvent: ev})
}

// newTestServer creates a full-stack httptest.Server with SQLite in-memory.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	pub := auditPublisher{log: store.Audit()}
	wf := app.NewWorkflow(app.Deps{
		Properties:      store.Properties(),
		Listings:        store.Listings(),
		Publisher:       pub,
		PropertyMachine: fsm.NewPropertyMachine(),
		ListingMachine:  fsm.NewListingMachine(),
	})
	registry := app.NewAttachmentRegistry()
	app.RegisterWorkflowResolvers(registry, wf)

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("homebase", "0.1.0"))
	adapter.Register(api, adapter.NewAuthenticator(testSecret), adapter.Services{
		Workflow:  wf,
		Documents: app.NewDocumentService(store.Documents(), registry, pub, domain.SystemClock{}),
		Dashboard: app.NewDashboard(store.Properties(), store.Listings(), time.Nanosecond),
		Audit:     app.NewAuditTrail(store.Audit()),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func signToken(t *testing.T, secret, sub string, roles ...string) string {
	t.Helper()
	claims := adapter.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

var (
	landlordToken string
	otherToken    string
	hoToken       string
	tenantToken   string
)

func init() {
	sign := func(sub string, roles ...string) string {
		claims := adapter.Claims{Roles: roles, RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			panic(err)
		}
		return s
	}
	landlordToken = sign("landlord-1", "landlord")
	otherToken = sign("landlord-2", "landlord")
	hoToken = sign("ho-1", "ho")
	tenantToken = sign("tenant-1", "tenant")
}

// doRequest performs an authenticated HTTP request with context.
func doRequest(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d; body: %s", resp.StatusCode, want, b)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

const propertyBody = `{
	"street_name": "Viale della Pace", "house_number": "7", "city": "Vicenza",
	"province": "VI", "postal_code": "36100", "country": "IT",
	"bedrooms": 2, "full_bathrooms": 1, "garage": false, "yard": false,
	"furnishing_status": "partially_furnished", "pets_allowed": true,
	"elevator": false, "redecoration_fees_required": false
}`

func mustCreateProperty(t *testing.T, srv *httptest.Server) adapter.PropertyResponse {
	t.Helper()
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties", landlordToken, propertyBody)
	expectStatus(t, resp, http.StatusCreated)
	return decode[adapter.PropertyResponse](t, resp)
}

func mustPost[T any](t *testing.T, srv *httptest.Server, path, token, body string) T {
	t.Helper()
	resp := doRequest(t, http.MethodPost, srv.URL+path, token, body)
	expectStatus(t, resp, http.StatusOK)
	return decode[T](t, resp)
}

func mustApprovedProperty(t *testing.T, srv *httptest.Server) adapter.PropertyResponse {
	t.Helper()
	p := mustCreateProperty(t, srv)
	mustPost[adapter.PropertyResponse](t, srv, "/api/v1/properties/"+p.ID+"/submit", landlordToken, "")
	return mustPost[adapter.PropertyResponse](t, srv, "/api/v1/properties/"+p.ID+"/approve", hoToken, `{"comments":"ok"}`)
}

// --- Authentication ---

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", "landlord-1", "landlord")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/properties", tt.token, "")
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	srv := newTestServer(t)

	claims := adapter.Claims{
		Roles: []string{"landlord"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "landlord-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/properties", token, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthenticator_Actor(t *testing.T) {
	auth := adapter.NewAuthenticator(testSecret)

	actor, err := auth.Actor(signToken(t, testSecret, "u-1", "LANDLORD", "tenant", "wizard"))
	if err != nil {
		t.Fatalf("Actor: %v", err)
	}
	if actor.ID != "u-1" {
		t.Errorf("ID = %q", actor.ID)
	}
	if !actor.IsLandlord() || !actor.IsTenant() || len(actor.Roles) != 2 {
		t.Errorf("Roles = %v, want landlord and tenant", actor.Roles)
	}

	if _, err := auth.Actor(signToken(t, testSecret, "")); err == nil {
		t.Error("expected error for token without subject")
	}
}

// --- Properties ---

func TestCreateProperty(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)

	if p.ID == "" {
		t.Error("ID should not be empty")
	}
	if p.Status != "draft" {
		t.Errorf("Status = %q, want draft", p.Status)
	}
	if p.LandlordID != "landlord-1" {
		t.Errorf("LandlordID = %q", p.LandlordID)
	}
	if p.Attributes.City != "Vicenza" {
		t.Errorf("City = %q", p.Attributes.City)
	}
	if p.ReviewerID != "" || p.ReviewedAt != "" {
		t.Error("new property must not carry review stamps")
	}
}

func TestCreateProperty_Errors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("tenant forbidden", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties", tenantToken, propertyBody)
		defer resp.Body.Close()
		expectStatus(t, resp, http.StatusForbidden)
	})

	t.Run("cross-field validation", func(t *testing.T) {
		body := strings.Replace(propertyBody, `"full_bathrooms": 1`, `"full_bathrooms": 0`, 1)
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties", landlordToken, body)
		expectStatus(t, resp, http.StatusUnprocessableEntity)

		model := decode[huma.ErrorModel](t, resp)
		found := false
		for _, d := range model.Errors {
			if d.Location == "body.bathrooms" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a bathrooms error detail, got %+v", model.Errors)
		}
	})
}

func TestPropertyReviewFlow(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	base := "/api/v1/properties/" + p.ID

	submitted := mustPost[adapter.PropertyResponse](t, srv, base+"/submit", landlordToken, "")
	if submitted.Status != "pending_review" {
		t.Fatalf("Status = %q, want pending_review", submitted.Status)
	}

	resp := doRequest(t, http.MethodPost, srv.URL+base+"/reject", hoToken, `{}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	rejected := mustPost[adapter.PropertyResponse](t, srv, base+"/reject", hoToken, `{"comments":"missing photos"}`)
	if rejected.Status != "rejected" || rejected.ReviewerID != "ho-1" || rejected.Comments != "missing photos" {
		t.Fatalf("rejected = %+v", rejected)
	}

	resubmitted := mustPost[adapter.PropertyResponse](t, srv, base+"/submit", landlordToken, "")
	if resubmitted.ReviewerID != "" {
		t.Error("resubmission must clear the reviewer")
	}

	approved := mustPost[adapter.PropertyResponse](t, srv, base+"/approve", hoToken, "")
	if approved.Status != "approved" || approved.ReviewedAt == "" {
		t.Fatalf("approved = %+v", approved)
	}

	resp = doRequest(t, http.MethodPost, srv.URL+base+"/submit", landlordToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestPropertyAccess(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	base := srv.URL + "/api/v1/properties/" + p.ID

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"other landlord cannot view", http.MethodGet, base, otherToken, http.StatusForbidden},
		{"housing office can view", http.MethodGet, base, hoToken, http.StatusOK},
		{"landlord cannot approve", http.MethodPost, base + "/approve", landlordToken, http.StatusForbidden},
		{"other landlord cannot submit", http.MethodPost, base + "/submit", otherToken, http.StatusForbidden},
		{"unknown property", http.MethodGet, srv.URL + "/api/v1/properties/nope", hoToken, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, tt.method, tt.path, tt.token, "")
			defer resp.Body.Close()
			expectStatus(t, resp, tt.want)
		})
	}
}

func TestUpdateProperty(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	url := srv.URL + "/api/v1/properties/" + p.ID

	body := `{"attributes":` + strings.Replace(propertyBody, `"bedrooms": 2`, `"bedrooms": 3`, 1) + `}`
	resp := doRequest(t, http.MethodPatch, url, landlordToken, body)
	expectStatus(t, resp, http.StatusOK)
	updated := decode[adapter.PropertyResponse](t, resp)
	if updated.Attributes.Bedrooms != 3 {
		t.Errorf("Bedrooms = %d, want 3", updated.Attributes.Bedrooms)
	}
	if updated.Version <= p.Version {
		t.Errorf("Version = %d, want > %d", updated.Version, p.Version)
	}

	resp = doRequest(t, http.MethodPatch, url, hoToken, `{"comments":"check the address"}`)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[adapter.PropertyResponse](t, resp); got.Comments != "check the address" {
		t.Errorf("Comments = %q", got.Comments)
	}
}

func TestDeleteProperty(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	url := srv.URL + "/api/v1/properties/" + p.ID

	resp := doRequest(t, http.MethodDelete, url, landlordToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, http.MethodGet, url, landlordToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusNotFound)
}

func TestListProperties_LandlordSeesOwn(t *testing.T) {
	srv := newTestServer(t)
	mustCreateProperty(t, srv)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties", otherToken, propertyBody)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/properties", landlordToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[[]adapter.PropertyResponse](t, resp); len(got) != 1 {
		t.Errorf("landlord sees %d properties, want 1", len(got))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/properties?city=vicenza", hoToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[[]adapter.PropertyResponse](t, resp); len(got) != 2 {
		t.Errorf("housing office sees %d properties, want 2", len(got))
	}
}

func TestPropertyActions(t *testing.T) {
	srv := newTestServer(t)
	p := mustApprovedProperty(t, srv)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/properties/"+p.ID+"/actions", landlordToken, "")
	expectStatus(t, resp, http.StatusOK)
	got := decode[adapter.ActionsResponse](t, resp)
	if !slices.Contains(got.Actions, "open_listing") || slices.Contains(got.Actions, "approve") {
		t.Errorf("Actions = %v, want open_listing and no review events", got.Actions)
	}
}

// --- Listings ---

func TestListingPublicationFlow(t *testing.T) {
	srv := newTestServer(t)
	p := mustApprovedProperty(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties/"+p.ID+"/listing", landlordToken,
		`{"monthly_rent":125000,"security_deposit":250000}`)
	expectStatus(t, resp, http.StatusCreated)
	l := decode[adapter.ListingResponse](t, resp)
	if l.Status != "draft" || l.Terms.DurationYears != 4 || l.PropertyStatus != "approved" {
		t.Fatalf("listing = %+v", l)
	}

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties/"+p.ID+"/listing", landlordToken,
		`{"monthly_rent":1,"security_deposit":1}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	base := "/api/v1/listings/" + l.ID
	steps := []struct {
		path, token, body, want string
	}{
		{"/submit", landlordToken, "", "submitted"},
		{"/start-review", hoToken, "", "in_review"},
		{"/approve", hoToken, `{"comments":"fine"}`, "approved"},
		{"/publish", landlordToken, "", "published"},
	}
	for _, s := range steps {
		got := mustPost[adapter.ListingResponse](t, srv, base+s.path, s.token, s.body)
		if got.Status != s.want {
			t.Fatalf("after %s: Status = %q, want %q", s.path, got.Status, s.want)
		}
	}

	resp = doRequest(t, http.MethodGet, srv.URL+base, tenantToken, "")
	expectStatus(t, resp, http.StatusOK)
	published := decode[adapter.ListingResponse](t, resp)
	if published.PublishedAt == "" || published.ApprovedAt == "" || published.SubmittedAt == "" {
		t.Errorf("missing stamps: %+v", published)
	}

	got := mustPost[adapter.ListingResponse](t, srv, base+"/unpublish", landlordToken, "")
	if got.Status != "unpublished" {
		t.Fatalf("Status = %q, want unpublished", got.Status)
	}

	resp = doRequest(t, http.MethodPost, srv.URL+base+"/publish", landlordToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestCreateListing_PropertyNotApproved(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties/"+p.ID+"/listing", landlordToken,
		`{"monthly_rent":125000,"security_deposit":250000}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/properties/"+p.ID+"/listing", otherToken,
		`{"monthly_rent":125000,"security_deposit":250000}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)
}

func TestListingVisibility(t *testing.T) {
	srv := newTestServer(t)
	p := mustApprovedProperty(t, srv)

	l := mustPost201[adapter.ListingResponse](t, srv, "/api/v1/properties/"+p.ID+"/listing", landlordToken,
		`{"monthly_rent":125000,"security_deposit":250000}`)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/listings/"+l.ID, tenantToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusNotFound)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/listings", tenantToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[[]adapter.ListingResponse](t, resp); len(got) != 0 {
		t.Errorf("tenant sees %d draft listings, want 0", len(got))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/listings", hoToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[[]adapter.ListingResponse](t, resp); len(got) != 1 {
		t.Errorf("housing office sees %d listings, want 1", len(got))
	}
}

func TestUpdateListing(t *testing.T) {
	srv := newTestServer(t)
	p := mustApprovedProperty(t, srv)
	l := mustPost201[adapter.ListingResponse](t, srv, "/api/v1/properties/"+p.ID+"/listing", landlordToken,
		`{"monthly_rent":125000,"security_deposit":250000,"condo_fees":5000}`)
	url := srv.URL + "/api/v1/listings/" + l.ID

	resp := doRequest(t, http.MethodPatch, url, landlordToken, `{"monthly_rent":130000,"clear_condo_fees":true}`)
	expectStatus(t, resp, http.StatusOK)
	got := decode[adapter.ListingResponse](t, resp)
	if got.Terms.MonthlyRent != 130000 || got.Terms.CondoFees != nil {
		t.Errorf("Terms = %+v", got.Terms)
	}

	resp = doRequest(t, http.MethodPatch, url, landlordToken, `{"duration_years":40}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	mustPost[adapter.ListingResponse](t, srv, "/api/v1/listings/"+l.ID+"/submit", landlordToken, "")
	resp = doRequest(t, http.MethodPatch, url, landlordToken, `{"monthly_rent":1}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)
}

func mustPost201[T any](t *testing.T, srv *httptest.Server, path, token, body string) T {
	t.Helper()
	resp := doRequest(t, http.MethodPost, srv.URL+path, token, body)
	expectStatus(t, resp, http.StatusCreated)
	return decode[T](t, resp)
}

// --- Documents ---

func TestDocuments(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	url := srv.URL + "/api/v1/attachments/property/" + p.ID

	doc := mustPost201[adapter.DocumentResponse](t, srv, "/api/v1/attachments/property/"+p.ID, landlordToken,
		`{"type":"photo","file_name":"kitchen.jpg","mime_type":"IMAGE/JPEG","size":2048,"storage_key":"s3/kitchen.jpg"}`)
	if doc.MimeType != "image/jpeg" || doc.Locale != "en" || doc.UploadedBy != "landlord-1" {
		t.Errorf("doc = %+v", doc)
	}

	resp := doRequest(t, http.MethodPost, url, landlordToken,
		`{"type":"photo","file_name":"plan.pdf","mime_type":"application/pdf","size":1,"storage_key":"k"}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/attachments/lease/l-1", landlordToken,
		`{"type":"other","file_name":"a.pdf","mime_type":"application/pdf","size":1,"storage_key":"k"}`)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	resp = doRequest(t, http.MethodGet, url, otherToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)

	resp = doRequest(t, http.MethodGet, url, hoToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[[]adapter.DocumentResponse](t, resp); len(got) != 1 || got[0].ID != doc.ID {
		t.Errorf("documents = %+v", got)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/documents/"+doc.ID, landlordToken, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[adapter.DocumentResponse](t, resp); got.FileName != "kitchen.jpg" {
		t.Errorf("FileName = %q", got.FileName)
	}
}

// --- Housing Office ---

func TestDashboardAndAudit(t *testing.T) {
	srv := newTestServer(t)
	p := mustCreateProperty(t, srv)
	mustPost[adapter.PropertyResponse](t, srv, "/api/v1/properties/"+p.ID+"/submit", landlordToken, "")

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/dashboard", landlordToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/dashboard", hoToken, "")
	expectStatus(t, resp, http.StatusOK)
	stats := decode[adapter.StatsResponse](t, resp)
	if stats.PendingProperties != 1 || stats.ActiveProperties != 1 {
		t.Errorf("stats = %+v", stats)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/audit?entity_id="+p.ID, hoToken, "")
	expectStatus(t, resp, http.StatusOK)
	entries := decode[[]adapter.AuditEntryResponse](t, resp)
	if len(entries) != 2 {
		t.Fatalf("got %d audit entries, want 2", len(entries))
	}
	if entries[0].Event != "submit" || entries[0].To != "pending_review" {
		t.Errorf("newest entry = %+v", entries[0])
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/audit", tenantToken, "")
	resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)
}

func ExampleActorFrom() {
	ctx := adapter.WithActor(context.Background(), domain.NewActor("u-1", domain.RoleTenant))
	fmt.Println(adapter.ActorFrom(ctx).ID)
	// Output: u-1
}
