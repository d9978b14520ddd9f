package pages

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/vtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

type reply struct {
	status int
	body   string
}

// backend is a scripted API server keyed by "METHOD /path".
type backend struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   map[string]int
	bodies  map[string]string
	queries map[string]url.Values
	srv     *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		replies: map[string]reply{},
		calls:   map[string]int{},
		bodies:  map[string]string{},
		queries: map[string]url.Values{},
	}
	b.srv = httptest.NewServer(b)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.calls[key]++
	b.bodies[key] = string(body)
	b.queries[key] = r.URL.Query()
	rep, ok := b.replies[key]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
		return
	}
	w.WriteHeader(rep.status)
	w.Write([]byte(rep.body))
}

func (b *backend) on(key string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[key] = reply{status, body}
}

// ok replies with data wrapped in the success envelope.
func (b *backend) ok(key, data string) {
	b.on(key, http.StatusOK, `{"success":true,"data":`+data+`}`)
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *backend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (b *backend) query(key string) url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[key]
}

type harness struct {
	be    *backend
	store *portal.MemoryStore
	app   *portal.App
	pages *Pages
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	be := newBackend(t)
	store := portal.NewMemoryStore()
	app := portal.New()
	app.Config(portal.Options{
		Store: store,
		API:   api.New(be.srv.URL),
	})
	t.Cleanup(app.Close)
	p := Register(app)
	p.now = func() time.Time { return testNow }
	return &harness{be: be, store: store, app: app, pages: p}
}

func (h *harness) open(t *testing.T) *vtest.Browser {
	t.Helper()
	return vtest.Open(t, h.app)
}

// signIn stores a session for the browser as if it had logged in.
func (h *harness) signIn(t *testing.T, b *vtest.Browser, role, name string) {
	t.Helper()
	s := portal.NewSession(b.SessionID(), h.store, nil)
	require.NoError(t, s.Save(context.Background(), api.AuthResponse{
		AccessToken: "tok-" + role,
		User:        api.Profile{ID: "u-" + role, Role: role, FullName: name},
	}))
}

func (h *harness) token(t *testing.T, b *vtest.Browser) (string, bool) {
	t.Helper()
	tok, ok, err := h.store.Get(context.Background(), b.SessionID(), portal.TokenKey)
	require.NoError(t, err)
	return tok, ok
}

// statValue reads the value of the labelled card in the stats row id.
func statValue(b *vtest.Browser, id, label string) string {
	var value string
	b.Find("#" + id + " .stat-card").Each(func(_ int, card *goquery.Selection) {
		if card.Find(".stat-label").Text() == label {
			value = card.Find(".stat-value").Text()
		}
	})
	return value
}

const (
	landlordDashboardJSON = `{"total_buildings":2,"total_units":6,"occupied_units":4,"total_collected":50000000,"total_pending":25000000,
		"recent_payments":[{"id":"p1","amount":25000000,"status":"successful","tenant_name":"Chidi Okafor","building_name":"Palm Court"}],
		"active_buildings":[{"id":"b1","name":"Palm Court","total_units":4,"occupied_units":4,"total_collected":50000000}]}`
	tenantDashboardJSON = `{"profile":{"id":"u-tenant","role":"tenant","full_name":"Chidi Okafor"},
		"unit":{"id":"u7","building_id":"b1","unit_number":"4B","rent_amount":25000000,"status":"occupied"},
		"building":{"id":"b1","name":"Palm Court","address":"Lekki Phase 1"},
		"total_paid":50000000,"next_amount":25000000}`
)

func TestLanding_SendsSignedInUsersToTheirDashboard(t *testing.T) {
	tests := []struct {
		role, want string
	}{
		{portal.RoleLandlord, "#/dashboard"},
		{portal.RoleTenant, "#/tenant"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			h := newHarness(t)
			h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
			h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
			b := h.open(t)
			h.signIn(t, b, tt.role, "Ada Obi")

			b.Visit("")

			b.AssertHash(tt.want)
		})
	}
}

func TestLanding_ShownToVisitors(t *testing.T) {
	h := newHarness(t)
	b := h.open(t).Visit("#/")

	b.AssertText("Managing properties in Nigeria made simple")
	assert.Equal(t, 1, b.Find("#hero").Length())
}

func TestUnknownPathGoesToRoot(t *testing.T) {
	h := newHarness(t)
	b := h.open(t).Visit("#/nowhere")

	b.AssertHash("#/")
	b.AssertText("Managing properties")
}

func TestTenantKeptOutOfLandlordPages(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")

	b.Visit("#/buildings")

	b.AssertHash("#/tenant")
	assert.Equal(t, 0, h.be.count("GET /buildings"))
}

func TestVisitorSentToLogin(t *testing.T) {
	h := newHarness(t)
	b := h.open(t).Visit("#/payments")

	b.AssertHash("#/login")
	assert.Equal(t, 1, b.Find("#auth-form").Length())
}

func TestLogin_SavesSessionAndOpensDashboard(t *testing.T) {
	h := newHarness(t)
	h.be.ok("POST /auth/login", `{"access_token":"tok1","user":{"id":"u1","role":"landlord","full_name":"Ada Obi"}}`)
	h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
	b := h.open(t).Visit("#/login")

	require.NoError(t, b.Submit("#auth-form", url.Values{"email": {"ada@example.com"}, "password": {"secret"}}))

	b.AssertHash("#/dashboard")
	assert.JSONEq(t, `{"email":"ada@example.com","password":"secret"}`, h.be.body("POST /auth/login"))
	tok, ok := h.token(t, b)
	assert.True(t, ok)
	assert.Equal(t, "tok1", tok)
	assert.Equal(t, "Ada", b.Find("#dash-name").Text())
	assert.Equal(t, "Landlord Portal", b.Find("#sidebar-portal-label").Text())
}

func TestLogin_ErrorShownInline(t *testing.T) {
	h := newHarness(t)
	h.be.on("POST /auth/login", http.StatusUnauthorized, `{"error":"Invalid email or password"}`)
	b := h.open(t).Visit("#/login")

	require.NoError(t, b.Submit("#auth-form", url.Values{"email": {"ada@example.com"}, "password": {"nope"}}))

	b.AssertHash("#/login")
	assert.Equal(t, "Invalid email or password", b.Find("#auth-error").Text())
	_, ok := h.token(t, b)
	assert.False(t, ok)
}

func TestSignup_SendsSelectedRole(t *testing.T) {
	h := newHarness(t)
	h.be.ok("POST /auth/signup", `{"token":"tok2","user":{"id":"u2","role":"tenant","full_name":"Chidi Okafor"}}`)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	b := h.open(t).Visit("#/signup")
	assert.Equal(t, "true", b.Find("#role-landlord").AttrOr("aria-pressed", ""))

	require.NoError(t, b.Click("#role-tenant"))
	assert.Equal(t, "true", b.Find("#role-tenant").AttrOr("aria-pressed", ""))

	require.NoError(t, b.Submit("#auth-form", url.Values{
		"full_name": {"Chidi Okafor"},
		"email":     {"chidi@example.com"},
		"password":  {"secret"},
	}))

	b.AssertHash("#/tenant")
	assert.JSONEq(t, `{"email":"chidi@example.com","password":"secret","full_name":"Chidi Okafor","role":"tenant"}`,
		h.be.body("POST /auth/signup"))
}

func TestLogout_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/dashboard")

	require.NoError(t, b.Click("#sign-out"))

	b.AssertHash("#/login")
	_, ok := h.token(t, b)
	assert.False(t, ok)
}

func TestLandlordDashboard(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/dashboard")

	assert.Equal(t, "67%", statValue(b, "dash-stats", "Occupancy Rate"))
	assert.Equal(t, "₦500,000", statValue(b, "dash-stats", "Collected"))
	b.AssertText("Chidi Okafor")
	b.AssertText("100% occupied")
	assert.Equal(t, "page", b.Find(`a[href="#/dashboard"]`).AttrOr("aria-current", ""))
}

func TestLandlordDashboard_LoadFailure(t *testing.T) {
	h := newHarness(t)
	h.be.on("GET /dashboard/landlord", http.StatusInternalServerError, `{"error":"boom"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/dashboard")

	assert.Equal(t, "Unable to load dashboard data.", b.Find("#dash-stats").Text())
}

func TestExpiredSessionSentToLogin(t *testing.T) {
	h := newHarness(t)
	h.be.on("GET /dashboard/landlord", http.StatusUnauthorized, `{"error":"token expired"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/dashboard")

	b.AssertHash("#/login")
	_, ok := h.token(t, b)
	assert.False(t, ok)
}

func TestBuildings_ListWithOccupancy(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /buildings", `[{"id":"b1","name":"Palm Court","address":"Lekki","total_units":4},{"id":"b2","name":"Ocean View","address":"VI","total_units":2}]`)
	h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/buildings")

	assert.Equal(t, "2 properties in your portfolio", b.Find("#buildings-subtitle").Text())
	assert.Equal(t, 2, b.Find("#buildings-grid .building-card").Length())
	assert.Equal(t, "Healthy", b.Find(".status-healthy").Text())
	assert.Equal(t, "Low", b.Find(".status-low").Text())
}

func TestBuildings_Empty(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /buildings", `[]`)
	h.be.on("GET /dashboard/landlord", http.StatusInternalServerError, `{"error":"boom"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/buildings")

	assert.Equal(t, "0 properties in your portfolio", b.Find("#buildings-subtitle").Text())
	b.AssertText("No properties yet")
}

func TestBuildings_CreateReloads(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /buildings", `[]`)
	h.be.ok("GET /dashboard/landlord", landlordDashboardJSON)
	h.be.ok("POST /buildings", `{"id":"b3","name":"Harbour Point"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/buildings")

	require.NoError(t, b.Submit("#form-add-building", url.Values{
		"name":        {"Harbour Point"},
		"address":     {"Ikoyi"},
		"total_units": {"3"},
	}))

	assert.JSONEq(t, `{"name":"Harbour Point","address":"Ikoyi","total_units":3}`, h.be.body("POST /buildings"))
	assert.Equal(t, 2, h.be.count("GET /buildings"))
	assert.Equal(t, "Property added", b.Toast())
}

func buildingDetail(t *testing.T) (*harness, *vtest.Browser) {
	t.Helper()
	h := newHarness(t)
	h.be.ok("GET /buildings/b1", `{"id":"b1","name":"Palm Court","address":"Lekki Phase 1","total_units":2}`)
	h.be.ok("GET /buildings/b1/units", `[
		{"id":"u1","building_id":"b1","unit_number":"1A","rent_amount":25000000,"status":"occupied","tenant_id":"t1","tenant_name":"Chidi Okafor","payment_status":"successful"},
		{"id":"u2","building_id":"b1","unit_number":"1B","rent_amount":30000000,"status":"vacant"}]`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/buildings/b1")
	return h, b
}

func TestBuildingDetail(t *testing.T) {
	_, b := buildingDetail(t)

	assert.Equal(t, "Palm Court", b.Find("#building-detail-name").Text())
	assert.Equal(t, 2, b.Find("#building-units-body tr").Length())
	assert.Equal(t, "50%", statValue(b, "building-stats", "Occupancy"))
	assert.Equal(t, "1", statValue(b, "building-stats", "Vacant"))
	assert.Equal(t, "₦250,000", statValue(b, "building-stats", "Monthly Rent Roll"))
	b.AssertText("Paid")

	invite := b.Find("#building-units-body button")
	require.Equal(t, 1, invite.Length())
	assert.Equal(t, "u2", invite.AttrOr("data-unit", ""))
}

func TestBuildingDetail_LoadFailure(t *testing.T) {
	h := newHarness(t)
	h.be.on("GET /buildings/b9", http.StatusNotFound, `{"error":"Building not found"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")

	b.Visit("#/buildings/b9")

	assert.Equal(t, "Building not found", b.Find("#building-units-body").Text())
}

func TestBuildingDetail_CreateUnitInKobo(t *testing.T) {
	h, b := buildingDetail(t)
	h.be.ok("POST /units", `{"id":"u3","building_id":"b1","unit_number":"2A","rent_amount":40000000}`)

	require.NoError(t, b.Submit("#form-add-unit", url.Values{"unit_number": {"2A"}, "rent": {"400000"}}))

	assert.JSONEq(t, `{"building_id":"b1","unit_number":"2A","rent_amount":40000000}`, h.be.body("POST /units"))
	assert.Equal(t, 2, h.be.count("GET /buildings/b1/units"))
	assert.Equal(t, "Unit added", b.Toast())
}

func TestBuildingDetail_CreateUnitRejectsBadRent(t *testing.T) {
	h, b := buildingDetail(t)

	require.NoError(t, b.Submit("#form-add-unit", url.Values{"unit_number": {"2A"}, "rent": {"lots"}}))

	assert.Zero(t, h.be.count("POST /units"))
	assert.Contains(t, b.Toast(), "whole number")
}

func TestBuildingDetail_SendInviteShowsLink(t *testing.T) {
	h, b := buildingDetail(t)
	h.be.ok("POST /invitations", `{"id":"i1","unit_id":"u2","token":"tok9","status":"pending"}`)

	require.NoError(t, b.Submit("#form-invite-tenant", url.Values{"unit_id": {"u2"}, "phone": {"8012345678"}}))

	assert.JSONEq(t, `{"unit_id":"u2","phone":"+2348012345678"}`, h.be.body("POST /invitations"))
	assert.Equal(t, "#/invite/tok9", b.Find("#invite-link").Text())
	assert.Equal(t, "Invite sent successfully!", b.Toast())
}

func TestPayments_FilterUsesCachedList(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /payments", `[
		{"id":"p1","amount":25000000,"status":"successful","period":"Jan 2026","tenant_name":"Chidi Okafor","building_name":"Palm Court"},
		{"id":"p2","amount":25000000,"status":"pending","period":"Feb 2026","tenant_name":"Bola Ade","building_name":"Palm Court"},
		{"id":"p3","amount":30000000,"status":"failed","period":"Feb 2026","tenant_name":"Emeka Eze","building_name":"Ocean View"}]`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/payments")
	require.Equal(t, 3, b.Find("#payments-body tr").Length())

	require.NoError(t, b.Click("#filter-pending"))
	assert.Equal(t, 1, b.Find("#payments-body tr").Length())
	b.AssertText("Bola Ade")
	assert.Equal(t, "true", b.Find("#filter-pending").AttrOr("aria-pressed", ""))

	require.NoError(t, b.Click("#filter-all"))
	assert.Equal(t, 3, b.Find("#payments-body tr").Length())

	assert.Equal(t, 1, h.be.count("GET /payments"))
}

func TestPayments_SubtitleByRole(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /payments", `[]`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")

	b.Visit("#/payments")

	assert.Equal(t, "Your rent payment history.", b.Find("#payments-subtitle").Text())
	b.AssertText("No payments found")
}

const maintenanceJSON = `[{"id":"m1","title":"Leaking tap","description":"Kitchen sink","priority":"high","status":"open",
	"created_at":"2026-03-05T08:00:00Z","profiles":{"full_name":"Chidi Okafor"},"units":{"unit_number":"1A"},"buildings":{"name":"Palm Court"}}]`

func TestMaintenance_LandlordUpdatesStatus(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /maintenance", maintenanceJSON)
	h.be.ok("PUT /maintenance/m1/status", `{"id":"m1","status":"resolved"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/maintenance")

	b.AssertText("Leaking tap")
	b.AssertText("2h ago")
	assert.Equal(t, 0, b.Find("#new-request").Length())
	assert.Equal(t, "open", b.Find("#status-m1 option[selected]").AttrOr("value", ""))

	require.NoError(t, b.Act("update-maintenance-status", url.Values{"id": {"m1"}, "status": {"resolved"}}))

	assert.JSONEq(t, `{"status":"resolved"}`, h.be.body("PUT /maintenance/m1/status"))
	assert.Equal(t, 2, h.be.count("GET /maintenance"))
	assert.Equal(t, "Status updated", b.Toast())
}

func TestMaintenance_TenantCreatesRequest(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /maintenance", `[]`)
	h.be.ok("POST /maintenance", `{"id":"m2","title":"Broken lock","status":"open"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")
	b.Visit("#/maintenance")
	b.AssertText("No maintenance requests")

	require.NoError(t, b.Submit("#form-new-request", url.Values{"title": {"Broken lock"}, "description": {"Front door"}}))

	assert.JSONEq(t, `{"title":"Broken lock","description":"Front door","priority":"medium"}`, h.be.body("POST /maintenance"))
	assert.Equal(t, 2, h.be.count("GET /maintenance"))
}

func TestDocuments_ListAndUpload(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /documents", `[{"id":"d1","name":"Lease 2026","type":"lease","file_url":"https://files.example.com/lease.pdf","file_size":1536,"created_at":"2026-01-10T09:00:00Z"}]`)
	h.be.ok("POST /documents", `{"id":"d2","name":"Notice","file_url":"https://files.example.com/n.pdf"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleLandlord, "Ada Obi")
	b.Visit("#/documents")

	b.AssertText("Lease 2026")
	b.AssertText("1.5 KB")
	b.AssertText("Jan 10, 2026")
	assert.Equal(t, "https://files.example.com/lease.pdf", b.Find("#documents-body a").AttrOr("href", ""))

	require.NoError(t, b.Submit("#form-upload-document", url.Values{
		"name":     {"Notice"},
		"type":     {"notice"},
		"file_url": {"https://files.example.com/n.pdf"},
	}))

	assert.Equal(t, "https://files.example.com/n.pdf", h.be.query("POST /documents").Get("file_url"))
	assert.JSONEq(t, `{"name":"Notice","type":"notice"}`, h.be.body("POST /documents"))
	assert.Equal(t, 2, h.be.count("GET /documents"))
}

func TestTenantDashboard(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")

	b.Visit("#/tenant")

	assert.Equal(t, "Chidi", b.Find("#tenant-dash-name").Text())
	assert.Equal(t, "Palm Court", b.Find("#tenant-building").Text())
	assert.Equal(t, "4B", b.Find("#tenant-unit").Text())
	assert.Equal(t, "₦500,000.00", statValue(b, "tenant-stats", "Total Paid"))
	assert.Equal(t, "Mar 2026", statValue(b, "tenant-stats", "Current Period"))
	assert.Equal(t, "Tenant Portal", b.Find("#topbar-role").Text())
}

func TestTenantDashboard_NoUnit(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", `{"profile":{"id":"u-tenant","role":"tenant","full_name":"Chidi Okafor"},"unit":null,"building":null,"total_paid":0}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")

	b.Visit("#/tenant")

	assert.Equal(t, noUnitHint, b.Find("#tenant-main").Text())
}

func TestPayRent_CheckoutRedirectsToPaystack(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	h.be.ok("POST /payments/initialize", `{"authorization_url":"https://checkout.paystack.com/abc","reference":"ref-1"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")
	b.Visit("#/pay-rent")

	assert.Equal(t, "Palm Court", b.Find("#pay-building").Text())
	assert.Equal(t, "Mar 2026", b.Find("#pay-period").Text())
	assert.Equal(t, "₦250,000.00", b.Find("#pay-amount").Text())

	require.NoError(t, b.Click("#checkout"))

	assert.JSONEq(t, `{"unit_id":"u7","period":"Mar 2026"}`, h.be.body("POST /payments/initialize"))
	assert.Equal(t, "https://checkout.paystack.com/abc", b.Redirected())
}

func TestPayRent_CheckoutWithoutURLShowsReference(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	h.be.ok("POST /payments/initialize", `{"authorization_url":"","reference":"ref-2"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")
	b.Visit("#/pay-rent")

	require.NoError(t, b.Click("#checkout"))

	assert.Empty(t, b.Redirected())
	assert.Contains(t, b.Toast(), "ref-2")
}

func TestPayRent_CheckoutFailureToasts(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	h.be.on("POST /payments/initialize", http.StatusBadGateway, `{"error":"Payment provider unavailable"}`)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")
	b.Visit("#/pay-rent")

	err := b.Click("#checkout")

	assert.Error(t, err)
	assert.Equal(t, "Payment provider unavailable", b.Toast())
	b.AssertHash("#/pay-rent")
}

func TestPaymentSuccess(t *testing.T) {
	h := newHarness(t)
	b := h.open(t)
	h.signIn(t, b, portal.RoleTenant, "Chidi Okafor")

	b.Visit("#/payment-success?amount=25000000&building=Palm+Court")

	assert.Equal(t, "₦250,000.00", b.Find("#receipt-amount").Text())
	assert.Equal(t, "Palm Court", b.Find("#receipt-building").Text())
	assert.Equal(t, "Monthly Rent", b.Find("#receipt-type").Text())
	assert.Equal(t, "TXN-"+strconv.FormatInt(testNow.UnixMilli(), 10), b.Find("#receipt-reference").Text())
	assert.Equal(t, "Mar 5, 2026", b.Find("#receipt-date").Text())
}

func TestInvite_ShowsInvitationAndAccepts(t *testing.T) {
	h := newHarness(t)
	h.be.ok("GET /invitations/verify", `{"id":"i1","token":"tok9","unit_id":"u2","building_name":"Palm Court","building_address":"Lekki","unit_number":"1B","rent_amount":30000000}`)
	h.be.ok("POST /auth/accept-invite", `{"access_token":"tok3","user":{"id":"t2","role":"tenant","full_name":"Bola Ade"}}`)
	h.be.ok("GET /dashboard/tenant", tenantDashboardJSON)
	b := h.open(t).Visit("#/invite/tok9")

	assert.Equal(t, "tok9", h.be.query("GET /invitations/verify").Get("token"))
	assert.Equal(t, "Palm Court", b.Find("#invite-building").Text())
	assert.Equal(t, "₦300,000", b.Find("#invite-rent").Text())

	require.NoError(t, b.Submit("#invite-accept-form", url.Values{
		"full_name": {"Bola Ade"},
		"email":     {"bola@example.com"},
		"password":  {"secret"},
		"phone":     {"8098765432"},
	}))

	assert.JSONEq(t, `{"token":"tok9","full_name":"Bola Ade","email":"bola@example.com","password":"secret","phone":"+2348098765432"}`,
		h.be.body("POST /auth/accept-invite"))
	b.AssertHash("#/tenant")
	tok, _ := h.token(t, b)
	assert.Equal(t, "tok3", tok)
}

func TestInvite_Invalid(t *testing.T) {
	h := newHarness(t)
	h.be.on("GET /invitations/verify", http.StatusNotFound, `{"error":"Invitation not found"}`)
	b := h.open(t).Visit("#/invite/bogus")

	assert.Equal(t, "This invitation is invalid or has expired", b.Find("#invite-property").Text())
}

func TestWithPrefix(t *testing.T) {
	assert.Equal(t, "", withPrefix(" "))
	assert.Equal(t, "+2348012345678", withPrefix("8012345678"))
	assert.Equal(t, "+447700900000", withPrefix("+447700900000"))
}
