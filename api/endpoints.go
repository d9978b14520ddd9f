package api

import (
	"context"
	"net/http"
	"net/url"
)

// Auth

func (c *Client) Signup(ctx context.Context, body SignupRequest) (AuthResponse, error) {
	return call[AuthResponse](ctx, c, "signup", http.MethodPost, "/auth/signup", body, false)
}

func (c *Client) Login(ctx context.Context, body LoginRequest) (AuthResponse, error) {
	return call[AuthResponse](ctx, c, "login", http.MethodPost, "/auth/login", body, false)
}

func (c *Client) AcceptInvite(ctx context.Context, body AcceptInviteRequest) (AuthResponse, error) {
	return call[AuthResponse](ctx, c, "acceptInvite", http.MethodPost, "/auth/accept-invite", body, false)
}

// Dashboards

func (c *Client) LandlordDashboard(ctx context.Context) (LandlordDashboard, error) {
	return call[LandlordDashboard](ctx, c, "landlordDashboard", http.MethodGet, "/dashboard/landlord", nil, true)
}

func (c *Client) TenantDashboard(ctx context.Context) (TenantDashboard, error) {
	return call[TenantDashboard](ctx, c, "tenantDashboard", http.MethodGet, "/dashboard/tenant", nil, true)
}

// Buildings and units

func (c *Client) ListBuildings(ctx context.Context) ([]Building, error) {
	return call[[]Building](ctx, c, "listBuildings", http.MethodGet, "/buildings", nil, true)
}

func (c *Client) GetBuilding(ctx context.Context, id string) (Building, error) {
	return call[Building](ctx, c, "getBuilding", http.MethodGet, "/buildings/"+id, nil, true)
}

func (c *Client) CreateBuilding(ctx context.Context, body CreateBuildingRequest) (Building, error) {
	return call[Building](ctx, c, "createBuilding", http.MethodPost, "/buildings", body, true)
}

func (c *Client) UpdateBuilding(ctx context.Context, id string, body UpdateBuildingRequest) (Building, error) {
	return call[Building](ctx, c, "updateBuilding", http.MethodPut, "/buildings/"+id, body, true)
}

func (c *Client) ListUnits(ctx context.Context, buildingID string) ([]UnitWithTenant, error) {
	return call[[]UnitWithTenant](ctx, c, "listUnits", http.MethodGet, "/buildings/"+buildingID+"/units", nil, true)
}

func (c *Client) CreateUnit(ctx context.Context, body CreateUnitRequest) (Unit, error) {
	return call[Unit](ctx, c, "createUnit", http.MethodPost, "/units", body, true)
}

// Payments

func (c *Client) InitializePayment(ctx context.Context, body InitializePaymentRequest) (InitializePaymentResponse, error) {
	return call[InitializePaymentResponse](ctx, c, "initializePayment", http.MethodPost, "/payments/initialize", body, true)
}

// ListPayments takes an already encoded query string, e.g. "status=pending".
func (c *Client) ListPayments(ctx context.Context, params string) ([]PaymentWithDetails, error) {
	path := "/payments"
	if params != "" {
		path += "?" + params
	}
	return call[[]PaymentWithDetails](ctx, c, "listPayments", http.MethodGet, path, nil, true)
}

// Invitations

func (c *Client) SendInvite(ctx context.Context, body SendInviteRequest) (Invitation, error) {
	return call[Invitation](ctx, c, "sendInvite", http.MethodPost, "/invitations", body, true)
}

func (c *Client) ListInvitations(ctx context.Context) ([]Invitation, error) {
	return call[[]Invitation](ctx, c, "listInvitations", http.MethodGet, "/invitations", nil, true)
}

func (c *Client) VerifyInvite(ctx context.Context, token string) (InvitationWithDetails, error) {
	return call[InvitationWithDetails](ctx, c, "verifyInvite", http.MethodGet, "/invitations/verify?token="+url.QueryEscape(token), nil, false)
}

// Maintenance

func (c *Client) CreateMaintenance(ctx context.Context, body CreateMaintenanceRequest) (MaintenanceRequest, error) {
	return call[MaintenanceRequest](ctx, c, "createMaintenance", http.MethodPost, "/maintenance", body, true)
}

func (c *Client) ListMaintenance(ctx context.Context) ([]MaintenanceRequest, error) {
	return call[[]MaintenanceRequest](ctx, c, "listMaintenance", http.MethodGet, "/maintenance", nil, true)
}

func (c *Client) UpdateMaintenanceStatus(ctx context.Context, id string, body UpdateMaintenanceStatusRequest) (MaintenanceRequest, error) {
	return call[MaintenanceRequest](ctx, c, "updateMaintenanceStatus", http.MethodPut, "/maintenance/"+id+"/status", body, true)
}

// Documents

func (c *Client) UploadDocument(ctx context.Context, body UploadDocumentRequest, fileURL string) (Document, error) {
	return call[Document](ctx, c, "uploadDocument", http.MethodPost, "/documents?file_url="+url.QueryEscape(fileURL), body, true)
}

func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	return call[[]Document](ctx, c, "listDocuments", http.MethodGet, "/documents", nil, true)
}
