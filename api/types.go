package api

// Timestamps are kept as the backend sends them and parsed at display time
// with format.ParseTime, since rows from different tables use different layouts.

const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

type Profile struct {
	ID        string  `json:"id" validate:"required"`
	Role      string  `json:"role" validate:"required,oneof=landlord tenant"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type Building struct {
	ID         string  `json:"id" validate:"required"`
	LandlordID string  `json:"landlord_id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	TotalUnits int     `json:"total_units" validate:"gte=0"`
	PhotoURL   *string `json:"photo_url,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

type BuildingWithStats struct {
	Building
	OccupiedUnits  int   `json:"occupied_units"`
	VacantUnits    int   `json:"vacant_units"`
	TotalCollected int64 `json:"total_collected"`
	TotalPending   int64 `json:"total_pending"`
}

type Unit struct {
	ID         string  `json:"id" validate:"required"`
	BuildingID string  `json:"building_id"`
	TenantID   *string `json:"tenant_id,omitempty"`
	UnitNumber string  `json:"unit_number"`
	RentAmount int64   `json:"rent_amount"`
	LeaseStart *string `json:"lease_start,omitempty"`
	LeaseEnd   *string `json:"lease_end,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

// Occupied reports whether a tenant holds the unit.
func (u Unit) Occupied() bool {
	return u.Status == "occupied"
}

// ProfileRef, BuildingRef and UnitRef are the embedded relations the backend
// joins onto list rows.
type ProfileRef struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

type BuildingRef struct {
	Name string `json:"name"`
}

type UnitRef struct {
	UnitNumber string `json:"unit_number"`
}

type UnitWithTenant struct {
	Unit
	TenantName    *string     `json:"tenant_name,omitempty"`
	TenantEmail   *string     `json:"tenant_email,omitempty"`
	TenantPhone   *string     `json:"tenant_phone,omitempty"`
	PaymentStatus string      `json:"payment_status,omitempty"`
	Profiles      *ProfileRef `json:"profiles,omitempty"`
}

// Tenant returns the tenant's name from either the flat or the joined field.
func (u UnitWithTenant) Tenant() string {
	if u.TenantName != nil && *u.TenantName != "" {
		return *u.TenantName
	}
	if u.Profiles != nil {
		return u.Profiles.FullName
	}
	return ""
}

type Payment struct {
	ID                    string  `json:"id" validate:"required"`
	TenantID              string  `json:"tenant_id"`
	UnitID                string  `json:"unit_id"`
	BuildingID            string  `json:"building_id"`
	Amount                int64   `json:"amount"`
	Currency              string  `json:"currency"`
	Status                string  `json:"status"`
	PaymentMethod         *string `json:"payment_method,omitempty"`
	PaystackReference     *string `json:"paystack_reference,omitempty"`
	PaystackTransactionID *string `json:"paystack_transaction_id,omitempty"`
	Period                string  `json:"period"`
	PaidAt                *string `json:"paid_at,omitempty"`
	CreatedAt             string  `json:"created_at,omitempty"`
}

type PaymentWithDetails struct {
	Payment
	TenantName   string       `json:"tenant_name,omitempty"`
	BuildingName string       `json:"building_name,omitempty"`
	UnitNumber   string       `json:"unit_number,omitempty"`
	Profiles     *ProfileRef  `json:"profiles,omitempty"`
	Buildings    *BuildingRef `json:"buildings,omitempty"`
	Units        *UnitRef     `json:"units,omitempty"`
}

func (p PaymentWithDetails) Tenant() string {
	if p.TenantName == "" && p.Profiles != nil {
		return p.Profiles.FullName
	}
	return p.TenantName
}

func (p PaymentWithDetails) Building() string {
	if p.BuildingName == "" && p.Buildings != nil {
		return p.Buildings.Name
	}
	return p.BuildingName
}

func (p PaymentWithDetails) Unit() string {
	if p.UnitNumber == "" && p.Units != nil {
		return p.Units.UnitNumber
	}
	return p.UnitNumber
}

type Invitation struct {
	ID         string  `json:"id" validate:"required"`
	UnitID     string  `json:"unit_id"`
	LandlordID string  `json:"landlord_id"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Token      string  `json:"token" validate:"required"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at,omitempty"`
	ExpiresAt  string  `json:"expires_at,omitempty"`
}

type InvitationWithDetails struct {
	Invitation
	BuildingName    string  `json:"building_name"`
	BuildingAddress string  `json:"building_address"`
	BuildingPhoto   *string `json:"building_photo,omitempty"`
	UnitNumber      string  `json:"unit_number"`
	RentAmount      int64   `json:"rent_amount"`
}

type MaintenanceRequest struct {
	ID          string       `json:"id" validate:"required"`
	TenantID    string       `json:"tenant_id"`
	UnitID      string       `json:"unit_id"`
	BuildingID  string       `json:"building_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	Profiles    *ProfileRef  `json:"profiles,omitempty"`
	Units       *UnitRef     `json:"units,omitempty"`
	Buildings   *BuildingRef `json:"buildings,omitempty"`
}

type Document struct {
	ID         string  `json:"id" validate:"required"`
	UploadedBy string  `json:"uploaded_by"`
	BuildingID *string `json:"building_id,omitempty"`
	UnitID     *string `json:"unit_id,omitempty"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	FileURL    string  `json:"file_url" validate:"required"`
	FileSize   int64   `json:"file_size"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// AuthResponse is returned by signup, login and accept-invite.
type AuthResponse struct {
	AccessToken  string  `json:"access_token,omitempty" validate:"required_without=Token"`
	Token        string  `json:"token,omitempty"`
	RefreshToken string  `json:"refresh_token,omitempty"`
	User         Profile `json:"user"`
}

// BearerToken prefers access_token and falls back to token.
func (a AuthResponse) BearerToken() string {
	if a.AccessToken != "" {
		return a.AccessToken
	}
	return a.Token
}

type LandlordDashboard struct {
	TotalBuildings  int                  `json:"total_buildings"`
	TotalUnits      int                  `json:"total_units"`
	OccupiedUnits   int                  `json:"occupied_units"`
	TotalCollected  int64                `json:"total_collected"`
	TotalPending    int64                `json:"total_pending"`
	TotalOverdue    int64                `json:"total_overdue"`
	RecentPayments  []PaymentWithDetails `json:"recent_payments"`
	ActiveBuildings []BuildingWithStats  `json:"active_buildings"`
}

// TenantDashboard has nil Unit and Building until the tenant accepts an invitation.
type TenantDashboard struct {
	Profile     Profile   `json:"profile"`
	Unit        *Unit     `json:"unit"`
	Building    *Building `json:"building"`
	TotalPaid   int64     `json:"total_paid"`
	LastPayment *Payment  `json:"last_payment"`
	NextDueDate *string   `json:"next_due_date"`
	NextAmount  int64     `json:"next_amount"`
	Message     string    `json:"message,omitempty"`
}

type InitializePaymentResponse struct {
	AuthorizationURL string   `json:"authorization_url"`
	Reference        string   `json:"reference"`
	AccessCode       string   `json:"access_code,omitempty"`
	AmountNaira      float64  `json:"amount_naira,omitempty"`
	Payment          *Payment `json:"payment,omitempty"`
}

type SignupRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"full_name" form:"full_name"`
	Role     string `json:"role" form:"role"`
	Phone    string `json:"phone,omitempty" form:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token" form:"token"`
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone,omitempty" form:"phone"`
}

type CreateBuildingRequest struct {
	Name       string `json:"name" form:"name"`
	Address    string `json:"address" form:"address"`
	TotalUnits int    `json:"total_units" form:"total_units"`
	PhotoURL   string `json:"photo_url,omitempty" form:"photo_url"`
}

type UpdateBuildingRequest struct {
	Name       *string `json:"name,omitempty"`
	Address    *string `json:"address,omitempty"`
	TotalUnits *int    `json:"total_units,omitempty"`
	PhotoURL   *string `json:"photo_url,omitempty"`
}

type CreateUnitRequest struct {
	BuildingID string `json:"building_id" form:"building_id"`
	UnitNumber string `json:"unit_number" form:"unit_number"`
	RentAmount int64  `json:"rent_amount" form:"-"`
	LeaseStart string `json:"lease_start,omitempty" form:"lease_start"`
	LeaseEnd   string `json:"lease_end,omitempty" form:"lease_end"`
}

type SendInviteRequest struct {
	UnitID string `json:"unit_id" form:"unit_id"`
	Email  string `json:"email,omitempty" form:"email"`
	Phone  string `json:"phone,omitempty" form:"phone"`
}

type InitializePaymentRequest struct {
	UnitID string `json:"unit_id"`
	Period string `json:"period"`
}

type CreateMaintenanceRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Priority    string `json:"priority,omitempty" form:"priority"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" form:"status"`
}

type UploadDocumentRequest struct {
	BuildingID string `json:"building_id,omitempty" form:"building_id"`
	UnitID     string `json:"unit_id,omitempty" form:"unit_id"`
	Name       string `json:"name" form:"name"`
	Type       string `json:"type" form:"type"`
}
