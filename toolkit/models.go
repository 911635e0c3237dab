package toolkit

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Endpoint paths of the storefront backend, relative to the base URL.
const (
	AdminLogin           = "/auth/admins/signin"
	SellerSignup         = "/auth/sellers/signup"
	SellerSignin         = "/auth/sellers/signin"
	SellerSigninStores   = "/auth/sellers/signin/stores" // + /{storeId}
	Admins               = "/admins"
	SuperAdminCreate     = "/admins/super"
	CurrentAdmin         = "/admins/current"
	CurrentAdminPassword = "/admins/current/password"
	CurrentSeller        = "/sellers/current"
)

// Permission values accepted by the backend validator. The sentinel "all"
// appears in the validator's allowed list but is rejected as a literal grant.
const (
	PermAll                    = "all"
	PermAdminsRead             = "admins_read"
	PermAdminsWrite            = "admins_write"
	PermSellersRead            = "sellers_read"
	PermSellersWrite           = "sellers_write"
	PermInventoryProductsRead  = "inventory_products_read"
	PermInventoryProductsWrite = "inventory_products_write"
	PermCatalogProductsRead    = "catalog_products_read"
	PermCatalogProductsWrite   = "catalog_products_write"
	PermProductsRead           = "products_read"
	PermProductsWrite          = "products_write"
	PermOrdersRead             = "orders_read"
	PermOrdersWrite            = "orders_write"
	PermStoresRead             = "stores_read"
	PermStoresWrite            = "stores_write"
	PermFilesRead              = "files_read"
	PermFilesWrite             = "files_write"
	PermTransactionsRead       = "transactions_read"
	PermAnalyticsRead          = "analytics_read"
	PermAnalyticsWrite         = "analytics_write"
	PermFinanceRead            = "finance_read"
	PermFinanceWrite           = "finance_write"
	PermSettingsRead           = "settings_read"
	PermSettingsWrite          = "settings_write"
)

// AllowedPermissions is the validator's allowed-values list in the order the
// backend embeds it inside validation messages.
var AllowedPermissions = []string{
	PermAll,
	PermAdminsRead, PermAdminsWrite,
	PermSellersRead, PermSellersWrite,
	PermInventoryProductsRead, PermInventoryProductsWrite,
	PermCatalogProductsRead, PermCatalogProductsWrite,
	PermProductsRead, PermProductsWrite,
	PermOrdersRead, PermOrdersWrite,
	PermStoresRead, PermStoresWrite,
	PermFilesRead, PermFilesWrite,
	PermTransactionsRead,
	PermAnalyticsRead, PermAnalyticsWrite,
	PermFinanceRead, PermFinanceWrite,
	PermSettingsRead, PermSettingsWrite,
}

// Messages is the "message" field of the error envelope. The backend sends a
// bare string for business-rule violations and an array of strings when the
// validator reports per-field failures; both wire shapes are kept apart so
// assertions can tell them apart.
type Messages struct {
	One   string   // set when the wire value was a bare string
	Many  []string // set when the wire value was an array
	Array bool
}

func (m *Messages) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		m.One = one
		m.Many = nil
		m.Array = false
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("message is neither string nor []string: %w", err)
	}
	m.One = ""
	m.Many = many
	m.Array = true
	return nil
}

func (m Messages) MarshalJSON() ([]byte, error) {
	if m.Array {
		return json.Marshal(m.Many)
	}
	return json.Marshal(m.One)
}

// All returns the message values regardless of wire shape.
func (m Messages) All() []string {
	if m.Array {
		return m.Many
	}
	if m.One == "" {
		return nil
	}
	return []string{m.One}
}

// ErrorEnvelope is the uniform error body returned on every non-2xx response.
type ErrorEnvelope struct {
	Message    Messages `json:"message"`
	Error      string   `json:"error"`
	StatusCode int      `json:"statusCode"`
}

// TokenPair is the success body of every signin endpoint.
type TokenPair struct {
	AccessToken string `json:"accessToken"`
	SearchToken string `json:"searchToken"`
}

// Credentials is a login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminPayload is the admin-creation body used by fixture commands.
type AdminPayload struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Designation string   `json:"designation"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"isActive"`
}

// Admin is the backend's admin record as returned by create/update/read.
type Admin struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Designation string   `json:"designation"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`

	// AccessToken and Password are not part of the wire record; fixture
	// commands attach them so callers can re-authenticate as the created
	// admin.
	AccessToken string `json:"-"`
	Password    string `json:"-"`
}

// Seller is the backend's seller record.
type Seller struct {
	ID                string        `json:"id"`
	FirstName         string        `json:"firstName"`
	LastName          string        `json:"lastName"`
	Email             string        `json:"email"`
	IsProfileComplete bool          `json:"isProfileComplete"`
	IsActive          bool          `json:"isActive"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
	ProfilePhoto      *ProfilePhoto `json:"profilePhoto,omitempty"`
	Stores            []Store       `json:"stores,omitempty"`
}

// Store is a store a seller has access to.
type Store struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ProfilePhoto is the optional photo object on a seller record.
type ProfilePhoto struct {
	ID        string                  `json:"id"`
	URL       string                  `json:"url"`
	CreatedAt string                  `json:"createdAt"`
	UpdatedAt string                  `json:"updatedAt"`
	Variants  map[string]PhotoVariant `json:"variants,omitempty"`
}

// PhotoVariant is one sized rendition of a profile photo.
type PhotoVariant struct {
	URL string `json:"url"`
}
