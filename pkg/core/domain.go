// Package core holds the marketplace domain entities and the ports
// (Backend, SessionStore, Watchable) that adapters implement.
package core

import "time"

// Signal is a named channel on the event bus. Components subscribe to
// signals instead of polling collections.
type Signal string

const (
	// SignalStorageUpdated fires after any collection mutation.
	SignalStorageUpdated Signal = "storage-updated"
	// SignalMarketUpdated fires after a marketItems mutation.
	SignalMarketUpdated Signal = "market-updated"
	// SignalExhibitionUpdated fires after an exhibitions mutation.
	SignalExhibitionUpdated Signal = "exhibition-updated"
	// SignalNotificationsUpdated fires whenever the unread count changes.
	// Its detail payload is a NotificationsDetail.
	SignalNotificationsUpdated Signal = "notifications-updated"
)

// Collection keys as they appear in the persisted profile.
const (
	KeyProducts            = "products"
	KeyMarketItems         = "marketItems"
	KeyPartners            = "partners"
	KeyShippingOrders      = "shippingOrders"
	KeyMarketOrders        = "marketOrders"
	KeySupplierLocalOrders = "supplier_local_orders"
)

// ExhibitionsPrefix namespaces the per-supplier exhibition collections.
const ExhibitionsPrefix = "exhibitions_"

// ExhibitionsKey returns the per-supplier exhibitions collection key.
func ExhibitionsKey(supplierID string) string {
	return ExhibitionsPrefix + supplierID
}

// StorageDetail is the payload published with SignalStorageUpdated.
type StorageDetail struct {
	Key string `json:"key"`
}

// NotificationsDetail is the payload published with SignalNotificationsUpdated.
type NotificationsDetail struct {
	UnreadCount int `json:"unreadCount"`
}

// Meta carries the identity fields shared by every stored entity.
// The ID and creation timestamp are assigned once by the repository
// and are immutable afterwards.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID implements Record.
func (m *Meta) RecordID() string { return m.ID }

// RecordCreatedAt implements Record.
func (m *Meta) RecordCreatedAt() time.Time { return m.CreatedAt }

// Stamp implements Record. Repositories call it on creation and to
// restore identity after an update mutator ran.
func (m *Meta) Stamp(id string, createdAt time.Time) {
	m.ID = id
	m.CreatedAt = createdAt
}

// Record is the contract every collection entity satisfies (via Meta).
type Record interface {
	RecordID() string
	RecordCreatedAt() time.Time
	Stamp(id string, createdAt time.Time)
}

// UserRole identifies which dashboard the current user is operating.
type UserRole string

const (
	RoleMerchant UserRole = "merchant"
	RoleSupplier UserRole = "supplier"
	RoleShipping UserRole = "shipping"
	RoleCustomer UserRole = "customer"
)

// ProductStatus is the publication state of a product or market item.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
	StatusDraft    ProductStatus = "draft"
)

// Product is an item in a merchant's or supplier's own catalog.
type Product struct {
	Meta
	Name        string        `json:"name" validate:"required"`
	Price       float64       `json:"price" validate:"gte=0"`
	Stock       int           `json:"stock" validate:"gte=0"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Images      []string      `json:"images"`
	SKU         string        `json:"sku"`
	Weight      string        `json:"weight"`
	Dimensions  string        `json:"dimensions"`
	Status      ProductStatus `json:"status" validate:"omitempty,oneof=active inactive draft"`
}

// MarketItemType distinguishes catalog products from time-limited offers.
type MarketItemType string

const (
	MarketProduct MarketItemType = "product"
	MarketOffer   MarketItemType = "offer"
)

// Provider is the embedded identity of whoever published a market item.
// It is stamped by the repository from the caller's auth context.
type Provider struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required,oneof=merchant supplier shipping_company"`
	Rating   float64 `json:"rating,omitempty"`
	Verified bool    `json:"verified,omitempty"`
}

// MarketItem is the normalized, publishable representation of a product,
// shipping order or exhibition item exposed to the shared marketplace feed.
type MarketItem struct {
	Meta
	Name        string         `json:"name" validate:"required"`
	Price       float64        `json:"price" validate:"gte=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	SKU         string         `json:"sku"`
	Status      ProductStatus  `json:"status" validate:"omitempty,oneof=active inactive draft"`
	Type        MarketItemType `json:"type" validate:"required,oneof=product offer"`
	Provider    Provider       `json:"provider"`
	// Metadata links the item back to its source entity (e.g. the
	// exhibition it was published from). Free-form by design.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartnerType is the canonical set of partner kinds.
type PartnerType string

const (
	PartnerRetailer PartnerType = "retailer"
	PartnerSupplier PartnerType = "supplier"
	PartnerShipping PartnerType = "shipping_company"
)

// Partner is a business contact created by a supplier or merchant.
type Partner struct {
	Meta
	Name  string      `json:"name" validate:"required"`
	Type  PartnerType `json:"type" validate:"required,oneof=retailer supplier shipping_company"`
	Email string      `json:"email" validate:"omitempty,email"`
	Phone string      `json:"phone"`
	City  string      `json:"city"`
}

// OrderItem is one line of a shipping order.
type OrderItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

// ShippingOrderStatus tracks a shipment through its lifecycle.
type ShippingOrderStatus string

const (
	ShippingPending   ShippingOrderStatus = "pending"
	ShippingAssigned  ShippingOrderStatus = "assigned"
	ShippingPickedUp  ShippingOrderStatus = "picked_up"
	ShippingInTransit ShippingOrderStatus = "in_transit"
	ShippingDelivered ShippingOrderStatus = "delivered"
	ShippingCancelled ShippingOrderStatus = "cancelled"
)

// PublishScope controls who can see an order published to the marketplace.
type PublishScope string

const (
	ScopePublic  PublishScope = "public"
	ScopePrivate PublishScope = "private"
)

// ShippingOrder is a delivery request, optionally mirrored to the
// marketplace feed. Value is derived from Items by the repository.
type ShippingOrder struct {
	Meta
	PickupAddress        string              `json:"pickupAddress" validate:"required"`
	Destination          string              `json:"destination" validate:"required"`
	ContactPhone         string              `json:"contactPhone"`
	Items                []OrderItem         `json:"items" validate:"min=1,dive"`
	Value                float64             `json:"value"`
	CashOnDelivery       bool                `json:"cashOnDelivery"`
	CODAmount            float64             `json:"codAmount" validate:"gte=0"`
	PublishToMarketplace bool                `json:"publishToMarketplace"`
	PublishScope         PublishScope        `json:"publishScope" validate:"omitempty,oneof=public private"`
	Status               ShippingOrderStatus `json:"status" validate:"omitempty,oneof=pending assigned picked_up in_transit delivered cancelled"`
}

// Visibility controls who can browse an exhibition.
type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilitySubscribers Visibility = "subscribers"
	VisibilityPrivate     Visibility = "private"
)

// ExhibitionItem is a product inside a supplier's exhibition. Discount,
// when non-zero, is a percentage in [0,100].
type ExhibitionItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Discount    float64  `json:"discount,omitempty" validate:"gte=0,lte=100"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// FinalPrice returns the item price after its discount.
func (i ExhibitionItem) FinalPrice() float64 {
	if i.Discount > 0 {
		return i.Price * (1 - i.Discount/100)
	}
	return i.Price
}

// ExhibitionStats are monotonically non-decreasing engagement counters.
type ExhibitionStats struct {
	Views       int `json:"views"`
	Likes       int `json:"likes"`
	Shares      int `json:"shares"`
	Subscribers int `json:"subscribers"`
}

// ExhibitionSettings are per-exhibition feature toggles.
type ExhibitionSettings struct {
	AllowComments       bool `json:"allowComments"`
	ShowPrices          bool `json:"showPrices"`
	EnableOrders        bool `json:"enableOrders"`
	RequireSubscription bool `json:"requireSubscription"`
}

// Exhibition is a supplier's storefront. Exactly one exists per supplier
// at a time.
type Exhibition struct {
	Meta
	SupplierID   string             `json:"supplierId" validate:"required"`
	SupplierName string             `json:"supplierName"`
	Title        string             `json:"title" validate:"required"`
	Description  string             `json:"description"`
	Banner       string             `json:"banner"`
	Visibility   Visibility         `json:"visibility" validate:"omitempty,oneof=public subscribers private"`
	Items        []ExhibitionItem   `json:"items" validate:"dive"`
	Stats        ExhibitionStats    `json:"stats"`
	Settings     ExhibitionSettings `json:"settings"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Priority ranks a notification for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Action is a deferred callback attached to a notification or toast.
// The callback is never serialized.
type Action struct {
	Label string `json:"label"`
	Run   func() `json:"-"`
}

// Notification is an entry in the persistent alert list. Its only state
// transition is unread -> read.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Priority  Priority  `json:"priority"`
	UserType  UserRole  `json:"userType"`
	Action    *Action   `json:"actionButton,omitempty"`
}

// Toast is an ephemeral auto-expiring message. Duration zero means the
// toast persists until explicitly removed.
type Toast struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	Action   *Action       `json:"action,omitempty"`
}

// ChangeOp classifies an out-of-process change observed by a Watchable
// backend.
type ChangeOp string

const (
	ChangeModify ChangeOp = "MODIFY"
	ChangeDelete ChangeOp = "DELETE"
)

// ChangeEvent reports that a collection key was modified outside this
// process (the cross-tab storage event analog).
type ChangeEvent struct {
	Op        ChangeOp
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e ChangeEvent) String() string {
	return string(e.Op) + " " + e.Key
}
