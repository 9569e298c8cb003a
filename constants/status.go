package constants

import "time"

// Roles carried in the signed token
const (
	RoleStudent = "student"
	RoleVendor  = "vendor"
	RoleAdmin   = "admin"
)

// Cookie names per role
const (
	StudentCookie = "token"
	VendorCookie  = "vendor-token"
	AdminCookie   = "admin-token"
)

const (
	StudentTokenTTL = 7 * 24 * time.Hour
	VendorTokenTTL  = 7 * 24 * time.Hour
	AdminTokenTTL   = 7 * 24 * time.Hour
)

// gin context keys set by the auth middleware
const (
	CtxPrincipalID   = "principalID"
	CtxPrincipalRole = "principalRole"
	CtxSessionID     = "sessionId"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Room limits
const (
	MinSharing = 1
	MaxSharing = 7
)

// Cache keys
const (
	PublicPropertiesCachePrefix = "properties:"
	PublicPropertiesCacheTTL    = 5 * time.Minute
)

// PropertySequence is the counter name behind human readable property ids.
const PropertySequence = "property"

// MaxClaimAttempts bounds retries when a property save loses a version race.
const MaxClaimAttempts = 3
