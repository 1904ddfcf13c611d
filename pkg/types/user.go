package types

import "time"

// Manager holds the resolved manager reference returned inline with a user.
type Manager struct {
	DisplayName       string
	UserPrincipalName string
}

// AssignedLicense is one license assignment on a user: the SKU plus the
// service plans disabled for this particular assignment.
type AssignedLicense struct {
	SkuID         string
	DisabledPlans []string
}

// User is the narrowed directory user as consumed by the export pipeline.
// Built once at the Graph boundary and never mutated afterwards.
type User struct {
	ID                string
	DisplayName       string
	UserPrincipalName string
	GivenName         string
	Surname           string
	Mail              string
	JobTitle          string
	Department        string
	CompanyName       string
	OfficeLocation    string
	City              string
	Country           string
	UsageLocation     string
	UserType          string
	AccountEnabled    bool
	CreatedDateTime   *time.Time

	// LastSignIn is only populated when the tenant has a premium
	// entitlement; the listing call does not request it otherwise.
	LastSignIn *time.Time

	Manager          *Manager
	AssignedLicenses []AssignedLicense
}
