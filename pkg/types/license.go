package types

// ServicePlan is one feature entitlement bundled inside a license SKU.
type ServicePlan struct {
	ID                 string
	Name               string
	ProvisioningStatus string
}

// SkuInfo describes one subscribed license SKU in the tenant.
type SkuInfo struct {
	SkuID        string
	PartNumber   string
	DisplayName  string
	ServicePlans []ServicePlan
}

// LicenseDetails is the per-user license derivation. Names and
// ServicePlans are deduplicated and sorted ascending; Count is the raw
// number of assignment entries, not deduplicated.
type LicenseDetails struct {
	Names        []string
	Count        int
	ServicePlans []string
}
