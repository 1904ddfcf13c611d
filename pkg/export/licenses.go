package export

import (
	"sort"

	"github.com/tidalsec/entradump/pkg/types"
)

// UserLicenseDetails resolves one user's license assignments against the
// catalog. Pure: the same input and catalog state always yields the same
// result, and the catalog is never mutated.
func (c *Catalog) UserLicenseDetails(assigned []types.AssignedLicense) types.LicenseDetails {
	details := types.LicenseDetails{Count: len(assigned)}

	nameSet := make(map[string]bool)
	planSet := make(map[string]bool)

	for _, assignment := range assigned {
		sku, known := c.skus[assignment.SkuID]
		if !known {
			// Unknown SKUs keep their raw identifier.
			nameSet[assignment.SkuID] = true
			continue
		}
		nameSet[sku.DisplayName] = true

		disabled := make(map[string]bool, len(assignment.DisabledPlans))
		for _, id := range assignment.DisabledPlans {
			disabled[id] = true
		}

		for _, plan := range sku.ServicePlans {
			if disabled[plan.ID] {
				continue
			}
			if plan.ProvisioningStatus != "Success" {
				continue
			}
			if plan.Name != "" {
				planSet[plan.Name] = true
			}
		}
	}

	details.Names = sortedKeys(nameSet)
	details.ServicePlans = sortedKeys(planSet)
	return details
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
