package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tidalsec/entradump/pkg/types"
)

func TestDomainOf(t *testing.T) {
	tests := []struct {
		principalName string
		want          string
	}{
		{"jane@contoso.com", "contoso.com"},
		{"no-at-sign", ""},
		{"", ""},
		{"o'brien@sub.contoso.com", "sub.contoso.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domainOf(tt.principalName), tt.principalName)
	}
}

func TestBuildRecordManagerAndLicensedFlag(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	u := types.User{
		DisplayName:       "Jane Doe",
		UserPrincipalName: "jane@contoso.com",
		AccountEnabled:    true,
		CreatedDateTime:   &created,
		Manager: &types.Manager{
			DisplayName:       "Max Mustermann",
			UserPrincipalName: "max@contoso.com",
		},
		AssignedLicenses: []types.AssignedLicense{{SkuID: "sku"}},
	}

	rec := BuildRecord(u, false, types.MFAInfo{Status: types.MFADisabled, DefaultMethod: "Not set"}, types.GroupResult{}, types.LicenseDetails{Count: 1, Names: []string{"A"}})

	assert.Equal(t, "contoso.com", rec.Domain)
	assert.Equal(t, "Max Mustermann", rec.ManagerDisplayName)
	assert.Equal(t, "max@contoso.com", rec.ManagerUserPrincipalName)
	assert.True(t, rec.Licensed)
	assert.Equal(t, created.Format(time.RFC3339), rec.CreatedDateTime)
	assert.Equal(t, "Disabled", rec.MFAStatus)
}

func TestBuildRecordNoManagerNoLicenses(t *testing.T) {
	u := types.User{UserPrincipalName: "solo@contoso.com"}

	rec := BuildRecord(u, true, types.MFAInfo{}, types.GroupResult{}, types.LicenseDetails{})

	assert.Empty(t, rec.ManagerDisplayName)
	assert.Empty(t, rec.ManagerUserPrincipalName)
	assert.False(t, rec.Licensed)
	assert.Equal(t, SignInNone, rec.SignInStatus)
}

func TestBuildRecordJoinsLists(t *testing.T) {
	u := types.User{UserPrincipalName: "jane@contoso.com"}
	groups := types.GroupResult{Names: []string{"Admins", "Developers"}, Count: 2}
	licenses := types.LicenseDetails{
		Names:        []string{"E3", "EMS"},
		Count:        2,
		ServicePlans: []string{"EXCHANGE", "SHAREPOINT"},
	}

	rec := BuildRecord(u, false, types.MFAInfo{}, groups, licenses)

	assert.Equal(t, "Admins; Developers", rec.Groups)
	assert.Equal(t, 2, rec.GroupCount)
	assert.Equal(t, "E3; EMS", rec.Licenses)
	assert.Equal(t, 2, rec.LicenseCount)
	assert.Equal(t, "EXCHANGE; SHAREPOINT", rec.ServicePlans)
	assert.Equal(t, 2, rec.ServicePlanCount)
}
