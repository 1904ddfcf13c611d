package export

import (
	"strings"
	"time"

	"github.com/tidalsec/entradump/pkg/types"
)

// Fixed sign-in status strings; with a premium entitlement and recorded
// activity the timestamp itself is used.
const (
	SignInNone            = "No sign-in recorded"
	SignInRequiresPremium = "Requires Entra ID Premium (P1/P2)"
)

const listSeparator = "; "

// BuildRecord flattens one user and its enrichment results into an
// output row.
func BuildRecord(u types.User, hasPremium bool, mfa types.MFAInfo, groups types.GroupResult, licenses types.LicenseDetails) types.Record {
	r := types.Record{
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		Domain:            domainOf(u.UserPrincipalName),
		GivenName:         u.GivenName,
		Surname:           u.Surname,
		Mail:              u.Mail,
		JobTitle:          u.JobTitle,
		Department:        u.Department,
		CompanyName:       u.CompanyName,
		OfficeLocation:    u.OfficeLocation,
		City:              u.City,
		Country:           u.Country,
		UsageLocation:     u.UsageLocation,
		UserType:          u.UserType,
		AccountEnabled:    u.AccountEnabled,

		SignInStatus: signInStatus(u, hasPremium),
		Licensed:     len(u.AssignedLicenses) > 0,

		LicenseCount:     licenses.Count,
		Licenses:         strings.Join(licenses.Names, listSeparator),
		ServicePlanCount: len(licenses.ServicePlans),
		ServicePlans:     strings.Join(licenses.ServicePlans, listSeparator),

		GroupCount: groups.Count,
		Groups:     strings.Join(groups.Names, listSeparator),

		MFAStatus:              string(mfa.Status),
		MFADefaultMethod:       mfa.DefaultMethod,
		MFAEmail:               mfa.Email,
		MFAFido2:               mfa.Fido2,
		MFAAuthenticatorApp:    mfa.AuthenticatorApp,
		MFAAuthenticatorLite:   mfa.AuthenticatorLite,
		MFAPhone:               mfa.Phone,
		MFASoftwareOath:        mfa.SoftwareOath,
		MFATemporaryAccessPass: mfa.TemporaryAccessPass,
		MFAPlatformCredential:  mfa.PlatformCredential,
	}

	if u.CreatedDateTime != nil {
		r.CreatedDateTime = u.CreatedDateTime.Format(time.RFC3339)
	}
	if u.Manager != nil {
		r.ManagerDisplayName = u.Manager.DisplayName
		r.ManagerUserPrincipalName = u.Manager.UserPrincipalName
	}

	return r
}

func domainOf(principalName string) string {
	if i := strings.LastIndex(principalName, "@"); i >= 0 {
		return principalName[i+1:]
	}
	return ""
}

func signInStatus(u types.User, hasPremium bool) string {
	if !hasPremium {
		return SignInRequiresPremium
	}
	if u.LastSignIn == nil {
		return SignInNone
	}
	return u.LastSignIn.Format(time.RFC3339)
}
