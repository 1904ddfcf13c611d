package types

import "strconv"

// Record is one flat output row: the user's profile fields plus every
// enrichment result, in the shape the CSV sink writes.
type Record struct {
	DisplayName       string
	UserPrincipalName string
	Domain            string
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
	CreatedDateTime   string

	ManagerDisplayName       string
	ManagerUserPrincipalName string

	SignInStatus string

	Licensed         bool
	LicenseCount     int
	Licenses         string
	ServicePlanCount int
	ServicePlans     string

	GroupCount int
	Groups     string

	MFAStatus              string
	MFADefaultMethod       string
	MFAEmail               bool
	MFAFido2               bool
	MFAAuthenticatorApp    bool
	MFAAuthenticatorLite   bool
	MFAPhone               bool
	MFASoftwareOath        bool
	MFATemporaryAccessPass bool
	MFAPlatformCredential  bool
}

// RecordHeader returns the CSV column set, in row order.
func RecordHeader() []string {
	return []string{
		"DisplayName",
		"UserPrincipalName",
		"Domain",
		"GivenName",
		"Surname",
		"Mail",
		"JobTitle",
		"Department",
		"CompanyName",
		"OfficeLocation",
		"City",
		"Country",
		"UsageLocation",
		"UserType",
		"AccountEnabled",
		"CreatedDateTime",
		"ManagerDisplayName",
		"ManagerUserPrincipalName",
		"LastSignIn",
		"Licensed",
		"LicenseCount",
		"Licenses",
		"ServicePlanCount",
		"ServicePlans",
		"GroupCount",
		"Groups",
		"MFAStatus",
		"MFADefaultMethod",
		"MFAEmail",
		"MFAFido2",
		"MFAAuthenticatorApp",
		"MFAAuthenticatorLite",
		"MFAPhone",
		"MFASoftwareOath",
		"MFATemporaryAccessPass",
		"MFAPlatformCredential",
	}
}

// Row renders the record as one CSV row matching RecordHeader.
func (r Record) Row() []string {
	return []string{
		r.DisplayName,
		r.UserPrincipalName,
		r.Domain,
		r.GivenName,
		r.Surname,
		r.Mail,
		r.JobTitle,
		r.Department,
		r.CompanyName,
		r.OfficeLocation,
		r.City,
		r.Country,
		r.UsageLocation,
		r.UserType,
		strconv.FormatBool(r.AccountEnabled),
		r.CreatedDateTime,
		r.ManagerDisplayName,
		r.ManagerUserPrincipalName,
		r.SignInStatus,
		yesNo(r.Licensed),
		strconv.Itoa(r.LicenseCount),
		r.Licenses,
		strconv.Itoa(r.ServicePlanCount),
		r.ServicePlans,
		strconv.Itoa(r.GroupCount),
		r.Groups,
		r.MFAStatus,
		r.MFADefaultMethod,
		strconv.FormatBool(r.MFAEmail),
		strconv.FormatBool(r.MFAFido2),
		strconv.FormatBool(r.MFAAuthenticatorApp),
		strconv.FormatBool(r.MFAAuthenticatorLite),
		strconv.FormatBool(r.MFAPhone),
		strconv.FormatBool(r.MFASoftwareOath),
		strconv.FormatBool(r.MFATemporaryAccessPass),
		strconv.FormatBool(r.MFAPlatformCredential),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
