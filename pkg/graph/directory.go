package graph

import (
	"context"
	"fmt"

	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/tidalsec/entradump/pkg/types"
)

// DirectoryClient wraps the Graph SDK for the directory reads the export
// needs: the paged user listing, per-user group membership, and the
// tenant's subscribed SKUs.
type DirectoryClient struct {
	client *msgraphsdk.GraphServiceClient
	retry  RetryConfig
}

func NewDirectoryClient(client *msgraphsdk.GraphServiceClient, retry RetryConfig) *DirectoryClient {
	return &DirectoryClient{
		client: client,
		retry:  retry,
	}
}

var userSelectFields = []string{
	"id", "displayName", "userPrincipalName", "givenName", "surname",
	"mail", "jobTitle", "department", "companyName", "officeLocation",
	"city", "country", "usageLocation", "userType", "accountEnabled",
	"createdDateTime", "assignedLicenses",
}

// ListUsers pages through every user in the tenant. signInActivity is
// requested only when the tenant is licensed for it; asking without the
// entitlement fails the whole listing call.
func (c *DirectoryClient) ListUsers(ctx context.Context, includeSignInActivity bool) ([]types.User, error) {
	selectFields := userSelectFields
	if includeSignInActivity {
		selectFields = append(append([]string{}, userSelectFields...), "signInActivity")
	}

	requestConfig := &users.UsersRequestBuilderGetRequestConfiguration{
		QueryParameters: &users.UsersRequestBuilderGetQueryParameters{
			Select: selectFields,
			Expand: []string{"manager($select=displayName,userPrincipalName)"},
			Top:    int32Ptr(999), // Max page size
		},
	}

	result, err := Retry(ctx, c.retry, func(ctx context.Context) (models.UserCollectionResponseable, error) {
		return c.client.Users().Get(ctx, requestConfig)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	pageIterator, err := msgraphcore.NewPageIterator[models.Userable](result, c.client.GetAdapter(), models.CreateUserCollectionResponseFromDiscriminatorValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create page iterator: %w", err)
	}

	var out []types.User
	err = pageIterator.Iterate(ctx, func(user models.Userable) bool {
		out = append(out, narrowUser(user))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return out, nil
}

// narrowUser converts the SDK's loosely-typed user model into the flat
// domain type right at the boundary.
func narrowUser(u models.Userable) types.User {
	user := types.User{
		ID:                stringValue(u.GetId()),
		DisplayName:       stringValue(u.GetDisplayName()),
		UserPrincipalName: stringValue(u.GetUserPrincipalName()),
		GivenName:         stringValue(u.GetGivenName()),
		Surname:           stringValue(u.GetSurname()),
		Mail:              stringValue(u.GetMail()),
		JobTitle:          stringValue(u.GetJobTitle()),
		Department:        stringValue(u.GetDepartment()),
		CompanyName:       stringValue(u.GetCompanyName()),
		OfficeLocation:    stringValue(u.GetOfficeLocation()),
		City:              stringValue(u.GetCity()),
		Country:           stringValue(u.GetCountry()),
		UsageLocation:     stringValue(u.GetUsageLocation()),
		UserType:          stringValue(u.GetUserType()),
		AccountEnabled:    boolValue(u.GetAccountEnabled()),
		CreatedDateTime:   u.GetCreatedDateTime(),
	}

	if activity := u.GetSignInActivity(); activity != nil {
		user.LastSignIn = activity.GetLastSignInDateTime()
	}

	if manager := u.GetManager(); manager != nil {
		if m, ok := manager.(models.Userable); ok {
			user.Manager = &types.Manager{
				DisplayName:       stringValue(m.GetDisplayName()),
				UserPrincipalName: stringValue(m.GetUserPrincipalName()),
			}
		}
	}

	for _, assigned := range u.GetAssignedLicenses() {
		lic := types.AssignedLicense{}
		if sku := assigned.GetSkuId(); sku != nil {
			lic.SkuID = sku.String()
		}
		for _, plan := range assigned.GetDisabledPlans() {
			lic.DisabledPlans = append(lic.DisabledPlans, plan.String())
		}
		user.AssignedLicenses = append(user.AssignedLicenses, lic)
	}

	return user
}

// Helper functions
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolValue(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func int32Ptr(i int32) *int32 {
	return &i
}
