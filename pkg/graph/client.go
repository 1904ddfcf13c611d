package graph

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/tidalsec/entradump/internal/message"
)

const graphScope = "https://graph.microsoft.com/.default"

// CredentialOptions selects how the tool authenticates to Entra ID.
type CredentialOptions struct {
	TenantID   string
	ClientID   string
	DeviceCode bool
}

// NewCredential returns a token credential: the interactive device-code
// flow when requested, otherwise the Azure default credential chain
// (environment, managed identity, az CLI).
func NewCredential(opts CredentialOptions) (azcore.TokenCredential, error) {
	if opts.DeviceCode {
		cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: opts.TenantID,
			ClientID: opts.ClientID,
			UserPrompt: func(ctx context.Context, dc azidentity.DeviceCodeMessage) error {
				message.Info("%s", dc.Message)
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create device code credential: %v", err)
		}
		return cred, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %v", err)
	}
	return cred, nil
}

// NewClient creates a Graph service client bound to the default scope.
func NewClient(cred azcore.TokenCredential) (*msgraphsdk.GraphServiceClient, error) {
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{graphScope})
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph client: %w", err)
	}
	return client, nil
}

// TenantDetails gets the display name and id of the signed-in tenant.
func TenantDetails(ctx context.Context, client *msgraphsdk.GraphServiceClient) (string, string, error) {
	org, err := client.Organization().Get(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to get organization details: %v", err)
	}

	tenantName := "Unknown"
	tenantID := "Unknown"

	if orgValue := org.GetValue(); len(orgValue) > 0 {
		if displayName := orgValue[0].GetDisplayName(); displayName != nil {
			tenantName = *displayName
		}
		if id := orgValue[0].GetId(); id != nil {
			tenantID = *id
		}
	}

	return tenantName, tenantID, nil
}
