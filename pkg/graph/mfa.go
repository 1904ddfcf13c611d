package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/tidalsec/entradump/pkg/types"
)

// signInPreferences only exists on the beta surface, so the whole batch
// goes there.
const defaultGraphBase = "https://graph.microsoft.com/beta"

const (
	methodsStepID    = "methods"
	preferenceStepID = "preference"
)

// TokenProvider supplies a bearer token for raw Graph REST calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type credentialTokens struct {
	cred azcore.TokenCredential
}

func (p *credentialTokens) Token(ctx context.Context) (string, error) {
	tok, err := p.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{graphScope}})
	if err != nil {
		return "", fmt.Errorf("failed to acquire Graph token: %w", err)
	}
	return tok.Token, nil
}

// Wire shapes of the $batch exchange. Each step carries its own HTTP
// status independent of the envelope's.
type batchRequest struct {
	Requests []batchStep `json:"requests"`
}

type batchStep struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	URL    string `json:"url"`
}

type batchResponse struct {
	Responses []batchStepResult `json:"responses"`
}

type batchStepResult struct {
	ID     string          `json:"id"`
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type authMethod struct {
	ODataType string `json:"@odata.type"`
	DeviceTag string `json:"deviceTag,omitempty"`
}

type authMethodsBody struct {
	Value []authMethod `json:"value"`
}

type signInPreferenceBody struct {
	UserPreferredMethodForSecondaryAuthentication string `json:"userPreferredMethodForSecondaryAuthentication"`
}

// MFAClient fetches per-user MFA state with one batched Graph call
// combining the authentication-methods listing and the sign-in
// preference.
type MFAClient struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
	retry      RetryConfig
}

func NewMFAClient(cred azcore.TokenCredential, retry RetryConfig) *MFAClient {
	return &MFAClient{
		httpClient: &http.Client{},
		baseURL:    defaultGraphBase,
		tokens:     &credentialTokens{cred: cred},
		retry:      retry,
	}
}

// UserMFA returns the MFA registration state for one user. A failed
// batch call degrades to the Unknown sentinel rather than an error; the
// pipeline's per-user guard is the second line of defense.
func (c *MFAClient) UserMFA(ctx context.Context, userID string) (types.MFAInfo, error) {
	resp, err := Retry(ctx, c.retry, func(ctx context.Context) (*batchResponse, error) {
		return c.postBatch(ctx, userID)
	})
	if err != nil {
		slog.Warn("MFA lookup failed", "user", userID, "error", err)
		return types.MFAInfo{Status: types.MFAUnknown, DefaultMethod: "Error"}, nil
	}
	return deriveMFAInfo(resp), nil
}

func (c *MFAClient) postBatch(ctx context.Context, userID string) (*batchResponse, error) {
	payload := batchRequest{Requests: []batchStep{
		{ID: methodsStepID, Method: http.MethodGet, URL: fmt.Sprintf("/users/%s/authentication/methods", userID)},
		{ID: preferenceStepID, Method: http.MethodGet, URL: fmt.Sprintf("/users/%s/authentication/signInPreferences", userID)},
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	url := c.baseURL + "/$batch"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create batch request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	return &parsed, nil
}

// deriveMFAInfo folds the two batch halves into one MFAInfo. A step with
// a non-200 status contributes nothing, it does not fail the lookup.
func deriveMFAInfo(resp *batchResponse) types.MFAInfo {
	info := types.MFAInfo{Status: types.MFADisabled, DefaultMethod: "Not set"}

	for _, step := range resp.Responses {
		if step.Status != http.StatusOK {
			continue
		}
		switch step.ID {
		case methodsStepID:
			var body authMethodsBody
			if err := json.Unmarshal(step.Body, &body); err != nil {
				continue
			}
			applyMethods(&info, body.Value)
		case preferenceStepID:
			var body signInPreferenceBody
			if err := json.Unmarshal(step.Body, &body); err != nil {
				continue
			}
			if body.UserPreferredMethodForSecondaryAuthentication != "" {
				info.DefaultMethod = body.UserPreferredMethodForSecondaryAuthentication
			}
		}
	}

	return info
}

// authenticatorAppDeviceTag marks a full Microsoft Authenticator app
// registration; registrations without it come from Authenticator Lite.
const authenticatorAppDeviceTag = "SoftwareTokenActivated"

func applyMethods(info *types.MFAInfo, methods []authMethod) {
	for _, m := range methods {
		switch m.ODataType {
		case "#microsoft.graph.emailAuthenticationMethod":
			info.Email = true
		case "#microsoft.graph.fido2AuthenticationMethod":
			info.Fido2 = true
		case "#microsoft.graph.microsoftAuthenticatorAuthenticationMethod":
			if m.DeviceTag == authenticatorAppDeviceTag {
				info.AuthenticatorApp = true
			} else {
				info.AuthenticatorLite = true
			}
		case "#microsoft.graph.phoneAuthenticationMethod":
			info.Phone = true
		case "#microsoft.graph.softwareOathAuthenticationMethod":
			info.SoftwareOath = true
		case "#microsoft.graph.temporaryAccessPassAuthenticationMethod":
			info.TemporaryAccessPass = true
		case "#microsoft.graph.platformCredentialAuthenticationMethod":
			info.PlatformCredential = true
		}
	}

	if info.Email || info.Fido2 || info.AuthenticatorApp || info.AuthenticatorLite ||
		info.Phone || info.SoftwareOath || info.TemporaryAccessPass || info.PlatformCredential {
		info.Status = types.MFAEnabled
	}
}
