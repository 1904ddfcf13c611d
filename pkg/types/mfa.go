package types

// MFAStatus is the overall MFA registration state of one user.
type MFAStatus string

const (
	MFAEnabled  MFAStatus = "Enabled"
	MFADisabled MFAStatus = "Disabled"
	MFAUnknown  MFAStatus = "Unknown"
)

// MFAInfo is the per-user MFA lookup result.
type MFAInfo struct {
	Status        MFAStatus
	DefaultMethod string

	Email               bool
	Fido2               bool
	AuthenticatorApp    bool
	AuthenticatorLite   bool
	Phone               bool
	SoftwareOath        bool
	TemporaryAccessPass bool
	PlatformCredential  bool
}
