package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidalsec/entradump/pkg/types"
)

type fakeSkuSource struct {
	skus []types.SkuInfo
	err  error
}

func (f *fakeSkuSource) SubscribedSkus(ctx context.Context) ([]types.SkuInfo, error) {
	return f.skus, f.err
}

const namesCSV = `Product_Display_Name,String_Id,GUID,Service_Plan_Name,Service_Plan_Id,Service_Plans_Included_Friendly_Names
Microsoft 365 E3,SPE_E3,05E9A617-0261-4CEE-BB44-138D3EF5D965,EXCHANGE_S_ENTERPRISE,EFB87545-963C-4E0D-99DF-69C6916D9EB0,Exchange Online (Plan 2)
Microsoft 365 E3,SPE_E3,05E9A617-0261-4CEE-BB44-138D3EF5D965,SHAREPOINTENTERPRISE,5DBE027F-2339-4123-9542-606E4D348A72,SharePoint (Plan 2)
`

func TestParseFriendlyNames(t *testing.T) {
	names, err := parseFriendlyNames(strings.NewReader(namesCSV))
	require.NoError(t, err)
	assert.Equal(t, "Microsoft 365 E3", names["05e9a617-0261-4cee-bb44-138d3ef5d965"])
}

func TestParseFriendlyNamesMissingColumns(t *testing.T) {
	_, err := parseFriendlyNames(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestBuildCatalog(t *testing.T) {
	src := &fakeSkuSource{skus: []types.SkuInfo{
		{
			SkuID:      "05e9a617-0261-4cee-bb44-138d3ef5d965",
			PartNumber: "SPE_E3",
			ServicePlans: []types.ServicePlan{
				{ID: "plan-exo", Name: "EXCHANGE_S_ENTERPRISE", ProvisioningStatus: "Success"},
			},
		},
		{
			SkuID:      "no-friendly-name",
			PartNumber: "RAW_PART",
		},
	}}

	namesPath := filepath.Join(t.TempDir(), "names.csv")
	require.NoError(t, os.WriteFile(namesPath, []byte(namesCSV), 0o644))

	catalog, err := BuildCatalog(context.Background(), src, namesPath)
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, "Microsoft 365 E3", catalog.skus["05e9a617-0261-4cee-bb44-138d3ef5d965"].DisplayName)
	assert.Equal(t, "RAW_PART", catalog.skus["no-friendly-name"].DisplayName)
	assert.False(t, catalog.HasPremiumEntitlement())
}

func TestBuildCatalogUnreadableNamesFileIsNonFatal(t *testing.T) {
	src := &fakeSkuSource{skus: []types.SkuInfo{
		{SkuID: "sku-1", PartNumber: "PART_1"},
	}}

	catalog, err := BuildCatalog(context.Background(), src, filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Equal(t, "PART_1", catalog.skus["sku-1"].DisplayName)
}

func TestBuildCatalogPremiumDetection(t *testing.T) {
	tests := []struct {
		name     string
		planName string
		want     bool
	}{
		{"P1 plan", "AAD_PREMIUM", true},
		{"P2 plan", "AAD_PREMIUM_P2", true},
		{"unrelated plan", "EXCHANGE_S_ENTERPRISE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSkuSource{skus: []types.SkuInfo{
				{SkuID: "sku", PartNumber: "PART", ServicePlans: []types.ServicePlan{
					{ID: "plan", Name: tt.planName, ProvisioningStatus: "Success"},
				}},
			}}
			catalog, err := BuildCatalog(context.Background(), src, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, catalog.HasPremiumEntitlement())
		})
	}
}

func TestBuildCatalogListingFailureIsFatal(t *testing.T) {
	src := &fakeSkuSource{err: errors.New("listing failed")}
	_, err := BuildCatalog(context.Background(), src, "")
	assert.Error(t, err)
}
