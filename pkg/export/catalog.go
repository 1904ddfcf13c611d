package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tidalsec/entradump/pkg/types"
)

// SkuSource provides the tenant's subscribed SKU listing.
type SkuSource interface {
	SubscribedSkus(ctx context.Context) ([]types.SkuInfo, error)
}

// Service plans that indicate an Entra ID Premium entitlement, which
// gates sign-in activity data.
var premiumPlanNames = map[string]bool{
	"AAD_PREMIUM":    true,
	"AAD_PREMIUM_P2": true,
}

// Catalog maps SKU ids to their descriptors. Built once before the
// fan-out and read-only afterwards, so workers share it without locks.
type Catalog struct {
	skus    map[string]types.SkuInfo
	premium bool
}

// BuildCatalog lists the subscribed SKUs and overlays friendly display
// names from Microsoft's product-names CSV when namesPath is set. A
// missing or malformed CSV degrades to part numbers, it never fails the
// build; a failed SKU listing does.
func BuildCatalog(ctx context.Context, src SkuSource, namesPath string) (*Catalog, error) {
	skus, err := src.SubscribedSkus(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog build: %w", err)
	}

	names := map[string]string{}
	if namesPath != "" {
		names, err = loadFriendlyNames(namesPath)
		if err != nil {
			slog.Warn("Friendly-name source unavailable, falling back to part numbers",
				"path", namesPath, "error", err)
			names = map[string]string{}
		}
	}

	c := &Catalog{skus: make(map[string]types.SkuInfo, len(skus))}
	for _, sku := range skus {
		if display, ok := names[strings.ToLower(sku.SkuID)]; ok {
			sku.DisplayName = display
		} else {
			sku.DisplayName = sku.PartNumber
		}
		c.skus[sku.SkuID] = sku

		for _, plan := range sku.ServicePlans {
			if premiumPlanNames[plan.Name] {
				c.premium = true
			}
		}
	}
	return c, nil
}

// HasPremiumEntitlement reports whether any subscribed SKU carries a
// premium service plan.
func (c *Catalog) HasPremiumEntitlement() bool {
	return c.premium
}

// Len returns the number of cataloged SKUs.
func (c *Catalog) Len() int {
	return len(c.skus)
}

func loadFriendlyNames(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseFriendlyNames(f)
}

// parseFriendlyNames reads the "product names and service plan
// identifiers for licensing" CSV and maps SKU GUID to product display
// name. The file repeats the product row per service plan; last write
// wins, the values agree.
func parseFriendlyNames(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	guidCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "GUID":
			guidCol = i
		case "Product_Display_Name":
			nameCol = i
		}
	}
	if guidCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("missing GUID or Product_Display_Name column")
	}

	names := map[string]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) <= guidCol || len(row) <= nameCol {
			continue
		}
		names[strings.ToLower(row[guidCol])] = row[nameCol]
	}
	return names, nil
}
