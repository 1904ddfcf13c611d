package graph

import (
	"context"
	"fmt"

	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/tidalsec/entradump/pkg/types"
)

// SubscribedSkus lists the tenant's purchased license SKUs with their
// service-plan descriptors. The catalog is built from this once, before
// the fan-out starts.
func (c *DirectoryClient) SubscribedSkus(ctx context.Context) ([]types.SkuInfo, error) {
	result, err := Retry(ctx, c.retry, func(ctx context.Context) (models.SubscribedSkuCollectionResponseable, error) {
		return c.client.SubscribedSkus().Get(ctx, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed SKUs: %w", err)
	}

	var skus []types.SkuInfo
	for _, sku := range result.GetValue() {
		info := types.SkuInfo{
			PartNumber: stringValue(sku.GetSkuPartNumber()),
		}
		if id := sku.GetSkuId(); id != nil {
			info.SkuID = id.String()
		}
		for _, plan := range sku.GetServicePlans() {
			sp := types.ServicePlan{
				Name:               stringValue(plan.GetServicePlanName()),
				ProvisioningStatus: stringValue(plan.GetProvisioningStatus()),
			}
			if pid := plan.GetServicePlanId(); pid != nil {
				sp.ID = pid.String()
			}
			info.ServicePlans = append(info.ServicePlans, sp)
		}
		skus = append(skus, info)
	}

	return skus, nil
}
