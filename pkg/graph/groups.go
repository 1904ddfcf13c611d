package graph

import (
	"context"
	"log/slog"
	"sort"

	"github.com/microsoftgraph/msgraph-sdk-go/models"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/tidalsec/entradump/pkg/types"
)

// UserGroups returns the security-enabled group memberships of one user,
// sorted by display name. A failed lookup degrades to an empty result;
// the pipeline's per-user guard is the second line of defense.
func (c *DirectoryClient) UserGroups(ctx context.Context, userID string) (types.GroupResult, error) {
	result, err := Retry(ctx, c.retry, func(ctx context.Context) (models.DirectoryObjectCollectionResponseable, error) {
		return c.client.Users().ByUserId(userID).MemberOf().Get(ctx, nil)
	})
	if err != nil {
		slog.Warn("Group lookup failed", "user", userID, "error", err)
		return types.GroupResult{}, nil
	}

	pageIterator, err := msgraphcore.NewPageIterator[models.DirectoryObjectable](result, c.client.GetAdapter(), models.CreateDirectoryObjectCollectionResponseFromDiscriminatorValue)
	if err != nil {
		slog.Warn("Group lookup failed", "user", userID, "error", err)
		return types.GroupResult{}, nil
	}

	var objects []models.DirectoryObjectable
	err = pageIterator.Iterate(ctx, func(obj models.DirectoryObjectable) bool {
		objects = append(objects, obj)
		return true
	})
	if err != nil {
		slog.Warn("Group lookup failed", "user", userID, "error", err)
		return types.GroupResult{}, nil
	}

	names := SecurityGroupNames(objects)
	return types.GroupResult{Names: names, Count: len(names)}, nil
}

// SecurityGroupNames keeps memberships that are actual groups (not
// administrative units or directory roles) with securityEnabled set, and
// returns their display names sorted ascending.
func SecurityGroupNames(objects []models.DirectoryObjectable) []string {
	var names []string
	for _, obj := range objects {
		group, ok := obj.(models.Groupable)
		if !ok {
			continue
		}
		if !boolValue(group.GetSecurityEnabled()) {
			continue
		}
		if name := group.GetDisplayName(); name != nil {
			names = append(names, *name)
		}
	}
	sort.Strings(names)
	return names
}
