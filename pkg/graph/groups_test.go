package graph

import (
	"testing"

	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/stretchr/testify/assert"
)

func newGroup(name string, securityEnabled *bool) models.Groupable {
	g := models.NewGroup()
	g.SetDisplayName(&name)
	g.SetSecurityEnabled(securityEnabled)
	return g
}

func boolPtr(b bool) *bool { return &b }

func TestSecurityGroupNamesFiltersAndSorts(t *testing.T) {
	role := models.NewDirectoryRole()
	roleName := "Global Administrator"
	role.SetDisplayName(&roleName)

	objects := []models.DirectoryObjectable{
		newGroup("Zebra Admins", boolPtr(true)),
		newGroup("All Hands", boolPtr(false)),
		role,
		newGroup("Alpha Team", boolPtr(true)),
	}

	assert.Equal(t, []string{"Alpha Team", "Zebra Admins"}, SecurityGroupNames(objects))
}

func TestSecurityGroupNamesNilSecurityEnabled(t *testing.T) {
	objects := []models.DirectoryObjectable{
		newGroup("Unflagged", nil),
	}
	assert.Empty(t, SecurityGroupNames(objects))
}

func TestSecurityGroupNamesNilDisplayName(t *testing.T) {
	g := models.NewGroup()
	g.SetSecurityEnabled(boolPtr(true))

	assert.Empty(t, SecurityGroupNames([]models.DirectoryObjectable{g}))
}

func TestSecurityGroupNamesEmptyInput(t *testing.T) {
	assert.Nil(t, SecurityGroupNames(nil))
}
