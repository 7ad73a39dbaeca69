package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/models"
)

func TestAuthorize(t *testing.T) {
	analyst := Principal{UserID: "u1", Role: models.RoleAnalyst}
	manager := Principal{UserID: "u2", Role: models.RoleManager}
	executive := Principal{UserID: "u3", Role: models.RoleExecutive}
	admin := Principal{UserID: "u4", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		p      Principal
		action Action
		r      Resource
		allow  bool
	}{
		{"analyst lists all", analyst, ListAllInsights, Resource{}, false},
		{"executive lists all", executive, ListAllInsights, Resource{}, true},
		{"analyst views own", analyst, ViewInsight, Resource{OwnerID: "u1"}, true},
		{"analyst views other", analyst, ViewInsight, Resource{OwnerID: "u9"}, false},
		{"manager views other", manager, ViewInsight, Resource{OwnerID: "u9"}, true},
		{"analyst creates alert", analyst, CreateAlert, Resource{}, false},
		{"executive creates alert", executive, CreateAlert, Resource{}, false},
		{"manager creates alert", manager, CreateAlert, Resource{}, true},
		{"admin creates alert", admin, CreateAlert, Resource{}, true},
		{"analyst global stats", analyst, ViewAllStats, Resource{}, false},
		{"admin global stats", admin, ViewAllStats, Resource{}, true},
		{"unknown action", admin, Action("insight:delete"), Resource{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.p, tt.action, tt.r)
			if tt.allow {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.KindAuthorization, apperr.As(err).Kind)
			assert.False(t, Can(tt.p, tt.action, tt.r))
		})
	}
}
