package permissions_test

import (
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedDocument(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/v1/availability", "POST").Skip)
	assert.True(t, data.FindPermissions("/v1/bookings/", "post").Skip)
	assert.Equal(t, []string{"superadmin"}, data.FindPermissions("/v1/users/", "GET").Permissions)
	assert.Equal(t, []string{"superadmin"}, data.FindPermissions("/v1/contact/{id}/purge", "DELETE").Permissions)
	assert.ElementsMatch(t, []string{"superadmin", "admin"}, data.FindPermissions("/v1/rooms/", "POST").Permissions)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", "GET"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid", doc: `{"endpoints":[{"path":"/v1/rooms/","method":"POST","permissions":["admin"]}]}`},
		{name: "malformed", doc: `{"endpoints":`, wantErr: true},
		{name: "duplicate rule", doc: `{"endpoints":[{"path":"/a","method":"GET"},{"path":"/a","method":"get"}]}`, wantErr: true},
		{name: "unknown role", doc: `{"endpoints":[{"path":"/a","method":"GET","permissions":["janitor"]}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/rooms/", "POST").Permissions)
		})
	}
}

func TestFindPermissions_ZeroValue(t *testing.T) {
	var data permissions.PermissionData

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/health", "GET"))
}
