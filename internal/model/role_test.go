package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRolesAreValid(t *testing.T) {
	roles := DefaultRoles()
	require.NoError(t, roles.Validate())
	assert.Len(t, roles, 5)

	// plain roles descend in value
	for i := 3; i < len(roles); i++ {
		assert.Greater(t, roles[i-1].Points, roles[i].Points)
	}
	assert.Greater(t, roles[0].Points, roles[2].Points)
	assert.Zero(t, roles[1].Points)
}

func TestRoleTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		roles RoleTable
		ok    bool
	}{
		{"seeker and target", RoleTable{{Name: "S", IsSeeker: true}, {Name: "T", IsTarget: true}}, true},
		{"too short", RoleTable{{Name: "S", IsSeeker: true}}, false},
		{"target first", RoleTable{{Name: "T", IsTarget: true}, {Name: "S", IsSeeker: true}}, false},
		{"second seeker", RoleTable{{Name: "S", IsSeeker: true}, {Name: "T", IsTarget: true}, {Name: "X", IsSeeker: true}}, false},
		{"duplicate name", RoleTable{{Name: "S", IsSeeker: true}, {Name: "T", IsTarget: true}, {Name: "S"}}, false},
		{"unnamed", RoleTable{{Name: "S", IsSeeker: true}, {Name: "T", IsTarget: true}, {}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.roles.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRoleTableForPlayers(t *testing.T) {
	roles := DefaultRoles()

	three, err := roles.ForPlayers(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"RAMUDU", "SITA", "HANUMAN"}, names(three))

	three[0].Name = "CHANGED"
	assert.Equal(t, "RAMUDU", roles[0].Name, "ForPlayers must copy")

	_, err = roles.ForPlayers(6)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestRoleTableUnmarshalText(t *testing.T) {
	var roles RoleTable
	err := roles.UnmarshalText([]byte("raja:50:seeker, rani:0:target, mantri:30, bhatudu:20"))
	require.NoError(t, err)

	assert.Equal(t, RoleTable{
		{Name: "RAJA", Points: 50, IsSeeker: true},
		{Name: "RANI", Points: 0, IsTarget: true},
		{Name: "MANTRI", Points: 30},
		{Name: "BHATUDU", Points: 20},
	}, roles)
}

func TestRoleTableUnmarshalTextRejectsBadInput(t *testing.T) {
	for _, in := range []string{
		"A:1",
		"A:x:seeker,B:0:target",
		"A:1:boss,B:0:target",
		"A:0:target,B:1:seeker",
		"A",
	} {
		var roles RoleTable
		assert.Error(t, roles.UnmarshalText([]byte(in)), in)
	}
}

func names(t RoleTable) []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Name
	}
	return out
}
