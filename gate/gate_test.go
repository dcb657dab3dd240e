package gate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeSelf(t *testing.T) {
	for _, groups := range [][]string{nil, {GroupUser}, {GroupPaid}, {GroupAdmin}} {
		d := Authorize("abc", groups, "abc")
		require.True(t, d.Allowed, "self access should be allowed with groups %v", groups)
	}
}

func TestAuthorizeOther(t *testing.T) {
	tests := []struct {
		name    string
		groups  []string
		allowed bool
	}{
		{"no groups", nil, false},
		{"user group", []string{GroupUser}, false},
		{"paid group", []string{GroupPaid}, false},
		{"admin group", []string{GroupAdmin}, true},
		{"admin among others", []string{GroupUser, GroupAdmin}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize("abc", tt.groups, "zzz")
			require.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				require.Contains(t, d.Reason, "unauthorized")
			}
		})
	}
}

func TestAuthorizeEmptyRequester(t *testing.T) {
	// An empty requester must not self-match an empty target.
	d := Authorize("", nil, "")
	require.False(t, d.Allowed)
}

func TestCheckNotYetMember(t *testing.T) {
	d := CheckNotYetMember([]string{GroupUser, GroupPaid}, GroupPaid)
	require.False(t, d.Allowed)
	require.Equal(t, "already a paid member", d.Reason)

	d = CheckNotYetMember([]string{GroupUser}, GroupPaid)
	require.True(t, d.Allowed)
}
