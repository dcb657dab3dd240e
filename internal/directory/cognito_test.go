package directory

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	cognitoidentityprovideriface.CognitoIdentityProviderAPI

	addFn    func(*cognitoidentityprovider.AdminAddUserToGroupInput) error
	removeFn func(*cognitoidentityprovider.AdminRemoveUserFromGroupInput) error
}

func (f *fakeCognito) AdminAddUserToGroupWithContext(
	_ aws.Context, in *cognitoidentityprovider.AdminAddUserToGroupInput, _ ...request.Option,
) (*cognitoidentityprovider.AdminAddUserToGroupOutput, error) {
	return &cognitoidentityprovider.AdminAddUserToGroupOutput{}, f.addFn(in)
}

func (f *fakeCognito) AdminRemoveUserFromGroupWithContext(
	_ aws.Context, in *cognitoidentityprovider.AdminRemoveUserFromGroupInput, _ ...request.Option,
) (*cognitoidentityprovider.AdminRemoveUserFromGroupOutput, error) {
	return &cognitoidentityprovider.AdminRemoveUserFromGroupOutput{}, f.removeFn(in)
}

func TestAddToGroup(t *testing.T) {
	var got *cognitoidentityprovider.AdminAddUserToGroupInput
	c := NewCognito(&fakeCognito{
		addFn: func(in *cognitoidentityprovider.AdminAddUserToGroupInput) error {
			got = in
			return nil
		},
	}, "pool-1")

	require.NoError(t, c.AddToGroup(context.Background(), "abc", "user"))
	require.Equal(t, "pool-1", *got.UserPoolId)
	require.Equal(t, "abc", *got.Username)
	require.Equal(t, "user", *got.GroupName)
}

func TestRemoveFromGroupNotMember(t *testing.T) {
	c := NewCognito(&fakeCognito{
		removeFn: func(in *cognitoidentityprovider.AdminRemoveUserFromGroupInput) error {
			return awserr.New(
				cognitoidentityprovider.ErrCodeResourceNotFoundException, "no membership", nil)
		},
	}, "pool-1")

	err := c.RemoveFromGroup(context.Background(), "abc", "user")
	require.ErrorIs(t, err, ErrNotMember)
}

func TestUnknownIdentity(t *testing.T) {
	c := NewCognito(&fakeCognito{
		addFn: func(in *cognitoidentityprovider.AdminAddUserToGroupInput) error {
			return awserr.New(
				cognitoidentityprovider.ErrCodeUserNotFoundException, "who", nil)
		},
	}, "pool-1")

	err := c.AddToGroup(context.Background(), "zzz", "paid")
	require.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestMissingPoolID(t *testing.T) {
	c := NewCognito(&fakeCognito{}, "")

	require.ErrorIs(t, c.AddToGroup(context.Background(), "abc", "user"), ErrNotConfigured)
	require.ErrorIs(t, c.RemoveFromGroup(context.Background(), "abc", "user"), ErrNotConfigured)
}
