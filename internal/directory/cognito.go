package directory

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"
	"github.com/pkg/errors"
)

// Cognito is the user-pool backed Directory.
type Cognito struct {
	api        cognitoidentityprovideriface.CognitoIdentityProviderAPI
	userPoolID string
}

var _ Directory = new(Cognito)

func NewCognito(api cognitoidentityprovideriface.CognitoIdentityProviderAPI, userPoolID string) *Cognito {
	return &Cognito{api: api, userPoolID: userPoolID}
}

func (c *Cognito) AddToGroup(ctx context.Context, identityID, group string) error {
	if c.userPoolID == "" {
		return ErrNotConfigured
	}
	_, err := c.api.AdminAddUserToGroupWithContext(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(identityID),
		GroupName:  aws.String(group),
	})
	if aerr, ok := err.(awserr.Error); ok &&
		aerr.Code() == cognitoidentityprovider.ErrCodeUserNotFoundException {
		return ErrIdentityNotFound
	}
	return errors.Wrapf(err, "adding identity %q to group %q", identityID, group)
}

func (c *Cognito) RemoveFromGroup(ctx context.Context, identityID, group string) error {
	if c.userPoolID == "" {
		return ErrNotConfigured
	}
	_, err := c.api.AdminRemoveUserFromGroupWithContext(ctx, &cognitoidentityprovider.AdminRemoveUserFromGroupInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(identityID),
		GroupName:  aws.String(group),
	})
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case cognitoidentityprovider.ErrCodeResourceNotFoundException:
			return ErrNotMember
		case cognitoidentityprovider.ErrCodeUserNotFoundException:
			return ErrIdentityNotFound
		}
	}
	return errors.Wrapf(err, "removing identity %q from group %q", identityID, group)
}
