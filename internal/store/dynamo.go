package store

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

// identityIndexName is the GSI keyed on identityId.
const identityIndexName = "identityId"

// Dynamo is the DynamoDB-backed Store.
type Dynamo struct {
	api   dynamodbiface.DynamoDBAPI
	table string
}

var _ Store = new(Dynamo)

func NewDynamo(api dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{api: api, table: table}
}

func (d *Dynamo) Create(ctx context.Context, rec UserRecord) error {
	item, err := dynamodbattribute.MarshalMap(rec)
	if err != nil {
		return errors.Wrap(err, "marshaling user record")
	}
	_, err = d.api.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(userId)"),
	})
	if aerr, ok := err.(awserr.Error); ok &&
		aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
		return ErrAlreadyExists
	}
	return errors.Wrapf(err, "putting user record %q", rec.UserID)
}

func (d *Dynamo) FindByIdentity(ctx context.Context, identityID string) (UserRecord, error) {
	out, err := d.api.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		IndexName:              aws.String(identityIndexName),
		KeyConditionExpression: aws.String("identityId = :identityId"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":identityId": {S: aws.String(identityID)},
		},
	})
	if err != nil {
		return UserRecord{}, errors.Wrapf(err, "querying identity %q", identityID)
	}
	if len(out.Items) == 0 {
		return UserRecord{}, ErrNotFound
	}
	var rec UserRecord
	if err := dynamodbattribute.UnmarshalMap(out.Items[0], &rec); err != nil {
		return UserRecord{}, errors.Wrap(err, "unmarshaling user record")
	}
	return rec, nil
}

func (d *Dynamo) SetTier(ctx context.Context, userID, tier, updatedAt string) error {
	_, err := d.api.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"userId": {S: aws.String(userID)},
		},
		UpdateExpression: aws.String("SET #tier = :tier, #updatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]*string{
			"#tier":      aws.String("tier"),
			"#updatedAt": aws.String("updatedAt"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":tier":      {S: aws.String(tier)},
			":updatedAt": {S: aws.String(updatedAt)},
		},
	})
	return errors.Wrapf(err, "setting tier for user %q", userID)
}
