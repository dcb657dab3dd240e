// Package blob provisions per-user file storage namespaces.
package blob

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Files is the object-store surface the workflows need.
type Files interface {
	// ProvisionNamespace creates the user's storage prefix. Overwriting
	// the placeholder object makes repetition a no-op.
	ProvisionNamespace(ctx context.Context, userID string) error
}

// S3 is the bucket-backed Files implementation. The namespace is a
// "<userID>/" placeholder object, the convention S3 consoles treat as a
// folder.
type S3 struct {
	api    s3iface.S3API
	bucket string
}

var _ Files = new(S3)

func NewS3(api s3iface.S3API, bucket string) *S3 {
	return &S3{api: api, bucket: bucket}
}

// NamespaceKey returns the object key that anchors a user's namespace.
func NamespaceKey(userID string) string { return userID + "/" }

func (s *S3) ProvisionNamespace(ctx context.Context, userID string) error {
	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(NamespaceKey(userID)),
		ContentType: aws.String("application/x-directory"),
		Body:        bytes.NewReader(nil),
	})
	return errors.Wrapf(err, "provisioning storage namespace for user %q", userID)
}
