package objectstore

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Client is a Client backed by an Amazon S3 bucket, used to read
// NEXRAD Level II chunks from the public unidata-nexrad-level2-chunks
// bucket (and any other bucket laid out the same way).
type S3Client struct {
	svc    *s3.S3
	bucket string
}

// NewS3Client builds an S3Client against bucket using anonymous
// credentials, matching how the public NEXRAD chunk buckets are accessed.
func NewS3Client(region, bucket string) (*S3Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.AnonymousCredentials,
	})
	if err != nil {
		return nil, err
	}
	return &S3Client{svc: s3.New(sess), bucket: bucket}, nil
}

// List implements Client.
func (c *S3Client) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	err := c.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.StringValue(obj.Key),
				LastModified: aws.TimeValue(obj.LastModified),
				Size:         aws.Int64Value(obj.Size),
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return objects, nil
}

// Get implements Client.
func (c *S3Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return out.Body, nil
}
