package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arjunr/formbuilder/log"
)

const uploadTries = 3

// MinioStorage stores uploads in an S3-compatible bucket and hands out
// direct object URLs. The bucket is expected to allow anonymous reads.
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &MinioStorage{client, bucketName}, nil
}

func (s *MinioStorage) Save(ctx context.Context, data []byte, name string, contentType string) (err error) {
	for i := 0; i < uploadTries; i++ {
		_, err = s.client.PutObject(ctx,
			s.bucketName,
			name,
			bytes.NewReader(data),
			int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType},
		)
		if err == nil {
			return nil
		}

		resp := minio.ToErrorResponse(err)
		log.Warnf("media.minio.put (try %d): %d %s", i+1, resp.StatusCode, resp.Message)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return err
}

func (s *MinioStorage) URL(name string) string {
	endpoint := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, s.bucketName, name)
}
