package s3

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/solarisdb/lrucache/golibs/sss"
	"github.com/stretchr/testify/assert"
)

// TODO set-up environment, otherwise run manually
// minio works fine as the local S3 replacement:
// docker run --rm -p 9000:9000 -p 9001:9001 -e "MINIO_ACCESS_KEY=username" -e "MINIO_SECRET_KEY=password" --name minio1 minio/minio server /data --console-address=:9001
func __TestS3Storage(t *testing.T) {
	st := &Storage{
		AwsConfig: &aws.Config{
			Credentials:      credentials.NewStaticCredentials("username", "password", ""),
			Endpoint:         aws.String("http://localhost:9000"),
			Region:           aws.String("us-west-1"),
			DisableSSL:       aws.Bool(true),
			S3ForcePathStyle: aws.Bool(true),
		},
		Bucket: "test",
	}
	assert.Nil(t, st.Init(context.Background()))
	sss.TestSimpleStorage(t, st)
}
