// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/sss"
)

const listPageSize = 1000

// Storage provides the sss.Storage functionality on top of AWS S3
type Storage struct {
	AwsConfig *aws.Config `inject:""`
	Bucket    string      `inject:"AwsS3Bucket"`

	client *s3.S3
}

var _ sss.Storage = (*Storage)(nil)

// Init opens the S3 session with the AwsConfig provided
func (st *Storage) Init(_ context.Context) error {
	ses, err := session.NewSession(st.AwsConfig)
	if err != nil {
		return fmt.Errorf("could not open the S3 session, bucket=%s: %w", st.Bucket, err)
	}
	st.client = s3.New(ses)
	return nil
}

// Get returns the reader for the value stored by the key. The caller is
// responsible for closing the reader returned
func (st *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if !sss.IsKeyValid(key) {
		return nil, fmt.Errorf("Get: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	res, err := st.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(st.Bucket),
		Key:    aws.String(toObjectKey(key)),
	})
	if err != nil {
		return nil, mapAwsErr(err)
	}
	return res.Body, nil
}

// Put stores the value represented by the reader r by the key
func (st *Storage) Put(ctx context.Context, key string, r io.Reader) error {
	if !sss.IsKeyValid(key) {
		return fmt.Errorf("Put: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	_, err := st.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Body:   aws.ReadSeekCloser(r),
		Bucket: aws.String(st.Bucket),
		Key:    aws.String(toObjectKey(key)),
	})
	return mapAwsErr(err)
}

// List returns the keys and the direct sub-paths found under the path provided
func (st *Storage) List(ctx context.Context, path string) ([]string, error) {
	if !sss.IsPathValid(path) {
		return nil, fmt.Errorf("List: the path=%q is not valid: %w", path, errors.ErrInvalid)
	}

	input := &s3.ListObjectsInput{
		Bucket:    aws.String(st.Bucket),
		Delimiter: aws.String("/"),
		Prefix:    aws.String(toObjectKey(path)),
		MaxKeys:   aws.Int64(listPageSize),
	}

	res := []string{}
	for {
		page, err := st.client.ListObjectsWithContext(ctx, input)
		if err != nil {
			return nil, mapAwsErr(err)
		}
		for _, p := range page.CommonPrefixes {
			res = append(res, fromObjectKey(aws.StringValue(p.Prefix)))
		}
		for _, o := range page.Contents {
			res = append(res, fromObjectKey(aws.StringValue(o.Key)))
		}
		if !aws.BoolValue(page.IsTruncated) {
			return res, nil
		}
		input.Marker = page.NextMarker
	}
}

// Delete removes the value stored by the key. S3 doesn't report the removal
// of a not existing object, so no error is returned for the lost keys
func (st *Storage) Delete(ctx context.Context, key string) error {
	if !sss.IsKeyValid(key) {
		return fmt.Errorf("Delete: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	_, err := st.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.Bucket),
		Key:    aws.String(toObjectKey(key)),
	})
	return mapAwsErr(err)
}

// the objects are stored in the bucket with no leading delimiter
func toObjectKey(key string) string {
	return key[1:]
}

func fromObjectKey(objKey string) string {
	return "/" + objKey
}

func mapAwsErr(err error) error {
	if err == nil {
		return nil
	}
	if reqErr, ok := err.(awserr.RequestFailure); ok && reqErr.StatusCode() == http.StatusNotFound {
		return errors.ErrNotExist
	}
	return err
}
