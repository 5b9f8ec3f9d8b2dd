package utils

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestImageArchive_Put(t *testing.T) {
	fp := &fakePutter{}
	a := NewImageArchive(fp, "meals", "https://cdn.example.com/")

	url, err := a.Put(context.Background(), "vision/carla", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	key := aws.ToString(fp.in.Key)
	assert.True(t, strings.HasPrefix(key, "vision/carla/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "meals", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fp.in.ContentType))
	assert.Equal(t, []byte("img"), fp.body)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestImageArchive_PutError(t *testing.T) {
	a := NewImageArchive(&fakePutter{err: errors.New("denied")}, "meals", "")
	_, err := a.Put(context.Background(), "x", []byte("img"), "image/png")
	assert.ErrorContains(t, err, "denied")
}
