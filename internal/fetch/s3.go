package fetch

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// DefaultMirrorPrefix is the key prefix under which mirrored archives are stored.
const DefaultMirrorPrefix = "android-ndk"

// S3Config describes an S3-compatible archive mirror.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Fetcher downloads archives from an S3-compatible mirror.
type S3Fetcher struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Fetcher creates a mirror fetcher. Endpoint, credentials and bucket are required.
func NewS3Fetcher(cfg S3Config) (*S3Fetcher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, ndkerrors.Config("mirror endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, ndkerrors.Config("mirror access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, ndkerrors.Config("mirror bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix == "" {
		prefix = DefaultMirrorPrefix
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, ndkerrors.Config(fmt.Sprintf("init mirror client: %v", err))
	}

	return &S3Fetcher{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectKey returns the mirror key of an archive, e.g. "android-ndk/android-ndk-r21e-linux-x86_64.zip".
func (f *S3Fetcher) ObjectKey(loc toolchain.ArchiveLocation) string {
	return path.Join(f.prefix, loc.FileName)
}

// URL returns a display URL for an archive in the mirror.
func (f *S3Fetcher) URL(loc toolchain.ArchiveLocation) string {
	return "s3://" + f.bucket + "/" + f.ObjectKey(loc)
}

// Fetch downloads the mirrored archive into dest.
func (f *S3Fetcher) Fetch(ctx context.Context, loc toolchain.ArchiveLocation, dest string) error {
	key := f.ObjectKey(loc)
	if err := f.client.FGetObject(ctx, f.bucket, key, dest, minio.GetObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return ndkerrors.Download(f.URL(loc), fmt.Errorf("archive not mirrored"))
		}
		return ndkerrors.Download(f.URL(loc), err)
	}
	return nil
}

var _ Fetcher = (*S3Fetcher)(nil)
