package site

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// S3Publisher uploads the build output to a bucket, skipping objects whose
// stored ETag already matches the local file.
type S3Publisher struct {
	client    *s3.Client
	bucket    string
	prefix    string
	outputDir string
	logger    logrus.FieldLogger
}

// NewS3Publisher creates a publisher using the default AWS configuration
// chain, with region, profile, endpoint and addressing overrides from cfg.
func NewS3Publisher(ctx context.Context, cfg config.SiteConfig, logger logrus.FieldLogger) (*S3Publisher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.S3Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("site: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return &S3Publisher{
		client:    client,
		bucket:    cfg.S3Bucket,
		prefix:    strings.Trim(cfg.S3Prefix, "/"),
		outputDir: cfg.OutputDir,
		logger:    logger,
	}, nil
}

// Publish walks the output directory and uploads every changed file.
func (p *S3Publisher) Publish(ctx context.Context) error {
	var uploaded, unchanged int
	err := filepath.WalkDir(p.outputDir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.outputDir, file)
		if err != nil {
			return err
		}
		key := p.key(rel)

		sum, err := fileMD5(file)
		if err != nil {
			return err
		}
		same, err := p.matches(ctx, key, sum)
		if err != nil {
			return err
		}
		if same {
			unchanged++
			return nil
		}
		if err := p.put(ctx, key, file); err != nil {
			return err
		}
		uploaded++
		return nil
	})
	if err != nil {
		return fmt.Errorf("site: publish to s3: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"bucket":    p.bucket,
		"uploaded":  uploaded,
		"unchanged": unchanged,
	}).Info("Site published")
	return nil
}

func (p *S3Publisher) key(rel string) string {
	rel = filepath.ToSlash(rel)
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

func (p *S3Publisher) put(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	in := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if path.Ext(key) == ".html" {
		in.CacheControl = aws.String("max-age=300")
	}
	if _, err := p.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// matches reports whether the object at key exists with the given MD5 ETag.
// A missing object is not an error.
func (p *S3Publisher) matches(ctx context.Context, key, sum string) (bool, error) {
	out, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head %s: %w", key, err)
	}
	return strings.Trim(aws.ToString(out.ETag), `"`) == sum, nil
}

func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return true
	}
	return false
}

func fileMD5(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
