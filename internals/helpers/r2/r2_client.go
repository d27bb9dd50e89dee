package r2

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"specsnexus_backend/internals/configs"
)

// Service talks to Cloudflare R2 over its S3-compatible API. It is built once
// at startup from an explicit config and shared by the upload controllers.
type Service struct {
	client *s3.Client
	cfg    configs.R2Config
}

func NewService(cfg configs.R2Config) (*Service, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" || cfg.Endpoint == "" || cfg.WorkerURL == "" {
		return nil, errors.New("incomplete R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Service{client: client, cfg: cfg}, nil
}

// PublicURL joins the worker base URL with an object key.
func (s *Service) PublicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.WorkerURL, "/")
	return base + "/" + objectKey
}
