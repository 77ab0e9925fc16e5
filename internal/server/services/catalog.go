package services

import (
	"context"
	"fmt"
	"time"

	"github.com/admintieri/tractoradmin/internal/dbx"
	sc "github.com/admintieri/tractoradmin/internal/server/config"
	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/admintieri/tractoradmin/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// CatalogService manages the two tractor inventories and hands out presigned
// upload URLs for listing photos; image bytes never pass through the server.
type CatalogService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCatalogService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *sc.Config) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

func (s *CatalogService) List(ctx context.Context, condition models.Condition, q string) ([]*models.Tractor, error) {
	return s.repomanager.Tractors(s.db).List(ctx, condition, q)
}

func (s *CatalogService) Get(ctx context.Context, condition models.Condition, id int64) (*models.Tractor, error) {
	return s.repomanager.Tractors(s.db).Get(ctx, condition, id)
}

func (s *CatalogService) Create(ctx context.Context, tractor *models.Tractor) (*models.Tractor, error) {
	return s.repomanager.Tractors(s.db).Create(ctx, tractor)
}

func (s *CatalogService) Update(ctx context.Context, condition models.Condition, id int64, patch *models.TractorPatch) (*models.Tractor, error) {
	return s.repomanager.Tractors(s.db).Update(ctx, condition, id, patch)
}

func (s *CatalogService) Delete(ctx context.Context, condition models.Condition, id int64) error {
	return s.repomanager.Tractors(s.db).Delete(ctx, condition, id)
}

// randomStorageKey buckets uploads by date so the bucket stays browsable.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("photos/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *CatalogService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a presigned PUT URL and the object key it is valid
// for. The URL expires after 15 minutes.
func (s *CatalogService) PresignUpload(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", "", err
	}

	return req.URL, key, nil
}
