package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/itemgallery/backend/internal/server/config"
	"github.com/itemgallery/backend/internal/server/models"
	"github.com/itemgallery/backend/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const defaultListLimit = 50

// ItemUpdate carries a partial item update; nil fields stay unchanged.
type ItemUpdate struct {
	Title       *string
	Description *string
	CoverImage  *string
	Images      *[]string
}

// ItemService implements ownership-scoped item CRUD plus presigned URL
// helpers for image objects held in S3-compatible storage.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

// NewItemService constructs an ItemService using repositories and server config.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ItemService {
	return &ItemService{db: db, repomanager: m, config: cfg}
}

// Create stores a new item owned by userID.
func (s *ItemService) Create(ctx context.Context, userID int64, item *models.Item) (*models.Item, error) {
	item.UserID = userID
	created, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return created, nil
}

// List returns items of all users, newest first. Negative paging values are
// normalized; a non-positive limit falls back to the default page size.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]*models.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repomanager.Items(s.db).List(ctx, skip, limit)
}

// ListMy returns the caller's items, newest first.
func (s *ItemService) ListMy(ctx context.Context, userID int64) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).ListByUser(ctx, userID)
}

// Get returns a single item by ID, regardless of owner.
func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	return s.repomanager.Items(s.db).GetByID(ctx, id)
}

// Update applies a partial update to the item with the given ID, provided it
// is owned by userID. The write filters on both ID and owner, so an item
// belonging to another user surfaces as ErrorNotFound, never as a distinct
// "forbidden" signal.
func (s *ItemService) Update(ctx context.Context, userID, id int64, upd ItemUpdate) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.CoverImage != nil {
		item.CoverImage = *upd.CoverImage
	}
	if upd.Images != nil {
		item.Images = *upd.Images
	}

	if err := repo.Update(ctx, userID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item with the given ID, provided it is owned by userID.
func (s *ItemService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Items(s.db).Delete(ctx, userID, id)
}

// randomStorageKey produces an object key with a date prefix for easier
// bucket housekeeping.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ItemService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
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

// NewUploadURL returns a fresh storage key and a presigned PUT URL the client
// can upload an image to. The key is what gets stored in the item's image
// list or cover field.
func (s *ItemService) NewUploadURL(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// ImageURLs resolves the item's image references to fetchable URLs. Storage
// keys are presigned for GET; references that are already absolute URLs
// (legacy rows) pass through unchanged.
func (s *ItemService) ImageURLs(ctx context.Context, id int64) ([]string, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(item.Images))
	for _, ref := range item.Images {
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			urls = append(urls, ref)
			continue
		}
		url, err := s.presignGet(ctx, ref)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ItemService) presignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
