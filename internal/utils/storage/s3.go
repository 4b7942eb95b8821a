package storage

import (
	"Pantry-Tracker/internal/utils"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AllowImage = []string{".jpg", ".jpeg", ".png", ".webp", ".heic"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrStorageDisabled    = errors.New("object storage is not configured")
)

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowed ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		utils.LogError("storage", "NewAwsS3", "loading aws config", nil, err)
		return &awsS3{bucket: bucket, region: region}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func checkExtension(name string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if len(allowed) == 0 {
		return ext, nil
	}
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, ext)
}

func (a *awsS3) put(objectKey string, file *multipart.FileHeader) error {
	if a.client == nil {
		return ErrStorageDisabled
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	return err
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext, err := checkExtension(file.Filename, allowed)
	if err != nil {
		return "", err
	}
	objectKey := fmt.Sprintf("%s/%s%s", folder, fileName, ext)
	if err := a.put(objectKey, file); err != nil {
		return "", err
	}
	return objectKey, nil
}

// UpdateFile overwrites the object; a changed extension produces a new key.
func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowed ...string) (string, error) {
	ext, err := checkExtension(file.Filename, allowed)
	if err != nil {
		return "", err
	}
	newKey := strings.TrimSuffix(objectKey, filepath.Ext(objectKey)) + ext
	if err := a.put(newKey, file); err != nil {
		return "", err
	}
	if newKey != objectKey {
		_ = a.DeleteFile(objectKey)
	}
	return newKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	if a.client == nil {
		return ErrStorageDisabled
	}
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
