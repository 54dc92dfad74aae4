package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"slices"

	"Food-Surplus-Backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrStorageNotReady    = errors.New("blob storage is not configured")
)

type (
	// AwsS3 stores uploaded files and hands out public links to them.
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
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

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("error loading aws config: %v", err)
		return &awsS3{bucket: bucket, region: region}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	content, contentType, err := readUpload(file)
	if err != nil {
		return "", err
	}
	if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, contentType) {
		return "", ErrFileTypeNotAllowed
	}

	content = prepareImage(content, contentType)

	objectKey := path.Join(folder, fileName+extensionFor(contentType, file.Filename))
	if err := a.put(objectKey, content, contentType); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	if a.client == nil {
		return ErrStorageNotReady
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

func (a *awsS3) put(objectKey string, content []byte, contentType string) error {
	if a.client == nil {
		return ErrStorageNotReady
	}
	_, err := a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	return err
}
