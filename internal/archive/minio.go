// Package archive keeps the raw uploaded PDFs in an S3-compatible bucket.
// The archive is optional and best-effort: the persisted application record
// already embeds the document as a data URI, so archive failures never block
// the submission flow.
package archive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"vectorhire/internal/config"
)

// Client 封装 MinIO 客户端，提供简化的归档接口。
type Client struct {
	internalClient *minio.Client
	bucketName     string
}

// NewClient 根据配置初始化 MinIO 客户端，并确保目标 Bucket 存在。
func NewClient(cfg config.ArchiveConfig) (*Client, error) {
	internalClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := internalClient.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := internalClient.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Client{
		internalClient: internalClient,
		bucketName:     cfg.Bucket,
	}, nil
}

// ObjectKey derives the archive key for an application's upload.
func ObjectKey(applicationID string) string {
	return fmt.Sprintf("applications/%s.pdf", applicationID)
}

// Store 将上传的 PDF 原件写入 Bucket。
func (c *Client) Store(ctx context.Context, applicationID string, reader io.Reader, size int64) error {
	key := ObjectKey(applicationID)
	opts := minio.PutObjectOptions{ContentType: "application/pdf"}
	if _, err := c.internalClient.PutObject(ctx, c.bucketName, key, reader, size, opts); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// PresignedURL 生成归档对象的限时下载链接。
func (c *Client) PresignedURL(ctx context.Context, applicationID string, duration time.Duration) (string, error) {
	key := ObjectKey(applicationID)
	presignedURL, err := c.internalClient.PresignedGetObject(ctx, c.bucketName, key, duration, nil)
	if err != nil {
		return "", fmt.Errorf("generate presigned url for %q: %w", key, err)
	}
	return presignedURL.String(), nil
}

// Delete 删除归档对象。对象不存在视为成功（幂等）。
func (c *Client) Delete(ctx context.Context, applicationID string) error {
	key := ObjectKey(applicationID)
	if err := c.internalClient.RemoveObject(ctx, c.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		reason := strings.ToLower(err.Error())
		if strings.Contains(reason, "nosuchkey") || strings.Contains(reason, "not found") {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}
