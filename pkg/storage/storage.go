// Package storage 封装 S3 兼容对象存储，只负责生成限时上传地址与对象公开地址。
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"vtufest/backend/config"
)

// Client S3 预签名客户端
type Client struct {
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
	uploadTTL     time.Duration
}

// NewClient 根据配置创建 S3 客户端（支持 R2 / MinIO 等自定义 endpoint）
func NewClient(ctx context.Context, cfg *config.StorageConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载对象存储配置失败: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}

	return &Client{
		presigner:     s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		uploadTTL:     cfg.UploadURLTTL,
	}, nil
}

// PresignUpload 生成对象的限时写入地址（PUT）
func (c *Client) PresignUpload(ctx context.Context, key string) (string, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.uploadTTL))
	if err != nil {
		return "", fmt.Errorf("生成上传地址失败: %w", err)
	}
	return req.URL, nil
}

// ObjectURL 对象的公开访问地址
func (c *Client) ObjectURL(key string) string {
	return c.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}
