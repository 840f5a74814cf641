package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"sleepwell_store_v1_202610/internal/model"
)

// ==================== 接口定义 ====================

// ImageProvider 把图片存储路径转换为可访问的 URL
type ImageProvider interface {
	PublicURL(ctx context.Context, path string) (string, error)
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string        // CDN域名 (可选)
	BaseURL   string        // local 模式的访问前缀
	Expires   time.Duration // 签名 URL 有效期
}

// ==================== 工厂方法 ====================

func NewImageProvider(cfg *StorageConfig) (ImageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Images(cfg)
	case "local", "":
		return &LocalImages{baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== StorageService ====================

// StorageService 为行项目与商品详情提供图片地址
type StorageService struct {
	provider ImageProvider
}

// NewStorageService 创建存储服务
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	provider, err := NewImageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &StorageService{provider: provider}, nil
}

// NewStorageServiceWithProvider 直接注入 Provider (测试用)
func NewStorageServiceWithProvider(p ImageProvider) *StorageService {
	return &StorageService{provider: p}
}

// ImageURL 图片为空时返回空串
func (s *StorageService) ImageURL(ctx context.Context, img *model.ProductImage) (string, error) {
	if img == nil {
		return "", nil
	}
	return s.URLForPath(ctx, img.Path)
}

// URLForPath 存储路径转 URL，绝对地址原样返回
func (s *StorageService) URLForPath(ctx context.Context, path string) (string, error) {
	if path == "" || isAbsoluteURL(path) {
		return path, nil
	}
	if s == nil || s.provider == nil {
		return path, nil
	}
	return s.provider.PublicURL(ctx, path)
}

func isAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ==================== Local 实现 ====================

// LocalImages 静态资源目录或反向代理
type LocalImages struct {
	baseURL string
}

func (l *LocalImages) PublicURL(_ context.Context, path string) (string, error) {
	if l.baseURL == "" {
		return "/" + strings.TrimPrefix(path, "/"), nil
	}
	return l.baseURL + "/" + strings.TrimPrefix(path, "/"), nil
}

// ==================== S3 实现 ====================

type S3Images struct {
	presign   *s3.PresignClient
	bucket    string
	cdnDomain string
	expires   time.Duration
}

func NewS3Images(cfg *StorageConfig) (*S3Images, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	expires := cfg.Expires
	if expires <= 0 {
		expires = time.Hour
	}

	return &S3Images{
		presign:   s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:    cfg.Bucket,
		cdnDomain: cfg.CDNDomain,
		expires:   expires,
	}, nil
}

// PublicURL 配置了 CDN 时直接拼接，否则生成签名 URL
func (s *S3Images) PublicURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key), nil
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", fmt.Errorf("生成签名URL失败: %w", err)
	}
	return req.URL, nil
}
