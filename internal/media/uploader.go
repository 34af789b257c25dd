// Package media はロゴ・履歴書ファイルの外部ストレージへのアップロードを提供する。
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader はメディアファイルのアップロードインターフェース。
// 成功時は永続URLを返し、そのURLがデータベースに保存される。
type Uploader interface {
	// Upload はファイルをアップロードし、公開アクセス用の永続URLを返す。
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3Config はS3互換ストレージの接続設定。
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string // MinIO等の互換ストレージ用。空ならAWS標準エンドポイント
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // 公開URLのベース。空ならAWS標準の仮想ホスト形式
	Timeout       time.Duration
}

// S3Uploader はS3互換ストレージへのUploader実装。
// 外部プロバイダの停止でハンドラが無期限にブロックしないよう、
// 各アップロードに設定されたタイムアウトを適用する。
type S3Uploader struct {
	client *s3.Client
	config S3Config
}

// NewS3Uploader はS3Uploaderを生成する。
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO等はパス形式のみ対応
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client: client,
		config: cfg,
	}, nil
}

// Upload はファイルをアップロードし、公開アクセス用の永続URLを返す。
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.config.Timeout)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.config.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return u.PublicURL(key), nil
}

// PublicURL はオブジェクトキーから公開URLを構築する。
func (u *S3Uploader) PublicURL(key string) string {
	if u.config.PublicBaseURL != "" {
		return strings.TrimSuffix(u.config.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.config.Bucket, u.config.Region, key)
}

// StorageKey は衝突しないオブジェクトキーを生成する。
// 日付プレフィックスでバケット内を整理する。
func StorageKey(kind string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v", kind, d.Year(), int(d.Month()), uuid.New())
}

// LatencyRecorder はアップロードのレイテンシを記録するインターフェース。
type LatencyRecorder interface {
	RecordUploadLatency(duration time.Duration)
}

// instrumentedUploader はUploaderをラップし、各アップロードのレイテンシを計測する。
type instrumentedUploader struct {
	inner    Uploader
	recorder LatencyRecorder
}

// NewInstrumentedUploader はアップロードのレイテンシを記録するUploaderを返す。
// 失敗したアップロードも計測対象に含める。
func NewInstrumentedUploader(inner Uploader, recorder LatencyRecorder) Uploader {
	return &instrumentedUploader{inner: inner, recorder: recorder}
}

func (u *instrumentedUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	start := time.Now()
	url, err := u.inner.Upload(ctx, key, contentType, body)
	u.recorder.RecordUploadLatency(time.Since(start))
	return url, err
}

// compile-time interface check
var _ Uploader = (*S3Uploader)(nil)
