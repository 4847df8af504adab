package mediahost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client 是媒体托管服务的客户端：接收一个本地文件路径，上传后返回一个可持久访问的URL，
// 也支持拿着URL反推出对象Key来删除。底层是任意S3兼容的对象存储
type Client struct {
	uploader *manager.Uploader
	s3       *s3.Client
	bucket   string
	baseURL  string
}

// NewClientFromEnv 从环境变量装配客户端：S3_BUCKET（必填）、S3_REGION、S3_ENDPOINT（MinIO等自建存储用）、S3_PUBLIC_BASE_URL
func NewClientFromEnv(ctx context.Context) (*Client, error) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil, fmt.Errorf("mediahost: 环境变量S3_BUCKET不能为空")
	}
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	// 指定了S3_ENDPOINT就说明对接的是MinIO这类自建存储，需要自定义endpoint解析
	if endpoint := strings.TrimSpace(os.Getenv("S3_ENDPOINT")); endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("mediahost: 加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// 自建存储一般只支持path-style寻址
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &Client{
		uploader: uploader,
		s3:       client,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
	}, nil
}

// Upload 上传本地文件：1、打开本地暂存文件 2、用时间戳+原文件名拼出对象Key防止重名覆盖 3、分片上传 4、返回可公开访问的URL
// 本地暂存文件的清理不归这里管，由调用方负责（无论上传成败都要删）
func (c *Client) Upload(ctx context.Context, localPath, folder string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("mediahost: 打开本地文件失败: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%d_%s", strings.Trim(folder, "/"), time.Now().UnixNano(), filepath.Base(localPath))

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   f,
		ACL:    s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("mediahost: 上传%s失败: %w", key, err)
	}

	if c.baseURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", c.baseURL, key), nil
}

// Delete 按URL删除对象：从持久URL里剥出对象Key，再调DeleteObject
func (c *Client) Delete(ctx context.Context, publicURL string) error {
	key := c.keyFromURL(publicURL)
	if key == "" {
		return fmt.Errorf("mediahost: 无法从URL解析出对象Key: %s", publicURL)
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("mediahost: 删除%s失败: %w", key, err)
	}
	return nil
}

func (c *Client) keyFromURL(publicURL string) string {
	if c.baseURL != "" && strings.HasPrefix(publicURL, c.baseURL+"/") {
		return strings.TrimPrefix(publicURL, c.baseURL+"/")
	}
	// baseURL没配的时候，Upload返回的就是裸Key
	if !strings.Contains(publicURL, "://") {
		return strings.TrimLeft(publicURL, "/")
	}
	return ""
}
