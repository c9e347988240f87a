// file: internals/helpers/oss/oss_client.go
package oss

import (
	"bytes"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"pelatihanku_backend/internals/configs"
)

/* ===============================
   Client OSS (media storage)
=================================*/

type Client struct {
	bucket   *alioss.Bucket
	endpoint string
	name     string
}

var (
	defaultClient *Client
	initOnce      sync.Once
	initErr       error
)

// Default me-lazy-init client dari ENV (OSS_*).
func Default() (*Client, error) {
	initOnce.Do(func() {
		defaultClient, initErr = NewClient(
			configs.OSSEndpoint,
			configs.OSSAccessKeyID,
			configs.OSSAccessSecret,
			configs.OSSBucket,
		)
	})
	return defaultClient, initErr
}

func NewClient(endpoint, accessKeyID, accessSecret, bucketName string) (*Client, error) {
	if endpoint == "" || accessKeyID == "" || accessSecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: konfigurasi OSS_* belum lengkap")
	}
	cli, err := alioss.New(endpoint, accessKeyID, accessSecret)
	if err != nil {
		return nil, err
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &Client{bucket: bucket, endpoint: endpoint, name: bucketName}, nil
}

// UploadResult: identitas objek + URL publik.
type UploadResult struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Upload menaruh bytes di folder tertentu dengan nama acak.
func (c *Client) Upload(data []byte, folder, ext string) (UploadResult, error) {
	key := path.Join(folder, time.Now().Format("2006/01"), uuid.NewString()+ext)
	if err := c.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return UploadResult{}, fmt.Errorf("oss: put object: %w", err)
	}
	return UploadResult{PublicID: key, URL: c.PublicURL(key)}, nil
}

// Destroy menghapus objek by public id (key).
func (c *Client) Destroy(publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	if err := c.bucket.DeleteObject(publicID); err != nil {
		return fmt.Errorf("oss: delete object: %w", err)
	}
	log.Printf("[OSS] objek %s dihapus", publicID)
	return nil
}

// PublicURL: virtual-host style bucket.endpoint/key.
func (c *Client) PublicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", c.name, host, key)
}
