package config

import (
	"strconv"
	"sync"
)

type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	MaxFileSize int64
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		maxSize := int64(5 * 1024 * 1024)
		if v := getEnv("MAX_FILE_SIZE", ""); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				maxSize = parsed
			}
		}
		storageConfig = &StorageConfig{
			Endpoint:    getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:   getEnv("MINIO_SECRET_KEY", ""),
			Bucket:      getEnv("MINIO_BUCKET", "interview-cvs"),
			UseSSL:      getEnv("MINIO_USE_SSL", "false") == "true",
			MaxFileSize: maxSize,
		}
	})
	return storageConfig
}
