// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/storage"

	"github.com/doctajus/lexhub/internal/app/system/blob"
)

// newBlobProvider selects the blob backend from config. Local disk is
// the default; "s3" switches to the configured bucket and public URL.
func newBlobProvider(appCfg AppConfig) (*blob.Provider, error) {
	if appCfg.StorageType == "s3" {
		backend, err := storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return blob.New(backend, appCfg.StorageS3URL), nil
	}
	return blob.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
}
