// internal/storage/factory.go
package storage

import "fmt"

// NewDriver picks a storage backend from configuration.
func NewDriver(cfg *Config) (Driver, error) {
	switch cfg.Driver {
	case "local", "":
		uploadsPath := cfg.UploadsPath
		if uploadsPath == "" {
			uploadsPath = "./uploads"
		}
		return NewLocalDriver(uploadsPath), nil

	case "s3":
		return NewS3Driver(cfg)

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
