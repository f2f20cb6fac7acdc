package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"expenseapi/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, wantErr: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "reports"}, wantErr: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, wantErr: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
