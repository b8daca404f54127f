//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/spaceflight-news/internal/user/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, reg prometheus.Registerer) (*http.UserHandler, error) {
	wire.Build(HTTPSet)
	return nil, nil
}
