package client

import (
	"context"

	"github.com/dmitrijs2005/forkvault/internal/gateway"
)

type Client interface {
	gateway.Gateway
	Ping(ctx context.Context) error
	Close() error
}
