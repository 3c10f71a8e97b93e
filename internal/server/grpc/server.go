package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/forkvault/internal/gateway"
	"github.com/dmitrijs2005/forkvault/internal/logging"
	pb "github.com/dmitrijs2005/forkvault/internal/proto"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	pb.UnimplementedGatewayServer
	address    string
	gateway    gateway.Gateway
	logger     logging.Logger
	apiKey     []byte
	maxMsgSize int
}

// NewGRPCServer serves gw on address. An empty apiKey disables the API
// key check. maxMsgSize bounds both directions and must fit a full blob.
func NewGRPCServer(address string, l logging.Logger, gw gateway.Gateway, apiKey string, maxMsgSize int) *GRPCServer {
	return &GRPCServer{
		address:    address,
		gateway:    gw,
		logger:     l.With("module", "grpc_server"),
		apiKey:     []byte(apiKey),
		maxMsgSize: maxMsgSize,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.apiKeyInterceptor),
	}
	if s.maxMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(s.maxMsgSize), grpc.MaxSendMsgSize(s.maxMsgSize))
	}
	srv := grpc.NewServer(opts...)
	pb.RegisterGatewayServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	return srv.Serve(lis)
}
