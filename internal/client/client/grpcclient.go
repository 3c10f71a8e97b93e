package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/models"
	pb "github.com/dmitrijs2005/forkvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	apiKey      string
	maxMsgSize  int
	conn        *grpc.ClientConn
	client      pb.GatewayClient
}

func withAPIKey(ctx context.Context, key string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.APIKeyHeaderName, key)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) apiKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.apiKey != "" {
		ctx = withAPIKey(ctx, s.apiKey)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGatewayClient prepares a lazy connection to endpointURL. maxUpload
// sizes the message limit so that a blob of that many bytes fits.
func NewGatewayClient(endpointURL, apiKey string, maxUpload int64, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		apiKey:      apiKey,
		maxMsgSize:  common.MaxMessageSize(maxUpload),
	}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials with insecure credentials unless opts override
// them. Extra opts are applied after the defaults.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.apiKeyInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(s.maxMsgSize),
			grpc.MaxCallSendMsgSize(s.maxMsgSize),
		),
	}
	conn, err := grpc.NewClient(s.endpointURL, append(base, opts...)...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewGatewayClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	resp, err := s.client.GetAccount(ctx, &pb.GetAccountRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return accountOrNotFound(resp)
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	resp, err := s.client.ListAccounts(ctx, &pb.ListAccountsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Accounts == nil {
		return []*models.Account{}, nil
	}
	return resp.Accounts, nil
}

func (s *GRPCClient) FindAccountByKey(ctx context.Context, productKey string) (*models.Account, error) {
	resp, err := s.client.FindAccountByKey(ctx, &pb.FindAccountByKeyRequest{ProductKey: productKey})
	if err != nil {
		return nil, s.mapError(err)
	}
	return accountOrNotFound(resp)
}

func (s *GRPCClient) InsertAccount(ctx context.Context, a models.NewAccount) (*models.Account, error) {
	resp, err := s.client.InsertAccount(ctx, &pb.InsertAccountRequest{Account: a})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Account == nil {
		return nil, fmt.Errorf("insert account: empty response")
	}
	return resp.Account, nil
}

func (s *GRPCClient) UpdateAccount(ctx context.Context, id string, u models.AccountUpdate) error {
	_, err := s.client.UpdateAccount(ctx, &pb.UpdateAccountRequest{ID: id, Update: u})
	return s.mapError(err)
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, id string) error {
	_, err := s.client.DeleteAccount(ctx, &pb.DeleteAccountRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) ListFiles(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	resp, err := s.client.ListFiles(ctx, &pb.ListFilesRequest{OwnerID: ownerID})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Files == nil {
		return []*models.FileRecord{}, nil
	}
	return resp.Files, nil
}

func (s *GRPCClient) InsertFile(ctx context.Context, f models.NewFile) (*models.FileRecord, error) {
	resp, err := s.client.InsertFile(ctx, &pb.InsertFileRequest{File: f})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.File == nil {
		return nil, fmt.Errorf("insert file: empty response")
	}
	return resp.File, nil
}

func (s *GRPCClient) DeleteFileRecord(ctx context.Context, id string) error {
	_, err := s.client.DeleteFileRecord(ctx, &pb.DeleteFileRecordRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) UploadBlob(ctx context.Context, path string, data []byte) error {
	_, err := s.client.UploadBlob(ctx, &pb.UploadBlobRequest{Path: path, Data: data})
	return s.mapError(err)
}

func (s *GRPCClient) DownloadBlob(ctx context.Context, path string) ([]byte, error) {
	resp, err := s.client.DownloadBlob(ctx, &pb.DownloadBlobRequest{Path: path})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Data == nil {
		return []byte{}, nil
	}
	return resp.Data, nil
}

func (s *GRPCClient) DeleteBlob(ctx context.Context, path string) error {
	_, err := s.client.DeleteBlob(ctx, &pb.DeleteBlobRequest{Path: path})
	return s.mapError(err)
}

func accountOrNotFound(resp *pb.AccountResponse) (*models.Account, error) {
	if resp.Account == nil {
		return nil, common.ErrorNotFound
	}
	return resp.Account, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.ResourceExhausted:
		return common.ErrFileTooLarge
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
