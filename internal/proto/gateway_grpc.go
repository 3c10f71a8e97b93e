package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "forkvault.gateway.Gateway"

const (
	Gateway_Ping_FullMethodName             = "/" + ServiceName + "/Ping"
	Gateway_GetAccount_FullMethodName       = "/" + ServiceName + "/GetAccount"
	Gateway_ListAccounts_FullMethodName     = "/" + ServiceName + "/ListAccounts"
	Gateway_FindAccountByKey_FullMethodName = "/" + ServiceName + "/FindAccountByKey"
	Gateway_InsertAccount_FullMethodName    = "/" + ServiceName + "/InsertAccount"
	Gateway_UpdateAccount_FullMethodName    = "/" + ServiceName + "/UpdateAccount"
	Gateway_DeleteAccount_FullMethodName    = "/" + ServiceName + "/DeleteAccount"
	Gateway_ListFiles_FullMethodName        = "/" + ServiceName + "/ListFiles"
	Gateway_InsertFile_FullMethodName       = "/" + ServiceName + "/InsertFile"
	Gateway_DeleteFileRecord_FullMethodName = "/" + ServiceName + "/DeleteFileRecord"
	Gateway_UploadBlob_FullMethodName       = "/" + ServiceName + "/UploadBlob"
	Gateway_DownloadBlob_FullMethodName     = "/" + ServiceName + "/DownloadBlob"
	Gateway_DeleteBlob_FullMethodName       = "/" + ServiceName + "/DeleteBlob"
)

// GatewayClient is the client API for the Gateway service.
type GatewayClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error)
	ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error)
	FindAccountByKey(ctx context.Context, in *FindAccountByKeyRequest, opts ...grpc.CallOption) (*AccountResponse, error)
	InsertAccount(ctx context.Context, in *InsertAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error)
	UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error)
	ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error)
	InsertFile(ctx context.Context, in *InsertFileRequest, opts ...grpc.CallOption) (*FileResponse, error)
	DeleteFileRecord(ctx context.Context, in *DeleteFileRecordRequest, opts ...grpc.CallOption) (*Empty, error)
	UploadBlob(ctx context.Context, in *UploadBlobRequest, opts ...grpc.CallOption) (*Empty, error)
	DownloadBlob(ctx context.Context, in *DownloadBlobRequest, opts ...grpc.CallOption) (*DownloadBlobResponse, error)
	DeleteBlob(ctx context.Context, in *DeleteBlobRequest, opts ...grpc.CallOption) (*Empty, error)
}

type gatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewGatewayClient(cc grpc.ClientConnInterface) GatewayClient {
	return &gatewayClient{cc: cc}
}

// invoke forces the JSON content-subtype on every call.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, Gateway_Ping_FullMethodName, in, opts)
}

func (c *gatewayClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, Gateway_GetAccount_FullMethodName, in, opts)
}

func (c *gatewayClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c.cc, Gateway_ListAccounts_FullMethodName, in, opts)
}

func (c *gatewayClient) FindAccountByKey(ctx context.Context, in *FindAccountByKeyRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, Gateway_FindAccountByKey_FullMethodName, in, opts)
}

func (c *gatewayClient) InsertAccount(ctx context.Context, in *InsertAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, Gateway_InsertAccount_FullMethodName, in, opts)
}

func (c *gatewayClient) UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Gateway_UpdateAccount_FullMethodName, in, opts)
}

func (c *gatewayClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Gateway_DeleteAccount_FullMethodName, in, opts)
}

func (c *gatewayClient) ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error) {
	return invoke[ListFilesResponse](ctx, c.cc, Gateway_ListFiles_FullMethodName, in, opts)
}

func (c *gatewayClient) InsertFile(ctx context.Context, in *InsertFileRequest, opts ...grpc.CallOption) (*FileResponse, error) {
	return invoke[FileResponse](ctx, c.cc, Gateway_InsertFile_FullMethodName, in, opts)
}

func (c *gatewayClient) DeleteFileRecord(ctx context.Context, in *DeleteFileRecordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Gateway_DeleteFileRecord_FullMethodName, in, opts)
}

func (c *gatewayClient) UploadBlob(ctx context.Context, in *UploadBlobRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Gateway_UploadBlob_FullMethodName, in, opts)
}

func (c *gatewayClient) DownloadBlob(ctx context.Context, in *DownloadBlobRequest, opts ...grpc.CallOption) (*DownloadBlobResponse, error) {
	return invoke[DownloadBlobResponse](ctx, c.cc, Gateway_DownloadBlob_FullMethodName, in, opts)
}

func (c *gatewayClient) DeleteBlob(ctx context.Context, in *DeleteBlobRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Gateway_DeleteBlob_FullMethodName, in, opts)
}

// GatewayServer is the server API for the Gateway service. Implementations
// should embed UnimplementedGatewayServer.
type GatewayServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*AccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	FindAccountByKey(context.Context, *FindAccountByKeyRequest) (*AccountResponse, error)
	InsertAccount(context.Context, *InsertAccountRequest) (*AccountResponse, error)
	UpdateAccount(context.Context, *UpdateAccountRequest) (*Empty, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error)
	ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error)
	InsertFile(context.Context, *InsertFileRequest) (*FileResponse, error)
	DeleteFileRecord(context.Context, *DeleteFileRecordRequest) (*Empty, error)
	UploadBlob(context.Context, *UploadBlobRequest) (*Empty, error)
	DownloadBlob(context.Context, *DownloadBlobRequest) (*DownloadBlobResponse, error)
	DeleteBlob(context.Context, *DeleteBlobRequest) (*Empty, error)
}

type UnimplementedGatewayServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedGatewayServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedGatewayServer) GetAccount(context.Context, *GetAccountRequest) (*AccountResponse, error) {
	return nil, unimplemented("GetAccount")
}
func (UnimplementedGatewayServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, unimplemented("ListAccounts")
}
func (UnimplementedGatewayServer) FindAccountByKey(context.Context, *FindAccountByKeyRequest) (*AccountResponse, error) {
	return nil, unimplemented("FindAccountByKey")
}
func (UnimplementedGatewayServer) InsertAccount(context.Context, *InsertAccountRequest) (*AccountResponse, error) {
	return nil, unimplemented("InsertAccount")
}
func (UnimplementedGatewayServer) UpdateAccount(context.Context, *UpdateAccountRequest) (*Empty, error) {
	return nil, unimplemented("UpdateAccount")
}
func (UnimplementedGatewayServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error) {
	return nil, unimplemented("DeleteAccount")
}
func (UnimplementedGatewayServer) ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error) {
	return nil, unimplemented("ListFiles")
}
func (UnimplementedGatewayServer) InsertFile(context.Context, *InsertFileRequest) (*FileResponse, error) {
	return nil, unimplemented("InsertFile")
}
func (UnimplementedGatewayServer) DeleteFileRecord(context.Context, *DeleteFileRecordRequest) (*Empty, error) {
	return nil, unimplemented("DeleteFileRecord")
}
func (UnimplementedGatewayServer) UploadBlob(context.Context, *UploadBlobRequest) (*Empty, error) {
	return nil, unimplemented("UploadBlob")
}
func (UnimplementedGatewayServer) DownloadBlob(context.Context, *DownloadBlobRequest) (*DownloadBlobResponse, error) {
	return nil, unimplemented("DownloadBlob")
}
func (UnimplementedGatewayServer) DeleteBlob(context.Context, *DeleteBlobRequest) (*Empty, error) {
	return nil, unimplemented("DeleteBlob")
}

// unary builds a MethodDesc that decodes Req and dispatches to call,
// passing through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(GatewayServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GatewayServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GatewayServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Gateway_ServiceDesc is the grpc.ServiceDesc for the Gateway service.
var Gateway_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", GatewayServer.Ping),
		unary("GetAccount", GatewayServer.GetAccount),
		unary("ListAccounts", GatewayServer.ListAccounts),
		unary("FindAccountByKey", GatewayServer.FindAccountByKey),
		unary("InsertAccount", GatewayServer.InsertAccount),
		unary("UpdateAccount", GatewayServer.UpdateAccount),
		unary("DeleteAccount", GatewayServer.DeleteAccount),
		unary("ListFiles", GatewayServer.ListFiles),
		unary("InsertFile", GatewayServer.InsertFile),
		unary("DeleteFileRecord", GatewayServer.DeleteFileRecord),
		unary("UploadBlob", GatewayServer.UploadBlob),
		unary("DownloadBlob", GatewayServer.DownloadBlob),
		unary("DeleteBlob", GatewayServer.DeleteBlob),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "forkvault/gateway.proto",
}

func RegisterGatewayServer(s grpc.ServiceRegistrar, srv GatewayServer) {
	s.RegisterService(&Gateway_ServiceDesc, srv)
}
