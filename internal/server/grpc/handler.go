package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/forkvault/internal/common"
	pb "github.com/dmitrijs2005/forkvault/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC codes. Unknown errors are logged
// and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrFileTooLarge):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, common.ErrInvalidProductKey), errors.Is(err, common.ErrEmptyName):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error(ctx, "request failed", "op", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetAccount(ctx context.Context, req *pb.GetAccountRequest) (*pb.AccountResponse, error) {
	a, err := s.gateway.GetAccount(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "GetAccount", err)
	}
	return &pb.AccountResponse{Account: a}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *pb.ListAccountsRequest) (*pb.ListAccountsResponse, error) {
	list, err := s.gateway.ListAccounts(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "ListAccounts", err)
	}
	return &pb.ListAccountsResponse{Accounts: list}, nil
}

func (s *GRPCServer) FindAccountByKey(ctx context.Context, req *pb.FindAccountByKeyRequest) (*pb.AccountResponse, error) {
	a, err := s.gateway.FindAccountByKey(ctx, req.ProductKey)
	if err != nil {
		return nil, s.toStatus(ctx, "FindAccountByKey", err)
	}
	return &pb.AccountResponse{Account: a}, nil
}

func (s *GRPCServer) InsertAccount(ctx context.Context, req *pb.InsertAccountRequest) (*pb.AccountResponse, error) {
	a, err := s.gateway.InsertAccount(ctx, req.Account)
	if err != nil {
		return nil, s.toStatus(ctx, "InsertAccount", err)
	}
	return &pb.AccountResponse{Account: a}, nil
}

func (s *GRPCServer) UpdateAccount(ctx context.Context, req *pb.UpdateAccountRequest) (*pb.Empty, error) {
	if err := s.gateway.UpdateAccount(ctx, req.ID, req.Update); err != nil {
		return nil, s.toStatus(ctx, "UpdateAccount", err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *pb.DeleteAccountRequest) (*pb.Empty, error) {
	if err := s.gateway.DeleteAccount(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, "DeleteAccount", err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ListFiles(ctx context.Context, req *pb.ListFilesRequest) (*pb.ListFilesResponse, error) {
	files, err := s.gateway.ListFiles(ctx, req.OwnerID)
	if err != nil {
		return nil, s.toStatus(ctx, "ListFiles", err)
	}
	return &pb.ListFilesResponse{Files: files}, nil
}

func (s *GRPCServer) InsertFile(ctx context.Context, req *pb.InsertFileRequest) (*pb.FileResponse, error) {
	f, err := s.gateway.InsertFile(ctx, req.File)
	if err != nil {
		return nil, s.toStatus(ctx, "InsertFile", err)
	}
	return &pb.FileResponse{File: f}, nil
}

func (s *GRPCServer) DeleteFileRecord(ctx context.Context, req *pb.DeleteFileRecordRequest) (*pb.Empty, error) {
	if err := s.gateway.DeleteFileRecord(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, "DeleteFileRecord", err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) UploadBlob(ctx context.Context, req *pb.UploadBlobRequest) (*pb.Empty, error) {
	if err := s.gateway.UploadBlob(ctx, req.Path, req.Data); err != nil {
		return nil, s.toStatus(ctx, "UploadBlob", err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) DownloadBlob(ctx context.Context, req *pb.DownloadBlobRequest) (*pb.DownloadBlobResponse, error) {
	data, err := s.gateway.DownloadBlob(ctx, req.Path)
	if err != nil {
		return nil, s.toStatus(ctx, "DownloadBlob", err)
	}
	return &pb.DownloadBlobResponse{Data: data}, nil
}

func (s *GRPCServer) DeleteBlob(ctx context.Context, req *pb.DeleteBlobRequest) (*pb.Empty, error) {
	if err := s.gateway.DeleteBlob(ctx, req.Path); err != nil {
		return nil, s.toStatus(ctx, "DeleteBlob", err)
	}
	return &pb.Empty{}, nil
}
