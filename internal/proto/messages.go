package proto

import "github.com/dmitrijs2005/forkvault/internal/models"

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetAccountRequest struct {
	ID string `json:"id"`
}

type FindAccountByKeyRequest struct {
	ProductKey string `json:"product_key"`
}

type AccountResponse struct {
	Account *models.Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*models.Account `json:"accounts"`
}

type InsertAccountRequest struct {
	Account models.NewAccount `json:"account"`
}

type UpdateAccountRequest struct {
	ID     string               `json:"id"`
	Update models.AccountUpdate `json:"update"`
}

type DeleteAccountRequest struct {
	ID string `json:"id"`
}

type ListFilesRequest struct {
	OwnerID string `json:"owner_id"`
}

type ListFilesResponse struct {
	Files []*models.FileRecord `json:"files"`
}

type InsertFileRequest struct {
	File models.NewFile `json:"file"`
}

type FileResponse struct {
	File *models.FileRecord `json:"file"`
}

type DeleteFileRecordRequest struct {
	ID string `json:"id"`
}

// UploadBlobRequest carries the whole blob; Data is base64 in JSON.
type UploadBlobRequest struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

type DownloadBlobRequest struct {
	Path string `json:"path"`
}

type DownloadBlobResponse struct {
	Data []byte `json:"data"`
}

type DeleteBlobRequest struct {
	Path string `json:"path"`
}
