package common

// APIKeyHeaderName is the gRPC metadata key carrying the gateway API key
// on outbound requests.
const APIKeyHeaderName = "api_key"

// DefaultMaxUploadSize is the per-file upload limit (10 MiB).
const DefaultMaxUploadSize int64 = 10 * 1024 * 1024

// MaxMessageSize is the gRPC message limit needed to carry a blob of
// maxUpload bytes: JSON base64 grows data by a third, plus envelope room.
func MaxMessageSize(maxUpload int64) int {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadSize
	}
	return int(maxUpload*2 + 1<<20)
}
