package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	UploadKeys(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	cryptoKeyUploadService    keys.CryptoKeyUploadService
	cryptoKeyDownloadService  keys.CryptoKeyDownloadService
	cryptoKeyMetadataService  keys.CryptoKeyMetadataService
	cryptoKeyOperationService keys.CryptoKeyOperationService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(
	cryptoKeyUploadService keys.CryptoKeyUploadService,
	cryptoKeyDownloadService keys.CryptoKeyDownloadService,
	cryptoKeyMetadataService keys.CryptoKeyMetadataService,
	cryptoKeyOperationService keys.CryptoKeyOperationService,
) KeyHandler {
	return &keyHandler{
		cryptoKeyUploadService:    cryptoKeyUploadService,
		cryptoKeyDownloadService:  cryptoKeyDownloadService,
		cryptoKeyMetadataService:  cryptoKeyMetadataService,
		cryptoKeyOperationService: cryptoKeyOperationService,
	}
}

// UploadKeys handles the POST request to generate and store an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a textbook RSA key pair, optionally overriding the public exponent and prime digit range, and store both keys.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body UploadKeyRequest false "Generation parameters"
// @Success 201 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) UploadKeys(ctx *gin.Context) {
	var request UploadKeyRequest

	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid key data: %v", err)})
			return
		}
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err)})
		return
	}

	userID := uuid.NewString() // TODO(MGTheTrain): extract user id from JWT

	cryptoKeyMetas, err := handler.cryptoKeyUploadService.Upload(ctx.Request.Context(), userID, request.Params())
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("error generating keys: %v", err)})
		return
	}

	listResponse := make([]CryptoKeyMetaResponse, 0, len(cryptoKeyMetas))
	for _, cryptoKeyMeta := range cryptoKeyMetas {
		listResponse = append(listResponse, NewCryptoKeyMetaResponse(cryptoKeyMeta))
	}

	ctx.JSON(http.StatusCreated, listResponse)
}

// ListMetadata handles the GET request to list key metadata with optional query parameters
// @Summary List key metadata based on query parameters
// @Description Fetch a list of key metadata filtered by type, key pair and creation date, with pagination and sorting options.
// @Tags Key
// @Accept json
// @Produce json
// @Param algorithm query string false "Algorithm"
// @Param type query string false "Key Type"
// @Param keyPairId query string false "Key Pair ID"
// @Param dateTimeCreated query string false "Key Creation Date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	query := keys.NewCryptoKeyQuery()
	query.Algorithm = ctx.Query("algorithm")
	query.Type = ctx.Query("type")
	query.KeyPairID = ctx.Query("keyPairId")
	query.SortBy = ctx.Query("sortBy")
	query.SortOrder = ctx.Query("sortOrder")

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid dateTimeCreated: %v", err)})
			return
		}
		query.DateTimeCreated = parsedTime
	}

	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		if raw := ctx.Query(name); len(raw) > 0 {
			value, err := strconv.Atoi(raw)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid %s: %s", name, raw)})
				return
			}
			*target = value
		}
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err)})
		return
	}

	cryptoKeyMetas, err := handler.cryptoKeyMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := make([]CryptoKeyMetaResponse, 0, len(cryptoKeyMetas))
	for _, cryptoKeyMeta := range cryptoKeyMetas {
		listResponse = append(listResponse, NewCryptoKeyMetaResponse(cryptoKeyMeta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID handles the GET request to retrieve key metadata by ID
// @Summary Retrieve key metadata by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} CryptoKeyMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	cryptoKeyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx, keyID)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("could not get key with id %s: %v", keyID, err)})
		return
	}

	ctx.JSON(http.StatusOK, NewCryptoKeyMetaResponse(cryptoKeyMeta))
}

// DownloadByID handles GET request to download a public key by ID
// @Summary Download a public key by ID
// @Description Download a public key in PEM format. Private keys cannot be downloaded.
// @Tags Key
// @Produce application/x-pem-file
// @Param id path string true "Key ID"
// @Success 200 {file} file "Public key in PEM format"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/file [get]
func (handler *keyHandler) DownloadByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	keyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx, keyID)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("could not get key with id %s: %v", keyID, err)})
		return
	}

	if keyMeta.Type != keys.KeyTypePublic {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "download forbidden for private keys"})
		return
	}

	pemBytes, err := handler.cryptoKeyDownloadService.DownloadByID(ctx, keyID)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("could not download key with id %s: %v", keyID, err)})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-public-key.pem", keyID))
	ctx.Data(http.StatusOK, "application/x-pem-file", pemBytes)
}

// DeleteByID handles the DELETE request to delete a key by ID
// @Summary Delete a key by ID
// @Description Delete a key from the vault and its metadata.
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.cryptoKeyMetadataService.DeleteByID(ctx, keyID); err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("error deleting key with id %s: %v", keyID, err)})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Encrypt handles the POST request to encrypt data with a public key
// @Summary Encrypt data with a public key
// @Description Encrypt base64 encoded data block by block with textbook RSA. No padding is applied.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Public Key ID"
// @Param requestBody body DataRequest true "Plaintext"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/encrypt [post]
func (handler *keyHandler) Encrypt(ctx *gin.Context) {
	handler.apply(ctx, "encrypt", handler.cryptoKeyOperationService.Encrypt)
}

// Decrypt handles the POST request to decrypt data with a private key
// @Summary Decrypt data with a private key
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Private Key ID"
// @Param requestBody body DataRequest true "Ciphertext"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/decrypt [post]
func (handler *keyHandler) Decrypt(ctx *gin.Context) {
	handler.apply(ctx, "decrypt", handler.cryptoKeyOperationService.Decrypt)
}

func (handler *keyHandler) apply(ctx *gin.Context, operation string, fn func(ctx context.Context, keyID string, data []byte) ([]byte, error)) {
	keyID := ctx.Param("id")

	var request DataRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	result, err := fn(ctx.Request.Context(), keyID, request.Data)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("failed to %s with key %s: %v", operation, keyID, err)})
		return
	}

	ctx.JSON(http.StatusOK, DataResponse{Data: result})
}
