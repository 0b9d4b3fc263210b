package media

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/anoixa/content-hub/utils"
	"github.com/gin-gonic/gin"
)

// assetView 返回给调用方的资产视图
type assetView struct {
	ID           uint   `json:"id"`
	StorageName  string `json:"storage_name"`
	OriginalName string `json:"original_name"`
	Class        string `json:"class"`
	ByteSize     int64  `json:"byte_size"`
	IsPrimary    bool   `json:"is_primary"`
	SortPosition int    `json:"sort_position"`
	Link         string `json:"link"`
}

func toAssetView(asset *models.Asset) assetView {
	return assetView{
		ID:           asset.ID,
		StorageName:  asset.StorageName,
		OriginalName: asset.OriginalName,
		Class:        string(asset.Class),
		ByteSize:     asset.ByteSize,
		IsPrimary:    asset.IsPrimary,
		SortPosition: asset.SortPosition,
		Link:         utils.BuildPublicLink(asset.StorageName),
	}
}

type batchItemView struct {
	FileName string     `json:"file_name"`
	Error    string     `json:"error,omitempty"`
	Asset    *assetView `json:"asset,omitempty"`
}

// parseOwner 解析路径中的持有者参数
func parseOwner(c *gin.Context) (string, uint, bool) {
	ownerType, ok := ownerTypeFromParam(c.Param("ownerType"))
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Unknown owner type")
		return "", 0, false
	}
	ownerID, err := strconv.ParseUint(c.Param("ownerID"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid owner id")
		return "", 0, false
	}
	return ownerType, uint(ownerID), true
}

func uploadFromFileHeader(fh *multipart.FileHeader) (*mediaSvc.Upload, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &mediaSvc.Upload{
		OriginalName: fh.Filename,
		DeclaredMime: fh.Header.Get("Content-Type"),
		ByteSize:     fh.Size,
		Content:      file,
	}
	return upload, func() { _ = file.Close() }, nil
}

// AttachAsset 上传单个文件并附加到内容实体
// POST /api/v1/:ownerType/:ownerID/assets
func (h *Handler) AttachAsset(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "No file provided")
		return
	}

	upload, closeFile, err := uploadFromFileHeader(fh)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer closeFile()

	asset, err := h.uploadService.Attach(c.Request.Context(), ownerType, ownerID, upload)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	view := toAssetView(asset)
	common.RespondSuccessMessage(c, "File uploaded", view)
}

// AttachAssets 批量上传并附加到内容实体
// POST /api/v1/:ownerType/:ownerID/assets/batch
// 单个文件失败不影响其余文件，结果逐项返回
func (h *Handler) AttachAssets(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		common.RespondError(c, http.StatusBadRequest, "No files provided")
		return
	}

	uploads := make([]*mediaSvc.Upload, 0, len(fileHeaders))
	closers := make([]func(), 0, len(fileHeaders))
	defer func() {
		for _, closeFile := range closers {
			closeFile()
		}
	}()

	for _, fh := range fileHeaders {
		upload, closeFile, err := uploadFromFileHeader(fh)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		uploads = append(uploads, upload)
		closers = append(closers, closeFile)
	}

	results, err := h.uploadService.AttachBatch(c.Request.Context(), ownerType, ownerID, uploads)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	views := make([]batchItemView, 0, len(results))
	attached := 0
	for _, result := range results {
		item := batchItemView{FileName: result.FileName, Error: result.Error}
		if result.Asset != nil {
			view := toAssetView(result.Asset)
			item.Asset = &view
			attached++
		}
		views = append(views, item)
	}

	common.RespondSuccess(c, gin.H{
		"attached": attached,
		"failed":   len(views) - attached,
		"results":  views,
	})
}
