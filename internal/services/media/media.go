package media

import (
	"errors"
	"io"
)

// 媒体子系统哨兵错误
var (
	ErrEmptyUpload     = errors.New("media: empty or missing upload")
	ErrUnsupportedType = errors.New("media: unsupported file type")
	ErrSizeExceeded    = errors.New("media: file size exceeds limit")
	ErrBatchTooLarge   = errors.New("media: too many files in one batch")
	ErrTooManyAssets   = errors.New("media: owner asset limit reached")
)

// Upload 请求层递交的上传描述
// OriginalName 与 DeclaredMime 均来自客户端，不可信，
// 只用于展示和分类，绝不参与路径构造
type Upload struct {
	OriginalName string
	DeclaredMime string
	ByteSize     int64
	Content      io.Reader
}
