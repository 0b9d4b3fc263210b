package media

import (
	"fmt"
	"strings"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/utils/format"
)

// Policy 上传校验策略，构造后不可变
type Policy struct {
	allowedImageTypes map[string]bool
	allowedVideoTypes map[string]bool
	imageMaxBytes     int64
	videoMaxBytes     int64
}

// NewPolicy 从配置构建校验策略
func NewPolicy(cfg *config.Config) Policy {
	return Policy{
		allowedImageTypes: toSet(cfg.AllowedImageTypes()),
		allowedVideoTypes: toSet(cfg.AllowedVideoTypes()),
		imageMaxBytes:     int64(cfg.UploadImageMaxSizeMB) << 20,
		videoMaxBytes:     int64(cfg.UploadVideoMaxSizeMB) << 20,
	}
}

// NewPolicyWith 以显式参数构建校验策略
func NewPolicyWith(imageTypes, videoTypes []string, imageMaxBytes, videoMaxBytes int64) Policy {
	return Policy{
		allowedImageTypes: toSet(imageTypes),
		allowedVideoTypes: toSet(videoTypes),
		imageMaxBytes:     imageMaxBytes,
		videoMaxBytes:     videoMaxBytes,
	}
}

func toSet(types []string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return set
}

// Validate 校验上传并返回其分类
// 纯函数：只依赖入参和策略本身，不产生副作用
func (p Policy) Validate(upload *Upload) (models.AssetClass, error) {
	if upload == nil || upload.ByteSize <= 0 {
		return "", ErrEmptyUpload
	}

	// 客户端文件名只是展示元数据，但包含遍历序列的名称一律视为不可信类型
	if strings.Contains(upload.OriginalName, "..") {
		return "", fmt.Errorf("%w: suspicious file name", ErrUnsupportedType)
	}

	declaredMime := strings.ToLower(strings.TrimSpace(upload.DeclaredMime))
	class := models.ClassifyMime(declaredMime)

	switch class {
	case models.AssetClassImage:
		if !p.allowedImageTypes[declaredMime] {
			return "", fmt.Errorf("%w: image type %q is not allowed", ErrUnsupportedType, declaredMime)
		}
		if upload.ByteSize > p.imageMaxBytes {
			return "", fmt.Errorf("%w: image size %s exceeds limit %s", ErrSizeExceeded,
				format.HumanReadableSize(upload.ByteSize), format.HumanReadableSize(p.imageMaxBytes))
		}
	case models.AssetClassVideo:
		if !p.allowedVideoTypes[declaredMime] {
			return "", fmt.Errorf("%w: video type %q is not allowed", ErrUnsupportedType, declaredMime)
		}
		if upload.ByteSize > p.videoMaxBytes {
			return "", fmt.Errorf("%w: video size %s exceeds limit %s", ErrSizeExceeded,
				format.HumanReadableSize(upload.ByteSize), format.HumanReadableSize(p.videoMaxBytes))
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, declaredMime)
	}

	return class, nil
}
