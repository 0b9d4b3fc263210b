package media

import (
	"strings"
	"testing"

	"github.com/anoixa/content-hub/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() Policy {
	return NewPolicyWith(
		[]string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		[]string{"video/mp4", "video/webm"},
		10<<20, // 10MB
		50<<20, // 50MB
	)
}

func testUpload(name, mime string, size int64) *Upload {
	return &Upload{
		OriginalName: name,
		DeclaredMime: mime,
		ByteSize:     size,
		Content:      strings.NewReader("x"),
	}
}

// TestClassifyMime 分类是声明 MIME 的确定性纯函数
func TestClassifyMime(t *testing.T) {
	tests := []struct {
		mime string
		want models.AssetClass
	}{
		{"image/jpeg", models.AssetClassImage},
		{"image/svg+xml", models.AssetClassImage},
		{"video/mp4", models.AssetClassVideo},
		{"audio/mpeg", models.AssetClassAudio},
		{"application/pdf", models.AssetClassDocument},
		{"text/plain", models.AssetClassDocument},
		{"", models.AssetClassDocument},
		{"garbage", models.AssetClassDocument},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ClassifyMime(tt.mime))
			// 相同输入必须得到相同输出
			assert.Equal(t, models.ClassifyMime(tt.mime), models.ClassifyMime(tt.mime))
		})
	}
}

// TestPolicy_Validate_Accepted 合法上传返回对应分类
func TestPolicy_Validate_Accepted(t *testing.T) {
	p := testPolicy()

	class, err := p.Validate(testUpload("photo.jpg", "image/jpeg", 2<<20))
	require.NoError(t, err)
	assert.Equal(t, models.AssetClassImage, class)

	class, err = p.Validate(testUpload("clip.mp4", "video/mp4", 30<<20))
	require.NoError(t, err)
	assert.Equal(t, models.AssetClassVideo, class)
}

// TestPolicy_Validate_EmptyUpload 空上传被拒绝
func TestPolicy_Validate_EmptyUpload(t *testing.T) {
	p := testPolicy()

	_, err := p.Validate(nil)
	assert.ErrorIs(t, err, ErrEmptyUpload)

	_, err = p.Validate(testUpload("empty.jpg", "image/jpeg", 0))
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

// TestPolicy_Validate_TraversalName 文件名带遍历序列直接拒绝
func TestPolicy_Validate_TraversalName(t *testing.T) {
	p := testPolicy()

	_, err := p.Validate(testUpload("../../etc/passwd", "image/jpeg", 100))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// TestPolicy_Validate_UnsupportedTypes 非图片/视频类型被拒绝
func TestPolicy_Validate_UnsupportedTypes(t *testing.T) {
	p := testPolicy()

	tests := []string{
		"application/pdf",
		"audio/mpeg",
		"text/html",
		"image/tiff", // 图片但不在允许列表
		"video/x-matroska",
		"",
	}

	for _, mime := range tests {
		t.Run(mime, func(t *testing.T) {
			_, err := p.Validate(testUpload("file.bin", mime, 100))
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

// TestPolicy_Validate_SizeCeilings 图片和视频使用各自的大小上限
func TestPolicy_Validate_SizeCeilings(t *testing.T) {
	p := testPolicy()

	// 图片超过 10MB 上限
	_, err := p.Validate(testUpload("big.png", "image/png", 11<<20))
	assert.ErrorIs(t, err, ErrSizeExceeded)

	// 同样大小的视频在 50MB 上限内
	_, err = p.Validate(testUpload("ok.mp4", "video/mp4", 11<<20))
	assert.NoError(t, err)

	// 60MB 视频超限，状态不变
	_, err = p.Validate(testUpload("huge.mp4", "video/mp4", 60<<20))
	assert.ErrorIs(t, err, ErrSizeExceeded)
}

// TestPolicy_Validate_MimeNormalization 声明类型大小写与空白被归一化
func TestPolicy_Validate_MimeNormalization(t *testing.T) {
	p := testPolicy()

	class, err := p.Validate(testUpload("photo.jpg", "  IMAGE/JPEG ", 100))
	require.NoError(t, err)
	assert.Equal(t, models.AssetClassImage, class)
}
