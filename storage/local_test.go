package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalStorage_PathTraversal_Prevention 测试路径遍历防护
func TestLocalStorage_PathTraversal_Prevention(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	ctx := context.Background()

	traversalAttempts := []string{
		"../../../etc/passwd",
		"..\\..\\..\\windows\\system32\\config\\sam",
		"../../.env",
		"../config.yaml",
		"..",
		".",
		"",
		"folder/../../../etc/passwd",
		"test/../../test.txt",
		"/absolute/path",
		"sub/dir/file.txt",
	}

	for _, attempt := range traversalAttempts {
		t.Run("save_"+attempt, func(t *testing.T) {
			err := store.SaveWithContext(ctx, attempt, strings.NewReader("evil"), false)
			assert.ErrorIs(t, err, ErrPathEscape, "attempt: %q", attempt)
		})
		t.Run("get_"+attempt, func(t *testing.T) {
			_, err := store.GetWithContext(ctx, attempt)
			assert.ErrorIs(t, err, ErrPathEscape, "attempt: %q", attempt)
		})
		t.Run("delete_"+attempt, func(t *testing.T) {
			err := store.DeleteWithContext(ctx, attempt)
			assert.ErrorIs(t, err, ErrPathEscape, "attempt: %q", attempt)
		})
	}
}

// TestLocalStorage_RoundTrip 测试写入后读取内容一致
func TestLocalStorage_RoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := "some binary-ish content \x00\x01\x02"

	err = store.SaveWithContext(ctx, "a1b2c3.jpg", strings.NewReader(content), false)
	require.NoError(t, err)

	reader, err := store.GetWithContext(ctx, "a1b2c3.jpg")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

// TestLocalStorage_ReplaceSemantics 测试覆盖写语义
func TestLocalStorage_ReplaceSemantics(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	err = store.SaveWithContext(ctx, "dup.png", strings.NewReader("first"), false)
	require.NoError(t, err)

	// 未要求覆盖时拒绝
	err = store.SaveWithContext(ctx, "dup.png", strings.NewReader("second"), false)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// 明确要求覆盖时成功
	err = store.SaveWithContext(ctx, "dup.png", strings.NewReader("second"), true)
	require.NoError(t, err)

	reader, err := store.GetWithContext(ctx, "dup.png")
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

// TestLocalStorage_DeleteIdempotent 测试删除幂等性
func TestLocalStorage_DeleteIdempotent(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	err = store.SaveWithContext(ctx, "gone.webp", strings.NewReader("content"), false)
	require.NoError(t, err)

	require.NoError(t, store.DeleteWithContext(ctx, "gone.webp"))
	// 第二次删除同名文件不报错
	assert.NoError(t, store.DeleteWithContext(ctx, "gone.webp"))
	// 从未存在过的文件同样不报错
	assert.NoError(t, store.DeleteWithContext(ctx, "never-existed.webp"))
}

// TestLocalStorage_GetNotFound 测试读取不存在的文件
func TestLocalStorage_GetNotFound(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetWithContext(context.Background(), "missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestLocalStorage_Exists 测试存在性检查
func TestLocalStorage_Exists(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	exists, err := store.Exists(ctx, "probe.gif")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.SaveWithContext(ctx, "probe.gif", strings.NewReader("x"), false))

	exists, err = store.Exists(ctx, "probe.gif")
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestLocalStorage_Resolve 测试路径解析包含性
func TestLocalStorage_Resolve(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	path, err := store.Resolve("abc123.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, store.BasePath()))

	_, err = store.Resolve("../../etc/passwd")
	assert.ErrorIs(t, err, ErrPathEscape)
}

// TestIsValidStorageName 测试存储名称校验函数
func TestIsValidStorageName(t *testing.T) {
	tests := []struct {
		name        string
		storageName string
		wantValid   bool
	}{
		{"simple", "file.txt", true},
		{"uuid_style", "3f2a1b9c8d7e4f6a5b4c3d2e1f0a9b8c.jpg", true},
		{"dashes_underscores", "file-with_both.webp", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"absolute_unix", "/etc/passwd", false},
		{"absolute_windows", "C:\\file.txt", false},
		{"traversal", "../file.txt", false},
		{"subdirectory", "a/b.txt", false},
		{"null_byte", "file\x00.txt", false},
		{"newline", "file\n.txt", false},
		{"shell_chars", "file;rm -rf.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidStorageName(tt.storageName)
			assert.Equal(t, tt.wantValid, got, "storage name: %q", tt.storageName)
		})
	}
}
