package media

import (
	"strings"
	"testing"

	"github.com/anoixa/content-hub/storage"
	"github.com/stretchr/testify/assert"
)

// TestAllocateStorageName_KeepsOnlyExtension 只保留小写扩展名
func TestAllocateStorageName_KeepsOnlyExtension(t *testing.T) {
	name := AllocateStorageName("My Holiday PHOTO.JPG")

	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "Holiday")
	assert.True(t, storage.IsValidStorageName(name))
}

// TestAllocateStorageName_FallbackExtension 无扩展名时使用兜底
func TestAllocateStorageName_FallbackExtension(t *testing.T) {
	tests := []string{
		"noextension",
		"trailingdot.",
		"",
		"weird.ex!t",
		"toolong.extension-name",
	}

	for _, original := range tests {
		t.Run(original, func(t *testing.T) {
			name := AllocateStorageName(original)
			assert.True(t, strings.HasSuffix(name, ".bin"), "got %q", name)
			assert.True(t, storage.IsValidStorageName(name))
		})
	}
}

// TestAllocateStorageName_TraversalInput 恶意文件名产生的名称依然安全
func TestAllocateStorageName_TraversalInput(t *testing.T) {
	name := AllocateStorageName("../../etc/passwd")

	assert.NotContains(t, name, "..")
	assert.NotContains(t, name, "/")
	assert.True(t, storage.IsValidStorageName(name))
}

// TestAllocateStorageName_Unique 连续分配不重复
func TestAllocateStorageName_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := AllocateStorageName("a.jpg")
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
}
