package models

import (
	"strings"

	"gorm.io/gorm"
)

// AssetClass 媒体资产分类
type AssetClass string

const (
	AssetClassImage    AssetClass = "image"
	AssetClassVideo    AssetClass = "video"
	AssetClassAudio    AssetClass = "audio"
	AssetClassDocument AssetClass = "document"
)

// ClassifyMime 根据客户端声明的 MIME 前缀推导资产分类
// 相同输入永远得到相同输出，未知类型归为 document
func ClassifyMime(declaredMime string) AssetClass {
	switch {
	case strings.HasPrefix(declaredMime, "image/"):
		return AssetClassImage
	case strings.HasPrefix(declaredMime, "video/"):
		return AssetClassVideo
	case strings.HasPrefix(declaredMime, "audio/"):
		return AssetClassAudio
	default:
		return AssetClassDocument
	}
}

// 资产归属的内容实体类型
const (
	OwnerTypeGallery    = "gallery"
	OwnerTypeTeamMember = "team_member"
	OwnerTypePartner    = "partner"
	OwnerTypeProject    = "project"
)

// Asset 已存储文件的持久化记录
// StorageName 由分配器生成，与用户上传的文件名无关；
// 上传时间取 gorm.Model 的 CreatedAt，创建后不再变更
type Asset struct {
	gorm.Model
	StorageName  string     `gorm:"uniqueIndex:idx_storage_name;not null"`
	StoragePath  string     `gorm:"not null"`
	OriginalName string     `gorm:"not null"`
	DeclaredMime string     `gorm:"not null"`
	Class        AssetClass `gorm:"type:varchar(16);not null"`
	ByteSize     int64      `gorm:"not null"`

	IsPrimary    bool `gorm:"default:false;not null"`
	SortPosition int  `gorm:"default:0;not null"`

	// 部分唯一索引兜底：同一集合数据库层最多接受一行 is_primary=true
	OwnerType string `gorm:"index:idx_asset_owner,priority:1;uniqueIndex:idx_owner_single_primary,priority:1,where:is_primary AND deleted_at IS NULL;not null"`
	OwnerID   uint   `gorm:"index:idx_asset_owner,priority:2;uniqueIndex:idx_owner_single_primary,priority:2;not null"`
}
