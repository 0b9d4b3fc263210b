package assets

import (
	"errors"
	"fmt"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 本文件集中了主资产不变量的全部状态迁移：
// 非空集合恰好一个 is_primary=true，空集合没有。
// 每个迁移先通过 lockOwner 取得集合级排它锁，再在同一事务内读写资产行，
// 同一集合的并发迁移被数据库串行化。

// lockOwner 取得持有者集合的序列化点
// 资产行锁对空集合不起作用（SELECT ... FOR UPDATE 匹配零行时什么都不锁），
// 因此按需插入一行集合锁记录并对其加排它锁，首次写入同样互斥
func lockOwner(tx *gorm.DB, ownerType string, ownerID uint) error {
	lock := models.AssetOwnerLock{OwnerType: ownerType, OwnerID: ownerID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lock).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		First(&models.AssetOwnerLock{}).Error
}

// Attach 将新资产追加到所属集合并落库
// 集合为空时新资产成为主资产，否则追加为非主资产，排序位置单调递增
func (r *Repository) Attach(asset *models.Asset) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, asset.OwnerType, asset.OwnerID); err != nil {
			return err
		}

		var siblings []*models.Asset
		if err := tx.
			Where("owner_type = ? AND owner_id = ?", asset.OwnerType, asset.OwnerID).
			Order("sort_position asc").
			Find(&siblings).Error; err != nil {
			return err
		}

		asset.IsPrimary = len(siblings) == 0
		asset.SortPosition = 0
		if len(siblings) > 0 {
			asset.SortPosition = siblings[len(siblings)-1].SortPosition + 1
		}

		return tx.Create(asset).Error
	})
}

// Remove 从集合中移除资产并删除记录
// 被移除的是主资产且集合仍非空时，排序位置最小的剩余资产自动成为主资产
func (r *Repository) Remove(id uint) (*models.Asset, error) {
	var removed models.Asset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 先无锁读出持有者，所有迁移统一先拿集合锁，锁序一致避免死锁
		if err := tx.First(&removed, id).Error; err != nil {
			return err
		}
		if err := lockOwner(tx, removed.OwnerType, removed.OwnerID); err != nil {
			return err
		}
		// 拿到集合锁后重读，行可能已被并发迁移删除
		if err := tx.First(&removed, id).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&models.Asset{}, id).Error; err != nil {
			return err
		}

		if !removed.IsPrimary {
			return nil
		}

		var successor models.Asset
		err := tx.
			Where("owner_type = ? AND owner_id = ?", removed.OwnerType, removed.OwnerID).
			Order("sort_position asc, id asc").
			First(&successor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 集合已空，无需再选主资产
			return nil
		}
		if err != nil {
			return err
		}

		return tx.Model(&successor).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// SetPrimary 将指定资产设为所属集合的主资产
// 先清除集合内其他资产的标记再设置，资产不属于目标实体时返回 ErrNotOwned
func (r *Repository) SetPrimary(ownerType string, ownerID uint, assetID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerType, ownerID); err != nil {
			return err
		}

		var asset models.Asset
		if err := tx.First(&asset, assetID).Error; err != nil {
			return err
		}

		if asset.OwnerType != ownerType || asset.OwnerID != ownerID {
			return fmt.Errorf("%w: asset %d", ErrNotOwned, assetID)
		}

		if err := tx.Model(&models.Asset{}).
			Where("owner_type = ? AND owner_id = ? AND id <> ?", ownerType, ownerID, assetID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&asset).Update("is_primary", true).Error
	})
}

// Reorder 按给定顺序重排集合，排序位置从 0 起连续分配
// 未列出的资产保持原有相对顺序排在其后，主资产标记不受影响
func (r *Repository) Reorder(ownerType string, ownerID uint, orderedIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerType, ownerID); err != nil {
			return err
		}

		var siblings []*models.Asset
		if err := tx.
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Order("sort_position asc, id asc").
			Find(&siblings).Error; err != nil {
			return err
		}

		byID := make(map[uint]*models.Asset, len(siblings))
		for _, a := range siblings {
			byID[a.ID] = a
		}

		position := 0
		seen := make(map[uint]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			asset, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: asset %d", ErrNotOwned, id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true

			if err := tx.Model(asset).Update("sort_position", position).Error; err != nil {
				return err
			}
			position++
		}

		for _, asset := range siblings {
			if seen[asset.ID] {
				continue
			}
			if err := tx.Model(asset).Update("sort_position", position).Error; err != nil {
				return err
			}
			position++
		}

		return nil
	})
}

// GetPrimary 返回集合的主资产
// 没有标记时退回排序位置最小的资产（容忍未带标记导入的数据）
func (r *Repository) GetPrimary(ownerType string, ownerID uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("is_primary desc, sort_position asc, id asc").
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// RemoveAllByOwner 级联删除某个内容实体的全部资产记录
// 返回被删除的资产列表，调用方负责随后清理存储中的文件
func (r *Repository) RemoveAllByOwner(ownerType string, ownerID uint) ([]*models.Asset, error) {
	var removed []*models.Asset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerType, ownerID); err != nil {
			return err
		}

		if err := tx.
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.Unscoped().
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Delete(&models.Asset{}).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
