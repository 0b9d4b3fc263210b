package models

// AssetOwnerLock 每个持有者集合一行的锁记录
// 行锁只能锁住已存在的行，集合为空时并发的首次写入没有可竞争的资产行；
// 主资产状态迁移先对这一行加排它锁，使同一集合的写入在数据库层串行化
type AssetOwnerLock struct {
	OwnerType string `gorm:"primaryKey;type:varchar(32)"`
	OwnerID   uint   `gorm:"primaryKey"`
}
