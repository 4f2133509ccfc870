package model

// IndexerSyncStatus last block whose logs were fully applied, per chain
type IndexerSyncStatus struct {
	ID                string `gorm:"primaryKey;column:id;type:varchar(32)" json:"id"` // Chain name
	ChainName         string `gorm:"column:chain_name;type:varchar(32)" json:"chain_name"`
	CurrentSyncHeight int64  `gorm:"column:current_sync_height" json:"current_sync_height"`
	CreatedAt         int64  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         int64  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (IndexerSyncStatus) TableName() string {
	return "tb_indexer_sync_status"
}

func (s *IndexerSyncStatus) GetID() string {
	return s.ID
}

// AllEntities every table managed by the indexer, used for migrations
func AllEntities() []Entity {
	return []Entity{
		&User{},
		&UserHistory{},
		&File{},
		&FileHistory{},
		&StorageNode{},
		&StorageProvider{},
		&ProviderAddress{},
		&Buyer{},
		&DataOrder{},
		&SystemStats{},
		&MarketStats{},
		&SystemConfig{},
		&KeyValuePair{},
		&EventRecord{},
		&IndexerSyncStatus{},
	}
}
