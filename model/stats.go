package model

// SystemStats running totals over users, files and storage nodes (singleton "system")
type SystemStats struct {
	ID           string `gorm:"primaryKey;column:id;type:varchar(16)" json:"id"`
	TotalUsers   int64  `gorm:"column:total_users" json:"total_users"`
	TotalFiles   int64  `gorm:"column:total_files" json:"total_files"`
	ActiveFiles  int64  `gorm:"column:active_files" json:"active_files"`
	TotalStorage BigNum `gorm:"column:total_storage;type:varchar(80)" json:"total_storage"`
	TotalNodes   int64  `gorm:"column:total_nodes" json:"total_nodes"`
	ActiveNodes  int64  `gorm:"column:active_nodes" json:"active_nodes"`
	UpdatedAt    int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (SystemStats) TableName() string {
	return "tb_system_stats"
}

func (s *SystemStats) GetID() string {
	return s.ID
}

// MarketStats running totals over the storage marketplace (singleton "market")
type MarketStats struct {
	ID                    string `gorm:"primaryKey;column:id;type:varchar(16)" json:"id"`
	TotalProviders        int64  `gorm:"column:total_providers" json:"total_providers"`
	TotalOrders           int64  `gorm:"column:total_orders" json:"total_orders"`
	TotalBuyers           int64  `gorm:"column:total_buyers" json:"total_buyers"`
	TotalStorageAvailable BigNum `gorm:"column:total_storage_available;type:varchar(80)" json:"total_storage_available"`
	TotalStorageSold      BigNum `gorm:"column:total_storage_sold;type:varchar(80)" json:"total_storage_sold"`
	TotalVolume           BigNum `gorm:"column:total_volume;type:varchar(80)" json:"total_volume"`
	UpdatedAt             int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (MarketStats) TableName() string {
	return "tb_market_stats"
}

func (s *MarketStats) GetID() string {
	return s.ID
}

// SystemConfig contract-level settings (singleton "1"); Owner/Paused track InstaShare, Market* track StorageMarket
type SystemConfig struct {
	ID                 string `gorm:"primaryKey;column:id;type:varchar(16)" json:"id"`
	Owner              string `gorm:"column:owner;type:varchar(64)" json:"owner"`
	Paused             bool   `gorm:"column:paused" json:"paused"`
	MarketOwner        string `gorm:"column:market_owner;type:varchar(64)" json:"market_owner"`
	MarketPaused       bool   `gorm:"column:market_paused" json:"market_paused"`
	InstaShareContract string `gorm:"column:insta_share_contract;type:varchar(64)" json:"insta_share_contract"`
	UpdatedAt          int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (SystemConfig) TableName() string {
	return "tb_system_config"
}

func (c *SystemConfig) GetID() string {
	return c.ID
}
