package model

// StorageNode storage capacity purchased by a user, keyed owner-nodeId
type StorageNode struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(128)" json:"id"`
	NodeID          BigNum `gorm:"column:node_id;type:varchar(80)" json:"node_id"`
	Owner           string `gorm:"column:owner;index;type:varchar(64)" json:"owner"`
	ProviderAddress string `gorm:"column:provider_address;type:varchar(64)" json:"provider_address"`
	TotalSpace      BigNum `gorm:"column:total_space;type:varchar(80)" json:"total_space"`
	UsedSpace       BigNum `gorm:"column:used_space;type:varchar(80)" json:"used_space"`
	AvailableSpace  BigNum `gorm:"column:available_space;type:varchar(80)" json:"available_space"`
	IsActive        bool   `gorm:"column:is_active" json:"is_active"`
	PurchaseTime    int64  `gorm:"column:purchase_time" json:"purchase_time"`
	CreatedAt       int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt       int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
	DeactivatedAt   int64  `gorm:"column:deactivated_at" json:"deactivated_at,omitempty"`
}

func (StorageNode) TableName() string {
	return "tb_storage_node"
}

func (n *StorageNode) GetID() string {
	return n.ID
}

func (n *StorageNode) IndexFields() map[string]string {
	return map[string]string{"owner": n.Owner}
}
