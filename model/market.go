package model

// StorageProvider seller registered on the StorageMarket contract
type StorageProvider struct {
	ID                 string `gorm:"primaryKey;column:id;type:varchar(80)" json:"id"` // sellID, or provider address when sellID is 0
	SellID             BigNum `gorm:"column:sell_id;type:varchar(80)" json:"sell_id"`
	ProviderAddress    string `gorm:"column:provider_address;index;type:varchar(64)" json:"provider_address"`
	AvailableSpace     BigNum `gorm:"column:available_space;type:varchar(80)" json:"available_space"`
	PricePerMBPerMonth BigNum `gorm:"column:price_per_mb_per_month;type:varchar(80)" json:"price_per_mb_per_month"`
	StakedETH          BigNum `gorm:"column:staked_eth;type:varchar(80)" json:"staked_eth"`
	IsValid            bool   `gorm:"column:is_valid" json:"is_valid"`
	TotalOrders        int64  `gorm:"column:total_orders" json:"total_orders"`
	CreatedAt          int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt          int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (StorageProvider) TableName() string {
	return "tb_storage_provider"
}

func (p *StorageProvider) GetID() string {
	return p.ID
}

func (p *StorageProvider) IndexFields() map[string]string {
	return map[string]string{"provider_address": p.ProviderAddress}
}

// ProviderAddress resolves a provider address to its latest StorageProvider ID
type ProviderAddress struct {
	ID         string `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"` // Lowercase address
	ProviderID string `gorm:"column:provider_id;type:varchar(80)" json:"provider_id"`
}

func (ProviderAddress) TableName() string {
	return "tb_provider_address"
}

func (p *ProviderAddress) GetID() string {
	return p.ID
}

// Buyer address that created at least one data order
type Buyer struct {
	ID          string `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"`
	Address     string `gorm:"column:address;type:varchar(64)" json:"address"`
	TotalOrders int64  `gorm:"column:total_orders" json:"total_orders"`
	TotalSpent  BigNum `gorm:"column:total_spent;type:varchar(80)" json:"total_spent"`
	CreatedAt   int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt   int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Buyer) TableName() string {
	return "tb_buyer"
}

func (b *Buyer) GetID() string {
	return b.ID
}

// DataOrder storage purchase, immutable once created
type DataOrder struct {
	ID                   string `gorm:"primaryKey;column:id;type:varchar(80)" json:"id"`
	OrderID              BigNum `gorm:"column:order_id;type:varchar(80)" json:"order_id"`
	Provider             string `gorm:"column:provider;index;type:varchar(80)" json:"provider"` // StorageProvider ID
	ProviderAddress      string `gorm:"column:provider_address;type:varchar(64)" json:"provider_address"`
	Buyer                string `gorm:"column:buyer;index;type:varchar(64)" json:"buyer"` // Buyer ID
	StorageSpace         BigNum `gorm:"column:storage_space;type:varchar(80)" json:"storage_space"`
	TotalCost            BigNum `gorm:"column:total_cost;type:varchar(80)" json:"total_cost"`
	StakedETH            BigNum `gorm:"column:staked_eth;type:varchar(80)" json:"staked_eth"`
	VerificationContract string `gorm:"column:verification_contract;type:varchar(64)" json:"verification_contract"`
	CreatedAt            int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	TransactionHash      string `gorm:"column:transaction_hash;type:varchar(66)" json:"transaction_hash"`
}

func (DataOrder) TableName() string {
	return "tb_data_order"
}

func (o *DataOrder) GetID() string {
	return o.ID
}

func (o *DataOrder) IndexFields() map[string]string {
	return map[string]string{"provider": o.Provider, "buyer": o.Buyer}
}
