package model

// KeyValuePair one slot written by PublicShare BatchSet, keyed by array position
type KeyValuePair struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(32)" json:"id"`
	Key             string `gorm:"column:kv_key;type:longtext" json:"key"`
	Value           string `gorm:"column:kv_value;type:longtext" json:"value"`
	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:varchar(66)" json:"transaction_hash"`
}

func (KeyValuePair) TableName() string {
	return "tb_key_value_pair"
}

func (kv *KeyValuePair) GetID() string {
	return kv.ID
}
