package model

// EventRecord processed-event ledger; doubles as the raw event table
type EventRecord struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(96)" json:"id"` // txHash-logIndex
	Contract        string `gorm:"column:contract;index;type:varchar(64)" json:"contract"`
	ContractKind    string `gorm:"column:contract_kind;type:varchar(32)" json:"contract_kind"`
	Name            string `gorm:"column:name;type:varchar(64)" json:"name"`
	BlockNumber     uint64 `gorm:"column:block_number;index" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:varchar(66)" json:"transaction_hash"`
	LogIndex        uint   `gorm:"column:log_index" json:"log_index"`
	Params          string `gorm:"column:params;type:longtext" json:"params"` // Decoded arguments as JSON
	ProcessedAt     int64  `gorm:"column:processed_at" json:"processed_at"`
}

func (EventRecord) TableName() string {
	return "tb_event_record"
}

func (e *EventRecord) GetID() string {
	return e.ID
}

func (e *EventRecord) IndexFields() map[string]string {
	return map[string]string{"contract": e.Contract}
}
