package model

// User instance owner registered on the InstaShare contract
type User struct {
	ID         string `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"`              // Lowercase hex address
	Address    string `gorm:"column:address;type:varchar(64)" json:"address"`               // Owner address
	TotalFiles int64  `gorm:"column:total_files" json:"total_files"`                        // Files currently owned
	FreeLoad   BigNum `gorm:"column:free_load;type:varchar(80)" json:"free_load"`           // Remaining quota, may go negative
	MaxLoad    BigNum `gorm:"column:max_load;type:varchar(80)" json:"max_load"`             // Quota ceiling
	IsLocked   bool   `gorm:"column:is_locked" json:"is_locked"`                            // Instance lock flag
	TotalNodes int64  `gorm:"column:total_nodes" json:"total_nodes"`                        // Storage nodes purchased
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`     // Block timestamp of first sighting
	UpdatedAt  int64  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`     // Block timestamp of last change
}

func (User) TableName() string {
	return "tb_user"
}

func (u *User) GetID() string {
	return u.ID
}

// UserHistory action tags
const (
	UserActionRegister         = "REGISTER"
	UserActionUpdateFreeLoad   = "UPDATE_FREELOAD"
	UserActionUpdateMaxLoad    = "UPDATE_MAXLOAD"
	UserActionUpdateLockStatus = "UPDATE_LOCK_STATUS"
	UserActionIncreaseLoad     = "INCREASE_LOAD"
)

// UserHistory append-only audit row, one per user event
type UserHistory struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(96)" json:"id"` // txHash-logIndex
	User            string `gorm:"column:user_id;index;type:varchar(64)" json:"user"`
	Action          string `gorm:"column:action;type:varchar(32)" json:"action"`
	Timestamp       int64  `gorm:"column:timestamp" json:"timestamp"`
	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	TransactionHash string `gorm:"column:transaction_hash;type:varchar(66)" json:"transaction_hash"`
}

func (UserHistory) TableName() string {
	return "tb_user_history"
}

func (h *UserHistory) GetID() string {
	return h.ID
}

func (h *UserHistory) IndexFields() map[string]string {
	return map[string]string{"user_id": h.User}
}
