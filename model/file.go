package model

// FileStatus lifecycle of an uploaded file
type FileStatus string

const (
	FileStatusActive   FileStatus = "ACTIVE"
	FileStatusInactive FileStatus = "INACTIVE"
	FileStatusRemoved  FileStatus = "REMOVED" // terminal
)

// File a file uploaded by a user, keyed owner-cid
type File struct {
	ID            string     `gorm:"primaryKey;column:id;type:varchar(191)" json:"id"` // owner-FileKey(cid)
	Owner         string     `gorm:"column:owner;index;type:varchar(64)" json:"owner"` // User ID
	Cid           string     `gorm:"column:cid;type:text" json:"cid"`
	Size          BigNum     `gorm:"column:size;type:varchar(80)" json:"size"`
	FileType      string     `gorm:"column:file_type;type:text" json:"file_type"`
	FileName      string     `gorm:"column:file_name;type:text" json:"file_name"`
	StorageNodeID BigNum     `gorm:"column:storage_node_id;type:varchar(80)" json:"storage_node_id"` // Raw node number from the event
	StorageNode   string     `gorm:"column:storage_node;type:varchar(128)" json:"storage_node"`      // StorageNode ID, empty when none
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	Status        FileStatus `gorm:"column:status;type:varchar(16)" json:"status"`
	CreatedAt     int64      `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt     int64      `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
	RemovedAt     int64      `gorm:"column:removed_at" json:"removed_at,omitempty"`
}

func (File) TableName() string {
	return "tb_file"
}

func (f *File) GetID() string {
	return f.ID
}

func (f *File) IndexFields() map[string]string {
	return map[string]string{"owner": f.Owner}
}

// FileHistory action tags
const (
	FileActionUpload = "UPLOAD"
	FileActionRemove = "REMOVE"
	FileActionUpdate = "UPDATE"
)

// FileHistory append-only audit row, one per file event
type FileHistory struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(96)" json:"id"` // txHash-logIndex
	File            string `gorm:"column:file_id;index;type:varchar(191)" json:"file"`
	Action          string `gorm:"column:action;type:varchar(16)" json:"action"`
	Actor           string `gorm:"column:actor;type:varchar(64)" json:"actor"`
	Timestamp       int64  `gorm:"column:timestamp" json:"timestamp"`
	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	TransactionHash string `gorm:"column:transaction_hash;type:varchar(66)" json:"transaction_hash"`
}

func (FileHistory) TableName() string {
	return "tb_file_history"
}

func (h *FileHistory) GetID() string {
	return h.ID
}

func (h *FileHistory) IndexFields() map[string]string {
	return map[string]string{"file_id": h.File}
}
