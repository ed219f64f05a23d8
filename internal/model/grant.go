package model

// ReadGrant allows a user to read a task they neither own nor are assigned
// to. Read and write grants are administered as independent sets.
type ReadGrant struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"index:idx_read_grant,unique"`
	UserID uint `gorm:"index:idx_read_grant,unique"`
}

// WriteGrant allows a user to change a task they neither own nor are
// assigned to. A write grant also confers effective read access, but no
// ReadGrant row is created for it.
type WriteGrant struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"index:idx_write_grant,unique"`
	UserID uint `gorm:"index:idx_write_grant,unique"`
}
