package model

// User 系统账号表 — 对应 users
//
// 仅承载排课管理后台的登录与角色；学生/考勤等账号体系不在本服务范围。
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null"          json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'admin'"      json:"role"` // admin | viewer
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`

	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
