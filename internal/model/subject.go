package model

// Subject 科目表 — 对应 subjects
type Subject struct {
	SubjectID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	SubjectCode string `gorm:"type:varchar(20);uniqueIndex;not null"          json:"subject_code"`
	SubjectName string `gorm:"type:varchar(100);not null"                     json:"subject_name"`
	SubjectType string `gorm:"type:varchar(20);not null"                      json:"subject_type"` // theory | practical | lab | tutorial

	// 每周各组成部分所需学时
	WeeklyLectureHours  int `gorm:"type:smallint;not null;default:0" json:"weekly_lecture_hours"`
	WeeklyLabHours      int `gorm:"type:smallint;not null;default:0" json:"weekly_lab_hours"`
	WeeklyTutorialHours int `gorm:"type:smallint;not null;default:0" json:"weekly_tutorial_hours"`

	// 特殊教室类别要求（如 computer_lab）；NULL 表示普通教室即可
	RequiresSpecialRoom *string `gorm:"type:varchar(50)"                  json:"requires_special_room,omitempty"`
	MinRoomCapacity     int     `gorm:"type:smallint;not null;default:30" json:"min_room_capacity"`
	Description         string  `gorm:"type:varchar(500)"                 json:"description,omitempty"`

	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
