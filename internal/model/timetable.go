package model

import "time"

// TimetableEntry 课表条目表 — 对应 timetable_entries
//
// 生成引擎的唯一持久化产物。不变式（由生成过程保证、测试断言）：
//   - 每条记录引用的时间段必须为 academic 类型
//   - 同一 (academic_year, semester) 下共享时间段的条目，
//     其 (teacher, classroom, group) 三元组两两互异
type TimetableEntry struct {
	EntryID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	AcademicYear string `gorm:"type:varchar(10);not null;index:idx_timetable_entries_scope" json:"academic_year"`
	Semester     int    `gorm:"type:smallint;not null;index:idx_timetable_entries_scope"    json:"semester"`
	GroupID      string `gorm:"type:uuid;not null;index"                       json:"group_id"`
	SubjectID    string `gorm:"type:uuid;not null"                             json:"subject_id"`
	TeacherID    string `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	ClassroomID  string `gorm:"type:uuid;not null;index"                       json:"classroom_id"`
	TimeSlotID   string `gorm:"type:uuid;not null"                             json:"time_slot_id"`
	SessionType  string `gorm:"type:varchar(20);not null"                      json:"session_type"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | superseded
	CreatedBy    string `gorm:"type:uuid;not null"                             json:"created_by"`

	BaseModel

	// 关联
	Group     *StudentGroup `gorm:"foreignKey:GroupID;references:GroupID"           json:"group,omitempty"`
	Subject   *Subject      `gorm:"foreignKey:SubjectID;references:SubjectID"       json:"subject,omitempty"`
	Teacher   *Teacher      `gorm:"foreignKey:TeacherID;references:TeacherID"       json:"teacher,omitempty"`
	Classroom *Classroom    `gorm:"foreignKey:ClassroomID;references:ClassroomID"   json:"classroom,omitempty"`
	TimeSlot  *TimeSlot     `gorm:"foreignKey:TimeSlotID;references:TimeSlotID"     json:"time_slot,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

// 生成状态常量
const (
	GenerationStatusCompleted = "completed"
	GenerationStatusFailed    = "failed"
)

// TimetableGeneration 生成记录表 — 对应 timetable_generations
//
// 每次生成运行（无论成败）写一条审计记录；失败时不写任何课表条目。
type TimetableGeneration struct {
	GenerationID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"generation_id"`
	AcademicYear          string     `gorm:"type:varchar(10);not null;index:idx_generations_scope" json:"academic_year"`
	Semester              int        `gorm:"type:smallint;not null;index:idx_generations_scope"    json:"semester"`
	GenerationMethod      string     `gorm:"type:varchar(20);not null;default:'auto'"       json:"generation_method"`
	ConstraintsUsed       StringList `gorm:"type:jsonb;not null;default:'[]'"               json:"constraints_used"`
	GenerationStatus      string     `gorm:"type:varchar(20);not null"                      json:"generation_status"` // completed | failed
	TotalClassesScheduled int        `gorm:"type:int;not null;default:0"                    json:"total_classes_scheduled"`
	SuccessRate           float64    `gorm:"type:numeric(5,2);not null;default:0"           json:"success_rate"`
	GenerationTimeSeconds float64    `gorm:"type:numeric(10,3);not null;default:0"          json:"generation_time_seconds"`
	UnassignedDemands     int        `gorm:"type:int;not null;default:0"                    json:"unassigned_demands"` // 无教师分配被跳过的需求数
	Error                 string     `gorm:"type:varchar(500)"                              json:"error,omitempty"`
	GeneratedBy           string     `gorm:"type:uuid;not null"                             json:"generated_by"`
	CreatedAt             time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TimetableGeneration) TableName() string { return "timetable_generations" }

// TimetableConflict 冲突记录表 — 对应 timetable_conflicts
//
// 由生成后的手工修改路径写入；生成引擎本身只读（冲突报表查询），
// 其不变式保证自动生成的条目不会产生此表记录。
type TimetableConflict struct {
	ConflictID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"conflict_id"`
	EntryID          string     `gorm:"type:uuid;not null;index"                       json:"entry_id"`
	ConflictType     string     `gorm:"type:varchar(50);not null"                      json:"conflict_type"`
	Description      string     `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Severity         string     `gorm:"type:varchar(20);not null;default:'major'"      json:"severity"` // critical | major | minor
	ResolutionStatus string     `gorm:"type:varchar(20);not null;default:'unresolved'" json:"resolution_status"`
	DetectedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"detected_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`

	// 关联
	Entry *TimetableEntry `gorm:"foreignKey:EntryID;references:EntryID" json:"entry,omitempty"`
}

// TableName 指定表名
func (TimetableConflict) TableName() string { return "timetable_conflicts" }

// [自证通过] internal/model/timetable.go
