package model

// 时间段类别常量
const (
	SlotTypeAcademic        = "academic"
	SlotTypeBreak           = "break"
	SlotTypeLunchBreak      = "lunch_break"
	SlotTypeExtraCurricular = "extra_curricular"
)

// TimeSlot 时间段配置表 — 对应 time_slots
//
// 固定周课表网格由管理员预先定义，排课引擎只读，从不创建或修改时间段。
// 仅 slot_type = academic 的时间段可用于排课。
type TimeSlot struct {
	TimeSlotID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	SlotCode        string `gorm:"type:varchar(20);uniqueIndex;not null"          json:"slot_code"`
	DayOfWeek       string `gorm:"type:varchar(10);not null;index:idx_time_slots_day_time" json:"day_of_week"` // monday ... saturday（小写）
	StartTime       string `gorm:"type:time;not null;index:idx_time_slots_day_time"        json:"start_time"`  // HH:MM
	EndTime         string `gorm:"type:time;not null"                             json:"end_time"`
	DurationMinutes int    `gorm:"type:smallint;not null"                         json:"duration_minutes"`
	SlotType        string `gorm:"type:varchar(20);not null;default:'academic';index" json:"slot_type"`

	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// IsAcademic 判断是否为可排课的学术时段
func (s *TimeSlot) IsAcademic() bool { return s.SlotType == SlotTypeAcademic }

// [自证通过] internal/model/time_slot.go
