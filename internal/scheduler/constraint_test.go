package scheduler

import (
	"strings"
	"testing"
)

// testDataset 构造约束/搜索测试共用的基准数据集
func testDataset() *Dataset {
	return &Dataset{
		Teachers: map[string]*Teacher{
			"t1": {ID: "t1", Code: "T001", Name: "张老师", Qualifications: []string{"CS101", "MA102"}, MaxPeriods: 20, Unavailability: map[string][]string{}},
			"t2": {ID: "t2", Code: "T002", Name: "李老师", Qualifications: []string{"PH103"}, MaxPeriods: 20, Unavailability: map[string][]string{
				"friday": {BandAllDay},
				"monday": {BandMorning},
			}},
		},
		Subjects: map[string]*Subject{
			"s1": {ID: "s1", Code: "CS101", Name: "程序设计", Type: "theory", MinCapacity: 30},
			"s2": {ID: "s2", Code: "PH103", Name: "物理实验", Type: "lab", SpecialRoom: "computer_lab", MinCapacity: 30},
		},
		Classrooms: map[string]*Classroom{
			"r1": {ID: "r1", Number: "A101", RoomType: "classroom", Capacity: 60},
			"r2": {ID: "r2", Number: "B201", RoomType: "Computer Lab", Capacity: 40},
			"r3": {ID: "r3", Number: "C301", RoomType: "classroom", Capacity: 20},
		},
		Groups: map[string]*StudentGroup{
			"g1": {ID: "g1", Code: "CS-A", StudentCount: 30},
			"g2": {ID: "g2", Code: "CS-B", StudentCount: 35},
		},
		TimeSlots: map[string]*TimeSlot{},
	}
}

func slot(id, day, start string) *TimeSlot {
	return &TimeSlot{ID: id, SlotCode: id, Day: day, StartTime: start, DurationMinutes: 60, SlotType: "academic"}
}

func session(id, group, subject, teacher string) *ClassSession {
	return &ClassSession{ID: id, GroupID: group, SubjectID: subject, TeacherID: teacher, SessionType: SessionLecture, Duration: 60, MinCapacity: 30}
}

func TestNoDoubleBooking(t *testing.T) {
	data := testDataset()
	sl := slot("mon_09", "monday", "09:00")

	placed := session("a", "g1", "s1", "t1")
	placed.Slot, placed.Room = sl, data.Classrooms["r1"]
	asg := Assignment{"a": placed}

	var c NoDoubleBooking

	// 同教师同时段
	next := session("b", "g2", "s1", "t1")
	next.Slot, next.Room = sl, data.Classrooms["r2"]
	if ok, _ := c.Check(next, asg, data); ok {
		t.Error("同教师同时段应判冲突")
	}

	// 同教室同时段
	next = session("b", "g2", "s1", "t2")
	next.Slot, next.Room = sl, data.Classrooms["r1"]
	if ok, _ := c.Check(next, asg, data); ok {
		t.Error("同教室同时段应判冲突")
	}

	// 同班组同时段
	next = session("b", "g1", "s1", "t2")
	next.Slot, next.Room = sl, data.Classrooms["r2"]
	if ok, _ := c.Check(next, asg, data); ok {
		t.Error("同班组同时段应判冲突")
	}

	// 不同时段不冲突
	next = session("b", "g1", "s1", "t1")
	next.Slot, next.Room = slot("mon_10", "monday", "10:00"), data.Classrooms["r1"]
	if ok, reason := c.Check(next, asg, data); !ok {
		t.Errorf("不同时段不应判冲突: %s", reason)
	}
}

func TestTeacherAvailability(t *testing.T) {
	data := testDataset()
	var c TeacherAvailability

	cases := []struct {
		name  string
		day   string
		start string
		want  bool
	}{
		{"周五全天不可用", "friday", "09:00", false},
		{"周一上午不可用", "monday", "10:00", false},
		{"上午边界12点可用", "monday", "12:00", true},
		{"周一下午可用", "monday", "14:00", true},
		{"周二无限制", "tuesday", "09:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := session("a", "g1", "s2", "t2")
			s.Slot = slot("x", tc.day, tc.start)
			s.Room = data.Classrooms["r2"]
			if ok, reason := c.Check(s, Assignment{}, data); ok != tc.want {
				t.Errorf("期望 %v，实际 %v（%s）", tc.want, ok, reason)
			}
		})
	}
}

func TestTeacherQualification(t *testing.T) {
	data := testDataset()
	var c TeacherQualification

	s := session("a", "g1", "s1", "t1")
	if ok, _ := c.Check(s, Assignment{}, data); !ok {
		t.Error("t1 具备 CS101 资质，应通过")
	}

	s = session("a", "g1", "s1", "t2")
	if ok, _ := c.Check(s, Assignment{}, data); ok {
		t.Error("t2 不具备 CS101 资质，应拒绝")
	}
}

func TestRoomSuitability(t *testing.T) {
	data := testDataset()
	var c RoomSuitability

	// 容量不足：g2 有 35 人，r3 仅 20 座
	s := session("a", "g2", "s1", "t1")
	s.Slot, s.Room = slot("x", "monday", "09:00"), data.Classrooms["r3"]
	if ok, _ := c.Check(s, Assignment{}, data); ok {
		t.Error("容量不足应拒绝")
	}

	// 特殊教室要求：computer_lab 要求不被普通教室满足
	s = session("a", "g1", "s2", "t2")
	s.SpecialRoom = "computer_lab"
	s.Slot, s.Room = slot("x", "monday", "09:00"), data.Classrooms["r1"]
	if ok, _ := c.Check(s, Assignment{}, data); ok {
		t.Error("普通教室不应满足 computer_lab 要求")
	}

	// "Computer Lab" 类别应匹配 computer_lab 要求（规范化包含判定）
	s.Room = data.Classrooms["r2"]
	if ok, reason := c.Check(s, Assignment{}, data); !ok {
		t.Errorf("Computer Lab 应满足 computer_lab 要求: %s", reason)
	}
}

func TestWorkloadLimit(t *testing.T) {
	data := testDataset()
	data.Teachers["t1"].MaxPeriods = 2
	var c WorkloadLimit

	sl1, sl2, sl3 := slot("a1", "monday", "09:00"), slot("a2", "monday", "10:00"), slot("a3", "monday", "11:00")
	p1 := session("p1", "g1", "s1", "t1")
	p1.Slot, p1.Room = sl1, data.Classrooms["r1"]
	p2 := session("p2", "g1", "s1", "t1")
	p2.Slot, p2.Room = sl2, data.Classrooms["r1"]
	asg := Assignment{"p1": p1, "p2": p2}

	next := session("p3", "g1", "s1", "t1")
	next.Slot, next.Room = sl3, data.Classrooms["r1"]
	if ok, _ := c.Check(next, asg, data); ok {
		t.Error("超出个人周课时上限应拒绝")
	}

	// 个人上限高于系统上限时按系统上限 20 生效
	data.Teachers["t1"].MaxPeriods = 100
	if ok, reason := c.Check(next, asg, data); !ok {
		t.Errorf("未达系统上限不应拒绝: %s", reason)
	}
}

func TestEngine_Check(t *testing.T) {
	data := testDataset()
	e := NewEngine()

	if got := len(e.Names()); got != 5 {
		t.Fatalf("引擎应包含 5 项约束，实际 %d", got)
	}

	// 违反资质约束时原因应带约束名前缀
	s := session("a", "g1", "s1", "t2")
	s.Slot, s.Room = slot("x", "tuesday", "09:00"), data.Classrooms["r1"]
	ok, reason := e.Check(s, Assignment{}, data)
	if ok {
		t.Fatal("应检出资质违反")
	}
	if !strings.HasPrefix(reason, "teacher_qualification:") {
		t.Errorf("原因应带约束名前缀，实际 %q", reason)
	}

	// Explain 应收集全部违反
	s.Room = data.Classrooms["r3"] // 同时违反容量
	reasons := e.Explain(s, Assignment{}, data)
	if len(reasons) < 2 {
		t.Errorf("应收集多项违反，实际 %v", reasons)
	}
}
