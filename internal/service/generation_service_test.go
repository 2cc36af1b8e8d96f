package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Leela-Pavan/EduTrack/config"
	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/model"
)

// ── 测试辅助 ──

func setupGenerationService(repos *testRepos) *generationService {
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{
			SearchBudget: 5 * time.Second,
			MaxAttempts:  100000,
		},
	}
	svc := NewGenerationService(cfg, repos.toRepository(), nil, zap.NewNop()).(*generationService)
	// 固定种子保证测试可复现
	svc.newRand = func() *rand.Rand { return rand.New(rand.NewSource(42)) }
	return svc
}

func strPtr(s string) *string { return &s }

// seedScheduleData 构造一套可行的排课数据：
// 2 个班组、2 名教师、2 个科目、2 间教室、9 个 academic 时间段
func seedScheduleData(repos *testRepos) {
	ctx := context.Background()

	repos.teacher.Create(ctx, &model.Teacher{
		TeacherID: "t1", TeacherCode: "T001", FirstName: "张", LastName: "伟",
		SubjectQualifications: model.StringList{"CS101", "MA102"},
		WeeklyUnavailability:  model.DayBandMap{},
		MaxPeriodsPerWeek:     20,
	})
	repos.teacher.Create(ctx, &model.Teacher{
		TeacherID: "t2", TeacherCode: "T002", FirstName: "李", LastName: "娜",
		SubjectQualifications: model.StringList{"PH103"},
		WeeklyUnavailability:  model.DayBandMap{"friday": {"all_day"}},
		MaxPeriodsPerWeek:     20,
	})

	repos.subject.Create(ctx, &model.Subject{
		SubjectID: "s1", SubjectCode: "CS101", SubjectName: "程序设计",
		SubjectType: "theory", MinRoomCapacity: 30,
	})
	repos.subject.Create(ctx, &model.Subject{
		SubjectID: "s2", SubjectCode: "PH103", SubjectName: "物理实验",
		SubjectType: "lab", RequiresSpecialRoom: strPtr("computer_lab"), MinRoomCapacity: 30,
	})

	repos.classroom.Create(ctx, &model.Classroom{
		ClassroomID: "r1", RoomNumber: "A101", RoomType: "classroom",
		SeatingCapacity: 60, IsActive: true,
	})
	repos.classroom.Create(ctx, &model.Classroom{
		ClassroomID: "r2", RoomNumber: "B201", RoomType: "computer_lab",
		SeatingCapacity: 40, IsActive: true,
	})

	repos.group.Create(ctx, &model.StudentGroup{
		GroupID: "g1", GroupCode: "CS-A", AcademicYear: "2024-25", Semester: 3, StudentCount: 30,
	})
	repos.group.Create(ctx, &model.StudentGroup{
		GroupID: "g2", GroupCode: "CS-B", AcademicYear: "2024-25", Semester: 3, StudentCount: 35,
	})

	for _, day := range []string{"monday", "tuesday", "wednesday"} {
		for _, start := range []string{"09:00", "10:00", "11:00"} {
			code := day + "_" + start
			repos.timeSlot.Create(ctx, &model.TimeSlot{
				TimeSlotID: "ts-" + code, SlotCode: code, DayOfWeek: day,
				StartTime: start, EndTime: start, DurationMinutes: 60,
				SlotType: model.SlotTypeAcademic,
			})
		}
	}
	// 非 academic 时段不参与排课
	repos.timeSlot.Create(ctx, &model.TimeSlot{
		TimeSlotID: "ts-lunch", SlotCode: "monday_13:00", DayOfWeek: "monday",
		StartTime: "13:00", EndTime: "14:00", DurationMinutes: 60,
		SlotType: model.SlotTypeLunchBreak,
	})

	repos.groupSubject.Create(ctx, &model.GroupSubject{
		GroupID: "g1", SubjectID: "s1", TeacherID: strPtr("t1"),
		WeeklyHours: 3, SessionType: model.SessionTypeLecture,
	})
	repos.groupSubject.Create(ctx, &model.GroupSubject{
		GroupID: "g2", SubjectID: "s1", TeacherID: strPtr("t1"),
		WeeklyHours: 2, SessionType: model.SessionTypeLecture,
	})
	repos.groupSubject.Create(ctx, &model.GroupSubject{
		GroupID: "g1", SubjectID: "s2", TeacherID: strPtr("t2"),
		WeeklyHours: 2, SessionType: model.SessionTypeLab,
	})
	// 未分配教师的需求：跳过并计入警告
	repos.groupSubject.Create(ctx, &model.GroupSubject{
		GroupID: "g2", SubjectID: "s2", TeacherID: nil,
		WeeklyHours: 2, SessionType: model.SessionTypeLab,
	})
}

func TestGenerate_成功(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGenerationService(repos)

	resp, err := svc.Generate(context.Background(), &dto.GenerateTimetableRequest{
		AcademicYear: "2024-25", Semester: 3,
	}, "u-admin")
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}

	// 3 讲授 + 2 讲授 + 1 实验（2学时=1节）= 6 条目
	if resp.TotalClassesScheduled != 6 {
		t.Errorf("期望 6 条课表条目，实际 %d", resp.TotalClassesScheduled)
	}
	if resp.GenerationStatus != model.GenerationStatusCompleted {
		t.Errorf("期望状态 completed，实际 %s", resp.GenerationStatus)
	}
	if resp.SuccessRate != 100 {
		t.Errorf("完整解成功率应为 100，实际 %v", resp.SuccessRate)
	}
	if resp.UnassignedDemands != 1 {
		t.Errorf("应有 1 条未分配教师需求被跳过，实际 %d", resp.UnassignedDemands)
	}
	if len(resp.ConstraintsUsed) != 5 {
		t.Errorf("生成记录应记录 5 项约束，实际 %v", resp.ConstraintsUsed)
	}

	// 落库条目互不冲突：同一时间段内教师/教室/班组均唯一
	bySlot := make(map[string][]*model.TimetableEntry)
	for _, e := range repos.entry.entries {
		bySlot[e.TimeSlotID] = append(bySlot[e.TimeSlotID], e)
	}
	for slotID, list := range bySlot {
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if list[i].TeacherID == list[j].TeacherID {
					t.Errorf("时间段 %s 教师重复占用", slotID)
				}
				if list[i].ClassroomID == list[j].ClassroomID {
					t.Errorf("时间段 %s 教室重复占用", slotID)
				}
				if list[i].GroupID == list[j].GroupID {
					t.Errorf("时间段 %s 班组重复占用", slotID)
				}
			}
		}
	}

	// 实验课节必须在特殊教室
	for _, e := range repos.entry.entries {
		if e.SessionType == model.SessionTypeLab && e.ClassroomID != "r2" {
			t.Errorf("实验条目应排进 computer_lab，实际 %s", e.ClassroomID)
		}
		if e.TimeSlotID == "ts-lunch" {
			t.Error("非 academic 时段不应出现在课表中")
		}
	}
}

func TestGenerate_无需求(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGenerationService(repos)

	// 不存在的学期范围
	_, err := svc.Generate(context.Background(), &dto.GenerateTimetableRequest{
		AcademicYear: "2030-31", Semester: 1,
	}, "u-admin")
	if !errors.Is(err, ErrNoDemand) {
		t.Fatalf("期望 ErrNoDemand，实际 %v", err)
	}
	if len(repos.generation.gens) != 0 {
		t.Error("无需求不应产生生成记录")
	}
}

func TestGenerate_不可行时保留旧课表(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)

	// 只留一个时间段：g1 的 3 节讲授必然无法全部放置
	for id, s := range repos.timeSlot.slots {
		if s.SlotCode != "monday_09:00" {
			delete(repos.timeSlot.slots, id)
		}
	}

	// 预置一条旧课表条目，失败后必须原样保留
	repos.entry.entries["old-1"] = &model.TimetableEntry{
		EntryID: "old-1", AcademicYear: "2024-25", Semester: 3,
		GroupID: "g1", SubjectID: "s1", TeacherID: "t1",
		ClassroomID: "r1", TimeSlotID: "ts-monday_09:00",
	}

	svc := setupGenerationService(repos)
	_, err := svc.Generate(context.Background(), &dto.GenerateTimetableRequest{
		AcademicYear: "2024-25", Semester: 3,
	}, "u-admin")
	if !errors.Is(err, ErrInfeasibleSchedule) {
		t.Fatalf("期望 ErrInfeasibleSchedule，实际 %v", err)
	}

	if repos.entry.replaceCalls != 0 {
		t.Error("不可行时不应触发课表替换")
	}
	if _, ok := repos.entry.entries["old-1"]; !ok {
		t.Error("失败后旧课表条目应原样保留")
	}

	// 失败也要写一条审计记录
	if len(repos.generation.gens) != 1 {
		t.Fatalf("期望 1 条失败生成记录，实际 %d", len(repos.generation.gens))
	}
	gen := repos.generation.gens[0]
	if gen.GenerationStatus != model.GenerationStatusFailed {
		t.Errorf("期望状态 failed，实际 %s", gen.GenerationStatus)
	}
	if gen.Error == "" {
		t.Error("失败记录应包含错误说明")
	}
}

func TestGenerate_重复生成替换旧课表(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGenerationService(repos)

	req := &dto.GenerateTimetableRequest{AcademicYear: "2024-25", Semester: 3}
	for i := 0; i < 2; i++ {
		if _, err := svc.Generate(context.Background(), req, "u-admin"); err != nil {
			t.Fatalf("第 %d 次生成应成功: %v", i+1, err)
		}
	}

	count, _ := repos.entry.CountByScope(context.Background(), "2024-25", 3)
	if count != 6 {
		t.Errorf("重复生成应整体替换而非追加，期望 6 条，实际 %d", count)
	}
	if repos.entry.replaceCalls != 2 {
		t.Errorf("期望 2 次替换调用，实际 %d", repos.entry.replaceCalls)
	}
	if len(repos.generation.gens) != 2 {
		t.Errorf("每次生成都应有记录，实际 %d", len(repos.generation.gens))
	}
}

func TestGenerate_同范围互斥(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGenerationService(repos)

	key := scopeKey("2024-25", 3)
	if !svc.acquire(key) {
		t.Fatal("首次获取范围锁应成功")
	}

	_, err := svc.Generate(context.Background(), &dto.GenerateTimetableRequest{
		AcademicYear: "2024-25", Semester: 3,
	}, "u-admin")
	if !errors.Is(err, ErrGenerationInProgress) {
		t.Fatalf("期望 ErrGenerationInProgress，实际 %v", err)
	}

	svc.release(key)
	if _, err := svc.Generate(context.Background(), &dto.GenerateTimetableRequest{
		AcademicYear: "2024-25", Semester: 3,
	}, "u-admin"); err != nil {
		t.Fatalf("释放后生成应成功: %v", err)
	}
}

func TestGetLatest_无记录(t *testing.T) {
	repos := newTestRepos()
	svc := setupGenerationService(repos)

	_, err := svc.GetLatest(context.Background(), "2024-25", 3)
	if !errors.Is(err, ErrGenerationNotFound) {
		t.Fatalf("期望 ErrGenerationNotFound，实际 %v", err)
	}
}

func TestHistory_分页(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGenerationService(repos)

	req := &dto.GenerateTimetableRequest{AcademicYear: "2024-25", Semester: 3}
	for i := 0; i < 3; i++ {
		if _, err := svc.Generate(context.Background(), req, fmt.Sprintf("u-%d", i)); err != nil {
			t.Fatalf("生成应成功: %v", err)
		}
	}

	list, total, err := svc.History(context.Background(), "2024-25", 3, &dto.PaginationRequest{})
	if err != nil {
		t.Fatalf("查询历史应成功: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Errorf("期望 3 条历史记录，实际 total=%d len=%d", total, len(list))
	}
}
