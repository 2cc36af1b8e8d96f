package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/model"
)

func setupGroupService(repos *testRepos) GroupService {
	return NewGroupService(repos.toRepository(), zap.NewNop())
}

func TestAssignSubject_资质校验(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGroupService(repos)
	ctx := context.Background()

	// t2 不具备 CS101 资质，分配时即拒绝
	_, err := svc.AssignSubject(ctx, "g1", &dto.AssignSubjectRequest{
		SubjectID:   "s1",
		TeacherID:   strPtr("t2"),
		WeeklyHours: 2,
		SessionType: model.SessionTypeLecture,
	})
	if !errors.Is(err, ErrTeacherNotQualified) {
		t.Fatalf("期望 ErrTeacherNotQualified，实际 %v", err)
	}

	// t1 具备资质，分配成功
	resp, err := svc.AssignSubject(ctx, "g1", &dto.AssignSubjectRequest{
		SubjectID:   "s1",
		TeacherID:   strPtr("t1"),
		WeeklyHours: 2,
		SessionType: model.SessionTypeLecture,
	})
	if err != nil {
		t.Fatalf("分配应成功: %v", err)
	}
	if resp.WeeklyHours != 2 {
		t.Errorf("周学时应为 2，实际 %d", resp.WeeklyHours)
	}
}

func TestAssignSubject_允许暂不指定教师(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGroupService(repos)

	resp, err := svc.AssignSubject(context.Background(), "g1", &dto.AssignSubjectRequest{
		SubjectID:   "s1",
		TeacherID:   nil,
		WeeklyHours: 3,
		SessionType: model.SessionTypeLecture,
	})
	if err != nil {
		t.Fatalf("未指定教师的分配应成功: %v", err)
	}
	if resp.Teacher != nil {
		t.Error("未指定教师时响应中不应有教师信息")
	}
}

func TestAssignSubject_班组不存在(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGroupService(repos)

	_, err := svc.AssignSubject(context.Background(), "missing", &dto.AssignSubjectRequest{
		SubjectID:   "s1",
		WeeklyHours: 2,
		SessionType: model.SessionTypeLecture,
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("期望 ErrGroupNotFound，实际 %v", err)
	}
}

func TestCreateGroup_编号重复(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGroupService(repos)

	_, err := svc.Create(context.Background(), &dto.CreateGroupRequest{
		GroupCode:    "CS-A",
		AcademicYear: "2024-25",
		Semester:     3,
		StudentCount: 40,
	})
	if !errors.Is(err, ErrGroupCodeExists) {
		t.Fatalf("期望 ErrGroupCodeExists，实际 %v", err)
	}
}

func TestUpdateAssignment_换教师需资质(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupGroupService(repos)
	ctx := context.Background()

	created, err := svc.AssignSubject(ctx, "g1", &dto.AssignSubjectRequest{
		SubjectID:   "s1",
		TeacherID:   strPtr("t1"),
		WeeklyHours: 2,
		SessionType: model.SessionTypeLecture,
	})
	if err != nil {
		t.Fatalf("分配应成功: %v", err)
	}

	// Mock GetByID 不回填 Subject 关联，手动补齐以触发资质校验
	gs := repos.groupSubject.assignments[created.ID]
	gs.Subject = repos.subject.subjects["s1"]

	_, err = svc.UpdateAssignment(ctx, created.ID, &dto.UpdateAssignmentRequest{
		TeacherID: strPtr("t2"),
	})
	if !errors.Is(err, ErrTeacherNotQualified) {
		t.Fatalf("期望 ErrTeacherNotQualified，实际 %v", err)
	}
}
