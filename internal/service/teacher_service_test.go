package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/model"
)

func setupTeacherService(repos *testRepos) TeacherService {
	return NewTeacherService(repos.toRepository(), zap.NewNop())
}

func TestCreateTeacher(t *testing.T) {
	repos := newTestRepos()
	svc := setupTeacherService(repos)

	resp, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		TeacherCode:           "T100",
		FirstName:             "王",
		LastName:              "强",
		Email:                 "wang@example.com",
		SubjectQualifications: []string{"CS101"},
	})
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if resp.MaxPeriodsPerWeek != 20 {
		t.Errorf("未指定时周课时上限应默认 20，实际 %d", resp.MaxPeriodsPerWeek)
	}

	// 编号重复
	_, err = svc.Create(context.Background(), &dto.CreateTeacherRequest{
		TeacherCode: "T100",
		FirstName:   "赵",
		LastName:    "敏",
	})
	if !errors.Is(err, ErrTeacherCodeExists) {
		t.Fatalf("期望 ErrTeacherCodeExists，实际 %v", err)
	}
}

func TestDeleteTeacher_被引用时拒绝(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupTeacherService(repos)
	ctx := context.Background()

	// t1 被科目分配引用
	err := svc.Delete(ctx, "t1")
	if !errors.Is(err, ErrTeacherInUse) {
		t.Fatalf("期望 ErrTeacherInUse，实际 %v", err)
	}

	// 未被引用的教师可删除
	repos.teacher.Create(ctx, &model.Teacher{
		TeacherID: "t9", TeacherCode: "T999", FirstName: "孤", LastName: "立",
	})
	if err := svc.Delete(ctx, "t9"); err != nil {
		t.Fatalf("未被引用的教师应可删除: %v", err)
	}
	if _, ok := repos.teacher.teachers["t9"]; ok {
		t.Error("删除后教师不应存在")
	}
}

func TestUpdateTeacher_部分字段(t *testing.T) {
	repos := newTestRepos()
	seedScheduleData(repos)
	svc := setupTeacherService(repos)

	newMax := 15
	resp, err := svc.Update(context.Background(), "t1", &dto.UpdateTeacherRequest{
		MaxPeriodsPerWeek: &newMax,
	})
	if err != nil {
		t.Fatalf("更新应成功: %v", err)
	}
	if resp.MaxPeriodsPerWeek != 15 {
		t.Errorf("周课时上限应更新为 15，实际 %d", resp.MaxPeriodsPerWeek)
	}
	if resp.FirstName != "张" {
		t.Errorf("未指定字段不应被修改，实际 %s", resp.FirstName)
	}
}

func TestGetTeacher_不存在(t *testing.T) {
	repos := newTestRepos()
	svc := setupTeacherService(repos)

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("期望 ErrTeacherNotFound，实际 %v", err)
	}
}
