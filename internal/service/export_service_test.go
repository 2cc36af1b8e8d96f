package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestExportTimetable(t *testing.T) {
	repos := newTestRepos()
	seedEntry(repos, "e1", "monday", "09:00", "t1", "g1")
	seedEntry(repos, "e2", "tuesday", "10:00", "t2", "g2")
	svc := NewExportService(repos.toRepository(), zap.NewNop())

	buf, filename, err := svc.ExportTimetable(context.Background(), "2024-25", 3)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if filename != "timetable_2024-25_S3.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}
}

func TestExportTimetable_无课表(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())

	_, _, err := svc.ExportTimetable(context.Background(), "2024-25", 3)
	if !errors.Is(err, ErrExportNoEntries) {
		t.Fatalf("期望 ErrExportNoEntries，实际 %v", err)
	}
}
