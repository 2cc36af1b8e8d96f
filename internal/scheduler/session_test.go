package scheduler

import "testing"

func TestExpandSessions(t *testing.T) {
	data := testDataset()
	data.GroupSubjects = []GroupSubject{
		{GroupID: "g1", SubjectID: "s1", TeacherID: "t1", WeeklyHours: 3, SessionType: SessionLecture},
		{GroupID: "g1", SubjectID: "s2", TeacherID: "t2", WeeklyHours: 4, SessionType: SessionLab},
	}

	res := ExpandSessions(data)
	if res.Skipped != 0 {
		t.Errorf("不应有跳过的需求，实际 %d", res.Skipped)
	}
	// 3 学时讲授 → 3 节 60 分钟；4 学时实验 → 2 节 120 分钟
	if len(res.Sessions) != 5 {
		t.Fatalf("期望展开 5 个课节，实际 %d", len(res.Sessions))
	}

	lectures, labs := 0, 0
	for _, s := range res.Sessions {
		switch s.SessionType {
		case SessionLecture:
			lectures++
			if s.Duration != LectureDuration {
				t.Errorf("讲授课节时长应为 %d，实际 %d", LectureDuration, s.Duration)
			}
		case SessionLab:
			labs++
			if s.Duration != LabDuration {
				t.Errorf("实验课节时长应为 %d，实际 %d", LabDuration, s.Duration)
			}
			if s.SpecialRoom != "computer_lab" {
				t.Errorf("实验课节应继承特殊教室要求，实际 %q", s.SpecialRoom)
			}
		}
	}
	if lectures != 3 || labs != 2 {
		t.Errorf("期望 3 讲授 + 2 实验，实际 %d + %d", lectures, labs)
	}
}

func TestExpandSessions_跳过未分配教师(t *testing.T) {
	data := testDataset()
	data.GroupSubjects = []GroupSubject{
		{GroupID: "g1", SubjectID: "s1", TeacherID: "", WeeklyHours: 3, SessionType: SessionLecture},
		{GroupID: "g1", SubjectID: "s1", TeacherID: "t1", WeeklyHours: 2, SessionType: SessionLecture},
	}

	res := ExpandSessions(data)
	if res.Skipped != 1 {
		t.Errorf("应跳过 1 条未分配教师的需求，实际 %d", res.Skipped)
	}
	if len(res.Sessions) != 2 {
		t.Errorf("期望展开 2 个课节，实际 %d", len(res.Sessions))
	}
}

func TestExpandSessions_引用缺失(t *testing.T) {
	data := testDataset()
	data.GroupSubjects = []GroupSubject{
		{GroupID: "g1", SubjectID: "missing", TeacherID: "t1", WeeklyHours: 3, SessionType: SessionLecture},
	}

	res := ExpandSessions(data)
	if res.Skipped != 1 || len(res.Sessions) != 0 {
		t.Errorf("科目缺失的需求应整条跳过，Skipped=%d Sessions=%d", res.Skipped, len(res.Sessions))
	}
}
