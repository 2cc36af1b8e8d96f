package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Leela-Pavan/EduTrack/internal/model"
	"github.com/Leela-Pavan/EduTrack/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "u-" + user.Username
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	gs       *mockGroupSubjectRepo
	entries  *mockEntryRepo
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = "t-" + teacher.TeacherCode
	}
	teacher.CreatedAt = time.Now()
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByCode(_ context.Context, code string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.TeacherCode == code {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, _, _ int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockTeacherRepo) ListAll(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) InUse(_ context.Context, id string) (bool, error) {
	if m.gs != nil {
		for _, gs := range m.gs.assignments {
			if gs.TeacherID != nil && *gs.TeacherID == id {
				return true, nil
			}
		}
	}
	if m.entries != nil {
		for _, e := range m.entries.entries {
			if e.TeacherID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "s-" + subject.SubjectCode
	}
	subject.CreatedAt = time.Now()
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.SubjectCode == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, _, _ int) ([]model.Subject, int64, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSubjectRepo) ListAll(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	rooms map[string]*model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{rooms: make(map[string]*model.Classroom)}
}

func (m *mockClassroomRepo) Create(_ context.Context, room *model.Classroom) error {
	if room.ClassroomID == "" {
		room.ClassroomID = "r-" + room.RoomNumber
	}
	room.CreatedAt = time.Now()
	m.rooms[room.ClassroomID] = room
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) GetByNumber(_ context.Context, number string) (*model.Classroom, error) {
	for _, r := range m.rooms {
		if r.RoomNumber == number {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context, _, _ int) ([]model.Classroom, int64, error) {
	var result []model.Classroom
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockClassroomRepo) ListActive(_ context.Context) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, r := range m.rooms {
		if r.IsActive {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockClassroomRepo) Update(_ context.Context, room *model.Classroom) error {
	m.rooms[room.ClassroomID] = room
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock StudentGroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.StudentGroup
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.StudentGroup)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.StudentGroup) error {
	if group.GroupID == "" {
		group.GroupID = "g-" + group.GroupCode
	}
	group.CreatedAt = time.Now()
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.StudentGroup, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) GetByCode(_ context.Context, code string) (*model.StudentGroup, error) {
	for _, g := range m.groups {
		if g.GroupCode == code {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, _, _ int) ([]model.StudentGroup, int64, error) {
	var result []model.StudentGroup
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, int64(len(result)), nil
}

func (m *mockGroupRepo) ListByScope(_ context.Context, academicYear string, semester int) ([]model.StudentGroup, error) {
	var result []model.StudentGroup
	for _, g := range m.groups {
		if g.AcademicYear == academicYear && g.Semester == semester {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.StudentGroup) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	if slot.TimeSlotID == "" {
		slot.TimeSlotID = "ts-" + slot.SlotCode
	}
	slot.CreatedAt = time.Now()
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context, dayOfWeek string) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if dayOfWeek != "" && s.DayOfWeek != dayOfWeek {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockTimeSlotRepo) ListAcademic(_ context.Context) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if s.SlotType == model.SlotTypeAcademic {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── Mock GroupSubjectRepository ──

type mockGroupSubjectRepo struct {
	assignments map[string]*model.GroupSubject
	groups      *mockGroupRepo
	seq         int
}

func newMockGroupSubjectRepo(groups *mockGroupRepo) *mockGroupSubjectRepo {
	return &mockGroupSubjectRepo{assignments: make(map[string]*model.GroupSubject), groups: groups}
}

func (m *mockGroupSubjectRepo) Create(_ context.Context, gs *model.GroupSubject) error {
	if gs.GroupSubjectID == "" {
		m.seq++
		gs.GroupSubjectID = fmt.Sprintf("gs-%d", m.seq)
	}
	gs.CreatedAt = time.Now()
	m.assignments[gs.GroupSubjectID] = gs
	return nil
}

func (m *mockGroupSubjectRepo) GetByID(_ context.Context, id string) (*model.GroupSubject, error) {
	if gs, ok := m.assignments[id]; ok {
		return gs, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupSubjectRepo) ListByGroup(_ context.Context, groupID string) ([]model.GroupSubject, error) {
	var result []model.GroupSubject
	for _, gs := range m.assignments {
		if gs.GroupID == groupID {
			result = append(result, *gs)
		}
	}
	return result, nil
}

func (m *mockGroupSubjectRepo) ListByScope(_ context.Context, academicYear string, semester int) ([]model.GroupSubject, error) {
	var result []model.GroupSubject
	for _, gs := range m.assignments {
		g, ok := m.groups.groups[gs.GroupID]
		if !ok || g.AcademicYear != academicYear || g.Semester != semester {
			continue
		}
		result = append(result, *gs)
	}
	return result, nil
}

func (m *mockGroupSubjectRepo) Update(_ context.Context, gs *model.GroupSubject) error {
	m.assignments[gs.GroupSubjectID] = gs
	return nil
}

func (m *mockGroupSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock TimetableEntryRepository ──

type mockEntryRepo struct {
	entries map[string]*model.TimetableEntry
	gens    *mockGenerationRepo
	seq     int

	replaceCalls int
	failReplace  bool
}

func newMockEntryRepo(gens *mockGenerationRepo) *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*model.TimetableEntry), gens: gens}
}

func (m *mockEntryRepo) ReplaceForScope(ctx context.Context, academicYear string, semester int, entries []model.TimetableEntry, gen *model.TimetableGeneration) error {
	m.replaceCalls++
	if m.failReplace {
		return fmt.Errorf("模拟落库失败")
	}
	for id, e := range m.entries {
		if e.AcademicYear == academicYear && e.Semester == semester {
			delete(m.entries, id)
		}
	}
	for i := range entries {
		m.seq++
		e := entries[i]
		e.EntryID = fmt.Sprintf("e-%d", m.seq)
		m.entries[e.EntryID] = &e
	}
	return m.gens.Create(ctx, gen)
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.TimetableEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListByScope(_ context.Context, academicYear string, semester int, filter repository.EntryFilter, limit int) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.AcademicYear != academicYear || e.Semester != semester {
			continue
		}
		if filter.GroupID != "" && e.GroupID != filter.GroupID {
			continue
		}
		if filter.TeacherID != "" && e.TeacherID != filter.TeacherID {
			continue
		}
		if filter.ClassroomID != "" && e.ClassroomID != filter.ClassroomID {
			continue
		}
		result = append(result, *e)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockEntryRepo) CountByScope(_ context.Context, academicYear string, semester int) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.AcademicYear == academicYear && e.Semester == semester {
			count++
		}
	}
	return count, nil
}

func (m *mockEntryRepo) Update(_ context.Context, entry *model.TimetableEntry) error {
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// ── Mock GenerationRepository ──

type mockGenerationRepo struct {
	gens []*model.TimetableGeneration
	seq  int
}

func newMockGenerationRepo() *mockGenerationRepo {
	return &mockGenerationRepo{}
}

func (m *mockGenerationRepo) Create(_ context.Context, gen *model.TimetableGeneration) error {
	m.seq++
	if gen.GenerationID == "" {
		gen.GenerationID = fmt.Sprintf("gen-%d", m.seq)
	}
	gen.CreatedAt = time.Now()
	m.gens = append(m.gens, gen)
	return nil
}

func (m *mockGenerationRepo) GetLatestByScope(_ context.Context, academicYear string, semester int) (*model.TimetableGeneration, error) {
	for i := len(m.gens) - 1; i >= 0; i-- {
		if m.gens[i].AcademicYear == academicYear && m.gens[i].Semester == semester {
			return m.gens[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGenerationRepo) ListByScope(_ context.Context, academicYear string, semester int, _, _ int) ([]model.TimetableGeneration, int64, error) {
	var result []model.TimetableGeneration
	for _, g := range m.gens {
		if g.AcademicYear == academicYear && g.Semester == semester {
			result = append(result, *g)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock ConflictRepository ──

type mockConflictRepo struct {
	conflicts map[string]*model.TimetableConflict
	seq       int
}

func newMockConflictRepo() *mockConflictRepo {
	return &mockConflictRepo{conflicts: make(map[string]*model.TimetableConflict)}
}

func (m *mockConflictRepo) Create(_ context.Context, conflict *model.TimetableConflict) error {
	m.seq++
	if conflict.ConflictID == "" {
		conflict.ConflictID = fmt.Sprintf("c-%d", m.seq)
	}
	m.conflicts[conflict.ConflictID] = conflict
	return nil
}

func (m *mockConflictRepo) ListUnresolved(_ context.Context, _ string, _ int) ([]model.TimetableConflict, error) {
	var result []model.TimetableConflict
	for _, c := range m.conflicts {
		if c.ResolutionStatus == "unresolved" {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockConflictRepo) Resolve(_ context.Context, id string) error {
	c, ok := m.conflicts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.ResolutionStatus = "resolved"
	return nil
}

// ── 聚合构造 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user         *mockUserRepo
	teacher      *mockTeacherRepo
	subject      *mockSubjectRepo
	classroom    *mockClassroomRepo
	group        *mockGroupRepo
	timeSlot     *mockTimeSlotRepo
	groupSubject *mockGroupSubjectRepo
	entry        *mockEntryRepo
	generation   *mockGenerationRepo
	conflict     *mockConflictRepo
}

func newTestRepos() *testRepos {
	group := newMockGroupRepo()
	gs := newMockGroupSubjectRepo(group)
	gens := newMockGenerationRepo()
	entry := newMockEntryRepo(gens)
	teacher := newMockTeacherRepo()
	teacher.gs = gs
	teacher.entries = entry

	return &testRepos{
		user:         newMockUserRepo(),
		teacher:      teacher,
		subject:      newMockSubjectRepo(),
		classroom:    newMockClassroomRepo(),
		group:        group,
		timeSlot:     newMockTimeSlotRepo(),
		groupSubject: gs,
		entry:        entry,
		generation:   gens,
		conflict:     newMockConflictRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:         r.user,
		Teacher:      r.teacher,
		Subject:      r.subject,
		Classroom:    r.classroom,
		Group:        r.group,
		TimeSlot:     r.timeSlot,
		GroupSubject: r.groupSubject,
		Entry:        r.entry,
		Generation:   r.generation,
		Conflict:     r.conflict,
	}
}
