package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB 自定义类型 ──
//
// 教师资质、每周不可用时间、教室设施在库里都是松散的 JSON 字段，
// 由外围录入层写入。这里解析为显式类型，且对缺失/畸形数据一律
// 回落到零值（无资质/无不可用/无设施），绝不因脏数据报错。

// StringList 对应 JSONB 字符串数组，如 ["CS101","MA102"]
type StringList []string

// Scan 解析 JSONB 数组；NULL 或畸形内容回落为空列表
func (l *StringList) Scan(src interface{}) error {
	*l = StringList{}
	raw, err := jsonbBytes(src)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil // 畸形数据按"无"处理
	}
	*l = parsed
	return nil
}

// Value 序列化为 JSONB 数组
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Contains 判断列表是否包含指定元素
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// DayBandMap 对应 JSONB 对象：星期名（小写）→ 不可用时段标记列表
// 合法标记: "all_day" | "morning" | "afternoon"
type DayBandMap map[string][]string

// Scan 解析 JSONB 对象；NULL 或畸形内容回落为空映射
func (m *DayBandMap) Scan(src interface{}) error {
	*m = DayBandMap{}
	raw, err := jsonbBytes(src)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var parsed map[string][]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	*m = parsed
	return nil
}

// Value 序列化为 JSONB 对象
func (m DayBandMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string][]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// FacilityMap 对应 JSONB 对象：设施名 → 是否具备
type FacilityMap map[string]bool

// Scan 解析 JSONB 对象；NULL 或畸形内容回落为空映射
func (m *FacilityMap) Scan(src interface{}) error {
	*m = FacilityMap{}
	raw, err := jsonbBytes(src)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var parsed map[string]bool
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	*m = parsed
	return nil
}

// Value 序列化为 JSONB 对象
func (m FacilityMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]bool(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonbBytes(src interface{}) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("jsonb: unsupported type %T", src)
	}
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
