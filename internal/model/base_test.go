package model

import (
	"reflect"
	"testing"
)

func TestStringList_Scan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want StringList
	}{
		{"正常数组", []byte(`["CS101","MA102"]`), StringList{"CS101", "MA102"}},
		{"字符串输入", `["PH103"]`, StringList{"PH103"}},
		{"NULL回落为空", nil, StringList{}},
		{"空串回落为空", []byte(""), StringList{}},
		{"畸形JSON回落为空", []byte(`{not json`), StringList{}},
		{"类型不符回落为空", []byte(`{"a":1}`), StringList{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l StringList
			if err := l.Scan(tc.src); err != nil {
				t.Fatalf("Scan 不应报错: %v", err)
			}
			if !reflect.DeepEqual(l, tc.want) {
				t.Errorf("期望 %v，实际 %v", tc.want, l)
			}
		})
	}
}

func TestStringList_Contains(t *testing.T) {
	l := StringList{"CS101", "MA102"}
	if !l.Contains("CS101") {
		t.Error("应包含 CS101")
	}
	if l.Contains("PH103") {
		t.Error("不应包含 PH103")
	}
}

func TestDayBandMap_Scan(t *testing.T) {
	var m DayBandMap
	if err := m.Scan([]byte(`{"friday":["all_day"],"monday":["morning"]}`)); err != nil {
		t.Fatalf("Scan 不应报错: %v", err)
	}
	if len(m["friday"]) != 1 || m["friday"][0] != "all_day" {
		t.Errorf("friday 解析错误: %v", m["friday"])
	}

	// 畸形数据回落为空映射，不报错
	var bad DayBandMap
	if err := bad.Scan([]byte(`[1,2,3]`)); err != nil {
		t.Fatalf("畸形数据不应报错: %v", err)
	}
	if len(bad) != 0 {
		t.Errorf("畸形数据应回落为空映射，实际 %v", bad)
	}
}

func TestFacilityMap_Value(t *testing.T) {
	m := FacilityMap{"projector": true}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value 不应报错: %v", err)
	}
	if v.(string) != `{"projector":true}` {
		t.Errorf("序列化结果错误: %v", v)
	}

	var nilMap FacilityMap
	v, err = nilMap.Value()
	if err != nil {
		t.Fatalf("nil Value 不应报错: %v", err)
	}
	if v.(string) != "{}" {
		t.Errorf("nil 应序列化为 {}，实际 %v", v)
	}
}
