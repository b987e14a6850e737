package repository

import (
	"context"
	"errors"

	"github.com/BerniceZTT/pipeline_end/models"
)

// 存储层哨兵错误，上层据此区分业务失败与存储故障
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateEmail 邮箱已被占用
	ErrDuplicateEmail = errors.New("邮箱已被占用")
	// ErrDuplicateLeadRef 已存在引用同一线索的商机
	ErrDuplicateLeadRef = errors.New("已存在引用同一线索的商机")
)

// UserStore 用户存储契约
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// LeadStore 线索存储契约，ownerID为空表示不按归属过滤
type LeadStore interface {
	Insert(ctx context.Context, lead *models.Lead) error
	FindByID(ctx context.Context, id string) (*models.Lead, error)
	FindAll(ctx context.Context, ownerID string) ([]models.Lead, error)
	Update(ctx context.Context, id string, lead *models.Lead) error
	Delete(ctx context.Context, id string) error
}

// OpportunityStore 商机存储契约
type OpportunityStore interface {
	Insert(ctx context.Context, opp *models.Opportunity) error
	FindByID(ctx context.Context, id string) (*models.Opportunity, error)
	FindByLeadID(ctx context.Context, leadID string) (*models.Opportunity, error)
	FindAll(ctx context.Context, ownerID string) ([]models.Opportunity, error)
	Update(ctx context.Context, id string, opp *models.Opportunity) error
	Delete(ctx context.Context, id string) error
}
