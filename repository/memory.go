package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/BerniceZTT/pipeline_end/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存版存储实现。与MongoDB实现遵守同一套契约：
// 相同的哨兵错误、相同的唯一性约束、相同的排序，
// 每个存储用互斥锁提供按实体的读-改-写互斥。
// 用于测试，也可作为无数据库的演示模式。

// MemoryUserStore 用户存储的内存实现
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemoryUserStore 创建内存用户存储
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}

	s.users[user.ID.Hex()] = *user
	return nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		user.Password = ""
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// MemoryLeadStore 线索存储的内存实现
type MemoryLeadStore struct {
	mu    sync.Mutex
	leads map[string]models.Lead
}

// NewMemoryLeadStore 创建内存线索存储
func NewMemoryLeadStore() *MemoryLeadStore {
	return &MemoryLeadStore{leads: make(map[string]models.Lead)}
}

func (s *MemoryLeadStore) Insert(ctx context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	s.leads[lead.ID.Hex()] = *lead
	return nil
}

func (s *MemoryLeadStore) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &lead, nil
}

func (s *MemoryLeadStore) FindAll(ctx context.Context, ownerID string) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := make([]models.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if ownerID != "" && lead.OwnerID != ownerID {
			continue
		}
		leads = append(leads, lead)
	}
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads, nil
}

func (s *MemoryLeadStore) Update(ctx context.Context, id string, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.leads[id]
	if !ok {
		return ErrNotFound
	}

	existing.Name = lead.Name
	existing.Email = lead.Email
	existing.Phone = lead.Phone
	existing.Status = lead.Status
	existing.UpdatedAt = lead.UpdatedAt
	s.leads[id] = existing
	return nil
}

func (s *MemoryLeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[id]; !ok {
		return ErrNotFound
	}
	delete(s.leads, id)
	return nil
}

// MemoryOpportunityStore 商机存储的内存实现
type MemoryOpportunityStore struct {
	mu   sync.Mutex
	opps map[string]models.Opportunity
}

// NewMemoryOpportunityStore 创建内存商机存储
func NewMemoryOpportunityStore() *MemoryOpportunityStore {
	return &MemoryOpportunityStore{opps: make(map[string]models.Opportunity)}
}

func (s *MemoryOpportunityStore) Insert(ctx context.Context, opp *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 与MongoDB的部分唯一索引等价的约束
	if opp.LeadID != "" {
		for _, existing := range s.opps {
			if existing.LeadID == opp.LeadID {
				return ErrDuplicateLeadRef
			}
		}
	}

	if opp.ID.IsZero() {
		opp.ID = primitive.NewObjectID()
	}
	s.opps[opp.ID.Hex()] = *opp
	return nil
}

func (s *MemoryOpportunityStore) FindByID(ctx context.Context, id string) (*models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.opps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &opp, nil
}

func (s *MemoryOpportunityStore) FindByLeadID(ctx context.Context, leadID string) (*models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, opp := range s.opps {
		if opp.LeadID != "" && opp.LeadID == leadID {
			o := opp
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryOpportunityStore) FindAll(ctx context.Context, ownerID string) ([]models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opps := make([]models.Opportunity, 0, len(s.opps))
	for _, opp := range s.opps {
		if ownerID != "" && opp.OwnerID != ownerID {
			continue
		}
		opps = append(opps, opp)
	}
	sort.Slice(opps, func(i, j int) bool {
		return opps[i].CreatedAt.After(opps[j].CreatedAt)
	})
	return opps, nil
}

func (s *MemoryOpportunityStore) Update(ctx context.Context, id string, opp *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.opps[id]
	if !ok {
		return ErrNotFound
	}

	existing.Title = opp.Title
	existing.Value = opp.Value
	existing.Stage = opp.Stage
	existing.UpdatedAt = opp.UpdatedAt
	s.opps[id] = existing
	return nil
}

func (s *MemoryOpportunityStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.opps[id]; !ok {
		return ErrNotFound
	}
	delete(s.opps, id)
	return nil
}
