package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestMemoryUserStoreDuplicateEmail 邮箱唯一约束大小写不敏感
func TestMemoryUserStoreDuplicateEmail(t *testing.T) {
	store := repository.NewMemoryUserStore()

	err := store.Insert(context.Background(), &models.User{
		Name:  "用户甲",
		Email: "someone@example.com",
		Role:  models.UserRoleREP,
	})
	require.NoError(t, err)

	err = store.Insert(context.Background(), &models.User{
		Name:  "用户乙",
		Email: "Someone@Example.COM",
		Role:  models.UserRoleREP,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	user, err := store.FindByEmail(context.Background(), "SOMEONE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "用户甲", user.Name)
}

// TestMemoryUserStoreFindAllBlanksPassword 列表不泄露密码哈希
func TestMemoryUserStoreFindAllBlanksPassword(t *testing.T) {
	store := repository.NewMemoryUserStore()

	require.NoError(t, store.Insert(context.Background(), &models.User{
		Name:     "用户",
		Email:    "pw@example.com",
		Password: "$2a$10$hash",
		Role:     models.UserRoleADMIN,
	}))

	users, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)

	// FindByID保留密码，登录校验需要
	user, err := store.FindByEmail(context.Background(), "pw@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", user.Password)
}

// TestMemoryLeadStoreNotFound 查不到的线索返回统一的哨兵错误
func TestMemoryLeadStoreNotFound(t *testing.T) {
	store := repository.NewMemoryLeadStore()
	missing := primitive.NewObjectID().Hex()

	_, err := store.FindByID(context.Background(), missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = store.Update(context.Background(), missing, &models.Lead{Name: "不存在"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = store.Delete(context.Background(), missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestMemoryLeadStoreFindAllOrderAndScope 列表按创建时间倒序，支持按负责人过滤
func TestMemoryLeadStoreFindAllOrderAndScope(t *testing.T) {
	store := repository.NewMemoryLeadStore()
	ownerA := primitive.NewObjectID().Hex()
	ownerB := primitive.NewObjectID().Hex()
	now := time.Now()

	require.NoError(t, store.Insert(context.Background(), &models.Lead{
		Name: "较早", OwnerID: ownerA, Status: models.LeadStatusNew, CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, store.Insert(context.Background(), &models.Lead{
		Name: "较晚", OwnerID: ownerA, Status: models.LeadStatusNew, CreatedAt: now,
	}))
	require.NoError(t, store.Insert(context.Background(), &models.Lead{
		Name: "别人的", OwnerID: ownerB, Status: models.LeadStatusNew, CreatedAt: now.Add(-time.Minute),
	}))

	all, err := store.FindAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "较晚", all[0].Name)
	assert.Equal(t, "较早", all[2].Name)

	mine, err := store.FindAll(context.Background(), ownerA)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

// TestMemoryOpportunityStoreLeadRefUnique 同一线索至多关联一个商机
func TestMemoryOpportunityStoreLeadRefUnique(t *testing.T) {
	store := repository.NewMemoryOpportunityStore()
	leadID := primitive.NewObjectID().Hex()

	require.NoError(t, store.Insert(context.Background(), &models.Opportunity{
		Title: "首次转化", Stage: models.OpportunityStageDiscovery, LeadID: leadID,
	}))

	err := store.Insert(context.Background(), &models.Opportunity{
		Title: "重复转化", Stage: models.OpportunityStageDiscovery, LeadID: leadID,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateLeadRef)

	// 不带线索引用的商机数量不限
	require.NoError(t, store.Insert(context.Background(), &models.Opportunity{
		Title: "普通商机一", Stage: models.OpportunityStageDiscovery,
	}))
	require.NoError(t, store.Insert(context.Background(), &models.Opportunity{
		Title: "普通商机二", Stage: models.OpportunityStageDiscovery,
	}))

	found, err := store.FindByLeadID(context.Background(), leadID)
	require.NoError(t, err)
	assert.Equal(t, "首次转化", found.Title)

	_, err = store.FindByLeadID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
