package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// 集合名
	UsersCollection         = "users"
	LeadsCollection         = "leads"
	OpportunitiesCollection = "opportunities"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB 初始化MongoDB连接
func InitMongoDB(uri, dbName string) error {
	// 设置连接超时
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// 创建客户端
	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("连接MongoDB失败: %w", err)
	}

	// 检查连接
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping MongoDB失败: %w", err)
	}

	// 选择数据库
	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("已连接到MongoDB")

	return nil
}

// CloseMongoDB 关闭MongoDB连接
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("断开MongoDB连接失败")
			return
		}
		utils.Logger.Info().Msg("已断开MongoDB连接")
	}
}

// GetContext 返回MongoDB操作的上下文
func GetContext() context.Context {
	return ctx
}

// Collection 返回指定名称的集合
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// InitializeCollections 初始化数据库集合
func InitializeCollections() error {
	collections := []string{
		UsersCollection,
		LeadsCollection,
		OpportunitiesCollection,
	}

	for _, collName := range collections {
		// 检查集合是否存在
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("检查集合失败: %w", err)
		}

		// 如果不存在则创建
		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("创建集合失败: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("创建集合成功")
		} else {
			utils.Logger.Info().Str("collection", collName).Msg("集合已存在")
		}
	}

	return EnsureIndexes()
}

// CollectionExists 检查集合是否存在
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// EnsureIndexes 创建唯一索引
// users.email 使用 strength=2 的 collation 做大小写不敏感唯一约束；
// opportunities.leadid 使用部分唯一索引，保证一条线索最多被转化一次，
// 并把并发的重复转化变成一次成功加一次键冲突。
func EnsureIndexes() error {
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("创建用户邮箱索引失败: %w", err)
	}

	leadRefIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "leadid", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"leadid": bson.M{"$exists": true, "$type": "string"}}),
	}
	if _, err := db.Collection(OpportunitiesCollection).Indexes().CreateOne(ctx, leadRefIndex); err != nil {
		return fmt.Errorf("创建商机线索引用索引失败: %w", err)
	}

	utils.Logger.Info().Msg("唯一索引初始化完成")
	return nil
}

// InitializeDemoAccounts 初始化演示账户
func InitializeDemoAccounts() error {
	usersCollection := db.Collection(UsersCollection)

	demoAccounts := []struct {
		Name  string
		Email string
		Role  models.UserRole
	}{
		{"Admin", "admin@demo.com", models.UserRoleADMIN},
		{"Manager", "manager@demo.com", models.UserRoleMANAGER},
		{"Rep", "rep@demo.com", models.UserRoleREP},
	}

	for _, account := range demoAccounts {
		count, err := usersCollection.CountDocuments(ctx, bson.M{"email": account.Email})
		if err != nil {
			return fmt.Errorf("检查演示账户失败: %w", err)
		}

		// 如果已存在，则不创建
		if count > 0 {
			continue
		}

		hashed, err := utils.HashPassword("password")
		if err != nil {
			return err
		}

		user := models.User{
			Name:      account.Name,
			Email:     account.Email,
			Password:  hashed,
			Role:      account.Role,
			CreatedAt: time.Now(),
		}

		if _, err := usersCollection.InsertOne(ctx, user); err != nil {
			return fmt.Errorf("创建演示账户失败: %w", err)
		}
		utils.Logger.Info().Str("email", account.Email).Msg("已创建演示账户")
	}

	return nil
}

// GetDatabaseStatus 获取数据库状态
func GetDatabaseStatus() (map[string]interface{}, error) {
	collections := []string{
		UsersCollection,
		LeadsCollection,
		OpportunitiesCollection,
	}

	result := make(map[string]interface{})

	for _, collName := range collections {
		coll := db.Collection(collName)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("获取集合计数失败")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{
			"count": count,
		}
	}

	return result, nil
}
