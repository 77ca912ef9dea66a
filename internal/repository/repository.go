package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	College     CollegeRepository
	User        UserRepository
	Student     StudentRepository
	Accompanist AccompanistRepository
	Roster      RosterRepository
	Session     SessionRepository
	Event       EventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		College:     NewCollegeRepo(db),
		User:        NewUserRepo(db),
		Student:     NewStudentRepo(db),
		Accompanist: NewAccompanistRepo(db),
		Roster:      NewRosterRepo(db),
		Session:     NewSessionRepo(db),
		Event:       NewEventRepo(db),
	}
}

// BeginTx 开启事务。
// 未绑定数据库（测试中手工组装的 Repository）时返回 nil 事务，调用方需判空。
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	var opts *sql.TxOptions
	if r.db.Dialector != nil && r.db.Dialector.Name() == "postgres" {
		opts = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	tx := r.db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// BeginReadTx 开启只读事务，事务内的多条查询读同一快照。
// PostgreSQL 下为 REPEATABLE READ READ ONLY；未绑定数据库时返回 nil 事务。
func (r *Repository) BeginReadTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	var opts *sql.TxOptions
	if r.db.Dialector != nil && r.db.Dialector.Name() == "postgres" {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	tx := r.db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository；tx 为 nil 时原样返回
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping 检查数据库连通性
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
