package repository_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/model"
)

// SQLite 版名单表，与 migrations/000002 的结构和唯一约束一致
const sqliteRosterDDL = `CREATE TABLE %s (
	entry_id            INTEGER PRIMARY KEY AUTOINCREMENT,
	college_id          INTEGER NOT NULL,
	college_name        TEXT    NOT NULL,
	person_type         TEXT    NOT NULL CHECK (person_type IN ('student', 'accompanist')),
	person_id           INTEGER NOT NULL,
	full_name           TEXT    NOT NULL,
	usn                 TEXT,
	phone               TEXT    NOT NULL DEFAULT '',
	email               TEXT    NOT NULL DEFAULT '',
	photo_url           TEXT,
	role                TEXT    NOT NULL CHECK (role IN ('participant', 'accompanist')),
	assigned_by_user_id INTEGER,
	created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (college_id, person_type, person_id)
)`

// newTestDB 内存 SQLite，建好基础表与全部名单表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.College{},
		&model.PaymentReceipt{},
		&model.User{},
		&model.Student{},
		&model.StudentApplication{},
		&model.Accompanist{},
		&model.AccompanistSession{},
		&model.Event{},
	))
	for _, table := range catalog.Default().Tables() {
		require.NoError(t, db.Exec(fmt.Sprintf(sqliteRosterDDL, table)).Error)
	}
	return db
}

// ── 种子数据 ──

func seedCollege(t *testing.T, db *gorm.DB, code string, locked bool) *model.College {
	t.Helper()
	c := &model.College{CollegeCode: code, CollegeName: "College " + code, IsFinalApproved: locked}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedStudent(t *testing.T, db *gorm.DB, collegeID int64, name, status string) *model.Student {
	t.Helper()
	s := &model.Student{
		CollegeID: collegeID,
		FullName:  name,
		USN:       "USN-" + name,
		Email:     name + "@example.edu",
		Phone:     "900000000",
	}
	require.NoError(t, db.Create(s).Error)
	if status != "" {
		require.NoError(t, db.Create(&model.StudentApplication{StudentID: s.StudentID, Status: status}).Error)
	}
	return s
}

func seedAccompanist(t *testing.T, db *gorm.DB, collegeID int64, name string) *model.Accompanist {
	t.Helper()
	a := &model.Accompanist{
		CollegeID:       collegeID,
		FullName:        name,
		Phone:           "800000000",
		Email:           name + "@example.edu",
		AccompanistType: model.AccompanistFaculty,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
