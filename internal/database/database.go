package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDatabase(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&BenchmarkRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func CreateRun(db *gorm.DB, eventId, mode string, baseline bool) (uuid.UUID, error) {
	run := BenchmarkRun{
		Id:           uuid.New(),
		EventId:      eventId,
		Mode:         mode,
		Baseline:     baseline,
		Status:       RunRunning,
		CreationTime: time.Now().UTC(),
	}
	if err := db.Create(&run).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to record run: %w", err)
	}
	return run.Id, nil
}

func UpdateRun(db *gorm.DB, runId uuid.UUID, updates map[string]any) error {
	if err := db.Model(&BenchmarkRun{}).Where("id = ?", runId).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update run %s: %w", runId, err)
	}
	return nil
}

func CompleteRun(db *gorm.DB, runId uuid.UUID, status, checkpoint string) error {
	updates := map[string]any{
		"status":          status,
		"completion_time": sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}
	if checkpoint != "" {
		updates["checkpoint"] = sql.NullString{String: checkpoint, Valid: true}
	}
	return UpdateRun(db, runId, updates)
}
