package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"facilityops/pkg/config"
	"facilityops/pkg/errutil"
	"facilityops/services/checksum"
	"facilityops/services/dataset"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node
	dir  string
}

type ServiceParams struct {
	fx.In
	DB     *gorm.DB
	Node   *snowflake.Node
	Config *config.Config
}

func NewService(p ServiceParams) *Service {
	return &Service{db: p.DB, node: p.Node, dir: p.Config.Pipeline.BackupDir}
}

// NewServiceWith constructs the service directly, used by tests and by the
// migration wiring.
func NewServiceWith(db *gorm.DB, node *snowflake.Node, dir string) *Service {
	return &Service{db: db, node: node, dir: dir}
}

type envelope struct {
	Checksum   string            `json:"checksum"`
	ItemCounts dataset.Counts    `json:"item_counts"`
	CreatedAt  time.Time         `json:"created_at"`
	Snapshot   *dataset.Snapshot `json:"snapshot"`
}

// Create serializes the snapshot plus its checksum into a uniquely named
// artifact and records it. Existing artifacts are never overwritten.
func (s *Service) Create(ctx context.Context, snap *dataset.Snapshot) (*Record, error) {
	sum, err := checksum.Compute(snap)
	if err != nil {
		return nil, errutil.BackupFailed("failed to checksum snapshot", errutil.WithErr(err))
	}

	id := s.node.Generate().String()
	env := envelope{
		Checksum:   sum,
		ItemCounts: snap.Counts(),
		CreatedAt:  time.Now(),
		Snapshot:   snap,
	}

	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, errutil.BackupFailed("failed to serialize snapshot", errutil.WithErr(err))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errutil.BackupFailed("failed to create backup directory", errutil.WithErr(err))
	}

	path := filepath.Join(s.dir, fmt.Sprintf("backup_%s.json", id))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errutil.BackupFailed("failed to create backup artifact", errutil.WithErr(err))
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		return nil, errutil.BackupFailed("failed to write backup artifact", errutil.WithErr(err))
	}
	if err := f.Close(); err != nil {
		return nil, errutil.BackupFailed("failed to close backup artifact", errutil.WithErr(err))
	}

	counts, _ := json.Marshal(snap.Counts())
	rec := &Record{
		ID:           id,
		ArtifactPath: path,
		Checksum:     sum,
		ItemCounts:   counts,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, errutil.BackupFailed("failed to record backup", errutil.WithErr(err))
	}

	zap.L().Info("[Backup] created backup artifact",
		zap.String("backup_id", id),
		zap.String("path", path),
		zap.String("checksum", sum),
	)

	return rec, nil
}

// Latest returns the most recent backup record, or nil when none exists.
func (s *Service) Latest(ctx context.Context) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errutil.Database("failed to load latest backup record", errutil.WithErr(err))
	}
	return &rec, nil
}
