package migration

import (
	"fmt"

	"facilityops/services/catalog"
	"facilityops/services/dataset"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Step is one unit of the one-time import. Key is the idempotency key logged
// on completion; Run must itself be insert-if-absent so a re-execution after a
// marker/mutation mismatch is harmless.
type Step struct {
	Key string
	Run func(tx *gorm.DB, snap *dataset.Snapshot) error
}

// DefaultSteps declares the import steps in their fixed execution order.
// Later steps resolve references created by earlier ones, so the order is part
// of the contract.
func DefaultSteps(node *snowflake.Node) []Step {
	return []Step{
		{Key: "import_workers", Run: func(tx *gorm.DB, snap *dataset.Snapshot) error {
			for _, w := range snap.Workers {
				row := catalog.Worker{}
				err := tx.Where(catalog.Worker{Code: w.Code}).
					Attrs(catalog.Worker{
						ID:       node.Generate().String(),
						Name:     w.Name,
						Role:     w.Role,
						IsActive: true,
					}).
					FirstOrCreate(&row).Error
				if err != nil {
					return fmt.Errorf("worker %s: %w", w.Code, err)
				}
			}
			return nil
		}},
		{Key: "import_buildings", Run: func(tx *gorm.DB, snap *dataset.Snapshot) error {
			for _, b := range snap.Buildings {
				row := catalog.Building{}
				err := tx.Where(catalog.Building{Code: b.Code}).
					Attrs(catalog.Building{
						ID:      node.Generate().String(),
						Name:    b.Name,
						Address: b.Address,
					}).
					FirstOrCreate(&row).Error
				if err != nil {
					return fmt.Errorf("building %s: %w", b.Code, err)
				}
			}
			return nil
		}},
		{Key: "import_templates", Run: func(tx *gorm.DB, snap *dataset.Snapshot) error {
			for _, t := range snap.Templates {
				workerID, err := workerIDByCode(tx, t.WorkerCode)
				if err != nil {
					return fmt.Errorf("template %s: %w", t.Code, err)
				}
				buildingID, err := buildingIDByCode(tx, t.BuildingCode)
				if err != nil {
					return fmt.Errorf("template %s: %w", t.Code, err)
				}

				row := catalog.RoutineTemplate{}
				err = tx.Where(catalog.RoutineTemplate{Code: t.Code}).
					Attrs(catalog.RoutineTemplate{
						ID:              node.Generate().String(),
						WorkerID:        workerID,
						BuildingID:      buildingID,
						Title:           t.Title,
						Description:     t.Description,
						Category:        t.Category,
						Priority:        t.Priority,
						Frequency:       t.Frequency,
						DaysOfWeek:      t.DaysOfWeek,
						DurationMinutes: t.DurationMinutes,
						RequiresPhoto:   t.RequiresPhoto,
						IsActive:        true,
					}).
					FirstOrCreate(&row).Error
				if err != nil {
					return fmt.Errorf("template %s: %w", t.Code, err)
				}
			}
			return nil
		}},
		{Key: "import_assignments", Run: func(tx *gorm.DB, snap *dataset.Snapshot) error {
			for _, a := range snap.Assignments {
				workerID, err := workerIDByCode(tx, a.WorkerCode)
				if err != nil {
					return fmt.Errorf("assignment %s/%s: %w", a.WorkerCode, a.BuildingCode, err)
				}
				buildingID, err := buildingIDByCode(tx, a.BuildingCode)
				if err != nil {
					return fmt.Errorf("assignment %s/%s: %w", a.WorkerCode, a.BuildingCode, err)
				}

				row := catalog.Assignment{}
				err = tx.Where(catalog.Assignment{WorkerID: workerID, BuildingID: buildingID}).
					Attrs(catalog.Assignment{ID: node.Generate().String()}).
					FirstOrCreate(&row).Error
				if err != nil {
					return fmt.Errorf("assignment %s/%s: %w", a.WorkerCode, a.BuildingCode, err)
				}
			}
			return nil
		}},
		{Key: "import_capability_flags", Run: func(tx *gorm.DB, snap *dataset.Snapshot) error {
			for _, f := range snap.Flags {
				workerID, err := workerIDByCode(tx, f.WorkerCode)
				if err != nil {
					return fmt.Errorf("capability %s/%s: %w", f.WorkerCode, f.Capability, err)
				}

				row := catalog.WorkerCapability{}
				err = tx.Where(catalog.WorkerCapability{WorkerID: workerID, Capability: f.Capability}).
					Attrs(catalog.WorkerCapability{ID: node.Generate().String()}).
					FirstOrCreate(&row).Error
				if err != nil {
					return fmt.Errorf("capability %s/%s: %w", f.WorkerCode, f.Capability, err)
				}
			}
			return nil
		}},
	}
}

func workerIDByCode(tx *gorm.DB, code string) (string, error) {
	var w catalog.Worker
	if err := tx.Where("code = ?", code).First(&w).Error; err != nil {
		return "", fmt.Errorf("unknown worker code %q: %w", code, err)
	}
	return w.ID, nil
}

func buildingIDByCode(tx *gorm.DB, code string) (string, error) {
	var b catalog.Building
	if err := tx.Where("code = ?", code).First(&b).Error; err != nil {
		return "", fmt.Errorf("unknown building code %q: %w", code, err)
	}
	return b.ID, nil
}
