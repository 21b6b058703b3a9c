package dataset

import (
	"go.uber.org/fx"
)

// Snapshot is the canonical in-memory operational dataset the one-time
// migration imports. Field order is fixed so the serialized form, and with it
// the checksum, stays stable.
type Snapshot struct {
	Workers     []WorkerRecord     `json:"workers"`
	Buildings   []BuildingRecord   `json:"buildings"`
	Templates   []TemplateRecord   `json:"templates"`
	Assignments []AssignmentRecord `json:"assignments"`
	Flags       []CapabilityFlag   `json:"capability_flags"`
}

type WorkerRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type BuildingRecord struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type TemplateRecord struct {
	Code            string `json:"code"`
	WorkerCode      string `json:"worker_code"`
	BuildingCode    string `json:"building_code"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Priority        int    `json:"priority"`
	Frequency       string `json:"frequency"`
	DaysOfWeek      string `json:"days_of_week"`
	DurationMinutes int    `json:"duration_minutes"`
	RequiresPhoto   bool   `json:"requires_photo"`
}

type AssignmentRecord struct {
	WorkerCode   string `json:"worker_code"`
	BuildingCode string `json:"building_code"`
}

type CapabilityFlag struct {
	WorkerCode string `json:"worker_code"`
	Capability string `json:"capability"`
}

// Counts summarises the snapshot for backup records and logs.
type Counts struct {
	Workers     int `json:"workers"`
	Buildings   int `json:"buildings"`
	Templates   int `json:"templates"`
	Assignments int `json:"assignments"`
	Flags       int `json:"capability_flags"`
}

func (s *Snapshot) Counts() Counts {
	return Counts{
		Workers:     len(s.Workers),
		Buildings:   len(s.Buildings),
		Templates:   len(s.Templates),
		Assignments: len(s.Assignments),
		Flags:       len(s.Flags),
	}
}

// Provider hands out the canonical dataset. The production provider returns
// the built-in seed; tests substitute their own.
type Provider interface {
	Snapshot() *Snapshot
}

var Module = fx.Module("dataset",
	fx.Provide(NewSeedProvider),
)

type seedProvider struct{}

func NewSeedProvider() Provider {
	return seedProvider{}
}

func (seedProvider) Snapshot() *Snapshot {
	return Seed()
}
