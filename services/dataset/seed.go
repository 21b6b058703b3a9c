package dataset

// Seed returns the canonical operational dataset that existed before the
// database was introduced. It is the single source the migration imports and
// must not be edited once installations have migrated; the checksum stored
// with the backup detects accidental drift.
func Seed() *Snapshot {
	return &Snapshot{
		Workers: []WorkerRecord{
			{Code: "W-001", Name: "Marta Kowalski", Role: "supervisor"},
			{Code: "W-002", Name: "Devon Price", Role: "technician"},
			{Code: "W-003", Name: "Lucia Herrera", Role: "technician"},
			{Code: "W-004", Name: "Sam Okafor", Role: "janitorial"},
			{Code: "W-005", Name: "Priya Nair", Role: "janitorial"},
		},
		Buildings: []BuildingRecord{
			{Code: "B-NORTH", Name: "North Tower", Address: "410 Commerce Way"},
			{Code: "B-SOUTH", Name: "South Tower", Address: "412 Commerce Way"},
			{Code: "B-DEPOT", Name: "Service Depot", Address: "77 Yard Road"},
		},
		Templates: []TemplateRecord{
			{
				Code: "T-LOBBY-CLEAN", WorkerCode: "W-004", BuildingCode: "B-NORTH",
				Title: "Lobby cleaning", Description: "Mop lobby floors and wipe entry glass",
				Category: "cleaning", Priority: 3, Frequency: "daily",
				DurationMinutes: 45,
			},
			{
				Code: "T-TRASH-ROUNDS", WorkerCode: "W-005", BuildingCode: "B-SOUTH",
				Title: "Trash rounds", Description: "Empty bins on all floors",
				Category: "cleaning", Priority: 2, Frequency: "weekdays",
				DurationMinutes: 60,
			},
			{
				Code: "T-HVAC-FILTER", WorkerCode: "W-002", BuildingCode: "B-NORTH",
				Title: "HVAC filter check", Description: "Inspect and swap air filters as needed",
				Category: "mechanical", Priority: 5, Frequency: "monthly",
				DurationMinutes: 90, RequiresPhoto: true,
			},
			{
				Code: "T-BOILER-INSPECT", WorkerCode: "W-002", BuildingCode: "B-DEPOT",
				Title: "Boiler inspection", Description: "Pressure and valve inspection",
				Category: "mechanical", Priority: 5, Frequency: "quarterly",
				DurationMinutes: 120, RequiresPhoto: true,
			},
			{
				Code: "T-GARAGE-SWEEP", WorkerCode: "W-003", BuildingCode: "B-SOUTH",
				Title: "Garage sweep", Description: "Machine-sweep parking levels",
				Category: "cleaning", Priority: 2, Frequency: "weekly", DaysOfWeek: "mon",
				DurationMinutes: 75,
			},
			{
				Code: "T-WINDOW-WASH", WorkerCode: "W-003", BuildingCode: "B-NORTH",
				Title: "Exterior window wash", Description: "Ground-floor exterior glass",
				Category: "cleaning", Priority: 1, Frequency: "bi-weekly",
				DurationMinutes: 180,
			},
			{
				Code: "T-GYM-RESET", WorkerCode: "W-004", BuildingCode: "B-SOUTH",
				Title: "Gym reset", Description: "Re-rack weights, sanitize equipment",
				Category: "cleaning", Priority: 3, Frequency: "mon,wed,fri",
				DurationMinutes: 30,
			},
			{
				Code: "T-ROOF-AUDIT", WorkerCode: "W-001", BuildingCode: "B-NORTH",
				Title: "Roof audit", Description: "Annual membrane and drainage audit",
				Category: "inspection", Priority: 4, Frequency: "yearly",
				DurationMinutes: 240, RequiresPhoto: true,
			},
			{
				Code: "T-GROUNDS-WEEKEND", WorkerCode: "W-005", BuildingCode: "B-DEPOT",
				Title: "Weekend grounds check", Description: "Walk the yard, log hazards",
				Category: "inspection", Priority: 2, Frequency: "weekends",
				DurationMinutes: 40,
			},
		},
		Assignments: []AssignmentRecord{
			{WorkerCode: "W-001", BuildingCode: "B-NORTH"},
			{WorkerCode: "W-002", BuildingCode: "B-NORTH"},
			{WorkerCode: "W-002", BuildingCode: "B-DEPOT"},
			{WorkerCode: "W-003", BuildingCode: "B-NORTH"},
			{WorkerCode: "W-003", BuildingCode: "B-SOUTH"},
			{WorkerCode: "W-004", BuildingCode: "B-NORTH"},
			{WorkerCode: "W-004", BuildingCode: "B-SOUTH"},
			{WorkerCode: "W-005", BuildingCode: "B-SOUTH"},
			{WorkerCode: "W-005", BuildingCode: "B-DEPOT"},
		},
		Flags: []CapabilityFlag{
			{WorkerCode: "W-002", Capability: "hvac"},
			{WorkerCode: "W-002", Capability: "boiler"},
			{WorkerCode: "W-003", Capability: "machine_sweeper"},
			{WorkerCode: "W-001", Capability: "roof_access"},
		},
	}
}
