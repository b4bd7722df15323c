package database

import (
	"fmt"

	"shipyard/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed loads the yard's reference data: ship types, typical sections, work
// types and processes, the permission grid and the default roles. Every
// insert is idempotent, so re-running against a populated database is safe.
func Seed(db *gorm.DB, logger *zap.Logger) error {
	if err := seedShipTypes(db); err != nil {
		return fmt.Errorf("failed to seed ship types: %w", err)
	}
	if err := seedTypicalSections(db); err != nil {
		return fmt.Errorf("failed to seed typical sections: %w", err)
	}
	if err := seedWorkTypes(db); err != nil {
		return fmt.Errorf("failed to seed work types: %w", err)
	}
	if err := seedWorkProcesses(db); err != nil {
		return fmt.Errorf("failed to seed work processes: %w", err)
	}
	if err := seedPermissions(db); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	if err := seedRoles(db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	logger.Info("reference data seeded")
	return nil
}

func seedShipTypes(db *gorm.DB) error {
	shipTypes := []model.ShipType{
		{ShipType: "Bulk Carrier", ShipSubtype: "Panamax"},
		{ShipType: "Bulk Carrier", ShipSubtype: "Capesize"},
		{ShipType: "Bulk Carrier", ShipSubtype: "Suezmax"},
		{ShipType: "Container Ship", ShipSubtype: "Ultra Large"},
		{ShipType: "Container Ship", ShipSubtype: "Large"},
		{ShipType: "Container Ship", ShipSubtype: "Medium"},
		{ShipType: "Oil Tanker", ShipSubtype: "VLCC"},
		{ShipType: "Oil Tanker", ShipSubtype: "Large"},
		{ShipType: "Oil Tanker", ShipSubtype: "Medium"},
		{ShipType: "Gas Carrier", ShipSubtype: "LNG"},
		{ShipType: "Gas Carrier", ShipSubtype: "LPG"},
		{ShipType: "Chemical Tanker", ShipSubtype: "Dedicated"},
		{ShipType: "Chemical Tanker", ShipSubtype: "General Purpose"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&shipTypes).Error
}

func seedTypicalSections(db *gorm.DB) error {
	type sectionSeed struct {
		shipType    string
		sectionName string
		sectionCode string
		description string
	}
	seeds := []sectionSeed{
		{"Bulk Carrier", "Double Bottom Section", "DB001", "Double bottom structure with inner bottom, shell plating and longitudinals"},
		{"Bulk Carrier", "Deck Section", "DK001", "Deck structure with plating, longitudinals and transverse beams"},
		{"Bulk Carrier", "Corrugated Bulkhead Section", "CB001", "Corrugated bulkhead separating cargo holds"},
		{"Bulk Carrier", "Side Shell Section", "SS001", "Side shell structure with plating and frames"},
		{"Container Ship", "Torsion Box Section", "TB001", "Torsion box structure carrying torsional loads"},
		{"Container Ship", "Lashing Bridge Section", "LB001", "Lashing bridge structure for container securing"},
		{"Container Ship", "Deck Section", "DK002", "Deck structure with plating and longitudinals"},
		{"Container Ship", "Side Shell Section", "SS002", "Side shell structure with plating and frames"},
		{"Oil Tanker", "Double Bottom Section", "DB002", "Double bottom structure protecting the hull bottom"},
		{"Oil Tanker", "Deck Section", "DK003", "Deck structure with plating and longitudinals"},
		{"Oil Tanker", "Bulkhead Section", "BW001", "Bulkhead separating cargo oil tanks"},
		{"Oil Tanker", "Side Shell Section", "SS003", "Side shell structure with plating and frames"},
		{"Gas Carrier", "LNG Tank Section", "LNG001", "LNG tank structure for liquefied natural gas"},
		{"Gas Carrier", "LPG Tank Section", "LPG001", "LPG tank structure for liquefied petroleum gas"},
		{"Gas Carrier", "Deck Section", "DK004", "Deck structure with plating and longitudinals"},
		{"Chemical Tanker", "Chemical Tank Section", "CC001", "Chemical cargo tank structure"},
		{"Chemical Tanker", "Deck Section", "DK005", "Deck structure with plating and longitudinals"},
		{"Chemical Tanker", "Side Shell Section", "SS004", "Side shell structure with plating and frames"},
	}

	for _, s := range seeds {
		var shipType model.ShipType
		// One typical section set per category; attach to its first subtype
		if err := db.Where("ship_type = ?", s.shipType).Order("id ASC").First(&shipType).Error; err != nil {
			continue
		}
		section := model.TypicalSection{
			ShipTypeID:  shipType.ID,
			SectionName: s.sectionName,
			SectionCode: s.sectionCode,
			Description: s.description,
			IsActive:    true,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&section).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedWorkTypes(db *gorm.DB) error {
	standard := decimal.NewFromFloat(8.0)
	workTypes := []model.WorkType{
		{WorkTypeName: "Welder", WorkTypeCode: "W", StandardHours: standard, Description: "Plate and assembly welding", IsActive: true},
		{WorkTypeName: "Fitter", WorkTypeCode: "A", StandardHours: standard, Description: "Structural assembly and marking", IsActive: true},
		{WorkTypeName: "Cutter", WorkTypeCode: "C", StandardHours: standard, Description: "Plate cutting and drilling", IsActive: true},
		{WorkTypeName: "Grinder", WorkTypeCode: "G", StandardHours: standard, Description: "Surface grinding and polishing", IsActive: true},
		{WorkTypeName: "Painter", WorkTypeCode: "T", StandardHours: standard, Description: "Surface coating and corrosion protection", IsActive: true},
		{WorkTypeName: "Inspector", WorkTypeCode: "I", StandardHours: standard, Description: "Quality inspection and testing", IsActive: true},
		{WorkTypeName: "Rigger", WorkTypeCode: "B", StandardHours: standard, Description: "Material handling and lifting", IsActive: true},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&workTypes).Error
}

func seedWorkProcesses(db *gorm.DB) error {
	type processSeed struct {
		name        string
		code        string
		workType    string
		coefficient string
		description string
	}
	seeds := []processSeed{
		{"Panel Welding", "HB001", "Welder", "1.2", "Plate panel welding, higher skill requirement"},
		{"Assembly Welding", "HB002", "Welder", "1.0", "Component assembly welding"},
		{"Vertical Welding", "HB003", "Welder", "1.5", "Vertical position welding"},
		{"Overhead Welding", "HB004", "Welder", "1.8", "Overhead position welding, highest difficulty"},
		{"Assembly", "AZ001", "Fitter", "1.0", "Structural component assembly"},
		{"Marking", "HX001", "Fitter", "0.8", "Layout marking"},
		{"Positioning", "DW001", "Fitter", "1.1", "Component positioning"},
		{"Cutting", "QG001", "Cutter", "1.0", "Plate cutting"},
		{"Drilling", "ZK001", "Cutter", "0.9", "Hole drilling"},
		{"Plasma Cutting", "QG002", "Cutter", "1.3", "Plasma arc cutting"},
		{"Grinding", "DM001", "Grinder", "1.0", "Surface grinding"},
		{"Polishing", "DM002", "Grinder", "1.2", "Surface polishing"},
		{"Coating", "TZ001", "Painter", "1.0", "Surface coating"},
		{"Anticorrosion Treatment", "TZ002", "Painter", "1.4", "Anticorrosion surface treatment"},
		{"Inspection", "JY001", "Inspector", "1.0", "Quality inspection"},
		{"NDT", "JY002", "Inspector", "1.5", "Non-destructive testing"},
		{"Material Handling", "BY001", "Rigger", "1.0", "Material transport"},
		{"Lifting", "BY002", "Rigger", "1.3", "Crane lifting"},
	}

	for _, s := range seeds {
		var workType model.WorkType
		if err := db.Where("work_type_name = ?", s.workType).First(&workType).Error; err != nil {
			continue
		}
		coefficient, err := decimal.NewFromString(s.coefficient)
		if err != nil {
			return err
		}
		hours := workType.StandardHours.Mul(coefficient)
		process := model.WorkProcess{
			ProcessName: s.name,
			ProcessCode: s.code,
			WorkTypeID:  &workType.ID,
			Coefficient: coefficient,
			WorkHours:   &hours,
			Description: s.description,
			IsActive:    true,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&process).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedPermissions builds the full (module, action) grid. Export and import
// only exist for the modules that have those endpoints.
func seedPermissions(db *gorm.DB) error {
	modules := []string{
		model.ModuleShipType, model.ModuleProject, model.ModuleSection,
		model.ModulePallet, model.ModuleTypicalSection, model.ModuleWorkType,
		model.ModuleWorkProcess, model.ModuleProcessFlow, model.ModuleRole,
		model.ModulePerson, model.ModulePermission,
	}
	baseActions := []string{model.ActionView, model.ActionAdd, model.ActionEdit, model.ActionDelete}
	fileModules := map[string]bool{model.ModuleSection: true, model.ModulePallet: true}

	var permissions []model.Permission
	for _, m := range modules {
		actions := baseActions
		if fileModules[m] {
			actions = append(actions, model.ActionExport, model.ActionImport)
		}
		for _, a := range actions {
			permissions = append(permissions, model.Permission{
				Module:      m,
				Action:      a,
				Description: a + " " + m,
				IsActive:    true,
			})
		}
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&permissions).Error
}

func seedRoles(db *gorm.DB) error {
	grants := map[string][]string{
		"System Administrator": {"*"},
		"Designer": {
			"ship_type.view", "typical_section.view", "work_type.view",
			"work_process.view", "process_flow.view", "process_flow.add",
			"process_flow.edit", "project.view", "section.view",
		},
		"Production Manager": {
			"ship_type.view", "typical_section.view", "work_type.view",
			"work_process.view", "process_flow.view",
			"project.view", "project.add", "project.edit",
			"section.view", "section.add", "section.edit", "section.export",
			"pallet.view", "pallet.add", "pallet.edit", "pallet.export",
		},
		"Production Worker": {
			"ship_type.view", "project.view", "section.view",
			"pallet.view", "process_flow.view",
		},
		"Design Manager": {
			"ship_type.view", "ship_type.add", "ship_type.edit",
			"typical_section.view", "typical_section.add", "typical_section.edit",
			"work_type.view", "work_type.add", "work_type.edit",
			"work_process.view", "work_process.add", "work_process.edit",
			"process_flow.view", "process_flow.add", "process_flow.edit", "process_flow.delete",
			"project.view", "person.view",
		},
	}
	descriptions := map[string]string{
		"System Administrator": "Full access to every module",
		"Designer":             "Edits process flows and reads design reference data",
		"Production Manager":   "Manages projects, sections and pallet logistics",
		"Production Worker":    "Read-only access to production tracking",
		"Design Manager":       "Manages design reference data and process flows",
	}

	var allPermissions []model.Permission
	if err := db.Find(&allPermissions).Error; err != nil {
		return err
	}
	byCode := make(map[string]model.Permission, len(allPermissions))
	for _, p := range allPermissions {
		byCode[p.Code()] = p
	}

	for name, codes := range grants {
		role := model.Role{Name: name, Description: descriptions[name], IsActive: true}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}

		var wanted []model.Permission
		if len(codes) == 1 && codes[0] == "*" {
			wanted = allPermissions
		} else {
			for _, code := range codes {
				if p, ok := byCode[code]; ok {
					wanted = append(wanted, p)
				}
			}
		}

		for _, p := range wanted {
			link := model.RolePermission{RoleID: role.ID, PermissionID: p.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
