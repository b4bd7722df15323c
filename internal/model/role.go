package model

import "time"

// Permission modules
const (
	ModuleShipType       = "ship_type"
	ModuleProject        = "project"
	ModuleSection        = "section"
	ModulePallet         = "pallet"
	ModuleTypicalSection = "typical_section"
	ModuleWorkType       = "work_type"
	ModuleWorkProcess    = "work_process"
	ModuleProcessFlow    = "process_flow"
	ModuleRole           = "role"
	ModulePerson         = "person"
	ModulePermission     = "permission"
)

// Permission actions
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
	ActionImport = "import"
)

// Role groups permissions for assignment to persons
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Permission is a single (module, action) grant, e.g. work_process + edit.
// Pure data record: enforcement happens at the request boundary, never here.
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Module      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_permission_module_action" json:"module"`
	Action      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_permission_module_action" json:"action"`
	Description string    `gorm:"type:varchar(200)" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Code returns the canonical "module.action" permission code checked by the
// request-boundary middleware.
func (p Permission) Code() string {
	return p.Module + "." + p.Action
}

// RolePermission links a role to one of its permissions
type RolePermission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RoleID       uint       `gorm:"not null;uniqueIndex:idx_role_permission" json:"role_id"`
	Role         Role       `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PermissionID uint       `gorm:"not null;uniqueIndex:idx_role_permission" json:"permission_id"`
	Permission   Permission `gorm:"foreignKey:PermissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
