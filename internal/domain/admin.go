package domain

import "time"

// AdminIdentity is an operator of the console. Created by the provisioning
// workflow, either as a brand-new authenticated principal or by adopting an
// existing one; removed by hard delete.
type AdminIdentity struct {
	UID           string
	Name          string
	Email         string
	RoleID        string
	IsFirstAccess bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedBy     string
	UpdatedAt     time.Time
	LastLogin     time.Time
}

// Role is a static catalog entry granting a permission set. Seeded once if
// absent; read-mostly.
type Role struct {
	ID          string
	Name        string
	Permissions []string
}
