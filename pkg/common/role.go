package common

type Role string

const (
	Administrator       Role = "Administrator"
	NationalCoordinator Role = "NationalCoordinator"
	RegionalCoordinator Role = "RegionalCoordinator"
	Sampler             Role = "Sampler"
)

var RoleList = []Role{
	Administrator,
	NationalCoordinator,
	RegionalCoordinator,
	Sampler,
}

type Permission string

const (
	ReadSamples          Permission = "readSamples"
	CreateSample         Permission = "createSample"
	UpdateSample         Permission = "updateSample"
	DeleteSample         Permission = "deleteSample"
	ReadProgrammingPlans Permission = "readProgrammingPlans"
	ReadPrescriptions    Permission = "readPrescriptions"
	CreatePrescription   Permission = "createPrescription"
	UpdatePrescription   Permission = "updatePrescription"
	DeletePrescription   Permission = "deletePrescription"
)

// RolePermissions is the finite role to permission-set table. Authorization
// is a plain lookup here, never reflection.
var RolePermissions = map[Role][]Permission{
	Administrator: {
		ReadSamples,
		CreateSample,
		UpdateSample,
		DeleteSample,
		ReadProgrammingPlans,
		ReadPrescriptions,
		CreatePrescription,
		UpdatePrescription,
		DeletePrescription,
	},
	NationalCoordinator: {
		ReadSamples,
		ReadProgrammingPlans,
		ReadPrescriptions,
		CreatePrescription,
		UpdatePrescription,
		DeletePrescription,
	},
	RegionalCoordinator: {
		ReadSamples,
		ReadProgrammingPlans,
		ReadPrescriptions,
	},
	Sampler: {
		ReadSamples,
		CreateSample,
		UpdateSample,
		DeleteSample,
		ReadProgrammingPlans,
		ReadPrescriptions,
	},
}

func (r Role) HasPermission(p Permission) bool {
	for _, granted := range RolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// IsRegional reports whether the role operates within a single region and
// therefore requires one.
func (r Role) IsRegional() bool {
	return r == RegionalCoordinator || r == Sampler
}
