package common

// Region is the INSEE code of a French administrative region.
type Region string

const (
	AuvergneRhoneAlpes  Region = "84"
	BourgogneFrancheCte Region = "27"
	Bretagne            Region = "53"
	CentreValDeLoire    Region = "24"
	Corse               Region = "94"
	GrandEst            Region = "44"
	HautsDeFrance       Region = "32"
	IleDeFrance         Region = "11"
	Normandie           Region = "28"
	NouvelleAquitaine   Region = "75"
	Occitanie           Region = "76"
	PaysDeLaLoire       Region = "52"
	ProvenceAlpesCte    Region = "93"
	Guadeloupe          Region = "01"
	Martinique          Region = "02"
	Guyane              Region = "03"
	LaReunion           Region = "04"
	Mayotte             Region = "06"
)

var RegionList = []Region{
	AuvergneRhoneAlpes,
	BourgogneFrancheCte,
	Bretagne,
	CentreValDeLoire,
	Corse,
	GrandEst,
	HautsDeFrance,
	IleDeFrance,
	Normandie,
	NouvelleAquitaine,
	Occitanie,
	PaysDeLaLoire,
	ProvenceAlpesCte,
	Guadeloupe,
	Martinique,
	Guyane,
	LaReunion,
	Mayotte,
}

type RegionData struct {
	Name        string
	ShortName   string
	Departments []string
}

// Regions is the region referential: display name, the short code used in
// sample references and the departments the region covers.
var Regions = map[Region]RegionData{
	AuvergneRhoneAlpes: {
		Name:        "Auvergne-Rhône-Alpes",
		ShortName:   "ARA",
		Departments: []string{"01", "03", "07", "15", "26", "38", "42", "43", "63", "69", "73", "74"},
	},
	BourgogneFrancheCte: {
		Name:        "Bourgogne-Franche-Comté",
		ShortName:   "BFC",
		Departments: []string{"21", "25", "39", "58", "70", "71", "89", "90"},
	},
	Bretagne: {
		Name:        "Bretagne",
		ShortName:   "BRE",
		Departments: []string{"22", "29", "35", "56"},
	},
	CentreValDeLoire: {
		Name:        "Centre-Val de Loire",
		ShortName:   "CVL",
		Departments: []string{"18", "28", "36", "37", "41", "45"},
	},
	Corse: {
		Name:        "Corse",
		ShortName:   "COR",
		Departments: []string{"2A", "2B"},
	},
	GrandEst: {
		Name:        "Grand Est",
		ShortName:   "GES",
		Departments: []string{"08", "10", "51", "52", "54", "55", "57", "67", "68", "88"},
	},
	HautsDeFrance: {
		Name:        "Hauts-de-France",
		ShortName:   "HDF",
		Departments: []string{"02", "59", "60", "62", "80"},
	},
	IleDeFrance: {
		Name:        "Île-de-France",
		ShortName:   "IDF",
		Departments: []string{"75", "77", "78", "91", "92", "93", "94", "95"},
	},
	Normandie: {
		Name:        "Normandie",
		ShortName:   "NOR",
		Departments: []string{"14", "27", "50", "61", "76"},
	},
	NouvelleAquitaine: {
		Name:        "Nouvelle-Aquitaine",
		ShortName:   "NAQ",
		Departments: []string{"16", "17", "19", "23", "24", "33", "40", "47", "64", "79", "86", "87"},
	},
	Occitanie: {
		Name:        "Occitanie",
		ShortName:   "OCC",
		Departments: []string{"09", "11", "12", "30", "31", "32", "34", "46", "48", "65", "66", "81", "82"},
	},
	PaysDeLaLoire: {
		Name:        "Pays de la Loire",
		ShortName:   "PDL",
		Departments: []string{"44", "49", "53", "72", "85"},
	},
	ProvenceAlpesCte: {
		Name:        "Provence-Alpes-Côte d'Azur",
		ShortName:   "PAC",
		Departments: []string{"04", "05", "06", "13", "83", "84"},
	},
	Guadeloupe: {
		Name:        "Guadeloupe",
		ShortName:   "GUA",
		Departments: []string{"971"},
	},
	Martinique: {
		Name:        "Martinique",
		ShortName:   "MAR",
		Departments: []string{"972"},
	},
	Guyane: {
		Name:        "Guyane",
		ShortName:   "GUY",
		Departments: []string{"973"},
	},
	LaReunion: {
		Name:        "La Réunion",
		ShortName:   "REU",
		Departments: []string{"974"},
	},
	Mayotte: {
		Name:        "Mayotte",
		ShortName:   "MYT",
		Departments: []string{"976"},
	},
}

func (r Region) Valid() bool {
	_, ok := Regions[r]
	return ok
}

func (r Region) ShortName() string {
	return Regions[r].ShortName
}

func (r Region) Departments() []string {
	return Regions[r].Departments
}

// CoversDepartment reports whether the department belongs to the region.
func (r Region) CoversDepartment(department string) bool {
	for _, d := range Regions[r].Departments {
		if d == department {
			return true
		}
	}
	return false
}
