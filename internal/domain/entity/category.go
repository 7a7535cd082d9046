package entity

// SetupItem registro simple de configuración (categoría, empresa/laboratorio o tipo de unidad).
// Los tres comparten forma en /setup/*.
type SetupItem struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tipos de registro bajo /setup.
const (
	SetupCategories = "categories"
	SetupCompanies  = "companies"
	SetupUnitTypes  = "unit-types"
)

// Category, Company y UnitType son alias semánticos de SetupItem.
type (
	Category = SetupItem
	Company  = SetupItem
	UnitType = SetupItem
)

// ValidSetupKind indica si kind es una colección de /setup soportada.
func ValidSetupKind(kind string) bool {
	switch kind {
	case SetupCategories, SetupCompanies, SetupUnitTypes:
		return true
	}
	return false
}
