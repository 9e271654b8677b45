package types

// Role is the meaning of a column, decided only by its position in the sheet.
type Role int

const (
	RoleObject Role = iota
	RoleAddress
	RoleSite
	RoleZone
	RoleRoomGroup
	RoleRoom
	RoleCleaningItem
	RoleTechTask
	RoleFrequency
	RoleNotes
	RolePeriod
	RoleManagerName
	RoleManagerPhone
	RoleSeniorManagerName
	RoleSeniorManagerPhone

	roleCount
)

var roleNames = [roleCount]string{
	"object",
	"address",
	"site",
	"zone",
	"room group",
	"room",
	"cleaning item",
	"tech task",
	"frequency",
	"notes",
	"period",
	"manager",
	"manager phone",
	"senior manager",
	"senior manager phone",
}

// DefaultHeaders are the column titles of the objects workbook. Phone
// columns share a title, so the second one carries the ".1" suffix.
var DefaultHeaders = [roleCount]string{
	"наименование объекта",
	"адрес",
	"участок",
	"зона",
	"группа помещений",
	"помещение",
	"Объект уборки",
	"тех задание",
	"периодичность",
	"примечания",
	"период",
	"Менеджер объекта ФИО",
	"Телефон",
	"Старший менеджер объекта ФИО",
	"Телефон.1",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

// Roles lists every role in column order.
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// Schema maps roles to the column names found in a particular sheet.
type Schema struct {
	columns [roleCount]string
	width   int
}

// NewSchema assigns roles to headers by position. Roles past the last header
// stay unassigned.
func NewSchema(headers []string) Schema {
	var s Schema
	s.width = len(headers)
	for i := 0; i < len(headers) && i < int(roleCount); i++ {
		s.columns[i] = headers[i]
	}
	return s
}

// Column returns the column holding role, or false when the sheet is too
// narrow to have one.
func (s Schema) Column(role Role) (string, bool) {
	if role < 0 || role >= roleCount || int(role) >= s.width {
		return "", false
	}
	return s.columns[role], true
}

// ColumnOr is Column with the workbook's default title as fallback.
func (s Schema) ColumnOr(role Role) string {
	if col, ok := s.Column(role); ok {
		return col
	}
	if role < 0 || role >= roleCount {
		return ""
	}
	return DefaultHeaders[role]
}
