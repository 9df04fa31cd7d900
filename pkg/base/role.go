package base

// FileRole is the role a path plays in a client installation
type FileRole string

const (
	// RoleExecutable is the game binary
	RoleExecutable FileRole = "Executable"
	// RoleBaseData is immutable archive data, safe to hard link
	RoleBaseData FileRole = "BaseData"
	// RoleMutableData is data that patches may rewrite
	RoleMutableData FileRole = "MutableData"
	// RoleUserMedia is user-created media such as screenshots
	RoleUserMedia FileRole = "UserMedia"
	// RoleUserConfig is per-user configuration and addons
	RoleUserConfig FileRole = "UserConfig"
	// RoleEphemeral is disposable runtime output
	RoleEphemeral FileRole = "Ephemeral"
	// RoleOther is anything no rule matched
	RoleOther FileRole = "Other"
)

// AllRoles lists every role in declaration order
var AllRoles = []FileRole{
	RoleExecutable,
	RoleBaseData,
	RoleMutableData,
	RoleUserMedia,
	RoleUserConfig,
	RoleEphemeral,
	RoleOther,
}

// Valid reports whether r is one of the known roles
func (r FileRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsUser reports whether the role holds user data that must never be overwritten
func (r FileRole) IsUser() bool {
	return r == RoleUserMedia || r == RoleUserConfig
}

func (r FileRole) String() string {
	return string(r)
}
