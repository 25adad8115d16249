package domain

// IntentType discriminates classified commands.
type IntentType string

const (
	IntentSystem IntentType = "system"
	IntentAI     IntentType = "ai"
)

// ActionSubtype identifies the system action a command maps to.
type ActionSubtype string

const (
	ActionPackageInstall   ActionSubtype = "package_install"
	ActionPackageUninstall ActionSubtype = "package_uninstall"
	ActionPackageUpdate    ActionSubtype = "package_update"
	ActionFileCreate       ActionSubtype = "file_create"
	ActionFileMove         ActionSubtype = "file_move"
	ActionFileDelete       ActionSubtype = "file_delete"
	ActionFileFind         ActionSubtype = "file_find"
	ActionFileList         ActionSubtype = "file_list"
	ActionProcessKill      ActionSubtype = "process_kill"
	ActionProcessList      ActionSubtype = "process_list"
	ActionAppLaunch        ActionSubtype = "app_launch"
)

// Intent is the classified meaning of one raw command. The system fields
// (Subtype, Groups) or Provider are meaningful depending on Type. Intents are
// request-scoped and never persisted.
type Intent struct {
	Type     IntentType
	Subtype  ActionSubtype
	Groups   []string
	Provider string
}

// SystemIntent builds a system-action intent with its captured groups.
func SystemIntent(subtype ActionSubtype, groups []string) Intent {
	return Intent{Type: IntentSystem, Subtype: subtype, Groups: groups}
}

// AIIntent builds an AI-query intent bound to a selected provider.
func AIIntent(provider string) Intent {
	return Intent{Type: IntentAI, Provider: provider}
}

// Group returns the i-th captured group, or "" when the pattern did not
// capture that position.
func (i Intent) Group(idx int) string {
	if idx < 0 || idx >= len(i.Groups) {
		return ""
	}
	return i.Groups[idx]
}
