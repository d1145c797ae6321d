package models

// Scenario is one rights-management policy the panel can demonstrate. Only
// the folder-overrides-file scenario is implemented; the rest are listed so
// the selector can show them as unavailable.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

const (
	ScenarioFolderOverride = "scenario-1"
	ScenarioInheritCopy    = "scenario-2"
	ScenarioLayered        = "scenario-3"
	ScenarioFolderOnly     = "scenario-4"
	ScenarioAdditive       = "scenario-5"
)

var Scenarios = []Scenario{
	{
		ID:          ScenarioFolderOverride,
		Name:        "Scenario 1: Folder rules override",
		Description: "Folder access rules override file-level permissions. When a folder has rules, all files inherit them and file-level rules become inactive.",
		Available:   true,
	},
	{
		ID:          ScenarioInheritCopy,
		Name:        "Scenario 2: Inherit and customize",
		Description: "Files copy folder rules at the moment of upload, then can be edited independently. Flexible (like Google Drive), but risky if users accidentally grant wider access to individual files.",
		Available:   false,
	},
	{
		ID:          ScenarioLayered,
		Name:        "Scenario 3: Layered security",
		Description: "Access requires passing BOTH folder AND file rules. Designed for enterprise security needs (funnel logic), but users may be confused when folder access alone doesn't grant file access.",
		Available:   false,
	},
	{
		ID:          ScenarioFolderOnly,
		Name:        "Scenario 4: Folder-only access",
		Description: "Only folder-level access rights exist. File-level access rights are fully removed, regardless of the folder.",
		Available:   false,
	},
	{
		ID:          ScenarioAdditive,
		Name:        "Scenario 5: Additive access",
		Description: "Folder rules provide baseline access, file rules can grant additional access but cannot restrict. If folder allows \"Sales\" and file adds \"Marketing\", both teams can access.",
		Available:   false,
	},
}

// ScenarioByID returns the scenario with the given id, if it exists.
func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
