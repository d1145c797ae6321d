// Package access implements the access-control model of the panel: rule
// resolution between folder and file rule sets, the confirmation guard on a
// folder's first rule, and the rule editor session.
package access

import "github.com/assetdeck/backend/internal/models"

// Source names the rule set that governs a file after resolution.
type Source string

const (
	SourceFolder Source = "folder"
	SourceFile   Source = "file"
)

// EffectiveAccess is the resolved view for one file: the rules that are in
// force, where they came from, and the file's own rules when they are
// shadowed by folder rules. Shadowed rules are retained, never deleted, so
// removing all folder rules restores them.
type EffectiveAccess struct {
	Source        Source              `json:"source"`
	Inherited     bool                `json:"inherited"`
	ActiveRules   []models.AccessRule `json:"activeRules"`
	ShadowedRules []models.AccessRule `json:"shadowedRules"`
}

// Policy resolves a folder rule set and a file rule set into the effective
// view. Implementations must be pure: no mutation of either input and the
// same inputs always produce the same output.
type Policy interface {
	ScenarioID() string
	Resolve(folderRules, fileRules []models.AccessRule) EffectiveAccess
}

// FolderOverridePolicy implements scenario 1: any non-empty folder rule set
// takes over completely and the file's own rules go inert. It never merges
// the two levels.
type FolderOverridePolicy struct{}

func (FolderOverridePolicy) ScenarioID() string {
	return models.ScenarioFolderOverride
}

func (FolderOverridePolicy) Resolve(folderRules, fileRules []models.AccessRule) EffectiveAccess {
	if len(folderRules) > 0 {
		return EffectiveAccess{
			Source:        SourceFolder,
			Inherited:     true,
			ActiveRules:   folderRules,
			ShadowedRules: fileRules,
		}
	}
	return EffectiveAccess{
		Source:        SourceFile,
		Inherited:     false,
		ActiveRules:   fileRules,
		ShadowedRules: []models.AccessRule{},
	}
}

// PolicyForScenario returns the resolution policy for a scenario id. Only
// the folder-override scenario has an implementation; the others exist as
// selector entries only.
func PolicyForScenario(id string) (Policy, error) {
	switch id {
	case models.ScenarioFolderOverride:
		return FolderOverridePolicy{}, nil
	case models.ScenarioInheritCopy, models.ScenarioLayered,
		models.ScenarioFolderOnly, models.ScenarioAdditive:
		return nil, ErrScenarioUnavailable
	default:
		return nil, ErrScenarioUnavailable
	}
}
