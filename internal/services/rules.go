package services

import (
	"context"
	"sync"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleService owns rule-set mutation for folders and files. Folder
// additions pass through a per-folder TransitionGuard so the first rule on a
// previously rule-less folder requires explicit confirmation before it is
// committed.
type RuleService struct {
	DB       *gorm.DB
	Scenario *ScenarioState

	mu     sync.Mutex
	guards map[uuid.UUID]*access.TransitionGuard
}

func NewRuleService(db *gorm.DB, scenario *ScenarioState) *RuleService {
	return &RuleService{
		DB:       db,
		Scenario: scenario,
		guards:   make(map[uuid.UUID]*access.TransitionGuard),
	}
}

// GuardDecision reports what happened to a rule submitted for a folder.
type GuardDecision struct {
	State     access.GuardState  `json:"guardState"`
	Committed *models.AccessRule `json:"committed,omitempty"`
	Pending   *models.AccessRule `json:"pending,omitempty"`
}

func validateRule(rule models.AccessRule) error {
	if !rule.Criteria.Valid() {
		return access.ErrUnknownCriteria
	}
	if !rule.Operator.Valid() {
		return access.ErrUnknownOperator
	}
	if len(rule.Values) == 0 {
		return access.ErrInvalidRule
	}
	return nil
}

func (s *RuleService) ListFolderRules(ctx context.Context, folderID uuid.UUID) ([]models.AccessRule, error) {
	if err := s.DB.WithContext(ctx).First(&models.Folder{}, "id = ?", folderID).Error; err != nil {
		return nil, err
	}
	var rules []models.AccessRule
	err := s.DB.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("position").
		Find(&rules).Error
	return rules, err
}

func (s *RuleService) ListFileRules(ctx context.Context, fileID uuid.UUID) ([]models.AccessRule, error) {
	if err := s.DB.WithContext(ctx).First(&models.File{}, "id = ?", fileID).Error; err != nil {
		return nil, err
	}
	var rules []models.AccessRule
	err := s.DB.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("position").
		Find(&rules).Error
	return rules, err
}

// guardFor returns the folder's edit-session guard, creating it with the
// folder's committed rule count as the baseline when the session has none
// yet.
func (s *RuleService) guardFor(ctx context.Context, folderID uuid.UUID) (*access.TransitionGuard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guard, ok := s.guards[folderID]; ok {
		return guard, nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.AccessRule{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	guard := access.NewTransitionGuard(int(count))
	s.guards[folderID] = guard
	return guard, nil
}

// AddFolderRule submits a finished rule for a folder. When the guard parks
// it, nothing is committed until ConfirmFolderRule.
func (s *RuleService) AddFolderRule(ctx context.Context, folderID uuid.UUID, rule models.AccessRule) (GuardDecision, error) {
	if err := validateRule(rule); err != nil {
		return GuardDecision{}, err
	}
	if err := s.DB.WithContext(ctx).First(&models.Folder{}, "id = ?", folderID).Error; err != nil {
		return GuardDecision{}, err
	}

	guard, err := s.guardFor(ctx, folderID)
	if err != nil {
		return GuardDecision{}, err
	}

	parked, err := guard.Submit(rule)
	if err != nil {
		return GuardDecision{}, err
	}
	if parked {
		return GuardDecision{
			State:   guard.State(),
			Pending: guard.Pending(),
		}, nil
	}

	committed, err := s.appendRule(ctx, &folderID, nil, rule)
	if err != nil {
		return GuardDecision{}, err
	}
	return GuardDecision{State: guard.State(), Committed: &committed}, nil
}

// ConfirmFolderRule commits the rule parked by the folder's guard.
func (s *RuleService) ConfirmFolderRule(ctx context.Context, folderID uuid.UUID) (models.AccessRule, error) {
	s.mu.Lock()
	guard, ok := s.guards[folderID]
	s.mu.Unlock()
	if !ok {
		return models.AccessRule{}, access.ErrGuardViolation
	}

	rule, err := guard.Confirm()
	if err != nil {
		return models.AccessRule{}, err
	}

	committed, err := s.appendRule(ctx, &folderID, nil, rule)
	if err != nil {
		return models.AccessRule{}, err
	}
	guard.Reset()
	return committed, nil
}

// CancelFolderRule discards the rule parked by the folder's guard, leaving
// the committed rule set untouched.
func (s *RuleService) CancelFolderRule(folderID uuid.UUID) error {
	s.mu.Lock()
	guard, ok := s.guards[folderID]
	s.mu.Unlock()
	if !ok {
		return access.ErrGuardViolation
	}
	return guard.Cancel()
}

// GuardStateFor reports the guard state for a folder so the panel can
// render or hide the confirmation prompt.
func (s *RuleService) GuardStateFor(folderID uuid.UUID) access.GuardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if guard, ok := s.guards[folderID]; ok {
		return guard.State()
	}
	return access.GuardIdle
}

// EndFolderSession closes a folder edit session. The next session snapshots
// a fresh baseline, so a folder whose rules were all deleted asks for
// confirmation again on its next first rule.
func (s *RuleService) EndFolderSession(folderID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.guards, folderID)
}

// AddFileRule appends a rule to a file's own rule set. File-level writes
// are always permitted at this layer, even while folder rules shadow them;
// the panel hides the editing surface instead.
func (s *RuleService) AddFileRule(ctx context.Context, fileID uuid.UUID, rule models.AccessRule) (models.AccessRule, error) {
	if err := validateRule(rule); err != nil {
		return models.AccessRule{}, err
	}
	if err := s.DB.WithContext(ctx).First(&models.File{}, "id = ?", fileID).Error; err != nil {
		return models.AccessRule{}, err
	}
	return s.appendRule(ctx, nil, &fileID, rule)
}

func (s *RuleService) appendRule(ctx context.Context, folderID, fileID *uuid.UUID, rule models.AccessRule) (models.AccessRule, error) {
	var next int
	query := s.DB.WithContext(ctx).Model(&models.AccessRule{})
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("file_id = ?", *fileID)
	}
	if err := query.Select("COALESCE(MAX(position), -1) + 1").Scan(&next).Error; err != nil {
		return models.AccessRule{}, err
	}

	rule.FolderID = folderID
	rule.FileID = fileID
	rule.Position = next

	if err := s.DB.WithContext(ctx).Create(&rule).Error; err != nil {
		return models.AccessRule{}, err
	}
	return rule, nil
}

// GetRule loads one rule by id.
func (s *RuleService) GetRule(ctx context.Context, ruleID uuid.UUID) (models.AccessRule, error) {
	var rule models.AccessRule
	err := s.DB.WithContext(ctx).First(&rule, "id = ?", ruleID).Error
	return rule, err
}

// UpdateRule replaces a rule's criteria, operator and values in place. The
// rule keeps its owner and position.
func (s *RuleService) UpdateRule(ctx context.Context, rule models.AccessRule) (models.AccessRule, error) {
	if err := validateRule(rule); err != nil {
		return models.AccessRule{}, err
	}

	var existing models.AccessRule
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", rule.ID).Error; err != nil {
		return models.AccessRule{}, err
	}

	existing.Criteria = rule.Criteria
	existing.Operator = rule.Operator
	existing.Values = rule.Values

	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return models.AccessRule{}, err
	}
	return existing, nil
}

// DeleteRule removes one rule. Deleting the last folder rule needs no
// guard: the contained files' own rule sets were never deleted and simply
// become active again.
func (s *RuleService) DeleteRule(ctx context.Context, ruleID uuid.UUID) error {
	result := s.DB.WithContext(ctx).
		Where("id = ?", ruleID).
		Delete(&models.AccessRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EffectiveAccessForFile resolves the rule set that currently governs a
// file under the active scenario.
func (s *RuleService) EffectiveAccessForFile(ctx context.Context, fileID uuid.UUID) (access.EffectiveAccess, error) {
	var file models.File
	if err := s.DB.WithContext(ctx).First(&file, "id = ?", fileID).Error; err != nil {
		return access.EffectiveAccess{}, err
	}

	folderRules, err := s.ListFolderRules(ctx, file.FolderID)
	if err != nil {
		return access.EffectiveAccess{}, err
	}
	fileRules, err := s.ListFileRules(ctx, fileID)
	if err != nil {
		return access.EffectiveAccess{}, err
	}

	policy, err := s.Scenario.Policy()
	if err != nil {
		return access.EffectiveAccess{}, err
	}
	return policy.Resolve(folderRules, fileRules), nil
}
