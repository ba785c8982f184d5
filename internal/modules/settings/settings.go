// README: Settings document; auto-hide threshold, master PIN, protected actions.
package settings

import (
	"context"

	"bestellapp/internal/config"
	"bestellapp/internal/store"
)

const settingsPath = "settings"

// Settings is the tunable configuration every client observes. The core
// only reads it; updates come through the PIN-gated admin endpoint.
type Settings struct {
	// AutoHideMinutes: 0 means orders never expire from the views.
	AutoHideMinutes  int      `json:"auto_hide_minutes"`
	MasterPIN        string   `json:"master_pin"`
	ProtectedActions []string `json:"protected_actions,omitempty"`
}

// record uses pointers so an absent field falls back to the configured
// default instead of reading as zero (0 is a meaningful auto-hide value).
type record struct {
	AutoHideMinutes  *int     `json:"auto_hide_minutes,omitempty"`
	MasterPIN        *string  `json:"master_pin,omitempty"`
	ProtectedActions []string `json:"protected_actions,omitempty"`
}

type Service struct {
	tree     store.Tree
	defaults config.BarConfig
}

func NewService(tree store.Tree, defaults config.BarConfig) *Service {
	return &Service{tree: tree, defaults: defaults}
}

// DefaultProtectedActions gate the operations that change shared
// configuration or zero the statistics.
var DefaultProtectedActions = []string{"reset_statistics", "settings", "broadcast", "menu"}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	var rec record
	if err := s.tree.Get(ctx, settingsPath, &rec); err != nil {
		return Settings{}, err
	}
	out := Settings{
		AutoHideMinutes:  s.defaults.AutoHideMinutes,
		MasterPIN:        s.defaults.MasterPIN,
		ProtectedActions: DefaultProtectedActions,
	}
	if rec.AutoHideMinutes != nil {
		out.AutoHideMinutes = *rec.AutoHideMinutes
	}
	if rec.MasterPIN != nil && *rec.MasterPIN != "" {
		out.MasterPIN = *rec.MasterPIN
	}
	if rec.ProtectedActions != nil {
		out.ProtectedActions = rec.ProtectedActions
	}
	return out, nil
}

type UpdateCommand struct {
	AutoHideMinutes  *int
	MasterPIN        *string
	ProtectedActions []string
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) error {
	fields := make(map[string]interface{})
	if cmd.AutoHideMinutes != nil {
		fields["auto_hide_minutes"] = *cmd.AutoHideMinutes
	}
	if cmd.MasterPIN != nil {
		fields["master_pin"] = *cmd.MasterPIN
	}
	if cmd.ProtectedActions != nil {
		fields["protected_actions"] = cmd.ProtectedActions
	}
	if len(fields) == 0 {
		return nil
	}
	return s.tree.Update(ctx, settingsPath, fields)
}

// AutoHideMinutes satisfies order.SettingsSource. Read errors fall back to
// the configured default: the threshold feeds a rendering decision, not a
// transactional one.
func (s *Service) AutoHideMinutes(ctx context.Context) int {
	current, err := s.Get(ctx)
	if err != nil {
		return s.defaults.AutoHideMinutes
	}
	return current.AutoHideMinutes
}

// IsProtected reports whether the action requires PIN verification.
func (s *Service) IsProtected(ctx context.Context, action string) bool {
	current, err := s.Get(ctx)
	if err != nil {
		// Fail closed for gating decisions.
		return true
	}
	for _, a := range current.ProtectedActions {
		if a == action {
			return true
		}
	}
	return false
}

// VerifyPIN compares a submitted PIN with the master PIN.
func (s *Service) VerifyPIN(ctx context.Context, pin string) bool {
	current, err := s.Get(ctx)
	if err != nil {
		return false
	}
	return pin != "" && pin == current.MasterPIN
}
