package logic

import (
	"errors"
	"fmt"

	"github.com/grantlink/grantlink/models"
)

// ErrActionUnsupported - the resolved capabilities forbid the action
var ErrActionUnsupported = errors.New("action not supported")

// ErrConnectorPending - the platform is declared but its connector is not
// implemented yet
var ErrConnectorPending = errors.New("connector pending")

// CheckActionAllowed - the gate in front of every automated connector call.
// Payload completeness, then the capability matrix, then connector readiness;
// nothing reaches an upstream API unless all three pass.
func CheckActionAllowed(platformKey string, action models.Action, payload *models.ActionPayload) (*models.PluginManifest, error) {
	if err := checkActionPayload(payload); err != nil {
		return nil, err
	}
	manifest, err := GetPlugin(platformKey)
	if err != nil {
		return nil, err
	}
	capabilities, err := EffectiveCapabilities(platformKey, payload.AccessItemType, payload.Context())
	if err != nil {
		return nil, err
	}
	if !capabilities.ForAction(action) {
		return nil, fmt.Errorf("platform %s does not support %s for %s items: %w",
			platformKey, action, payload.AccessItemType, ErrActionUnsupported)
	}
	if manifest.IntegrationStatus != models.IntegrationImplemented {
		return nil, fmt.Errorf("the %s connector is pending and cannot perform %s yet: %w",
			platformKey, action, ErrConnectorPending)
	}
	if !manifest.HasRole(payload.AccessItemType, payload.Role) {
		return nil, fmt.Errorf("role %s is not offered for %s on %s",
			payload.Role, payload.AccessItemType, platformKey)
	}
	return manifest, nil
}

func checkActionPayload(payload *models.ActionPayload) error {
	switch {
	case payload.AccessToken == "":
		return fmt.Errorf("accessToken is required")
	case payload.Target == "":
		return fmt.Errorf("target is required")
	case payload.Role == "":
		return fmt.Errorf("role is required")
	case payload.Identity == "":
		return fmt.Errorf("identity is required")
	case payload.AccessItemType == "":
		return fmt.Errorf("accessItemType is required")
	case !payload.AccessItemType.IsValid():
		return fmt.Errorf("invalid access item type %s", payload.AccessItemType)
	}
	return nil
}
