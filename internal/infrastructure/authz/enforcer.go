// Package authz implementa ports.Authorizer con Casbin.
// La política decide por rol, recurso, acción y alcance (any/own).
package authz

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

var _ ports.Authorizer = (*Enforcer)(nil)

// Enforcer decide (sujeto, acción, recurso) con un SyncedEnforcer de Casbin.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	log      zerolog.Logger
}

// NewEnforcer carga el modelo embebido y la política desde policyPath,
// o la política embebida si policyPath está vacío.
func NewEnforcer(policyPath string, log zerolog.Logger) (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("cargar modelo casbin: %w", err)
	}

	var adapter persist.Adapter
	if policyPath != "" {
		if _, err := os.Stat(policyPath); err != nil {
			return nil, fmt.Errorf("política casbin %s: %w", policyPath, err)
		}
		adapter = fileadapter.NewAdapter(policyPath)
	} else {
		adapter = stringadapter.NewAdapter(embeddedPolicy)
	}

	e, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("crear enforcer casbin: %w", err)
	}
	return &Enforcer{enforcer: e, log: log}, nil
}

// Authorize devuelve nil si la política permite la acción y domain.ErrForbidden si no.
func (e *Enforcer) Authorize(_ context.Context, sub ports.Subject, resource, action, ownerID string) error {
	if sub.Role == "" {
		return domain.ErrUnauthorized
	}
	ok, err := e.enforcer.Enforce(sub.Role, sub.UserID, resource, ownerID, action)
	if err != nil {
		return fmt.Errorf("evaluar política: %w", err)
	}
	if !ok {
		e.log.Debug().
			Str("user_id", sub.UserID).
			Str("role", sub.Role).
			Str("resource", resource).
			Str("action", action).
			Msg("acceso denegado")
		return domain.ErrForbidden
	}
	return nil
}
