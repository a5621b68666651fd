package authz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer("", zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestEnforcer_PoliticaEmbebida(t *testing.T) {
	e := setupEnforcer(t)
	ctx := context.Background()
	client := ports.Subject{UserID: "u1", Role: entity.RoleClient}
	admin := ports.Subject{UserID: "a1", Role: entity.RoleAdmin}

	tests := []struct {
		name     string
		sub      ports.Subject
		resource string
		action   string
		owner    string
		want     error
	}{
		{"cliente reserva para sí", client, ports.ResourceReservation, ports.ActionCreate, "u1", nil},
		{"cliente reserva para otro", client, ports.ResourceReservation, ports.ActionCreate, "u2", domain.ErrForbidden},
		{"cliente devuelve la propia", client, ports.ResourceReservation, ports.ActionReturn, "u1", nil},
		{"cliente devuelve ajena", client, ports.ResourceReservation, ports.ActionReturn, "u2", domain.ErrForbidden},
		{"cliente cancela ajena", client, ports.ResourceReservation, ports.ActionCancel, "u2", domain.ErrForbidden},
		{"cliente lista las suyas", client, ports.ResourceReservation, ports.ActionList, "u1", nil},
		{"admin devuelve ajena", admin, ports.ResourceReservation, ports.ActionReturn, "u2", nil},
		{"admin reserva para otro", admin, ports.ResourceReservation, ports.ActionCreate, "u2", nil},
		{"cliente lee catálogo", client, ports.ResourceBook, ports.ActionRead, "", nil},
		{"cliente crea libro", client, ports.ResourceBook, ports.ActionCreate, "", domain.ErrForbidden},
		{"admin borra libro", admin, ports.ResourceBook, ports.ActionDelete, "", nil},
		{"cliente lista usuarios", client, ports.ResourceUser, ports.ActionList, "", domain.ErrForbidden},
		{"admin lista usuarios", admin, ports.ResourceUser, ports.ActionList, "", nil},
		{"cliente edita su perfil", client, ports.ResourceUser, ports.ActionUpdate, "u1", nil},
		{"admin edita perfil ajeno", admin, ports.ResourceUser, ports.ActionUpdate, "u1", domain.ErrForbidden},
		{"admin borra usuario", admin, ports.ResourceUser, ports.ActionDelete, "u1", nil},
		{"propietario vacío no cuenta como propio", ports.Subject{Role: entity.RoleClient}, ports.ResourceUser, ports.ActionRead, "", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Authorize(ctx, tt.sub, tt.resource, tt.action, tt.owner)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEnforcer_SinRol(t *testing.T) {
	e := setupEnforcer(t)
	err := e.Authorize(context.Background(), ports.Subject{UserID: "u1"}, ports.ResourceBook, ports.ActionRead, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnforcer_PoliticaDesdeArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(path, []byte("p, CLIENT, book, read, any\n"), 0o600))

	e, err := NewEnforcer(path, zerolog.Nop())
	require.NoError(t, err)

	client := ports.Subject{UserID: "u1", Role: entity.RoleClient}
	assert.NoError(t, e.Authorize(context.Background(), client, ports.ResourceBook, ports.ActionRead, ""))
	assert.ErrorIs(t, e.Authorize(context.Background(), client, ports.ResourceBook, ports.ActionList, ""), domain.ErrForbidden)
}

func TestEnforcer_ArchivoInexistente(t *testing.T) {
	_, err := NewEnforcer(filepath.Join(t.TempDir(), "nope.csv"), zerolog.Nop())
	assert.Error(t, err)
}
