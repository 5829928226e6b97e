package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	msgUnauthorized   = "Sesi tidak valid. Silakan login kembali."
	msgForbidden      = "Akses ditolak."
	msgTenantMismatch = "Akses ke data lembaga lain ditolak."
)

// Guard is the authorization requirement of an action. The zero Guard requires
// an authenticated session and nothing else.
type Guard struct {
	Public     bool
	Roles      []models.Role
	Permission string
}

var (
	public    = Guard{Public: true}
	signedIn  = Guard{}
	adminOnly = Guard{Roles: []models.Role{models.RoleAdmin}}
)

func requirePermission(perm string, roles ...models.Role) Guard {
	return Guard{Permission: perm, Roles: roles}
}

func (g Guard) check(sess *models.Session) error {
	if g.Public {
		return nil
	}
	if sess == nil {
		return common.Unauthorized(msgUnauthorized)
	}
	if len(g.Roles) > 0 {
		allowed := false
		for _, r := range g.Roles {
			if sess.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			return common.Forbidden(msgForbidden)
		}
	}
	if g.Permission != "" && !sess.HasPermission(g.Permission) {
		return common.Forbidden(msgForbidden)
	}
	return nil
}

// Result lets an action choose its own success envelope.
type Result struct {
	Data    any
	Message string
}

// Handler runs one action. The returned value is wrapped in a success envelope
// unless it is a Result or a common.MigrateResult.
type Handler func(c *Call) (any, error)

type Action struct {
	Guard   Guard
	Handler Handler
}

// Registry maps module → function → action.
type Registry map[string]map[string]Action

func (r Registry) Lookup(module, function string) (Action, bool) {
	fns, ok := r[module]
	if !ok {
		return Action{}, false
	}
	action, ok := fns[function]
	return action, ok
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Call carries one invocation's context, session and positional arguments.
type Call struct {
	Ctx     context.Context
	Session *models.Session
	Args    []json.RawMessage
}

// Arg decodes positional argument i into dst. Missing and null arguments leave
// dst untouched.
func (c *Call) Arg(i int, dst any) error {
	if i >= len(c.Args) {
		return nil
	}
	raw := c.Args[i]
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return common.Validation(fmt.Sprintf("Argumen ke-%d tidak valid.", i+1))
	}
	return nil
}

// Bind decodes argument i into a struct and validates it.
func (c *Call) Bind(i int, dst any) error {
	if err := c.Arg(i, dst); err != nil {
		return err
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return common.Validation("Data tidak valid.")
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return common.Validation("Data tidak valid: " + strings.Join(fields, ", ") + ".")
}

// Tenant resolves the tenant for a scoped action. An explicit tenant argument must
// match the session.
func (c *Call) Tenant(explicit string) (string, error) {
	if c.Session == nil || c.Session.TenantID == "" {
		return "", common.Unauthorized(msgUnauthorized)
	}
	if explicit != "" && explicit != c.Session.TenantID {
		return "", common.Forbidden(msgTenantMismatch)
	}
	return c.Session.TenantID, nil
}

// TenantArg reads a bare tenant id from argument i and resolves it.
func (c *Call) TenantArg(i int) (string, error) {
	var explicit string
	if err := c.Arg(i, &explicit); err != nil {
		return "", err
	}
	return c.Tenant(explicit)
}

// RequiredString reads argument i as a non-blank string.
func (c *Call) RequiredString(i int, field string) (string, error) {
	var s string
	if err := c.Arg(i, &s); err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", common.Validation(fmt.Sprintf("%s wajib diisi.", field))
	}
	return s, nil
}

var errSelfDelete = common.Forbidden("Anda tidak dapat menghapus akun Anda sendiri.")
