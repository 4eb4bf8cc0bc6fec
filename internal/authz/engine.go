package authz

import "academy-manager/pkg/types"

// Context descreve quem age e, quando existe, sobre qual conta.
type Context struct {
	Actor  types.Principal
	Target interface{}
}

// CanDo confere o papel do ator e depois as regras da conta alvo.
// Sem alvo vale só o papel.
func CanDo(permission string, ctx Context) bool {
	if !Can(ctx.Actor.Role, permission) {
		return false
	}

	switch target := ctx.Target.(type) {
	case nil:
		return true
	case *types.Principal:
		return canTouchAccount(ctx.Actor, target, permission)
	default:
		return true
	}
}

// canTouchAccount: a troca de senha pelo próprio usuário só vale para a
// própria conta. Admin passa sempre.
func canTouchAccount(actor types.Principal, target *types.Principal, permission string) bool {
	if Can(actor.Role, Superuser) {
		return true
	}
	if permission == PasswordUpdate {
		return target.ID == actor.ID
	}
	return false
}
