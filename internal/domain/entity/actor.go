package entity

// Role is the privilege level carried by an authenticated caller
type Role string

// Roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the authorization capability handed to every operation.
// It is built by the transport layer from verified credentials.
type Actor struct {
	UserID uint64
	Role   Role
}

// NewActor creates an actor, defaulting unknown roles to RoleUser
func NewActor(userID uint64, role Role) Actor {
	if role != RoleAdmin {
		role = RoleUser
	}
	return Actor{UserID: userID, Role: role}
}

// IsAdmin reports whether the actor holds global admin privileges
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may mutate a resource owned by ownerID
func (a Actor) CanManage(ownerID uint64) bool {
	return a.UserID == ownerID || a.IsAdmin()
}
