package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderActorID carries the authenticated account id set by the upstream
	// authenticator. Authentication itself is out of scope for this service.
	HeaderActorID = "X-Actor-Id"
	// HeaderActorRole carries the authenticated role set by the upstream
	// authenticator.
	HeaderActorRole = "X-Actor-Role"

	actorLocalsKey = "actor"
)

// Middleware resolves the acting user from the trusted identity headers and
// stores it in the request locals. Requests without a role header are guests;
// unmapped role values are rejected.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleHeader := c.Get(HeaderActorRole)

		actor := Actor{
			ID:   c.Get(HeaderActorID),
			Role: RoleGuest,
		}

		if roleHeader != "" {
			role, err := ParseRole(roleHeader)
			if err != nil {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
					"message": "unknown role",
				})
			}
			actor.Role = role
		}

		c.Locals(actorLocalsKey, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the actor resolved by Middleware. Requests that did
// not pass through the middleware are treated as guests.
func ActorFromCtx(c *fiber.Ctx) Actor {
	actor, ok := c.Locals(actorLocalsKey).(Actor)
	if !ok {
		return Actor{Role: RoleGuest}
	}
	return actor
}

// RequireRole gates a route to the given roles, returning 403 otherwise.
func RequireRole(roles ...Role) fiber.Handler {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		if !allowed[ActorFromCtx(c).Role] {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"message": "insufficient permissions",
			})
		}
		return c.Next()
	}
}

// RequireAccount gates a route to authenticated actors (non-empty account id).
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ActorFromCtx(c).ID == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "authentication required",
			})
		}
		return c.Next()
	}
}
