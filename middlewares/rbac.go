package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies grant the moderation surface to mods and admins, and the
// challenge catalog to admins only.
var defaultPolicies = [][]string{
	{"mod", "submission", "review"},
	{"admin", "submission", "review"},
	{"mod", "submission", "list"},
	{"admin", "submission", "list"},
	{"admin", "challenge", "create"},
}

// InitCasbin builds the RBAC enforcer backed by the MongoDB adapter and
// seeds the default policies (idempotent).
func InitCasbin(mongoURI string) (*casbin.Enforcer, error) {
	adapter, err := mongodbadapter.NewAdapter(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	for _, p := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(p[0], p[1], p[2])
		if !exists {
			if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
				log.Printf("rbac: failed to add policy %v: %v", p, err)
			}
		}
	}
	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("rbac: failed to save policies: %v", err)
	}

	return enforcer, nil
}

// RequirePermission allows the request through when any of the caller's
// roles is granted the resource/action pair. Runs after AuthMiddleware, so
// an unauthorized caller is stopped before any handler logic executes.
func RequirePermission(enforcer *casbin.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := CallerRoles(c)
		if len(roles) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		for _, role := range roles {
			allowed, err := enforcer.Enforce(role, resource, action)
			if err != nil {
				log.Printf("rbac: enforce error for role=%s resource=%s action=%s: %v", role, resource, action, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
				c.Abort()
				return
			}
			if allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
