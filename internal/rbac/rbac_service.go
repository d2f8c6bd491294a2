package rbac

import (
	"cmp"
	"slices"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Permissions(role string) (PermissionsResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		enforcer: enforcer,
		logger:   logger.Named("rbac.service"),
	}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions resolves direct and inherited policies for role, sorted by
// resource then action.
func (s *service) Permissions(role string) (PermissionsResponse, error) {
	resp := PermissionsResponse{Role: role, Permissions: []Permission{}}
	if role == "" {
		return resp, nil
	}

	policies, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		s.logger.Error("rbac permissions lookup failed", zap.String("role", role), zap.Error(err))
		return resp, err
	}

	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		perm := Permission{Resource: p[1], Action: p[2]}
		if !slices.Contains(resp.Permissions, perm) {
			resp.Permissions = append(resp.Permissions, perm)
		}
	}

	slices.SortFunc(resp.Permissions, func(a, b Permission) int {
		return cmp.Or(cmp.Compare(a.Resource, b.Resource), cmp.Compare(a.Action, b.Action))
	})
	return resp, nil
}
