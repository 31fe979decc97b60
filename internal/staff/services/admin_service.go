package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	authmodels "github.com/bitecare/clinic-backend/internal/auth/models"
	authservices "github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

// DeleteResult is the fixed-shape response of the account-deletion callable.
type DeleteResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	IsWalkIn bool   `json:"isWalkIn"`
}

// AdminService is the staff-only account-deletion callable. The lookup and
// deleter are injected so tests can observe that the walk-in path never
// touches the account deleter.
type AdminService struct {
	LookupRole    func(ctx context.Context, uid string) (string, error)
	DeleteAccount func(ctx context.Context, uid string) error
}

func NewAdminService(db *sql.DB, users *authservices.AuthService) *AdminService {
	return &AdminService{
		LookupRole: func(ctx context.Context, uid string) (string, error) {
			var role string
			err := db.QueryRowContext(ctx, "SELECT Role FROM User WHERE UID = ?", uid).Scan(&role)
			if err == sql.ErrNoRows {
				return "", apperr.New(apperr.CodePermissionDenied)
			}
			return role, err
		},
		DeleteAccount: users.DeleteUser,
	}
}

// DeleteUserAccount deletes the target account after confirming the caller
// is staff. A walkin_-prefixed target has no account behind it, so it
// succeeds without contacting the deleter.
func (s *AdminService) DeleteUserAccount(ctx context.Context, callerUID, targetUID string) (*DeleteResult, error) {
	if callerUID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated)
	}
	if targetUID == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument)
	}

	role, err := s.LookupRole(ctx, callerUID)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	if role != "staff" {
		return nil, apperr.New(apperr.CodePermissionDenied)
	}

	if strings.HasPrefix(targetUID, authmodels.WalkInPrefix) {
		return &DeleteResult{
			Success:  true,
			Message:  "Walk-in record has no account to delete",
			IsWalkIn: true,
		}, nil
	}

	if err := s.DeleteAccount(ctx, targetUID); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	return &DeleteResult{Success: true, Message: "Account deleted"}, nil
}
