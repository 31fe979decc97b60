package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

func fakeAdminService(callerRole string) (*AdminService, *[]string) {
	deleted := &[]string{}
	svc := &AdminService{
		LookupRole: func(_ context.Context, uid string) (string, error) {
			if callerRole == "" {
				return "", apperr.New(apperr.CodePermissionDenied)
			}
			return callerRole, nil
		},
		DeleteAccount: func(_ context.Context, uid string) error {
			*deleted = append(*deleted, uid)
			return nil
		},
	}
	return svc, deleted
}

func TestDeleteRequiresAuthentication(t *testing.T) {
	svc, _ := fakeAdminService("staff")
	_, err := svc.DeleteUserAccount(context.Background(), "", "u_1")
	if apperr.CodeOf(err) != apperr.CodeUnauthenticated {
		t.Errorf("code = %q, want unauthenticated", apperr.CodeOf(err))
	}
}

func TestDeleteRequiresTarget(t *testing.T) {
	svc, _ := fakeAdminService("staff")
	_, err := svc.DeleteUserAccount(context.Background(), "s_1", "")
	if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
		t.Errorf("code = %q, want invalid-argument", apperr.CodeOf(err))
	}
}

func TestDeleteDeniedForNonStaff(t *testing.T) {
	svc, deleted := fakeAdminService("patient")
	_, err := svc.DeleteUserAccount(context.Background(), "u_caller", "u_target")
	if apperr.CodeOf(err) != apperr.CodePermissionDenied {
		t.Errorf("code = %q, want permission-denied", apperr.CodeOf(err))
	}
	if len(*deleted) != 0 {
		t.Error("deleter must not run for a non-staff caller")
	}
}

func TestDeleteWalkInShortCircuits(t *testing.T) {
	svc, deleted := fakeAdminService("staff")
	res, err := svc.DeleteUserAccount(context.Background(), "s_1", "walkin_1700000000123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || !res.IsWalkIn {
		t.Errorf("result = %+v, want success with isWalkIn", res)
	}
	if len(*deleted) != 0 {
		t.Error("walk-in target must never reach the account deleter")
	}
}

func TestDeleteRegularAccount(t *testing.T) {
	svc, deleted := fakeAdminService("staff")
	res, err := svc.DeleteUserAccount(context.Background(), "s_1", "u_target")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.IsWalkIn {
		t.Errorf("result = %+v", res)
	}
	if len(*deleted) != 1 || (*deleted)[0] != "u_target" {
		t.Errorf("deleted = %v, want [u_target]", *deleted)
	}
}

func TestDeleteDeleterFailureIsInternal(t *testing.T) {
	svc, _ := fakeAdminService("staff")
	svc.DeleteAccount = func(context.Context, string) error { return errors.New("provider down") }
	_, err := svc.DeleteUserAccount(context.Background(), "s_1", "u_target")
	if apperr.CodeOf(err) != apperr.CodeInternal {
		t.Errorf("code = %q, want internal", apperr.CodeOf(err))
	}
}
