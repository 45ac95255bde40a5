package service

import (
	"errors"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Seed creates the default privileges and roles, grants role privileges when a role
// has none yet, and creates the first super admin if that account is missing.
func Seed(userRepo repository.UserRepository, roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository, log *zap.Logger, opts SeedOptions) error {
	if err := privilegeRepo.SeedDefaults(); err != nil {
		return err
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		return err
	}

	allPrivileges, err := privilegeRepo.FindAll()
	if err != nil {
		return err
	}

	superAdmin, err := roleRepo.FindByCode(model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if len(superAdmin.Privileges) == 0 {
		if err := roleRepo.ReplacePrivileges(superAdmin, allPrivileges); err != nil {
			return err
		}
		log.Info("role privileges granted", zap.String("role", model.RoleSuperAdmin), zap.Int("privileges", len(allPrivileges)))
	}

	admin, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		return err
	}
	if len(admin.Privileges) == 0 {
		var limited []model.Privilege
		for _, p := range allPrivileges {
			if !p.IsUserManagement() {
				limited = append(limited, p)
			}
		}
		if err := roleRepo.ReplacePrivileges(admin, limited); err != nil {
			return err
		}
		log.Info("role privileges granted", zap.String("role", model.RoleAdmin), zap.Int("privileges", len(limited)))
	}

	_, err = userRepo.FindByEmail(opts.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := &model.User{
		Email:      opts.AdminEmail,
		FullName:   "Super Administrator",
		RoleID:     &superAdmin.ID,
		IsActive:   true,
		Privileges: superAdmin.Privileges,
	}
	user.CreatedBy = model.SystemActor.ID
	user.UpdatedBy = model.SystemActor.ID
	if err := user.SetPassword(opts.AdminPassword); err != nil {
		return err
	}
	if err := userRepo.Create(user); err != nil {
		return err
	}
	log.Info("admin user created", zap.String("email", opts.AdminEmail), zap.String("role", model.RoleSuperAdmin))
	return nil
}
