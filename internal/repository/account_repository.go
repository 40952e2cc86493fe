package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/minjae/escape-room-booking/internal/model"
	"github.com/minjae/escape-room-booking/internal/utils"
)

// AccountRepo provides persistence for member accounts.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account and returns its ID. New accounts always start
// as active customers; staff roles are assigned out of band.
func (r *AccountRepo) Create(ctx context.Context, loginID, password, name, phone string, cost int) (uint64, error) {
	loginID = strings.TrimSpace(loginID)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (login_id, password_hash, name, phone, role, status) VALUES (?,?,?,?,?,?)",
		loginID, hash, name, phone, model.RoleCustomer, model.AccountActive)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062 and the violated
		// index name; both login_id and phone are unique.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "phone") {
				return 0, ErrPhoneExists
			}
			return 0, ErrLoginIDExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLoginID fetches an account by its login handle.
func (r *AccountRepo) GetByLoginID(ctx context.Context, loginID string) (model.Account, error) {
	loginID = strings.TrimSpace(loginID)
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,login_id,password_hash,name,phone,role,status,created_at FROM accounts WHERE login_id=? LIMIT 1",
		loginID).Scan(&a.ID, &a.LoginID, &a.PasswordHash, &a.Name, &a.Phone, &a.Role, &a.Status, &a.CreatedAt)
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,login_id,password_hash,name,phone,role,status,created_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.LoginID, &a.PasswordHash, &a.Name, &a.Phone, &a.Role, &a.Status, &a.CreatedAt)
	return a, err
}

// UpdatePassword replaces the stored hash. Used by the password-reset
// confirmation step.
func (r *AccountRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE accounts SET password_hash=? WHERE id=?", hash, id)
	return err
}
