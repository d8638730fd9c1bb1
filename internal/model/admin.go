package model

import "time"

// RoleAdmin is the only role a session token can carry.
const RoleAdmin = "admin"

// Admin is an operator allowed to manage registrants. Admins are seeded
// out-of-band by cmd/create-admin.
type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginEvent describes a successful admin login for the operator alert.
type LoginEvent struct {
	AdminEmail string    `json:"admin_email"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	At         time.Time `json:"at"`
}
