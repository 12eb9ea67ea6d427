package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

/* ===================== Donor ===================== */

type DonorModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Email              string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password           string    `gorm:"not null" json:"-"`
	Phone              string    `gorm:"size:20" json:"phone"`
	City               string    `gorm:"size:50" json:"city"`
	TotalDonations     int64     `gorm:"not null;default:0" json:"total_donations"`
	TotalAmountDonated int64     `gorm:"not null;default:0" json:"total_amount_donated"`
	CasesHelped        int64     `gorm:"not null;default:0" json:"cases_helped"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DonorModel) TableName() string { return "donors" }

/* ===================== Volunteer ===================== */

type VolunteerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `gorm:"size:20" json:"phone"`
	CNIC      string    `gorm:"column:cnic;size:20;uniqueIndex" json:"cnic"`
	District  string    `gorm:"size:50;index" json:"district"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VolunteerModel) TableName() string { return "volunteers" }

/* ===================== Admin ===================== */

const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperAdmin = "superadmin"
)

type AdminModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminModel) TableName() string { return "admins" }

// CanReview reports whether the admin may take review decisions.
func (a *AdminModel) CanReview() bool {
	role := strings.ToLower(a.Role)
	return a.IsActive && (role == AdminRoleAdmin || role == AdminRoleSuperAdmin)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
