// model.go defines the data model for the registry.
package datastore

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person represents one registered indigenous-person resident.
//
// The model carries both the structured fields of the current schema and the
// legacy free-text fields of earlier versions. Classification code must
// check the structured field first and fall back to the legacy field, see
// the classify package.
type Person struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PublicID string `gorm:"uniqueIndex;size:36" json:"id"`

	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName,omitempty"`

	// Lowercase projections maintained on save, used by the prefix-range
	// suggestion queries.
	FirstNameLower string `gorm:"index:idx_people_first_lower" json:"-"`
	LastNameLower  string `gorm:"index:idx_people_last_lower" json:"-"`
	BarangayLower  string `gorm:"index:idx_people_barangay_lower" json:"-"`
	LineageLower   string `gorm:"index:idx_people_lineage_lower" json:"-"`

	Gender      string `gorm:"size:10" json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"` // ISO date, legacy free text, or epoch seconds
	Age         *int   `gorm:"index:idx_people_age" json:"age,omitempty"`
	CivilStatus string `json:"civilStatus,omitempty"`

	EducationLevel string `json:"educationLevel,omitempty"`
	SchoolName     string `json:"schoolName,omitempty"`
	Occupation     string `json:"occupation,omitempty"`
	IsEmployed     *bool  `json:"isEmployed,omitempty"`
	IsStudent      string `gorm:"size:20" json:"isStudent,omitempty"` // "Student" / "Not Student" / "" (legacy)

	HealthCondition string `json:"healthCondition,omitempty"` // "Healthy" / "Not Healthy" / legacy free text
	HealthDetails   string `json:"healthDetails,omitempty"`

	Barangay     string `gorm:"index" json:"barangay,omitempty"`
	Address      string `json:"address,omitempty"`
	BirthPlace   string `json:"birthPlace,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	Province     string `json:"province,omitempty"`

	ContactNumber    string `json:"contactNumber,omitempty"`
	HouseholdMembers *int   `json:"householdMembers,omitempty"`
	Lineage          string `json:"lineage,omitempty"`
	PhotoURL         string `json:"photoUrl,omitempty"`

	FamilyTree *FamilyTree `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"familyTree,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FamilyTree holds the optional family relations of a person. Sibling and
// children names are stored as arrays; clients present them comma-joined.
type FamilyTree struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	PersonID uint `gorm:"uniqueIndex;not null" json:"-"`

	Grandfather string   `json:"grandfather,omitempty"`
	Grandmother string   `json:"grandmother,omitempty"`
	Father      string   `json:"father,omitempty"`
	Mother      string   `json:"mother,omitempty"`
	Spouse      string   `json:"spouse,omitempty"`
	Siblings    []string `gorm:"serializer:json" json:"siblings,omitempty"`
	Children    []string `gorm:"serializer:json" json:"children,omitempty"`
}

// BeforeSave keeps the lowercase projection columns in sync and assigns a
// public identifier on first save.
func (p *Person) BeforeSave(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	p.FirstNameLower = lowerProjection(p.FirstName)
	p.LastNameLower = lowerProjection(p.LastName)
	p.BarangayLower = lowerProjection(p.Barangay)
	p.LineageLower = lowerProjection(p.Lineage)
	return nil
}

func lowerProjection(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// User represents an account able to sign in to the registry.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	Role         string    `gorm:"size:20" json:"role"` // user / admin / super_admin
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
