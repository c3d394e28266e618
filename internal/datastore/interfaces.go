// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/errors"
)

// SearchField identifies one of the indexed lowercase projections the
// suggestion planner may query.
type SearchField string

const (
	FieldFirstName SearchField = "first_name_lower"
	FieldLastName  SearchField = "last_name_lower"
	FieldBarangay  SearchField = "barangay_lower"
	FieldLineage   SearchField = "lineage_lower"
)

// SearchFields lists every projection the planner queries, in query order.
var SearchFields = []SearchField{FieldFirstName, FieldLastName, FieldBarangay, FieldLineage}

// BarangayCount is one row of the per-barangay population aggregate.
type BarangayCount struct {
	Barangay string `json:"barangay"`
	Count    int64  `json:"count"`
}

// Interface abstracts the underlying database implementation and defines
// the operations the registry performs against it.
type Interface interface {
	Open() error
	Close() error

	// Person records
	Save(person *Person) error
	Get(publicID string) (Person, error)
	Update(person *Person) error
	Delete(publicID string) error
	GetAll() ([]Person, error)
	Latest() (*Person, error)
	CountAll() (int64, error)
	CountByBarangay() ([]BarangayCount, error)

	// Suggestion queries
	PrefixSearch(field SearchField, term string, limit int) ([]Person, error)
	AgeSearch(age, limit int) ([]Person, error)
	Window(limit int) ([]Person, error)

	// Accounts
	UserByEmail(email string) (User, error)
	SaveUser(user *User) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New creates a store instance based on the configured output.
func New(settings *conf.Settings) (Interface, error) {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}, nil
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}, nil
	default:
		return nil, errors.Newf("no database output enabled").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

// Save stores a person and its family tree in a single transaction.
func (ds *DataStore) Save(person *Person) error {
	if err := ds.DB.Create(person).Error; err != nil {
		return errors.New(fmt.Errorf("saving person: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// Get retrieves a person by public identifier.
func (ds *DataStore) Get(publicID string) (Person, error) {
	var person Person
	err := ds.DB.Preload("FamilyTree").
		Where("public_id = ?", publicID).
		First(&person).Error
	if err != nil {
		category := errors.CategoryDatabase
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = errors.CategoryNotFound
		}
		return Person{}, errors.New(fmt.Errorf("getting person %s: %w", publicID, err)).
			Component("datastore").
			Category(category).
			Build()
	}
	return person, nil
}

// Update rewrites a person record and replaces its family tree.
func (ds *DataStore) Update(person *Person) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if person.FamilyTree != nil {
			person.FamilyTree.PersonID = person.ID
			// Replace rather than merge: the client submits the whole tree.
			if err := tx.Where("person_id = ?", person.ID).Delete(&FamilyTree{}).Error; err != nil {
				return fmt.Errorf("clearing family tree: %w", err)
			}
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(person).Error; err != nil {
			return fmt.Errorf("updating person: %w", err)
		}
		return nil
	})
}

// Delete removes a person and, via the cascade constraint, its family tree.
// Hard delete, there is no tombstone.
func (ds *DataStore) Delete(publicID string) error {
	person, err := ds.Get(publicID)
	if err != nil {
		return err
	}
	if err := ds.DB.Select("FamilyTree").Delete(&person).Error; err != nil {
		return errors.New(fmt.Errorf("deleting person %s: %w", publicID, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// GetAll retrieves every person record with family trees preloaded.
func (ds *DataStore) GetAll() ([]Person, error) {
	var people []Person
	if err := ds.DB.Preload("FamilyTree").Find(&people).Error; err != nil {
		return nil, errors.New(fmt.Errorf("getting all people: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return people, nil
}

// Latest returns the most recently created record, or nil when the
// collection is empty.
func (ds *DataStore) Latest() (*Person, error) {
	var person Person
	err := ds.DB.Preload("FamilyTree").
		Order("created_at DESC").
		Limit(1).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.New(fmt.Errorf("getting latest person: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return &person, nil
}

// CountAll returns the total number of person records.
func (ds *DataStore) CountAll() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Person{}).Count(&count).Error; err != nil {
		return 0, errors.New(fmt.Errorf("counting people: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}

// CountByBarangay returns the per-barangay population counts for barangays
// that have at least one record.
func (ds *DataStore) CountByBarangay() ([]BarangayCount, error) {
	var counts []BarangayCount
	err := ds.DB.Model(&Person{}).
		Select("barangay, COUNT(*) as count").
		Where("barangay <> ''").
		Group("barangay").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.New(fmt.Errorf("counting people by barangay: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return counts, nil
}

// UserByEmail retrieves an account by email address.
func (ds *DataStore) UserByEmail(email string) (User, error) {
	var user User
	if err := ds.DB.Where("email = ?", email).First(&user).Error; err != nil {
		category := errors.CategoryDatabase
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = errors.CategoryNotFound
		}
		return User{}, errors.New(fmt.Errorf("getting user by email: %w", err)).
			Component("datastore").
			Category(category).
			Build()
	}
	return user, nil
}

// SaveUser inserts or updates an account.
func (ds *DataStore) SaveUser(user *User) error {
	if err := ds.DB.Save(user).Error; err != nil {
		return errors.New(fmt.Errorf("saving user: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Person{}, &FamilyTree{}, &User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}
	if debug {
		logger.Debug("database connection initialized", "type", dbType, "connection", connectionInfo)
	}
	return nil
}
