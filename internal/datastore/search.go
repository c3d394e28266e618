// search.go: bounded suggestion queries over the indexed projections.
package datastore

import (
	"fmt"

	"github.com/mquezada/katutubo/internal/errors"
)

// highValueSentinel bounds a prefix range query the way the original store
// bounded its index scans: every string with the queried prefix sorts below
// term+sentinel.
const highValueSentinel = "\uf8ff"

// PrefixSearch returns up to limit people whose projection column starts
// with term. The term is expected pre-normalized (trimmed, lowercased).
func (ds *DataStore) PrefixSearch(field SearchField, term string, limit int) ([]Person, error) {
	if !validSearchField(field) {
		return nil, errors.Newf("unknown search field %q", field).
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}
	if term == "" || limit <= 0 {
		return nil, nil
	}

	var people []Person
	column := string(field)
	err := ds.DB.
		Where(fmt.Sprintf("%s >= ? AND %s < ?", column, column), term, term+highValueSentinel).
		Order(column).
		Limit(limit).
		Find(&people).Error
	if err != nil {
		return nil, errors.New(fmt.Errorf("prefix search on %s: %w", column, err)).
			Component("datastore").
			Category(errors.CategorySearch).
			Context("field", column).
			Build()
	}
	return people, nil
}

// AgeSearch returns up to limit people whose stored age equals age exactly.
func (ds *DataStore) AgeSearch(age, limit int) ([]Person, error) {
	if limit <= 0 {
		return nil, nil
	}
	var people []Person
	err := ds.DB.
		Where("age = ?", age).
		Limit(limit).
		Find(&people).Error
	if err != nil {
		return nil, errors.New(fmt.Errorf("age search: %w", err)).
			Component("datastore").
			Category(errors.CategorySearch).
			Build()
	}
	return people, nil
}

// Window returns up to limit records in storage order. This is the bounded
// unindexed fetch the planner falls back to when the indexed queries fail
// or come back empty.
func (ds *DataStore) Window(limit int) ([]Person, error) {
	if limit <= 0 {
		return nil, nil
	}
	var people []Person
	if err := ds.DB.Limit(limit).Find(&people).Error; err != nil {
		return nil, errors.New(fmt.Errorf("window scan: %w", err)).
			Component("datastore").
			Category(errors.CategorySearch).
			Build()
	}
	return people, nil
}

func validSearchField(field SearchField) bool {
	for _, f := range SearchFields {
		if f == field {
			return true
		}
	}
	return false
}
