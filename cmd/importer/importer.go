// Package importer implements the import subcommand: bulk-loading of
// legacy JSON exports into the registry database.
package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mquezada/katutubo/internal/barangay"
	"github.com/mquezada/katutubo/internal/classify"
	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/datastore"
)

// Command creates the import subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [records.json]",
		Short: "Import legacy person records from a JSON export",
		Long: "Imports an array of person records exported from the previous system. " +
			"Legacy records may lack the structured student/employment/health fields; " +
			"they are stored as-is and reinterpreted by the classification fallbacks.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(settings, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate without writing")
	return cmd
}

// legacyRecord mirrors the export document shape. Family lists may appear
// either as arrays or as comma-joined strings depending on export vintage.
type legacyRecord struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`

	Gender      string          `json:"gender"`
	DateOfBirth string          `json:"dateOfBirth"`
	BirthDate   string          `json:"birthDate"` // older exports use this key
	Age         *int            `json:"age"`
	CivilStatus string          `json:"civilStatus"`

	EducationLevel string `json:"educationLevel"`
	SchoolName     string `json:"schoolName"`
	Occupation     string `json:"occupation"`
	IsEmployed     *bool  `json:"isEmployed"`
	IsStudent      string `json:"isStudent"`

	HealthCondition string `json:"healthCondition"`
	HealthDetails   string `json:"healthDetails"`

	Barangay   string `json:"barangay"`
	Address    string `json:"address"`
	BirthPlace string `json:"birthPlace"`

	ContactNumber    string `json:"contactNumber"`
	HouseholdMembers *int   `json:"householdMembers"`
	Lineage          string `json:"lineage"`
	PhotoURL         string `json:"photoUrl"`

	FamilyTree *legacyFamilyTree `json:"familyTree"`

	CreatedAt string `json:"createdAt"`
}

type legacyFamilyTree struct {
	Grandfather string     `json:"grandfather"`
	Grandmother string     `json:"grandmother"`
	Father      string     `json:"father"`
	Mother      string     `json:"mother"`
	Spouse      string     `json:"spouse"`
	Siblings    stringList `json:"siblings"`
	Children    stringList `json:"children"`
}

// stringList accepts both JSON arrays and comma-joined strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = classify.SplitList(joined)
	return nil
}

func runImport(settings *conf.Settings, path string, dryRun bool) error {
	logger := slog.Default().With("service", "importer")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading export file: %w", err)
	}
	var records []legacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing export file: %w", err)
	}
	logger.Info("parsed export file", "path", path, "records", len(records))

	var skipped int
	people := make([]datastore.Person, 0, len(records))
	for i := range records {
		person, ok := convert(&records[i], settings)
		if !ok {
			skipped++
			continue
		}
		people = append(people, person)
	}
	logger.Info("converted records", "importable", len(people), "skipped", skipped)

	if dryRun {
		return nil
	}

	ds, err := datastore.New(settings)
	if err != nil {
		return err
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer ds.Close()

	var failed int
	for i := range people {
		if err := ds.Save(&people[i]); err != nil {
			failed++
			logger.Error("failed to save record",
				"lastName", people[i].LastName, "firstName", people[i].FirstName, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("import finished with %d failed records", failed)
	}
	logger.Info("import complete", "saved", len(people))
	return nil
}

// convert maps a legacy record onto the model. Records without a valid
// barangay are skipped; everything else is preserved, including the legacy
// free-text fields the classifiers fall back to.
func convert(r *legacyRecord, settings *conf.Settings) (datastore.Person, bool) {
	canonical := barangay.Canonical(r.Barangay)
	if canonical == "" {
		return datastore.Person{}, false
	}

	dob := r.DateOfBirth
	if dob == "" {
		dob = r.BirthDate
	}

	person := datastore.Person{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		MiddleName:       r.MiddleName,
		Gender:           r.Gender,
		DateOfBirth:      dob,
		Age:              r.Age,
		CivilStatus:      r.CivilStatus,
		EducationLevel:   r.EducationLevel,
		SchoolName:       r.SchoolName,
		Occupation:       r.Occupation,
		IsEmployed:       r.IsEmployed,
		IsStudent:        r.IsStudent,
		HealthCondition:  r.HealthCondition,
		HealthDetails:    r.HealthDetails,
		Barangay:         canonical,
		Address:          r.Address,
		BirthPlace:       r.BirthPlace,
		Municipality:     settings.Registry.Municipality,
		Province:         settings.Registry.Province,
		ContactNumber:    classify.NormalizePhone(r.ContactNumber),
		HouseholdMembers: r.HouseholdMembers,
		Lineage:          r.Lineage,
		PhotoURL:         r.PhotoURL,
	}

	if r.FamilyTree != nil {
		person.FamilyTree = &datastore.FamilyTree{
			Grandfather: r.FamilyTree.Grandfather,
			Grandmother: r.FamilyTree.Grandmother,
			Father:      r.FamilyTree.Father,
			Mother:      r.FamilyTree.Mother,
			Spouse:      r.FamilyTree.Spouse,
			Siblings:    r.FamilyTree.Siblings,
			Children:    r.FamilyTree.Children,
		}
	}

	// The oldest exports predate audit timestamps; backfill so the
	// latest-entry query stays meaningful.
	if created, ok := classify.ParseBirthDate(r.CreatedAt); ok {
		person.CreatedAt = created
	} else {
		person.CreatedAt = time.Now()
	}

	return person, true
}
