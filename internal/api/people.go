// internal/api/people.go
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/barangay"
	"github.com/mquezada/katutubo/internal/classify"
	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/security"
)

// initPeopleRoutes registers the person CRUD endpoints. Reads are open to
// any authenticated user; writes require admin.
func (c *Controller) initPeopleRoutes() {
	g := c.Group.Group("/people", c.auth.RequireAuth())
	g.GET("", c.ListPeople)
	g.GET("/latest", c.GetLatestPerson)
	g.GET("/:id", c.GetPerson)

	w := c.Group.Group("/people", c.auth.RequireAuth(), c.auth.RequireRole(security.RoleAdmin))
	w.POST("", c.CreatePerson)
	w.PUT("/:id", c.UpdatePerson)
	w.DELETE("/:id", c.DeletePerson)
}

// familyTreePayload carries family relations in the display shape: sibling
// and children lists arrive comma-joined and are normalized to arrays on
// write.
type familyTreePayload struct {
	Grandfather string `json:"grandfather"`
	Grandmother string `json:"grandmother"`
	Father      string `json:"father"`
	Mother      string `json:"mother"`
	Spouse      string `json:"spouse"`
	Siblings    string `json:"siblings"`
	Children    string `json:"children"`
}

// personPayload is the request body for create and update.
type personPayload struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`

	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         *int   `json:"age"`
	CivilStatus string `json:"civilStatus"`

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

	FamilyTree *familyTreePayload `json:"familyTree"`
}

// apply copies the payload onto a person record, normalizing as it goes.
func (p *personPayload) apply(person *datastore.Person, settings personDefaults) error {
	person.FirstName = strings.TrimSpace(p.FirstName)
	person.LastName = strings.TrimSpace(p.LastName)
	person.MiddleName = strings.TrimSpace(p.MiddleName)
	person.Gender = p.Gender
	person.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	person.CivilStatus = p.CivilStatus
	person.EducationLevel = p.EducationLevel
	person.SchoolName = p.SchoolName
	person.Occupation = p.Occupation
	person.IsEmployed = p.IsEmployed
	person.IsStudent = p.IsStudent
	person.HealthCondition = p.HealthCondition
	person.HealthDetails = p.HealthDetails
	person.Address = p.Address
	person.BirthPlace = p.BirthPlace
	person.ContactNumber = classify.NormalizePhone(p.ContactNumber)
	person.HouseholdMembers = p.HouseholdMembers
	person.Lineage = strings.TrimSpace(p.Lineage)
	person.PhotoURL = p.PhotoURL
	person.Municipality = settings.municipality
	person.Province = settings.province

	canonical := barangay.Canonical(p.Barangay)
	if canonical == "" {
		return errInvalidBarangay(p.Barangay)
	}
	person.Barangay = canonical

	// A parseable birth date is authoritative for age; the submitted age
	// is only stored when no birth date is available.
	if dob, ok := classify.ParseBirthDate(person.DateOfBirth); ok {
		derived := yearsSince(dob, time.Now())
		person.Age = &derived
	} else {
		person.Age = p.Age
	}

	if p.FamilyTree != nil {
		person.FamilyTree = &datastore.FamilyTree{
			Grandfather: strings.TrimSpace(p.FamilyTree.Grandfather),
			Grandmother: strings.TrimSpace(p.FamilyTree.Grandmother),
			Father:      strings.TrimSpace(p.FamilyTree.Father),
			Mother:      strings.TrimSpace(p.FamilyTree.Mother),
			Spouse:      strings.TrimSpace(p.FamilyTree.Spouse),
			Siblings:    classify.SplitList(p.FamilyTree.Siblings),
			Children:    classify.SplitList(p.FamilyTree.Children),
		}
	}
	return nil
}

type personDefaults struct {
	municipality string
	province     string
}

func (c *Controller) personDefaults() personDefaults {
	return personDefaults{
		municipality: c.Settings.Registry.Municipality,
		province:     c.Settings.Registry.Province,
	}
}

func errInvalidBarangay(name string) error {
	return echo.NewHTTPError(http.StatusBadRequest, "barangay must be one of the fixed barangay list, got: "+name)
}

func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ListPeople handles GET /api/v1/people. Category, barangay, filter and
// search narrowing are applied in that order, then the name sort, then
// paging.
func (c *Controller) ListPeople(ctx echo.Context) error {
	people, err := c.DS.GetAll()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list people", http.StatusInternalServerError)
	}

	now := time.Now()
	category := classify.ParseCategory(ctx.QueryParam("category"))
	people = c.classifier.FilterByCategory(people, category, now)

	if brgy := ctx.QueryParam("barangay"); brgy != "" && brgy != "All Barangay" {
		people = filterBarangay(people, brgy)
	}
	if filter := ctx.QueryParam("filter"); filter != "" && filter != "Show All" {
		people = c.applyListFilter(people, filter)
	}
	if term := classify.Normalize(ctx.QueryParam("search")); term != "" {
		people = filterSearchTerm(people, term)
	}

	classify.SortByName(people)

	limit, offset := parsePaging(ctx)
	total := len(people)
	page := people
	if offset < len(page) {
		page = page[offset:]
	} else {
		page = nil
	}
	if len(page) > limit {
		page = page[:limit]
	}

	totalPages := (total + limit - 1) / limit
	return ctx.JSON(http.StatusOK, PaginatedResponse{
		Data:        page,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		CurrentPage: offset/limit + 1,
		TotalPages:  totalPages,
	})
}

// applyListFilter applies the master-list dropdown filter.
func (c *Controller) applyListFilter(people []datastore.Person, filter string) []datastore.Person {
	out := make([]datastore.Person, 0, len(people))
	for i := range people {
		p := &people[i]
		keep := false
		switch filter {
		case "Male", "Female":
			keep = p.Gender == filter
		case "Student":
			keep = c.classifier.IsStudent(p)
		case "Non-Student":
			keep = !c.classifier.IsStudent(p) && !c.classifier.IsUnemployed(p)
		case "Unemployed":
			keep = c.classifier.IsUnemployed(p)
		case "PWD":
			keep = c.classifier.HasHealthCondition(p)
		default:
			keep = true
		}
		if keep {
			out = append(out, people[i])
		}
	}
	return out
}

// filterSearchTerm applies the master-list free-text narrowing: full name
// or barangay contains the term, or the stored age matches a numeric term.
func filterSearchTerm(people []datastore.Person, term string) []datastore.Person {
	numeric := classify.IsNumeric(term)
	out := make([]datastore.Person, 0, len(people))
	for i := range people {
		p := &people[i]
		name := classify.Normalize(p.FirstName + " " + p.LastName)
		brgy := classify.Normalize(p.Barangay)
		ageMatch := false
		if numeric && p.Age != nil {
			ageMatch = strconv.Itoa(*p.Age) == term
		}
		if strings.Contains(name, term) || strings.Contains(brgy, term) || ageMatch {
			out = append(out, people[i])
		}
	}
	return out
}

func filterBarangay(people []datastore.Person, brgy string) []datastore.Person {
	out := make([]datastore.Person, 0, len(people))
	for i := range people {
		if strings.EqualFold(people[i].Barangay, brgy) {
			out = append(out, people[i])
		}
	}
	return out
}

// GetPerson handles GET /api/v1/people/:id.
func (c *Controller) GetPerson(ctx echo.Context) error {
	person, err := c.DS.Get(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Person not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, person)
}

// GetLatestPerson handles GET /api/v1/people/latest: the most recently
// registered record, used by the recent-activity display.
func (c *Controller) GetLatestPerson(ctx echo.Context) error {
	person, err := c.DS.Latest()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get latest person", http.StatusInternalServerError)
	}
	if person == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, person)
}

// CreatePerson handles POST /api/v1/people.
func (c *Controller) CreatePerson(ctx echo.Context) error {
	var payload personPayload
	if err := ctx.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var person datastore.Person
	if err := payload.apply(&person, c.personDefaults()); err != nil {
		return err
	}

	if err := c.DS.Save(&person); err != nil {
		return c.HandleError(ctx, err, "Failed to save person", http.StatusInternalServerError)
	}
	c.countWrite("create")
	c.statsCache.Flush()
	return ctx.JSON(http.StatusCreated, person)
}

// UpdatePerson handles PUT /api/v1/people/:id. The stored record is only
// replaced after the write succeeds; there is no optimistic local mutation
// to roll back.
func (c *Controller) UpdatePerson(ctx echo.Context) error {
	person, err := c.DS.Get(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Person not found", http.StatusNotFound)
	}

	var payload personPayload
	if err := ctx.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := payload.apply(&person, c.personDefaults()); err != nil {
		return err
	}

	if err := c.DS.Update(&person); err != nil {
		return c.HandleError(ctx, err, "Failed to update person", http.StatusInternalServerError)
	}
	c.countWrite("update")
	c.statsCache.Flush()
	return ctx.JSON(http.StatusOK, person)
}

// DeletePerson handles DELETE /api/v1/people/:id. Hard delete; the photo
// is removed best-effort after the record is gone.
func (c *Controller) DeletePerson(ctx echo.Context) error {
	person, err := c.DS.Get(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Person not found", http.StatusNotFound)
	}

	if err := c.DS.Delete(person.PublicID); err != nil {
		return c.HandleError(ctx, err, "Failed to delete person", http.StatusInternalServerError)
	}
	if person.PhotoURL != "" && c.photos != nil {
		c.photos.Remove(person.PhotoURL)
	}
	c.countWrite("delete")
	c.statsCache.Flush()
	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) countWrite(op string) {
	if c.metrics != nil {
		c.metrics.PeopleWrites.WithLabelValues(op).Inc()
	}
}

func parsePaging(ctx echo.Context) (limit, offset int) {
	limit = atoiDefault(ctx.QueryParam("limit"), 100)
	if limit <= 0 {
		limit = 100
	} else if limit > 1000 {
		limit = 1000
	}
	offset = atoiDefault(ctx.QueryParam("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
