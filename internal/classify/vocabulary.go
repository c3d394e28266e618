package classify

// Vocabulary carries the word lists the legacy-fallback classifiers match
// against. The lists are configuration data: they have drifted between
// versions of the system and must be changeable without touching the
// classification logic.
type Vocabulary struct {
	// StudentKeywords are occupation substrings that mark a legacy record
	// as a student.
	StudentKeywords []string
	// EmptyOccupationMarkers are occupation values that mean "no
	// occupation" in legacy records.
	EmptyOccupationMarkers []string
	// HealthySynonyms are legacy health-condition values that mean "no
	// condition".
	HealthySynonyms []string
}

// DefaultVocabulary returns the compiled-in word lists, matching the
// shipped configuration defaults.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		StudentKeywords: []string{
			"student", "estudyante", "pupil", "learner",
			"senior high", "junior high", "shs", "jhs",
			"elementary student", "college student", "university student",
		},
		EmptyOccupationMarkers: []string{
			"none", "n/a", "na", "-", "wala",
		},
		HealthySynonyms: []string{
			"n/a", "na", "none", "healthy", "no health condition",
			"no health", "no condition", "good", "-", "normal",
		},
	}
}

// Classifier evaluates records against one vocabulary.
type Classifier struct {
	Vocab Vocabulary
}

// NewClassifier returns a Classifier over vocab. Empty lists fall back to
// the defaults so a partially configured vocabulary never disables a
// classifier outright.
func NewClassifier(vocab Vocabulary) *Classifier {
	def := DefaultVocabulary()
	if len(vocab.StudentKeywords) == 0 {
		vocab.StudentKeywords = def.StudentKeywords
	}
	if len(vocab.EmptyOccupationMarkers) == 0 {
		vocab.EmptyOccupationMarkers = def.EmptyOccupationMarkers
	}
	if len(vocab.HealthySynonyms) == 0 {
		vocab.HealthySynonyms = def.HealthySynonyms
	}
	return &Classifier{Vocab: vocab}
}
