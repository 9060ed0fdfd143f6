package board

import (
	"errors"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"project-board/domain"
	"project-board/store"
	"project-board/validate"
)

// ErrInvalidInput is the single user-visible failure of a form submission.
// The text is the alert message shown verbatim to the user.
var ErrInvalidInput = errors.New("Invalid input, please try again!")

// Form gates raw submissions: it parses the three field values, validates
// them and only then mutates the store. A failed submission leaves the board
// untouched.
type Form struct {
	store *store.Store
}

// NewForm builds the input form for the given store.
func NewForm(s *store.Store) *Form {
	return &Form{store: s}
}

// Submit validates the raw field values and adds the project. The people
// field arrives as text and is parsed as a number; unparseable or fractional
// text becomes NaN and fails the range check the same way an out-of-range
// count does, rather than raising a distinct error kind.
//
// Constraints: title required; description required with minimum length 5;
// people required, integral, within [1,5].
func (f *Form) Submit(title, description, people string) (domain.Project, error) {
	count, err := strconv.ParseFloat(strings.TrimSpace(people), 64)
	if err != nil || count != math.Trunc(count) {
		count = math.NaN()
	}

	minDescription := 5
	minPeople, maxPeople := 1.0, 5.0
	ok := validate.OK(validate.Text(title), validate.Rules{Required: true}) &&
		validate.OK(validate.Text(description), validate.Rules{Required: true, MinLength: &minDescription}) &&
		validate.OK(validate.Number(count), validate.Rules{Required: true, Min: &minPeople, Max: &maxPeople})
	if !ok {
		log.WithFields(log.Fields{"title": title, "people": people}).Debug("submission rejected")
		return domain.Project{}, ErrInvalidInput
	}

	return f.store.Add(title, description, int(count)), nil
}
