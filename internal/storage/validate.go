package storage

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	tempoerrors "github.com/abatilo/tempo/internal/errors"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every task's field constraints and that ids are unique.
// Dangling predecessor ids are allowed; scheduling ignores them.
func Validate(p *Plan) error {
	seen := make(map[int]bool, len(p.Tasks))
	for i := range p.Tasks {
		t := &p.Tasks[i]
		if err := validate.Struct(t); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return fmt.Errorf("task %d (row %d): field %s fails %q", t.ID, i+1, fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("task %d (row %d): %w", t.ID, i+1, err)
		}
		if seen[t.ID] {
			return tempoerrors.DuplicateIDError{ID: t.ID}
		}
		seen[t.ID] = true
	}
	return nil
}
