package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// ValidateWGSL runs the WGSL front-end (parse, lower, validate) over source so compile errors
// are reported synchronously instead of through the device's asynchronous error callback.
//
// Parameters:
//   - source: the WGSL module source
//
// Returns:
//   - error: nil if the module is valid, otherwise an error wrapping ErrInvalidWGSL
func ValidateWGSL(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWGSL, err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWGSL, err)
	}
	verrs, err := naga.Validate(mod)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWGSL, err)
	}
	if len(verrs) > 0 {
		errs := make([]error, 0, len(verrs))
		for _, ve := range verrs {
			errs = append(errs, ve)
		}
		return fmt.Errorf("%w: %w", ErrInvalidWGSL, errors.Join(errs...))
	}
	return nil
}
