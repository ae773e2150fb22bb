package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RunRequest is a request to run community detection on a graph file,
// as loaded from the CLI's YAML config or assembled from flags.
type RunRequest struct {
	Input     string  `yaml:"input" validate:"required"`
	Format    string  `yaml:"format" validate:"omitempty,oneof=edgelist snapshot"`
	Precision string  `yaml:"precision" validate:"omitempty,oneof=float32 float64"`
	Output    string  `yaml:"output" validate:"omitempty"`
	Workers   int     `yaml:"workers" validate:"omitempty,min=0,max=4096"`
	MaxLevels int     `yaml:"max_levels" validate:"omitempty,min=0,max=1000"`
	Tolerance float64 `yaml:"tolerance" validate:"omitempty,gt=0,lte=1"`
	LogLevel  string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// ValidateRunRequest validates a run request
func ValidateRunRequest(req *RunRequest) error {
	if req == nil {
		return errors.New("run request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to readable messages
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%s: failed %q validation (value %v)", e.Field(), e.Tag(), e.Value())
	}
	return err
}
