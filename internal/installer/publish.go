package installer

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/ndkpkg/internal/env"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// Publish computes the outputs of an installed variant. Every published tool
// must exist on disk; otherwise nothing is published.
func Publish(v *toolchain.ResolvedVariant, log *output.Writer) (*env.Outputs, error) {
	if log == nil {
		log = output.Discard()
	}

	o := env.FromVariant(v)
	if missing := o.MissingTools(); len(missing) > 0 {
		return nil, ndkerrors.Layout(v.BinDir, fmt.Errorf("missing tools: %s", strings.Join(missing, ", ")))
	}

	for _, val := range o.Values() {
		if val.Append {
			log.Debug("Appending %s environment variable: %s", val.Key, val.Value)
			continue
		}
		log.Debug("Creating %s environment variable: %s", val.Key, val.Value)
	}
	return o, nil
}
