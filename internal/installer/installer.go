// Package installer drives one toolchain installation from validation to
// published outputs.
package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/ndkpkg/internal/env"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/runner"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// State is the furthest point an installation run reached.
type State int

const (
	Unvalidated State = iota
	Validated
	Located
	Fetched
	LaidOut
	PermissionsFixed
	Published
)

func (s State) String() string {
	switch s {
	case Unvalidated:
		return "unvalidated"
	case Validated:
		return "validated"
	case Located:
		return "located"
	case Fetched:
		return "fetched"
	case LaidOut:
		return "laid-out"
	case PermissionsFixed:
		return "permissions-fixed"
	case Published:
		return "published"
	}
	return "unknown"
}

// Archiver obtains and unpacks an NDK archive.
type Archiver interface {
	FetchAndExtract(ctx context.Context, loc toolchain.ArchiveLocation, workDir string) (string, error)
}

// Request describes one installation run.
type Request struct {
	Config      toolchain.BuildConfiguration
	PackageRoot string
	// WorkDir receives the extracted archive. When empty, <PackageRoot>.src is
	// used and removed once the package is laid out.
	WorkDir string
	// Python runs make_standalone_toolchain.py for flat layouts. When empty the
	// interpreter bundled with the NDK is used, then python3 or python from PATH.
	Python string
}

// Result reports the outcome of a run. Outputs is set only when State is Published.
type Result struct {
	State              State
	Variant            *toolchain.ResolvedVariant
	PackageRoot        string
	PermissionsChanged int
	ScriptsCreated     []string
	Outputs            *env.Outputs
}

// Installer runs installations. It holds no per-run state, so one Installer
// may serve independent runs for distinct package roots.
type Installer struct {
	resolver *toolchain.Resolver
	archives Archiver
	runner   runner.Runner
	log      *output.Writer
}

// New creates an installer. A nil log discards messages.
func New(resolver *toolchain.Resolver, archives Archiver, r runner.Runner, log *output.Writer) *Installer {
	if log == nil {
		log = output.Discard()
	}
	return &Installer{resolver: resolver, archives: archives, runner: r, log: log}
}

// Run performs a full installation. Any failure aborts the run and returns the
// state reached with no outputs; a retry starts again from validation.
func (in *Installer) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{State: Unvalidated}

	packageRoot, err := filepath.Abs(req.PackageRoot)
	if err != nil {
		return res, err
	}
	workDir := req.WorkDir
	ownWorkDir := workDir == ""
	if ownWorkDir {
		workDir = packageRoot + ".src"
	}

	in.log.Step(1, "Validating %s", req.Config)
	if err := in.resolver.Validate(req.Config); err != nil {
		return res, err
	}
	res.State = Validated

	if err := ctx.Err(); err != nil {
		return res, err
	}
	v, err := in.resolver.Resolve(req.Config, packageRoot)
	if err != nil {
		return res, err
	}
	res.Variant = v
	res.PackageRoot = packageRoot
	in.log.Step(2, "Located %s", v.Archive.URL)
	res.State = Located

	extracted, err := in.archives.FetchAndExtract(ctx, v.Archive, workDir)
	if err != nil {
		return res, err
	}
	in.log.Step(3, "Fetched and extracted to %s", extracted)
	res.State = Fetched

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := in.LayoutPackage(ctx, extracted, v, req.Python); err != nil {
		return res, err
	}
	in.log.Step(4, "Laid out %s package in %s", v.Profile.Layout, packageRoot)
	res.State = LaidOut
	if ownWorkDir {
		if err := os.RemoveAll(workDir); err != nil {
			in.log.Warning("could not remove %s: %v", workDir, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	changed, err := FixExecutablePermissions(ctx, packageRoot, v.Config.HostOS, in.log)
	if err != nil {
		return res, err
	}
	res.PermissionsChanged = changed
	if v.Config.HostOS == toolchain.HostWindows {
		created, err := FixWindowsCommandScripts(v.BinDir, in.log)
		if err != nil {
			return res, err
		}
		res.ScriptsCreated = created
	}
	in.log.Step(5, "Fixed permissions (%d files changed)", changed)
	res.State = PermissionsFixed

	if err := ctx.Err(); err != nil {
		return res, err
	}
	outputs, err := Publish(v, in.log)
	if err != nil {
		return res, err
	}
	in.log.Step(6, "Published %d values", len(outputs.Values()))
	res.Outputs = outputs
	res.State = Published
	return res, nil
}
