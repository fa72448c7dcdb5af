package toolchain

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized variants per resolver.
const DefaultCacheSize = 64

// ResolvedVariant is everything derived from one validated configuration.
// Variants are shared between callers and must not be modified.
type ResolvedVariant struct {
	Config  BuildConfiguration
	Profile *Profile

	PlatformName string // windows, darwin or linux
	HostTag      string // e.g. linux-x86_64
	Archive      ArchiveLocation

	AndroidArchName string // ABI name, e.g. arm64-v8a
	NDKArch         string // e.g. arm64
	ABISuffix       string // android or androideabi
	LLVMTriplet     string
	ClangTriplet    string

	PackageRoot       string
	InstalledRootPath string
	BinDir            string
	SysrootPath       string
	ToolchainFile     string // empty when the layout ships no CMake toolchain file
}

// Triplets returns both triplets of the variant.
func (v *ResolvedVariant) Triplets() Triplets {
	return Triplets{LLVM: v.LLVMTriplet, Clang: v.ClangTriplet}
}

// Options customizes a Resolver.
type Options struct {
	// BaseURL overrides DefaultBaseURL for archive downloads.
	BaseURL string
	// Checksums overrides embedded digests, keyed by ChecksumKey.
	Checksums map[string]string
	// CacheSize bounds the memo cache; zero means DefaultCacheSize.
	CacheSize int
}

type variantKey struct {
	cfg         BuildConfiguration
	packageRoot string
}

// Resolver validates configurations and derives their variants.
type Resolver struct {
	opts  Options
	cache *lru.Cache[variantKey, *ResolvedVariant]
}

// NewResolver creates a resolver.
func NewResolver(opts Options) (*Resolver, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[variantKey, *ResolvedVariant](size)
	if err != nil {
		return nil, fmt.Errorf("create variant cache: %w", err)
	}

	checksums := make(map[string]string, len(opts.Checksums))
	for k, v := range opts.Checksums {
		checksums[k] = v
	}
	opts.Checksums = checksums

	return &Resolver{opts: opts, cache: cache}, nil
}

// Validate checks a configuration without deriving anything.
func (r *Resolver) Validate(cfg BuildConfiguration) error {
	return Validate(cfg)
}

// Locate validates cfg and returns its archive location.
func (r *Resolver) Locate(cfg BuildConfiguration) (ArchiveLocation, error) {
	p, err := LookupProfile(cfg.Revision)
	if err != nil {
		return ArchiveLocation{}, err
	}
	if err := p.Validate(cfg); err != nil {
		return ArchiveLocation{}, err
	}
	return p.locate(cfg, r.opts.BaseURL, r.opts.Checksums)
}

// Resolve validates cfg and derives its variant for a package root.
// Nothing is derived for an invalid configuration.
func (r *Resolver) Resolve(cfg BuildConfiguration, packageRoot string) (*ResolvedVariant, error) {
	key := variantKey{cfg: cfg, packageRoot: packageRoot}
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	p, err := LookupProfile(cfg.Revision)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(cfg); err != nil {
		return nil, err
	}

	v, err := r.derive(p, cfg, packageRoot)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, v)
	return v, nil
}

func (r *Resolver) derive(p *Profile, cfg BuildConfiguration, packageRoot string) (*ResolvedVariant, error) {
	if cfg.Revision == "" {
		cfg.Revision = p.Revision
	}
	if cfg.CompilerVersion == "" {
		cfg.CompilerVersion = p.DefaultCompiler
	}
	if cfg.Stdlib == "" {
		cfg.Stdlib = p.DefaultStdlib
	}

	token, err := PlatformToken(cfg.HostOS)
	if err != nil {
		return nil, err
	}
	hostTag, err := HostTag(cfg.HostOS, cfg.HostArch)
	if err != nil {
		return nil, err
	}
	archive, err := p.locate(cfg, r.opts.BaseURL, r.opts.Checksums)
	if err != nil {
		return nil, err
	}

	info, err := lookupArch(cfg.TargetArch)
	if err != nil {
		return nil, err
	}
	abi, err := ABISuffix(cfg.TargetArch)
	if err != nil {
		return nil, err
	}
	triplets, err := TripletsFor(cfg.TargetArch)
	if err != nil {
		return nil, err
	}

	root := p.InstalledRootPath(packageRoot, cfg.HostArch, token)
	v := &ResolvedVariant{
		Config:            cfg,
		Profile:           p,
		PlatformName:      token,
		HostTag:           hostTag,
		Archive:           archive,
		AndroidArchName:   info.abi,
		NDKArch:           info.ndk,
		ABISuffix:         abi,
		LLVMTriplet:       triplets.LLVM,
		ClangTriplet:      triplets.Clang,
		PackageRoot:       packageRoot,
		InstalledRootPath: root,
		BinDir:            BinDir(root),
		SysrootPath:       SysrootPath(root),
	}
	if p.ToolchainFile != "" {
		v.ToolchainFile = filepath.Join(packageRoot, filepath.FromSlash(p.ToolchainFile))
	}
	return v, nil
}

// Matrix returns the valid configurations of a profile for one host and API level,
// one per supported target architecture. Architectures whose API floor exceeds
// api are left out rather than raised.
func Matrix(p *Profile, host HostOS, hostArch Arch, api int) []BuildConfiguration {
	var configs []BuildConfiguration
	for _, arch := range p.Arches {
		cfg := BuildConfiguration{
			Revision:        p.Revision,
			HostOS:          host,
			HostArch:        hostArch,
			TargetArch:      arch,
			APILevel:        api,
			CompilerVersion: p.DefaultCompiler,
			Stdlib:          p.DefaultStdlib,
		}
		if p.Validate(cfg) == nil {
			configs = append(configs, cfg)
		}
	}
	return configs
}
