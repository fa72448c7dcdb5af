package toolchain

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is where Google publishes NDK archives.
const DefaultBaseURL = "https://dl.google.com/android/repository"

//go:embed checksums.yaml
var checksumsYAML []byte

// checksumTable is the parsed form of checksums.yaml.
type checksumTable struct {
	Algorithm string                       `yaml:"algorithm"`
	Revisions map[string]map[string]string `yaml:"revisions"`
}

var (
	builtinChecksums checksumTable
	checksumsOnce    sync.Once
	checksumsErr     error
)

// loadChecksums parses the embedded checksum table once.
func loadChecksums() (checksumTable, error) {
	checksumsOnce.Do(func() {
		if err := yaml.Unmarshal(checksumsYAML, &builtinChecksums); err != nil {
			checksumsErr = fmt.Errorf("parse embedded checksums: %w", err)
		}
	})
	return builtinChecksums, checksumsErr
}

// ArchiveLocation describes where to download an NDK archive and how to verify it.
type ArchiveLocation struct {
	URL       string
	FileName  string
	Checksum  string // hex digest, empty when unknown
	Algorithm string // digest algorithm, "sha1"
	Policy    ChecksumPolicy
}

// HasChecksum reports whether a digest is known for the archive.
func (l ArchiveLocation) HasChecksum() bool {
	return l.Checksum != ""
}

// ChecksumKey returns the table key for a host, e.g. "linux-x86_64".
func ChecksumKey(token string, hostArch Arch) string {
	return token + "-" + string(hostArch)
}

// ArchiveFileName returns the archive name, e.g. "android-ndk-r21e-linux-x86_64.zip".
func ArchiveFileName(revision, token string, hostArch Arch) string {
	return fmt.Sprintf("android-ndk-%s-%s-%s.zip", revision, token, hostArch)
}

// locate builds the archive location for a validated configuration.
// overrides maps checksum keys to digests and wins over the embedded table.
func (p *Profile) locate(cfg BuildConfiguration, baseURL string, overrides map[string]string) (ArchiveLocation, error) {
	token, err := PlatformToken(cfg.HostOS)
	if err != nil {
		return ArchiveLocation{}, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	table, err := loadChecksums()
	if err != nil {
		return ArchiveLocation{}, err
	}

	fileName := ArchiveFileName(p.Revision, token, cfg.HostArch)
	key := ChecksumKey(token, cfg.HostArch)

	checksum := strings.ToLower(strings.TrimSpace(overrides[key]))
	if checksum == "" {
		checksum = table.Revisions[p.Revision][key]
	}

	algorithm := table.Algorithm
	if algorithm == "" {
		algorithm = "sha1"
	}

	return ArchiveLocation{
		URL:       strings.TrimRight(baseURL, "/") + "/" + fileName,
		FileName:  fileName,
		Checksum:  checksum,
		Algorithm: algorithm,
		Policy:    p.Checksum,
	}, nil
}

// ResolveArchiveLocation validates cfg and returns the default download location.
func ResolveArchiveLocation(cfg BuildConfiguration) (ArchiveLocation, error) {
	p, err := LookupProfile(cfg.Revision)
	if err != nil {
		return ArchiveLocation{}, err
	}
	if err := p.Validate(cfg); err != nil {
		return ArchiveLocation{}, err
	}
	return p.locate(cfg, DefaultBaseURL, nil)
}
