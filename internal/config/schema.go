// Package config provides configuration loading and validation for ndkpkg.json.
package config

// Config represents the complete ndkpkg.json configuration.
type Config struct {
	Revision   string            `json:"revision,omitempty"`
	Host       HostConfig        `json:"host,omitempty"`
	Target     TargetConfig      `json:"target,omitempty"`
	Compiler   CompilerConfig    `json:"compiler,omitempty"`
	Stdlib     string            `json:"stdlib,omitempty"`
	PackageDir string            `json:"package_dir,omitempty"`
	CacheDir   string            `json:"cache_dir,omitempty"`
	Download   *DownloadConfig   `json:"download,omitempty"`
	Mirror     *MirrorConfig     `json:"mirror,omitempty"`
	Checksums  map[string]string `json:"checksums,omitempty"`
}

// HostConfig describes the machine that will run the toolchain.
type HostConfig struct {
	OS   string `json:"os,omitempty"`
	Arch string `json:"arch,omitempty"`
}

// TargetConfig describes the Android target.
type TargetConfig struct {
	Arch string `json:"arch,omitempty"`
	API  int    `json:"api,omitempty"`
}

// CompilerConfig pins the compiler version; empty means the revision's default.
type CompilerConfig struct {
	Version string `json:"version,omitempty"`
}

// DownloadConfig configures archive downloads.
type DownloadConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	Timeout string `json:"timeout,omitempty"` // Go duration, e.g. "10m"
}

// MirrorConfig configures an S3-compatible archive mirror. When set, archives
// are fetched from the mirror instead of BaseURL.
type MirrorConfig struct {
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	UseSSL    *bool  `json:"use_ssl,omitempty"` // default: true
}
