package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidMinimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `{"revision": "r20"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Revision != "r20" {
		t.Errorf("Revision = %q, want %q", cfg.Revision, "r20")
	}
}

func TestLoad_ValidFull(t *testing.T) {
	t.Parallel()
	path := filepath.Join("..", "..", "test", "fixtures", "full", ConfigFileName)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target.Arch != "armv8" || cfg.Target.API != 24 {
		t.Errorf("Target = %+v, want armv8/24", cfg.Target)
	}
	if cfg.Compiler.Version != "clang-8" {
		t.Errorf("Compiler.Version = %q, want clang-8", cfg.Compiler.Version)
	}
	if cfg.Download == nil || cfg.Download.Timeout != "15m" {
		t.Errorf("Download = %+v, want timeout 15m", cfg.Download)
	}
	if len(cfg.Checksums) != 1 {
		t.Errorf("len(Checksums) = %d, want 1", len(cfg.Checksums))
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, err := Load("/nonexistent/path/ndkpkg.json")
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "nonexistent") && !strings.Contains(err.Error(), "no such file") {
		t.Errorf("error = %q, want to contain file path or 'no such file'", err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `{"revision": }`)
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid JSON")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `{}`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if cfg.Revision != toolchain.DefaultRevision {
		t.Errorf("Revision = %q, want %q", cfg.Revision, toolchain.DefaultRevision)
	}
	if cfg.Target.Arch != DefaultTargetArch || cfg.Target.API != DefaultAPILevel {
		t.Errorf("Target = %+v", cfg.Target)
	}
	if cfg.CacheDir != DefaultCacheDir {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, DefaultCacheDir)
	}
	if cfg.Download.Timeout != DefaultDownloadTimeout || cfg.Download.BaseURL != toolchain.DefaultBaseURL {
		t.Errorf("Download = %+v", cfg.Download)
	}
}

func TestLoadAndValidate_SchemaError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `{"revision": "r18b"}`)

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() expected error for unknown revision")
	}
	if !strings.Contains(err.Error(), ConfigFileName) {
		t.Errorf("error = %q, want it to name the file", err)
	}
}

func TestLoadAndValidate_Warnings(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `{"revision": "r20", "target": {"arch": "armv7", "abi": "armeabi"}}`)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if cfg.Revision != "r20" {
		t.Errorf("Revision = %q", cfg.Revision)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"abi" in target`) {
		t.Errorf("warnings = %v, want one about target.abi", warnings)
	}
}

func TestLoadProject_NoConfigFile(t *testing.T) {
	t.Parallel()
	cfg, warnings, err := LoadProject(t.TempDir(), Options{Lookup: MapLookup(nil)})
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if cfg.Revision != toolchain.DefaultRevision {
		t.Errorf("Revision = %q, want default", cfg.Revision)
	}
}

func TestLoadProject_Precedence(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeConfig(t, dir, `{"revision": "r20", "target": {"arch": "armv7", "api": 16}, "stdlib": "libc++"}`)

	lookup := MapLookup(map[string]string{
		"NDKPKG_TARGET_ARCH": "x86_64",
		"NDKPKG_API":         "24",
	})
	cfg, _, err := LoadProject(dir, Options{
		Lookup: lookup,
		Override: func(c *Config) {
			c.Target.API = 28
		},
	})
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if cfg.Revision != "r20" {
		t.Errorf("Revision = %q, want file value r20", cfg.Revision)
	}
	if cfg.Target.Arch != "x86_64" {
		t.Errorf("Target.Arch = %q, want env value x86_64", cfg.Target.Arch)
	}
	if cfg.Target.API != 28 {
		t.Errorf("Target.API = %d, want override 28", cfg.Target.API)
	}
	if !strings.HasSuffix(cfg.PackageDir, "-x86_64-28") {
		t.Errorf("PackageDir = %q, want it derived after overrides", cfg.PackageDir)
	}
}

func TestLoadProject_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DotEnvFileName), []byte("NDKPKG_REVISION=r16b\nNDKPKG_STDLIB=gnustl\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NDKPKG_STDLIB", "stlport")

	cfg, _, err := LoadProject(dir, Options{})
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if cfg.Revision != "r16b" {
		t.Errorf("Revision = %q, want r16b from .env", cfg.Revision)
	}
	if cfg.Stdlib != "stlport" {
		t.Errorf("Stdlib = %q, want process value stlport", cfg.Stdlib)
	}
}

func TestBuildConfiguration(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		Revision: "r20",
		Host:     HostConfig{OS: "linux", Arch: "amd64"},
		Target:   TargetConfig{Arch: "ARMv8", API: 21},
		Compiler: CompilerConfig{Version: "clang-8"},
		Stdlib:   "libc++",
	}

	bc, err := cfg.BuildConfiguration()
	if err != nil {
		t.Fatalf("BuildConfiguration() error = %v", err)
	}
	want := toolchain.BuildConfiguration{
		Revision:        "r20",
		HostOS:          toolchain.HostLinux,
		HostArch:        toolchain.ArchX86_64,
		TargetArch:      toolchain.ArchARMv8,
		APILevel:        21,
		CompilerVersion: "clang-8",
		Stdlib:          "libc++",
	}
	if bc != want {
		t.Errorf("BuildConfiguration() = %+v, want %+v", bc, want)
	}

	cfg.Host.Arch = "arm64"
	if _, err := cfg.BuildConfiguration(); err == nil {
		t.Error("BuildConfiguration() expected error for arm64 host")
	}
}

func TestS3Config(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	if _, ok := cfg.S3Config(); ok {
		t.Error("S3Config() reported a mirror for an empty config")
	}

	off := false
	cfg.Mirror = &MirrorConfig{Endpoint: "localhost:9000", Bucket: "ndk", UseSSL: &off}
	s3, ok := cfg.S3Config()
	if !ok {
		t.Fatal("S3Config() = false, want mirror")
	}
	if s3.UseSSL || s3.Bucket != "ndk" {
		t.Errorf("S3Config() = %+v", s3)
	}

	cfg.Mirror.UseSSL = nil
	if s3, _ := cfg.S3Config(); !s3.UseSSL {
		t.Error("UseSSL should default to true")
	}
}

func TestDownloadTimeout(t *testing.T) {
	t.Parallel()
	cfg := &Config{Download: &DownloadConfig{Timeout: "90s"}}
	if got := cfg.DownloadTimeout(); got.Seconds() != 90 {
		t.Errorf("DownloadTimeout() = %v, want 90s", got)
	}
	if got := (&Config{}).DownloadTimeout(); got != 0 {
		t.Errorf("DownloadTimeout() = %v, want 0", got)
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()
	root := filepath.Join(string(filepath.Separator), "project")
	if got := Abs(root, "build"); got != filepath.Join(root, "build") {
		t.Errorf("Abs(relative) = %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "opt", "ndk")
	if got := Abs(root, abs); got != abs {
		t.Errorf("Abs(absolute) = %q", got)
	}
}

func TestFindRootFrom(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "app", "src")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRootFrom(nested)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRootFrom() = %q, want %q", got, want)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	t.Parallel()
	if _, err := FindRootFrom(t.TempDir()); err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}
