package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	"github.com/AndreyAkinshin/ndkpkg/internal/testing/mocks"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

var hostFlags = []string{"--host-os", "Linux", "--host-arch", "x86_64"}

// zipFetcher serves one in-memory archive.
type zipFetcher struct {
	data  []byte
	calls int32
}

func (f *zipFetcher) Fetch(_ context.Context, _ toolchain.ArchiveLocation, dest string) error {
	atomic.AddInt32(&f.calls, 1)
	return os.WriteFile(dest, f.data, 0o644)
}

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
	runner *mocks.Runner
	root   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := mocks.NewRunner()
	root := t.TempDir()
	return &testApp{
		app: &app{
			stdout:     out,
			stderr:     errOut,
			configPath: root,
			runner:     r,
			lookup:     config.MapLookup(nil),
		},
		out:    out,
		errOut: errOut,
		runner: r,
		root:   root,
	}
}

func (ta *testApp) exec(args ...string) int {
	ta.out.Reset()
	ta.errOut.Reset()
	return ta.run(context.Background(), args)
}

func (ta *testApp) writeConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ta.root, config.ConfigFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func withArgs(extra ...string) []string {
	return append(append([]string{}, extra...), hostFlags...)
}

// ndkArchive builds a zip laid out like the r21e NDK for cfg and returns it
// with its SHA-1.
func ndkArchive(t *testing.T, cfg toolchain.BuildConfiguration) ([]byte, string) {
	t.Helper()
	r, err := toolchain.NewResolver(toolchain.Options{})
	if err != nil {
		t.Fatal(err)
	}
	v, err := r.Resolve(cfg, "/ref")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	relBin, err := filepath.Rel(v.PackageRoot, v.BinDir)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name string, body []byte) {
		h := &zip.FileHeader{Name: "android-ndk-r21e/" + filepath.ToSlash(name), Method: zip.Deflate}
		h.SetMode(0o644)
		w, err := zw.CreateHeader(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(body); err != nil {
			t.Fatal(err)
		}
	}
	add("NOTICE", []byte("notice\n"))
	add("build/cmake/android.toolchain.cmake", []byte("set(ANDROID_HOST_TAG linux-x86_64)\n"))
	for _, d := range v.ToolDescriptors() {
		add(filepath.Join(relBin, d.BinaryFileName), []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0})
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	sum := sha1.Sum(buf.Bytes())
	return buf.Bytes(), hex.EncodeToString(sum[:])
}

func linuxArm64() toolchain.BuildConfiguration {
	return toolchain.BuildConfiguration{
		Revision:        "r21e",
		HostOS:          toolchain.HostLinux,
		HostArch:        toolchain.ArchX86_64,
		TargetArch:      toolchain.ArchARMv8,
		APILevel:        21,
		CompilerVersion: "9",
		Stdlib:          "libc++",
	}
}

func TestRun_Version(t *testing.T) {
	ta := newTestApp(t)
	if code := ta.exec("version"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(ta.out.String(), "ndkpkg ") {
		t.Errorf("output = %q, want prefix %q", ta.out.String(), "ndkpkg ")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"resolve", "--bogus"}, 2},
		{"quiet and verbose", []string{"-q", "-v", "profiles"}, 2},
		{"unknown revision", withArgs("resolve", "--revision", "r99"), 2},
		{"api above maximum", withArgs("resolve", "--api", "99"), 2},
		{"mips on nested layout", withArgs("resolve", "--arch", "mips"), 2},
		{"unknown format", withArgs("install", "--format", "fish"), 2},
		{"env before install", withArgs("env"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			if code := ta.exec(tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, ta.errOut.String())
			}
		})
	}
}

func TestResolve_JSON(t *testing.T) {
	ta := newTestApp(t)
	if code := ta.exec(withArgs("--json", "resolve", "--api", "24")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}

	var view variantView
	if err := json.Unmarshal(ta.out.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, ta.out.String())
	}
	if view.Revision != "r21e" || view.API != 24 || view.AndroidABI != "arm64-v8a" {
		t.Errorf("view = %+v", view)
	}
	if !strings.HasSuffix(view.Archive.URL, "android-ndk-r21e-linux-x86_64.zip") {
		t.Errorf("Archive.URL = %q", view.Archive.URL)
	}
	if view.Archive.Policy != "required" || view.Archive.Checksum == "" {
		t.Errorf("Archive = %+v, want a required checksum", view.Archive)
	}
	if len(view.Tools) == 0 {
		t.Error("Tools is empty")
	}
	if !strings.HasPrefix(view.PackageRoot, ta.root) {
		t.Errorf("PackageRoot = %q, want it under %q", view.PackageRoot, ta.root)
	}
}

func TestResolve_ConfigFileAndFlags(t *testing.T) {
	ta := newTestApp(t)
	ta.writeConfig(t, &config.Config{Revision: "r20", Target: config.TargetConfig{Arch: "armv7", API: 19}})

	if code := ta.exec(withArgs("--json", "resolve", "--api", "23")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	var view variantView
	if err := json.Unmarshal(ta.out.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Revision != "r20" || view.TargetArch != "armv7" || view.API != 23 {
		t.Errorf("got %s/%s/%d, want r20/armv7/23", view.Revision, view.TargetArch, view.API)
	}
}

func TestInstall_DryRun(t *testing.T) {
	ta := newTestApp(t)
	f := &zipFetcher{}
	ta.fetcher = f

	if code := ta.exec(withArgs("install", "--dry-run")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times during dry run", f.calls)
	}
	if !strings.Contains(ta.out.String(), "android-ndk-r21e-linux-x86_64.zip") {
		t.Errorf("plan does not mention the archive:\n%s", ta.out.String())
	}
}

func TestInstall_ThenEnv(t *testing.T) {
	ta := newTestApp(t)
	data, sum := ndkArchive(t, linuxArm64())
	ta.fetcher = &zipFetcher{data: data}
	ta.writeConfig(t, &config.Config{Checksums: map[string]string{"linux-x86_64": sum}})

	if code := ta.exec(withArgs("install")...); code != 0 {
		t.Fatalf("install exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	installed := ta.out.String()
	for _, want := range []string{"export ANDROID_ABI='arm64-v8a'", "export ANDROID_PLATFORM='android-21'", "export PATH="} {
		if !strings.Contains(installed, want) {
			t.Errorf("install output missing %q:\n%s", want, installed)
		}
	}

	if code := ta.exec(withArgs("env")...); code != 0 {
		t.Fatalf("env exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	if ta.out.String() != installed {
		t.Errorf("env output differs from install output:\n%s\nvs\n%s", ta.out.String(), installed)
	}
}

func TestInstall_ChecksumMismatch(t *testing.T) {
	ta := newTestApp(t)
	data, _ := ndkArchive(t, linuxArm64())
	ta.fetcher = &zipFetcher{data: data}
	ta.writeConfig(t, &config.Config{Checksums: map[string]string{"linux-x86_64": strings.Repeat("0", 40)}})

	if code := ta.exec(withArgs("install")...); code != 4 {
		t.Errorf("exit code = %d, want 4 (stderr: %s)", code, ta.errOut.String())
	}
	if ta.out.Len() != 0 {
		t.Errorf("stdout = %q, want empty on failure", ta.out.String())
	}
}

func TestVerify(t *testing.T) {
	ta := newTestApp(t)
	v, err := mustResolver(t).Resolve(linuxArm64(), "/ref")
	if err != nil {
		t.Fatal(err)
	}
	readelf, _ := v.Tool("READELF")
	name := strings.TrimSuffix(readelf.BinaryFileName, filepath.Ext(readelf.BinaryFileName))

	ta.runner.WithOutput(name, "ELF Header:\n  Class:                             ELF64\n  Machine:                           AArch64\n")
	if code := ta.exec(withArgs("verify", "libfoo.so")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}

	ta.runner.WithOutput(name, "  Class: ELF32\n  Machine: ARM\n")
	if code := ta.exec(withArgs("verify", "libfoo.so")...); code != 4 {
		t.Errorf("exit code = %d, want 4 for a mismatched binary", code)
	}
}

func mustResolver(t *testing.T) *toolchain.Resolver {
	t.Helper()
	r, err := toolchain.NewResolver(toolchain.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestProfiles_JSON(t *testing.T) {
	ta := newTestApp(t)
	if code := ta.exec("--json", "profiles"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var views []profileView
	if err := json.Unmarshal(ta.out.Bytes(), &views); err != nil {
		t.Fatal(err)
	}
	var revisions []string
	for _, v := range views {
		revisions = append(revisions, v.Revision)
	}
	if got := strings.Join(revisions, ","); got != "r16b,r20,r21e" {
		t.Errorf("revisions = %s, want r16b,r20,r21e", got)
	}
}

func TestMatrix(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"r16b below 64-bit floor", []string{"--revision", "r16b", "--api", "16"}, []string{"x86", "armv7", "mips"}},
		{"r21e at 21", []string{"--revision", "r21e", "--api", "21"}, []string{"x86", "x86_64", "armv7", "armv8"}},
		{"r21e above maximum", []string{"--revision", "r21e", "--api", "31"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			args := append([]string{"--json", "matrix", "--host-os", "Linux", "--host-arch", "x86_64"}, tt.args...)
			if code := ta.exec(args...); code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
			}
			var entries []struct {
				Arch string `json:"arch"`
			}
			if err := json.Unmarshal(ta.out.Bytes(), &entries); err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Arch)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("arches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	ta := newTestApp(t)
	if code := ta.exec("init", ta.root, "--api", "24"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}

	cfg, err := config.Load(filepath.Join(ta.root, config.ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Revision != toolchain.DefaultRevision || cfg.Target.API != 24 {
		t.Errorf("config = %+v", cfg)
	}
	gitignore, err := os.ReadFile(filepath.Join(ta.root, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(gitignore), ".ndkpkg/") {
		t.Errorf(".gitignore = %q, want the state directory", gitignore)
	}

	if code := ta.exec("init", ta.root); code != 0 {
		t.Fatalf("second init exit code = %d", code)
	}
	again, _ := os.ReadFile(filepath.Join(ta.root, ".gitignore"))
	if !bytes.Equal(gitignore, again) {
		t.Errorf(".gitignore changed on second init:\n%s", again)
	}
	if !strings.Contains(ta.out.String(), "nothing to do") {
		t.Errorf("second init output = %q", ta.out.String())
	}
}

func TestConfigShow_RedactsSecret(t *testing.T) {
	ta := newTestApp(t)
	ta.writeConfig(t, &config.Config{Mirror: &config.MirrorConfig{
		Endpoint:  "minio.local:9000",
		Bucket:    "ndk",
		AccessKey: "user",
		SecretKey: "hunter2",
	}})

	if code := ta.exec(withArgs("config", "show")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	if strings.Contains(ta.out.String(), "hunter2") {
		t.Errorf("secret key leaked:\n%s", ta.out.String())
	}
	if !strings.Contains(ta.out.String(), "minio.local:9000") {
		t.Errorf("mirror endpoint missing:\n%s", ta.out.String())
	}
}

func TestConfigValidate(t *testing.T) {
	ta := newTestApp(t)
	if code := ta.exec(withArgs("config", "validate")...); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, ta.errOut.String())
	}
	if !strings.Contains(ta.out.String(), "Configuration is valid.") {
		t.Errorf("output = %q", ta.out.String())
	}
}
