package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
)

// configFlags are the command-line overrides for configuration fields.
type configFlags struct {
	revision   string
	hostOS     string
	hostArch   string
	arch       string
	api        int
	compiler   string
	stdlib     string
	packageDir string
	cacheDir   string
	baseURL    string
}

func (f *configFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.revision, "revision", "", "NDK revision (r16b, r20, r21e)")
	fs.StringVar(&f.hostOS, "host-os", "", "Host OS that will run the toolchain (Windows, Linux, Macos)")
	fs.StringVar(&f.hostArch, "host-arch", "", "Host architecture (x86, x86_64)")
	fs.StringVar(&f.arch, "arch", "", "Target architecture (x86, x86_64, armv7, armv8, mips, mips64)")
	fs.IntVar(&f.api, "api", 0, "Target Android API level")
	fs.StringVar(&f.compiler, "compiler", "", "Clang version (defaults to the revision's clang)")
	fs.StringVar(&f.stdlib, "stdlib", "", "C++ standard library (libc++, gnustl, stlport)")
	fs.StringVar(&f.packageDir, "package-dir", "", "Directory receiving the installed package")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "Directory keeping downloaded archives")
	fs.StringVar(&f.baseURL, "base-url", "", "Base URL for archive downloads")
}

// override applies only the flags given on the command line.
func (f *configFlags) override(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(c *config.Config) {
		if changed("revision") {
			c.Revision = f.revision
		}
		if changed("host-os") {
			c.Host.OS = f.hostOS
		}
		if changed("host-arch") {
			c.Host.Arch = f.hostArch
		}
		if changed("arch") {
			c.Target.Arch = f.arch
		}
		if changed("api") {
			c.Target.API = f.api
		}
		if changed("compiler") {
			c.Compiler.Version = f.compiler
		}
		if changed("stdlib") {
			c.Stdlib = f.stdlib
		}
		if changed("package-dir") {
			c.PackageDir = f.packageDir
		}
		if changed("cache-dir") {
			c.CacheDir = f.cacheDir
		}
		if changed("base-url") {
			if c.Download == nil {
				c.Download = &config.DownloadConfig{}
			}
			c.Download.BaseURL = f.baseURL
		}
	}
}
