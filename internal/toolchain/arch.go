package toolchain

// archInfo holds the per-architecture naming used by the NDK.
type archInfo struct {
	abi   string // Android ABI name (ANDROID_ABI)
	ndk   string // --arch value of make_standalone_toolchain.py
	llvm  string // GNU/binutils triplet prefix
	clang string // clang driver triplet prefix
	bits  int
}

// archTable maps every known target architecture to its NDK names.
// Both triplet columns stay populated: binutils keep the GNU name even when
// the compiler is invoked through the versioned clang wrapper.
var archTable = map[Arch]archInfo{
	ArchARMv7:  {abi: "armeabi-v7a", ndk: "arm", llvm: "arm", clang: "armv7a", bits: 32},
	ArchARMv8:  {abi: "arm64-v8a", ndk: "arm64", llvm: "aarch64", clang: "aarch64", bits: 64},
	ArchX86:    {abi: "x86", ndk: "x86", llvm: "i686", clang: "i686", bits: 32},
	ArchX86_64: {abi: "x86_64", ndk: "x86_64", llvm: "x86_64", clang: "x86_64", bits: 64},
	ArchMIPS:   {abi: "mips", ndk: "mips", llvm: "mipsel", clang: "mipsel", bits: 32},
	ArchMIPS64: {abi: "mips64", ndk: "mips64", llvm: "mips64el", clang: "mips64el", bits: 64},
}

func lookupArch(arch Arch) (archInfo, error) {
	info, ok := archTable[arch]
	if !ok {
		return archInfo{}, errUnknownArch(arch)
	}
	return info, nil
}

// AndroidArchName returns the Android ABI name of a target architecture, e.g. "arm64-v8a".
func AndroidArchName(arch Arch) (string, error) {
	info, err := lookupArch(arch)
	if err != nil {
		return "", err
	}
	return info.abi, nil
}

// NDKArch returns the NDK architecture name, e.g. "arm64".
func NDKArch(arch Arch) (string, error) {
	info, err := lookupArch(arch)
	if err != nil {
		return "", err
	}
	return info.ndk, nil
}

// ABISuffix returns the triplet ABI component: "androideabi" for 32-bit ARM, "android" otherwise.
func ABISuffix(arch Arch) (string, error) {
	if _, err := lookupArch(arch); err != nil {
		return "", err
	}
	if arch == ArchARMv7 {
		return "androideabi", nil
	}
	return "android", nil
}

// LLVMTriplet returns the GNU-style triplet used to name binutils, e.g. "arm-linux-androideabi".
func LLVMTriplet(arch Arch) (string, error) {
	info, err := lookupArch(arch)
	if err != nil {
		return "", err
	}
	abi, _ := ABISuffix(arch)
	return info.llvm + "-linux-" + abi, nil
}

// ClangTriplet returns the triplet used by the versioned clang wrappers, e.g. "armv7a-linux-androideabi".
func ClangTriplet(arch Arch) (string, error) {
	info, err := lookupArch(arch)
	if err != nil {
		return "", err
	}
	abi, _ := ABISuffix(arch)
	return info.clang + "-linux-" + abi, nil
}

// Is64Bit reports whether a target architecture is 64-bit.
func Is64Bit(arch Arch) bool {
	return archTable[arch].bits == 64
}

// Triplets bundles the two naming schemes for one architecture.
type Triplets struct {
	LLVM  string
	Clang string
}

// TripletsFor returns both triplets for an architecture.
func TripletsFor(arch Arch) (Triplets, error) {
	llvm, err := LLVMTriplet(arch)
	if err != nil {
		return Triplets{}, err
	}
	clang, err := ClangTriplet(arch)
	if err != nil {
		return Triplets{}, err
	}
	return Triplets{LLVM: llvm, Clang: clang}, nil
}
