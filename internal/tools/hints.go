package tools

import "nimfox/internal/platform"

func installHints(tool string, os platform.OS) []string {
	if tool != "cc" {
		return nil
	}

	switch os {
	case platform.MacOS:
		return []string{
			"Install the Xcode command line tools: xcode-select --install",
		}
	case platform.Linux:
		return []string{
			"Install a C compiler with your distro package manager, e.g. sudo apt install build-essential",
		}
	case platform.Windows:
		return []string{
			"Install mingw-w64, e.g. via winget install BrechtSanders.WinLibs.POSIX.UCRT",
			"or skip source builds entirely with VFOX_NIM_INSTALL_METHOD=binary",
		}
	default:
		return []string{"Install gcc or clang using your platform's package manager"}
	}
}
