// File: suite/hostinfo.go

package suite

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine a sweep ran on
type HostInfo struct {
	GOOS     string
	GOARCH   string
	NumCPU   int
	Threads  int
	Features []string
}

// DescribeHost collects the host description for report headers
func DescribeHost(params *RunParams) HostInfo {
	info := HostInfo{
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
		NumCPU:  runtime.NumCPU(),
		Threads: params.ThreadCount(),
	}
	flags := []struct {
		name string
		has  bool
	}{
		{"sse4.1", cpu.X86.HasSSE41},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
		{"asimd", cpu.ARM64.HasASIMD},
		{"sve", cpu.ARM64.HasSVE},
	}
	for _, f := range flags {
		if f.has {
			info.Features = append(info.Features, f.name)
		}
	}
	return info
}
