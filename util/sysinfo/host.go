// Package sysinfo describes the machine a benchmark ran on.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUModel string
	CPUCount int
	CPUFreq  float64 // MHz, averaged over cores
	RAM      float64 // GiB
}

// HostStat collects what gopsutil can see. Probes that fail leave their
// fields zero; the result is only used for labeling.
func HostStat() SysInfo {
	info := SysInfo{Arch: runtime.GOARCH}
	if hostStat, err := host.Info(); err == nil {
		info.Hostname = hostStat.Hostname
		info.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		totalFreq := 0.0
		for _, c := range cpuStat {
			totalFreq += c.Mhz
		}
		info.CPUModel = cpuStat[0].ModelName
		info.CPUCount = len(cpuStat)
		info.CPUFreq = totalFreq / float64(len(cpuStat))
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = float64(vmStat.Total) / 1024 / 1024 / 1024
	}
	return info
}

// Label is a one-line summary suitable for a chart caption.
func (s SysInfo) Label() string {
	if s.CPUModel == "" {
		return fmt.Sprintf("%s/%s", s.Platform, s.Arch)
	}
	return fmt.Sprintf("%s, %d cpu, %.1f GiB RAM (%s/%s)", s.CPUModel, s.CPUCount, s.RAM, s.Platform, s.Arch)
}
