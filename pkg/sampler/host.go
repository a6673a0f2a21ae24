/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// CPUSource reports total processor utilisation since its previous call.
type CPUSource struct {
	percent func(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)
}

func NewCPUSource() *CPUSource {
	return &CPUSource{percent: cpu.PercentWithContext}
}

func (*CPUSource) Metric() models.Metric { return models.MetricCPU }

// Sample does not block: a zero interval compares against the previous call,
// so the very first reading after start is not meaningful.
func (s *CPUSource) Sample(ctx context.Context) (float64, error) {
	pct, err := s.percent(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read CPU usage: %w", err)
	}

	if len(pct) == 0 {
		return 0, ErrNoCPUReading
	}

	return pct[0], nil
}

// MemorySource reports the share of physical memory not available to new
// processes.
type MemorySource struct {
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

func NewMemorySource() *MemorySource {
	return &MemorySource{virtualMemory: mem.VirtualMemoryWithContext}
}

func (*MemorySource) Metric() models.Metric { return models.MetricRAM }

func (s *MemorySource) Sample(ctx context.Context) (float64, error) {
	vm, err := s.virtualMemory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read memory usage: %w", err)
	}

	if vm.Total == 0 {
		return 0, ErrEmptyMemory
	}

	available := vm.Available
	if available > vm.Total {
		available = vm.Total
	}

	return float64(vm.Total-available) / float64(vm.Total) * 100, nil
}

// DiskSource reports how full the filesystem holding Path is. Space
// reserved for the superuser counts as used.
type DiskSource struct {
	Path  string
	usage func(ctx context.Context, path string) (*disk.UsageStat, error)
}

func NewDiskSource(path string) (*DiskSource, error) {
	if path == "" {
		return nil, ErrDiskPathNeeded
	}

	return &DiskSource{Path: path, usage: disk.UsageWithContext}, nil
}

func (*DiskSource) Metric() models.Metric { return models.MetricDisk }

func (s *DiskSource) Sample(ctx context.Context) (float64, error) {
	u, err := s.usage(ctx, s.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read disk usage of %s: %w", s.Path, err)
	}

	if u.Total == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyDisk, s.Path)
	}

	return 100 - float64(u.Free)/float64(u.Total)*100, nil
}

// FuncSource adapts a plain function to the Source interface.
type FuncSource struct {
	metric models.Metric
	fn     func(ctx context.Context) (float64, error)
}

func NewFuncSource(metric models.Metric, fn func(ctx context.Context) (float64, error)) *FuncSource {
	return &FuncSource{metric: metric, fn: fn}
}

func (s *FuncSource) Metric() models.Metric { return s.metric }

func (s *FuncSource) Sample(ctx context.Context) (float64, error) {
	return s.fn(ctx)
}
