// Package system holds host helpers: worker sizing, file limits and project
// discovery.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
)

// ProjectExt is the extension of animation project files.
var ProjectExt = []string{".txt", ".yaml", ".yml"}

// InitResourceLimits raises the open file limit so that frame export can keep
// many files in flight.
func InitResourceLimits(want uint64) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("[!] could not read file limit")
		return
	}
	if rLimit.Cur >= want {
		return
	}

	rLimit.Cur = min(want, rLimit.Max)
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("[!] could not raise file limit")
		return
	}
	log.Debug().Uint64("nofile", rLimit.Cur).Msg("[*] file limit raised")
}

// Workers returns the number of logical CPUs, or want when it is positive.
func Workers(want int) int {
	if want > 0 {
		return want
	}
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// FindLatestProject returns the most recently modified project file in dir,
// ignoring the files named in skip.
func FindLatestProject(dir string, skip ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isProject(f.Name()) {
			continue
		}
		if abs, err := filepath.Abs(filepath.Join(dir, f.Name())); err == nil && skipped[abs] {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no project files in %s", dir)
	}
	return latestFile, nil
}

func isProject(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range ProjectExt {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
