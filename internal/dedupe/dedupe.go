// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe finds byte-identical image files by content hashing.
package dedupe

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdiddy/pixelpress/internal/scan"
	"github.com/pdiddy/pixelpress/pkg/types"
)

// hashChunkSize is the read buffer used while hashing large files.
const hashChunkSize = 64 * 1024

// Group is a set of two or more byte-identical files.
type Group struct {
	// Hash is the hex content digest shared by every file in the group.
	Hash string `json:"hash" yaml:"hash"`

	// Paths lists the identical files, sorted.
	Paths []string `json:"paths" yaml:"paths"`

	// WastedBytes is the space recoverable by keeping one copy.
	WastedBytes int64 `json:"wasted_bytes" yaml:"wasted_bytes"`
}

// Scan walks dir recursively for image files and returns groups of
// byte-identical ones. Files with a unique size are never hashed. Groups
// are sorted by wasted bytes, largest first, then by first path. This is
// duplicate grouping, not authentication, so MD5 is sufficient.
func Scan(dir string) ([]Group, error) {
	exts, err := types.FilterExtensions("all")
	if err != nil {
		return nil, err
	}
	files, err := scan.Discover(dir, exts, true)
	if err != nil {
		return nil, err
	}

	// First pass: group by size so unique sizes skip hashing entirely.
	bySize := make(map[int64][]string)
	sizes := make(map[string]int64, len(files))
	for _, file := range files {
		fi, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", file, err)
		}
		bySize[fi.Size()] = append(bySize[fi.Size()], file)
		sizes[file] = fi.Size()
	}

	byHash := make(map[string][]string)
	for _, candidates := range bySize {
		if len(candidates) < 2 {
			continue
		}
		for _, file := range candidates {
			sum, err := hashFile(file)
			if err != nil {
				return nil, err
			}
			byHash[sum] = append(byHash[sum], file)
		}
	}

	var groups []Group
	for sum, paths := range byHash {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, Group{
			Hash:        sum,
			Paths:       paths,
			WastedBytes: int64(len(paths)-1) * sizes[paths[0]],
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].WastedBytes != groups[j].WastedBytes {
			return groups[i].WastedBytes > groups[j].WastedBytes
		}
		return groups[i].Paths[0] < groups[j].Paths[0]
	})
	return groups, nil
}

// TotalWasted sums the recoverable bytes across groups.
func TotalWasted(groups []Group) int64 {
	var total int64
	for _, g := range groups {
		total += g.WastedBytes
	}
	return total
}

// hashFile digests a file's contents in chunks.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, bufio.NewReaderSize(f, hashChunkSize)); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
