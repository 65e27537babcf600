package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilecrawl/data"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
	"chosenoffset.com/tilecrawl/internal/world/tilemap"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate level files",
	Long: `Validate level files and print a summary of each. Paths may be level
files or directories of them. With no paths the built-in levels are checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := collectLevels(args)
		if err != nil {
			return err
		}
		return checkLevels(cmd.OutOrStdout(), levels)
	},
}

// collectLevels loads every level named by paths, or the built-in pack.
func collectLevels(paths []string) ([]*maploader.LevelData, error) {
	if len(paths) == 0 {
		return loadFS(data.Levels())
	}

	var levels []*maploader.LevelData
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			found, err := loadFS(os.DirFS(p))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			levels = append(levels, found...)
			continue
		}
		if !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil, fmt.Errorf("%s: not a .json level file", p)
		}
		level, err := maploader.LoadLevel(p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func loadFS(fsys fs.FS) ([]*maploader.LevelData, error) {
	ids, err := maploader.ScanLevels(fsys)
	if err != nil {
		return nil, err
	}
	levels := make([]*maploader.LevelData, 0, len(ids))
	for _, id := range ids {
		level, err := maploader.LoadLevelFS(fsys, id)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// checkLevels prints one summary line per level and fails if a stairs
// link names a level that is not in the set.
func checkLevels(out io.Writer, levels []*maploader.LevelData) error {
	known := make(map[string]bool, len(levels))
	for _, l := range levels {
		known[l.ID] = true
	}

	var broken []string
	for _, l := range levels {
		interactive := 0
		for _, t := range l.Tiles {
			if tilemap.IsInteractableTile(t) {
				interactive++
			}
		}
		fmt.Fprintf(out, "%-20s %-24q %3dx%-3d interactive=%d npcs=%d\n",
			l.ID, l.Name, l.Width, l.Height, interactive, len(l.NPCs))

		dirs := make([]string, 0, len(l.Stairs))
		for dir := range l.Stairs {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			target := l.Stairs[dir]
			status := "ok"
			if !known[target] {
				status = "MISSING"
				broken = append(broken, fmt.Sprintf("%s --%s--> %s", l.ID, dir, target))
			}
			fmt.Fprintf(out, "    stairs %-5s -> %s (%s)\n", dir, target, status)
		}
	}

	if len(broken) > 0 {
		return fmt.Errorf("%d broken stairs link(s): %s", len(broken), strings.Join(broken, ", "))
	}
	fmt.Fprintf(out, "%d level(s) ok\n", len(levels))
	return nil
}
