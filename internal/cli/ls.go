package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/pathindex"
)

type listing struct {
	Path   string `json:"path"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

func RunList(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}
	if err := project.Index.FullScan(); err != nil {
		return err
	}

	var entries map[string]pathindex.Entry
	if len(args) == 1 {
		path := projectPath(project.Root, args[0])
		entries = map[string]pathindex.Entry{}
		if entry, ok := project.Index.Get(path); ok {
			entries[path] = entry
		}
	} else {
		entries = project.Index.AllEntries()
	}

	statusFilter := optionalString(cmd, "status")
	var listings []listing
	for _, path := range sortedPaths(entries) {
		entry := entries[path]
		for _, id := range sortedIDs(entry) {
			if statusFilter != "" && entry[id] != statusFilter {
				continue
			}
			listings = append(listings, listing{Path: path, ID: id, Status: entry[id]})
		}
	}

	if optionalBool(cmd, "json") {
		if listings == nil {
			listings = []listing{}
		}
		return printJSON(listings)
	}

	if len(listings) == 0 {
		fmt.Println("no issues found")
		return nil
	}
	lastPath := ""
	for _, l := range listings {
		if l.Path != lastPath {
			fmt.Printf("%s\n", l.Path)
			lastPath = l.Path
		}
		fmt.Printf("  %s  %s\n", l.ID, colorStatus(l.Status))
	}
	return nil
}
