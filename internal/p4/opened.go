package p4

import (
	"strconv"
	"strings"

	"github.com/samueldotj/p4bridge/internal/model"
)

// ParseOpened parses the output of `p4 opened` into structured records.
//
// Each line has the shape:
//
//	//depot/main/src/app.go#3 - edit default change (text)
//	//depot/main/src/new.go#1 - add change 152 (text+x)
//
// Lines that do not match this shape (e.g., server banners) are skipped
// rather than failing the whole listing — a partial listing is more
// useful than none, and p4 reports genuine problems on stderr, which the
// Runner already classifies.
func ParseOpened(output string) []model.OpenedFile {
	var files []model.OpenedFile

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Split "//depot/path#rev" from "action changelist (type)".
		pathPart, rest, found := strings.Cut(line, " - ")
		if !found {
			continue
		}

		depotPath, revText, _ := strings.Cut(pathPart, "#")
		if !strings.HasPrefix(depotPath, "//") {
			continue
		}
		revision, _ := strconv.Atoi(revText)

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		action, err := model.ParseFileAction(fields[0])
		if err != nil {
			continue
		}

		file := model.OpenedFile{
			DepotPath: depotPath,
			Revision:  revision,
			Action:    action,
		}

		// Changelist: either "default change" or "change <number>".
		switch {
		case len(fields) >= 2 && fields[1] == "default":
			file.Changelist = "default"
		case len(fields) >= 3 && fields[1] == "change":
			file.Changelist = fields[2]
		}

		// File type appears last, wrapped in parentheses.
		if last := fields[len(fields)-1]; strings.HasPrefix(last, "(") && strings.HasSuffix(last, ")") {
			file.FileType = strings.Trim(last, "()")
		}

		files = append(files, file)
	}

	return files
}
