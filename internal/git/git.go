package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

type ChangedFile struct {
	Path         string
	ChangedLines []int // 1-based lines in the new version
	Deleted      bool
}

// Matches reports whether the repository-relative path of f names the
// local file path.
func (f ChangedFile) Matches(path string) bool {
	local := filepath.ToSlash(filepath.Clean(path))
	diff := filepath.ToSlash(filepath.Clean(f.Path))
	return local == diff || strings.HasSuffix(local, "/"+diff)
}

// Regex for hunk header: @@ -oldStart,oldLen +newStart,newLen @@
var hunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// GetChangedFiles runs git diff against baseRef, limited to paths when any
// are given, and returns the changed lines per file.
func GetChangedFiles(baseRef string, paths ...string) ([]ChangedFile, error) {
	args := []string{"diff", "-U0", "--no-color", baseRef}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	cmd := exec.Command("git", args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return ParseDiff(output)
}

// ParseDiff extracts changed files and new-side line numbers from unified
// diff output produced with -U0.
func ParseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var changes []ChangedFile
	var current *ChangedFile
	var oldPath string
	inHunk := false
	flush := func() {
		if current != nil {
			changes = append(changes, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			oldPath = ""
			inHunk = false
		case inHunk && !strings.HasPrefix(line, "@@"):
			// removed or added content, may itself start with "---" or "+++"
		case strings.HasPrefix(line, "--- "):
			oldPath = strings.TrimPrefix(strings.TrimPrefix(line, "--- "), "a/")
		case strings.HasPrefix(line, "+++ "):
			flush()
			target := strings.TrimPrefix(line, "+++ ")
			if target == "/dev/null" {
				current = &ChangedFile{Path: oldPath, ChangedLines: []int{}, Deleted: true}
				continue
			}
			current = &ChangedFile{Path: strings.TrimPrefix(target, "b/"), ChangedLines: []int{}}
		case strings.HasPrefix(line, "@@") && current != nil:
			inHunk = true
			matches := hunkHeader.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("malformed hunk header %q", line)
			}
			start, _ := strconv.Atoi(matches[1])
			count := 1 // Default length is 1 if omitted
			if matches[2] != "" {
				count, _ = strconv.Atoi(matches[2])
			}
			if count == 0 {
				// pure deletion: the hunk sits after line start
				if start > 0 {
					current.ChangedLines = append(current.ChangedLines, start)
				}
				continue
			}
			for i := 0; i < count; i++ {
				current.ChangedLines = append(current.ChangedLines, start+i)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return changes, nil
}
