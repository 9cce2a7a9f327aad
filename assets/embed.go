// Package assets embeds the default word lists, one file per word length.
package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
)

//go:embed words5.txt words6.txt words7.txt words8.txt words9.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, lowercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded list for words of length n.
func WordList(n int) ([]string, error) {
	f, err := FS.Open(FileName(n))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// FileName is the list file name for length n, shared with --words-dir.
func FileName(n int) string { return fmt.Sprintf("words%d.txt", n) }
