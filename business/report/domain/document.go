// Package domain contains rendered reports and the chat chunking rules.
package domain

import (
	"strings"
	"unicode/utf8"
)

// ChunkSize is the default chat message budget, in characters.
const ChunkSize = 2000

// BlockSeparator joins the blocks of a document.
const BlockSeparator = "\n\n"

// Document is a rendered report made of ordered blocks. A block is a header,
// a single opportunity record or a footer, and is the unit chunking keeps whole.
type Document struct {
	Title  string
	Blocks []string
}

// NewDocument creates a document with a title used for logging.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// Add appends non-empty blocks. Trailing newlines are trimmed.
func (d *Document) Add(blocks ...string) *Document {
	for _, b := range blocks {
		b = strings.TrimRight(b, "\n")
		if b == "" {
			continue
		}
		d.Blocks = append(d.Blocks, b)
	}
	return d
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.Blocks)
}

// String renders the whole document.
func (d *Document) String() string {
	return strings.Join(d.Blocks, BlockSeparator)
}

// Chunks splits the document into messages of at most size characters.
func (d *Document) Chunks(size int) []string {
	return Chunk(d.Blocks, size)
}

// Chunk packs blocks in order into messages of at most size characters
// (runes), joined by BlockSeparator. A block never straddles two messages
// unless it alone is longer than size, in which case it is split on its last
// newline that fits, or at exactly size runes when there is none.
// A size <= 0 uses ChunkSize.
func Chunk(blocks []string, size int) []string {
	if size <= 0 {
		size = ChunkSize
	}
	sepLen := utf8.RuneCountInString(BlockSeparator)

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen == 0 {
			return
		}
		chunks = append(chunks, cur.String())
		cur.Reset()
		curLen = 0
	}

	for _, b := range blocks {
		n := utf8.RuneCountInString(b)
		if n == 0 {
			continue
		}
		if n > size {
			flush()
			chunks = append(chunks, hardSplit(b, size)...)
			continue
		}
		if curLen > 0 && curLen+sepLen+n > size {
			flush()
		}
		if curLen > 0 {
			cur.WriteString(BlockSeparator)
			curLen += sepLen
		}
		cur.WriteString(b)
		curLen += n
	}
	flush()

	return chunks
}

func hardSplit(s string, size int) []string {
	var out []string
	runes := []rune(s)
	for len(runes) > size {
		cut := size
		if i := lastNewline(runes[:size]); i > 0 {
			cut = i
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
		if len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
