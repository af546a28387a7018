// Package comments finds documentation comment blocks in source files.
//
// C-family sources contribute /** ... */ and /*! ... */ blocks and runs of
// consecutive /// or //! lines. Plain documentation files (.md, .txt) are a
// single block.
package comments

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnclosedComment is wrapped by the error Extract returns when a
// documentation block is not closed before the end of the file.
var ErrUnclosedComment = errors.New("unclosed comment block")

// Block is one documentation comment.
type Block struct {
	// Line is the 1-based line the comment text starts on.
	Line int

	// Text is the comment text without the comment delimiters and the
	// leading '*' of continuation lines.
	Text string
}

// plainExtensions are read as a single documentation block.
var plainExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// Extract returns the documentation blocks of the file name with content
// src, in source order. An unclosed block is returned with the text up to
// the end of the file together with an error wrapping ErrUnclosedComment.
func Extract(name string, src []byte) ([]Block, error) {
	if plainExtensions[strings.ToLower(filepath.Ext(name))] {
		if strings.TrimSpace(string(src)) == "" {
			return nil, nil
		}
		return []Block{{Line: 1, Text: string(src)}}, nil
	}

	s := &scanner{src: string(src), line: 1}
	err := s.scan()
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
	}
	return s.blocks, err
}

// scanner walks C-family source text.
type scanner struct {
	src    string
	pos    int
	line   int
	blocks []Block

	// lineBlock collects the current run of /// or //! lines.
	lineBlock *Block
	lastLine  int
}

func (s *scanner) scan() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == '"' || c == '\'':
			s.skipLiteral(c)
		case strings.HasPrefix(s.src[s.pos:], "//"):
			s.lineComment()
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			if err := s.blockComment(); err != nil {
				return err
			}
		default:
			s.pos++
		}
	}
	s.endLineBlock()
	return nil
}

// skipLiteral skips a string or character literal.
func (s *scanner) skipLiteral(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '\n':
			return
		case quote:
			s.pos++
			return
		}
		s.pos++
	}
}

// lineComment handles a // comment. Documentation lines on consecutive
// source lines are joined into one block.
func (s *scanner) lineComment() {
	start := s.pos + 2
	end := strings.IndexByte(s.src[start:], '\n')
	if end < 0 {
		end = len(s.src)
	} else {
		end += start
	}
	s.pos = end

	rest := s.src[start:end]
	doc := strings.HasPrefix(rest, "!") || (strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, "//"))
	if !doc {
		s.endLineBlock()
		return
	}
	text := strings.TrimPrefix(rest[1:], "<")

	if s.lineBlock != nil && s.lastLine == s.line-1 {
		s.lineBlock.Text += "\n" + text
	} else {
		s.endLineBlock()
		s.lineBlock = &Block{Line: s.line, Text: text}
	}
	s.lastLine = s.line
}

func (s *scanner) endLineBlock() {
	if s.lineBlock != nil {
		s.blocks = append(s.blocks, *s.lineBlock)
		s.lineBlock = nil
	}
}

// blockComment handles a /* */ comment.
func (s *scanner) blockComment() error {
	s.endLineBlock()

	startLine := s.line
	start := s.pos + 2
	end := strings.Index(s.src[start:], "*/")
	closed := end >= 0
	if closed {
		end += start
	} else {
		end = len(s.src)
	}
	body := s.src[start:end]

	s.line += strings.Count(body, "\n")
	s.pos = min(end+2, len(s.src))

	doc := (strings.HasPrefix(body, "*") && !strings.HasPrefix(body, "**")) || strings.HasPrefix(body, "!")
	if body == "*" || !doc {
		if !closed {
			return fmt.Errorf("line %d: %w", startLine, ErrUnclosedComment)
		}
		return nil
	}
	body = strings.TrimPrefix(body[1:], "<")

	s.blocks = append(s.blocks, Block{Line: startLine, Text: stripDecoration(body)})
	if !closed {
		return fmt.Errorf("line %d: %w", startLine, ErrUnclosedComment)
	}
	return nil
}

// stripDecoration removes the leading '*' that continuation lines of a
// block comment usually carry.
func stripDecoration(body string) string {
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(trimmed, "*") {
			lines[i] = trimmed[1:]
		}
	}
	return strings.Join(lines, "\n")
}
