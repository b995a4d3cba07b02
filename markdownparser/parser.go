package markdownparser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrInvalidTestCase    = errors.New("invalid test case")
	ErrNoTestCases        = errors.New("no test cases")
)

// Code block info strings with a fixed meaning. Any other info string on
// an input block names the language of that case.
const (
	InputBlock    = "input"
	ExpectedBlock = "expected"
	ErrorBlock    = "error"
)

// CaseDocument is a parsed grammar case file.
type CaseDocument struct {
	Title       string
	Language    string
	Description string
	Metadata    map[string]any
	Cases       []Case
}

// Case is one `##` section of a case file.
type Case struct {
	Name     string
	Line     int
	Language string
	Input    string

	// Expected holds the decoded `expected` block. Numbers are json.Number.
	Expected    any
	HasExpected bool

	ExpectedError string
	HasError      bool
}

// Parse reads a grammar case file.
//
// Layout: optional YAML front matter (`language`, `description`), an
// optional `#` title, then one `##` heading per case. A case holds one
// input block (info `input` or a language name) followed by either an
// `expected` block with the JSON form of the parsed value or an `error`
// block with the expected error message.
func Parse(reader io.Reader) (*CaseDocument, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	document := &CaseDocument{Metadata: frontMatter}

	if document.Language, err = stringField(frontMatter, "language"); err != nil {
		return nil, err
	}

	if document.Description, err = stringField(frontMatter, "description"); err != nil {
		return nil, err
	}

	source := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}

		if err := validateCase(current, document.Language); err != nil {
			return err
		}

		document.Cases = append(document.Cases, *current)
		current = nil

		return nil
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if n.Level == 1 {
				if document.Title == "" {
					document.Title = extractTextFromNode(n, source)
				}

				continue
			}

			if n.Level != 2 {
				continue
			}

			if err := finish(); err != nil {
				return nil, err
			}

			current = &Case{
				Name: extractTextFromNode(n, source),
				Line: lineOf(source, n),
			}
		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}

			if err := addCodeBlock(current, n, source); err != nil {
				return nil, err
			}
		}
	}

	if err := finish(); err != nil {
		return nil, err
	}

	if len(document.Cases) == 0 {
		return nil, ErrNoTestCases
	}

	return document, nil
}

func addCodeBlock(c *Case, block *ast.FencedCodeBlock, source []byte) error {
	info := strings.ToLower(getCodeBlockInfo(block, source))
	body := extractCodeBlockContent(block, source)

	switch info {
	case ExpectedBlock:
		if c.HasExpected || c.HasError {
			return caseError(c, "more than one expectation")
		}

		expected, err := decodeExpected(body)
		if err != nil {
			return caseError(c, fmt.Sprintf("invalid expected JSON: %v", err))
		}

		c.Expected = expected
		c.HasExpected = true
	case ErrorBlock:
		if c.HasExpected || c.HasError {
			return caseError(c, "more than one expectation")
		}

		c.ExpectedError = strings.TrimSpace(body)
		c.HasError = true
	default:
		if c.HasExpected || c.HasError {
			return caseError(c, "input block after the expectation")
		}

		if c.Input != "" || c.Language != "" {
			return caseError(c, "more than one input block")
		}

		c.Input = body
		if info == InputBlock || info == "" {
			c.Language = InputBlock
		} else {
			c.Language = info
		}
	}

	return nil
}

func validateCase(c *Case, defaultLanguage string) error {
	switch {
	case c.Language == "":
		return caseError(c, "missing input block")
	case !c.HasExpected && !c.HasError:
		return caseError(c, "missing expected or error block")
	}

	if c.Language == InputBlock {
		if defaultLanguage == "" {
			return caseError(c, "input block needs a language: set front matter `language` or tag the block")
		}

		c.Language = defaultLanguage
	}

	return nil
}

func caseError(c *Case, message string) error {
	return fmt.Errorf("%w %q (line %d): %s", ErrInvalidTestCase, c.Name, c.Line, message)
}

func decodeExpected(body string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if decoder.More() {
		return nil, errors.New("trailing data after the first value")
	}

	return value, nil
}

// getCodeBlockInfo returns the first word of the info string
func getCodeBlockInfo(codeBlock *ast.FencedCodeBlock, content []byte) string {
	if codeBlock.Info == nil {
		return ""
	}

	segment := codeBlock.Info.Segment
	fields := strings.Fields(string(content[segment.Start:segment.Stop]))

	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// extractCodeBlockContent returns the block body without its final newline
func extractCodeBlockContent(codeBlock ast.Node, content []byte) string {
	var result strings.Builder

	lines := codeBlock.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		result.Write(line.Value(content))
	}

	return strings.TrimSuffix(result.String(), "\n")
}

// extractTextFromNode extracts text content from any AST node
func extractTextFromNode(node ast.Node, content []byte) string {
	var result strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch textNode := n.(type) {
		case *ast.Text:
			result.Write(textNode.Segment.Value(content))
		case *ast.String:
			result.Write(textNode.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

// lineOf returns the 1-based line of the first source line of node
func lineOf(content []byte, node ast.Node) int {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}

	return bytes.Count(content[:lines.At(0).Start], []byte("\n")) + 1
}
