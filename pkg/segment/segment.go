// Package segment splits raw text into sentences and sub-clauses.
//
// Segmentation never fails: malformed input only yields fewer boundaries.
// Each [Sentence] is an ordered list of content spans and punctuation tags:
//
//	s := segment.New()
//	for _, sent := range s.Segment("mi moku, la mi lape.") {
//	    for _, seg := range sent.Segments {
//	        fmt.Println(seg.Kind, seg.Text)
//	    }
//	}
//
// Proper names inside a content span are masked with [ProtectNames] before
// grammar analysis and put back, in discovery order, through [Names.Restore].
package segment

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/sitelen/pkg/vocab"
)

// Punctuation tags emitted by the segmenter.
const (
	TagComma       = "comma"
	TagColon       = "colon"
	TagLa          = "la"
	TagPeriod      = "period"
	TagExclamation = "exclamation"
	TagQuestion    = "question"
	TagBanner      = "banner"
)

// Kind distinguishes content spans from punctuation tags.
type Kind int

const (
	Content Kind = iota
	Punctuation
)

func (k Kind) String() string {
	switch k {
	case Content:
		return "content"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Segment is one content span or punctuation tag.
type Segment struct {
	Kind Kind
	Text string
}

// Sentence is the ordered segment list of one raw sentence.
type Sentence struct {
	Segments []Segment
	// Terminated is false for a trailing fragment without a terminator.
	Terminated bool
}

func (s *Sentence) content(text string) {
	s.Segments = append(s.Segments, Segment{Kind: Content, Text: text})
}

func (s *Sentence) punctuation(tag string) {
	s.Segments = append(s.Segments, Segment{Kind: Punctuation, Text: tag})
}

var (
	sentenceRe = regexp.MustCompile(`[^.!?#]+[.!?#]+`)
	spacesRe   = regexp.MustCompile(` {2,}`)
	namesRe    = regexp.MustCompile(`\b[A-Z][\w-]*`)
)

const terminators = ".!?#"

var terminatorTags = map[byte]string{
	'.': TagPeriod,
	'!': TagExclamation,
	'?': TagQuestion,
	'#': TagBanner,
}

// Segmenter splits text at sentence terminators and clause markers.
// It holds no mutable state and is safe for concurrent use.
type Segmenter struct{}

// New returns a Segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Segment splits text into sentences. Text without any terminator is one
// unterminated fragment; a remainder after the last terminator is kept as
// a trailing fragment.
func (s *Segmenter) Segment(text string) []Sentence {
	text = spacesRe.ReplaceAllString(norm.NFC.String(text), " ")

	var raw []string
	end := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		raw = append(raw, text[loc[0]:loc[1]])
		end = loc[1]
	}
	if rest := text[end:]; strings.TrimSpace(rest) != "" {
		raw = append(raw, rest)
	}

	var out []Sentence
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			continue
		}
		if sent, ok := s.sentence(trimmed); ok {
			out = append(out, sent)
		}
	}
	return out
}

func (s *Segmenter) sentence(trimmed string) (Sentence, bool) {
	var sent Sentence

	body := strings.TrimRight(trimmed, terminators)
	tag, terminated := terminatorTags[trimmed[len(trimmed)-1]]
	sent.Terminated = terminated

	body = strings.ReplaceAll(body, ", la ", " la ")
	body = strings.ReplaceAll(body, ", li ", " li ")

	clauses := strings.Split(body, " la ")
	for i, clause := range clauses {
		if i > 0 {
			sent.punctuation(TagLa)
		}
		for j, colonPart := range strings.Split(clause, ":") {
			if j > 0 {
				sent.punctuation(TagColon)
			}
			for k, commaPart := range strings.Split(colonPart, ",") {
				if k > 0 {
					sent.punctuation(TagComma)
				}
				if c := strings.TrimSpace(commaPart); c != "" {
					sent.content(c)
				}
			}
		}
	}

	if terminated {
		sent.punctuation(tag)
	}
	if len(sent.Segments) == 0 {
		return sent, false
	}
	return sent, true
}

// Names holds proper names removed from a content span, in the order they
// were found.
type Names struct {
	names []string
	next  int
}

// Len returns the number of recorded names.
func (n *Names) Len() int {
	return len(n.names)
}

// Remaining returns the number of names not yet restored.
func (n *Names) Remaining() int {
	return len(n.names) - n.next
}

// Restore returns the next recorded name if token is the placeholder, and
// token unchanged otherwise. Calls must visit tokens left to right.
func (n *Names) Restore(token string) string {
	if token != vocab.NamePlaceholder || n.next >= len(n.names) {
		return token
	}
	name := n.names[n.next]
	n.next++
	return name
}

// ProtectNames replaces every capitalized word in content with the name
// placeholder in a single left-to-right pass. Repeated names are recorded
// once per occurrence, so restoration by position is exact.
func ProtectNames(content string) (string, *Names) {
	names := &Names{}
	masked := namesRe.ReplaceAllStringFunc(content, func(name string) string {
		names.names = append(names.names, name)
		return vocab.NamePlaceholder
	})
	return masked, names
}
