package chunker

import (
	"strings"

	"bankrag/internal/domain"
)

const (
	// DefaultChunkSize is the target chunk size in characters.
	DefaultChunkSize = 800
	// DefaultOverlapRatio is the fraction of the chunk size carried
	// over between consecutive chunks of the same section.
	DefaultOverlapRatio = 0.2

	// FallbackSection labels blocks whose title could not be parsed.
	FallbackSection = "Unknown Section"
)

// SectionChunker splits a plain-text document into overlapping,
// title-annotated chunks. Sections are detected with the divider-line
// grammar in section_parser.go; each emitted chunk text is
// "{title}\n\n{body}" so the section context travels with the chunk.
type SectionChunker struct {
	chunkSize   int
	overlapSize int
}

func NewSectionChunker(chunkSize int, overlapRatio float64) *SectionChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlapRatio < 0 || overlapRatio >= 1 {
		overlapRatio = DefaultOverlapRatio
	}
	return &SectionChunker{
		chunkSize:   chunkSize,
		overlapSize: int(float64(chunkSize) * overlapRatio),
	}
}

// Chunk splits doc into chunks. A document with no body text produces
// zero chunks.
func (c *SectionChunker) Chunk(doc domain.Document) []domain.Chunk {
	var chunks []domain.Chunk

	for _, blk := range parseBlocks(doc.Text) {
		title := blk.title
		if blk.kind == blockUnrecognized {
			title = FallbackSection
		}
		if blk.body == "" {
			continue
		}

		if len(blk.body) <= c.chunkSize {
			chunks = append(chunks, newChunk(doc.Source, title, blk.body))
			continue
		}
		chunks = append(chunks, c.splitSection(doc.Source, title, blk.body)...)
	}

	return chunks
}

// splitSection splits an oversized section body on paragraph
// boundaries, seeding each new chunk with a tail of the previous one.
func (c *SectionChunker) splitSection(source, title, body string) []domain.Chunk {
	var chunks []domain.Chunk
	var current []string
	size := 0

	for _, para := range splitParagraphs(body) {
		if size+len(para) > c.chunkSize && len(current) > 0 {
			chunks = append(chunks, newChunk(source, title, strings.Join(current, "\n\n")))

			overlap := overlapTail(current, c.overlapSize)
			current = append(overlap, para)
			size = 0
			for _, p := range current {
				size += len(p)
			}
			continue
		}
		current = append(current, para)
		size += len(para)
	}

	if len(current) > 0 {
		chunks = append(chunks, newChunk(source, title, strings.Join(current, "\n\n")))
	}

	return chunks
}

// overlapTail walks the paragraph list backward and collects the
// longest suffix whose combined length fits within limit.
func overlapTail(paras []string, limit int) []string {
	chars := 0
	start := len(paras)
	for i := len(paras) - 1; i >= 0; i-- {
		if chars+len(paras[i]) > limit {
			break
		}
		chars += len(paras[i])
		start = i
	}
	return append([]string(nil), paras[start:]...)
}

func splitParagraphs(body string) []string {
	var paras []string
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

func newChunk(source, title, body string) domain.Chunk {
	text := title + "\n\n" + body
	return domain.Chunk{
		Text: text,
		Metadata: domain.ChunkMetadata{
			Source:    source,
			Section:   title,
			ChunkSize: len(text),
		},
	}
}
