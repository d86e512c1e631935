package domain

import "fmt"

// ChunkLimit is the maximum embed description length Discord accepts.
const ChunkLimit = 4096

// FallbackBody is used when a reply would otherwise be empty.
const FallbackBody = "no content"

type Chunk struct {
	Title string
	Body  string
}

// SplitText cuts text into embed-sized chunks at fixed rune offsets. The
// split is not word-aware; concatenating the bodies in order reproduces the
// input exactly. The first chunk carries title, later ones are numbered with
// contPrefix. Empty input yields a single chunk with a fallback body.
func SplitText(text, title, contPrefix string) []Chunk {
	if text == "" {
		return []Chunk{{Title: title, Body: FallbackBody}}
	}

	runes := []rune(text)

	chunks := make([]Chunk, 0, len(runes)/ChunkLimit+1)
	for start := 0; start < len(runes); start += ChunkLimit {
		end := start + ChunkLimit
		if end > len(runes) {
			end = len(runes)
		}

		c := Chunk{Body: string(runes[start:end])}
		if len(chunks) == 0 {
			c.Title = title
		} else {
			c.Title = fmt.Sprintf("%s %d", contPrefix, len(chunks)+1)
		}

		chunks = append(chunks, c)
	}

	return chunks
}
