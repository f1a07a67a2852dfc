package analyze

// DefaultChunkSize bounds one analysis chunk. Large enough to give the model
// context, small enough to fit typical context windows.
const DefaultChunkSize = 5000

// ChunkContent splits content into sequential, non-overlapping slices of at
// most size bytes. Concatenating the chunks in order reconstructs the input
// exactly.
func ChunkContent(content string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if content == "" {
		return nil
	}
	chunks := make([]string, 0, (len(content)+size-1)/size)
	for i := 0; i < len(content); i += size {
		end := i + size
		if end > len(content) {
			end = len(content)
		}
		chunks = append(chunks, content[i:end])
	}
	return chunks
}
