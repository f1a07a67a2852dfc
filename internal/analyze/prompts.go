package analyze

import (
	"fmt"
	"strings"
)

const chunkPromptTemplate = `You are an experienced team lead and the principal architect of this project. Analyze the provided code fragment and write it up in the format below, using markdown.
Be precise, concise and as useful as possible for understanding the project.
Pay particular attention to the main PURPOSE and ROLE of this file in the context of the whole project, as if you were explaining it to a new team member.
Avoid any phrasing that could hint the text was machine-generated. Write naturally, like a person.

### File purpose
A short description (1-2 sentences) explaining the main purpose and role of the file in the project. For example: "This file handles HTTP request routing", "The order-processing business logic lives here".

### Key components
- **Types**: the types defined in the file, each with a very short description.
- **Functions/Methods**: the functions or methods defined in the file, each with a very short description.
- **Variables/Constants**: the key globals or constants defined in the file, with a very short description.

### Dependencies
External libraries, modules or frameworks imported or used by the file.

### Additional notes
Any other useful information: design patterns, implementation quirks, potential problems or important comments.

---
File: %s
Language: %s
File content:
` + "```%s\n%s\n```"

// chunkPrompt builds the per-chunk analysis prompt for one file fragment.
func chunkPrompt(path, language, chunk string) string {
	fence := strings.ReplaceAll(strings.ToLower(language), " ", "")
	return fmt.Sprintf(chunkPromptTemplate, path, language, fence, chunk)
}

// consolidationPrompt builds the request that merges several partial analyses
// of the same file into one coherent write-up.
func consolidationPrompt(parts []string) string {
	return `You received several partial analyses of the same file. Merge them into a single coherent analysis, keeping the structure: "File purpose", "Key components", "Dependencies", "Additional notes".
Pay particular attention to the main PURPOSE and ROLE of this file in the context of the whole project, as if you were explaining it to a new team member.
Avoid any phrasing that could hint the text was machine-generated. Write naturally, like a person.
Make sure nothing is duplicated and the result stays concise.

Partial analyses:
` + strings.Join(parts, "\n")
}
