package synth

// Sections is the closed set of named README sections produced by one
// synthesis call. All seven fields are required; a response missing any of
// them is replaced wholesale by FallbackSections.
type Sections struct {
	ProjectDescription   string `json:"project_description"`
	Overview             string `json:"project_overview_content"`
	Features             string `json:"features_content"`
	Technologies         string `json:"technologies_content"`
	Installation         string `json:"installation_content"`
	UsageExamples        string `json:"usage_examples_content"`
	StructureDescription string `json:"project_structure_description"`
}

// complete reports whether every required field is populated.
func (s Sections) complete() bool {
	return s.ProjectDescription != "" &&
		s.Overview != "" &&
		s.Features != "" &&
		s.Technologies != "" &&
		s.Installation != "" &&
		s.UsageExamples != "" &&
		s.StructureDescription != ""
}

// FallbackSections is the complete default object substituted when the model
// response cannot be parsed or validated. Every field is populated; the
// synthesizer never returns a partial object.
func FallbackSections() Sections {
	return Sections{
		ProjectDescription:   "The project description could not be generated.",
		Overview:             "The project overview could not be generated.",
		Features:             "The feature list could not be generated.",
		Technologies:         "The technology stack could not be generated.",
		Installation:         "The installation instructions could not be generated.",
		UsageExamples:        "The usage examples could not be generated.",
		StructureDescription: "The project structure description could not be generated.",
	}
}

// responseSchema is the declarative shape the model is asked to conform its
// output to.
func responseSchema() map[string]any {
	str := func(desc string) map[string]any {
		return map[string]any{"type": "STRING", "description": desc}
	}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"project_description":           str("A short, catchy description of the project. 1-2 sentences."),
			"project_overview_content":      str("A detailed overview of the project, its goals and architecture. At least 3-4 sentences."),
			"features_content":              str("The key features and capabilities of the project as a bulleted list."),
			"technologies_content":          str("The main technologies, languages and frameworks used in the project as a bulleted list."),
			"installation_content":          str("Detailed installation and startup instructions, including commands for cloning, installing dependencies and running. Use markdown code blocks."),
			"usage_examples_content":        str("Practical usage examples with code snippets demonstrating the main functionality. Use markdown code blocks."),
			"project_structure_description": str("A short introduction to the logic of the project layout. At most 2-3 sentences."),
		},
		"required": []string{
			"project_description",
			"project_overview_content",
			"features_content",
			"technologies_content",
			"installation_content",
			"usage_examples_content",
			"project_structure_description",
		},
	}
}
