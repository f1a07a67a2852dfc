package render

// Deferred placeholder tokens. Each one maps to exactly one substitution path
// in the renderer; none may survive into the final document.
const (
	tokenStructure    = "{{project_structure_content}}"
	tokenContributing = "{{contributing_content}}"
	tokenLicense      = "{{license_content}}"
)

var deferredTokens = []string{tokenStructure, tokenContributing, tokenLicense}

// contributingBoilerplate is fixed text: the contribution process is a
// project convention, not something inferable per repository.
const contributingBoilerplate = `Contributions are welcome! To get a change in:

1. Fork the repository.
2. Create a branch for your change: ` + "`git checkout -b feature/your-feature-name`" + `
3. Make your changes and commit them: ` + "`git commit -m \"Add new feature\"`" + `
4. Push the branch to your fork: ` + "`git push origin feature/your-feature-name`" + `
5. Open a pull request.

New ideas and help moving the project forward are always appreciated.`

const defaultLicenseSentence = "This project is licensed under the MIT license. See the [LICENSE](LICENSE) file for details."

// deviconMap maps classified languages to icon URLs shown under the title.
// Languages without an entry simply get no icon.
var deviconMap = map[string]string{
	"Python":     "https://github.com/devicons/devicon/blob/master/icons/python/python-original.svg?raw=true",
	"JavaScript": "https://github.com/devicons/devicon/blob/master/icons/javascript/javascript-original.svg?raw=true",
	"TypeScript": "https://github.com/devicons/devicon/blob/master/icons/typescript/typescript-original.svg?raw=true",
	"Java":       "https://github.com/devicons/devicon/blob/master/icons/java/java-original-wordmark.svg?raw=true",
	"Go":         "https://github.com/devicons/devicon/blob/master/icons/go/go-original.svg?raw=true",
	"Rust":       "https://github.com/devicons/devicon/blob/master/icons/rust/rust-plain.svg?raw=true",
	"Ruby":       "https://github.com/devicons/devicon/blob/master/icons/ruby/ruby-original.svg?raw=true",
	"PHP":        "https://github.com/devicons/devicon/blob/master/icons/php/php-original.svg?raw=true",
	"HTML":       "https://github.com/devicons/devicon/blob/master/icons/html5/html5-original.svg?raw=true",
	"CSS":        "https://github.com/devicons/devicon/blob/master/icons/css3/css3-plain-wordmark.svg?raw=true",
	"React JSX":  "https://github.com/devicons/devicon/blob/master/icons/react/react-original.svg?raw=true",
	"Vue.js":     "https://github.com/devicons/devicon/blob/master/icons/vuejs/vuejs-original.svg?raw=true",
}
